package calculator

import (
	"ltes/mesh"
	"ltes/parameter"
)

// Full resolves one capsule per pipe cell.
type Full struct {
	*base
	q []float64 // surface flux scratch, one slot per pipe cell
}

func NewFull(p *parameter.Values, m *mesh.Mesh, workers int) (*Full, error) {
	b, err := newBase("Full model", p, m, m.Pipe.Len(), workers)
	if err != nil {
		return nil, err
	}
	return &Full{base: b, q: make([]float64, m.Pipe.Len())}, nil
}

// Derivative is not safe for concurrent use on the same model.
func (f *Full) Derivative(t float64, y, dy []float64) {
	tf := y[:f.nx]
	f.e.run(0, f.nx, func(start, end int) {
		for j := start; j < end; j++ {
			f.q[j] = f.capsuleRate(f.capsule(y, j), f.capsule(dy, j), tf[j])
			dy[j] = f.fluidRate(t, tf, j, f.q[j])
		}
	})
	dy[len(dy)-1] = f.storedRate(t, tf)
}
