package calculator

import (
	"ltes/mesh"
	"ltes/parameter"
)

// Reduced replaces the capsules along the pipe by a single x-averaged
// capsule driven by the x-averaged fluid temperature.
type Reduced struct {
	*base
}

func NewReduced(p *parameter.Values, m *mesh.Mesh, workers int) (*Reduced, error) {
	b, err := newBase("Reduced model", p, m, 1, workers)
	if err != nil {
		return nil, err
	}
	return &Reduced{base: b}, nil
}

func (r *Reduced) Derivative(t float64, y, dy []float64) {
	tf := y[:r.nx]
	q := r.capsuleRate(r.capsule(y, 0), r.capsule(dy, 0), r.m.Pipe.Average(tf))
	r.e.run(0, r.nx, func(start, end int) {
		for j := start; j < end; j++ {
			dy[j] = r.fluidRate(t, tf, j, q)
		}
	})
	dy[len(dy)-1] = r.storedRate(t, tf)
}
