package calculator

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"ltes/mesh"
	"ltes/parameter"
)

// base carries the discretisation shared by the full and reduced models.
// State layout: [Tf (nx) | H (capsules*nr) | Q].
type base struct {
	name     string
	p        *parameter.Values
	m        *mesh.Mesh
	nx, nr   int
	capsules int
	e        *executor

	h0 float64 // initial enthalpy
}

func newBase(name string, p *parameter.Values, m *mesh.Mesh, capsules, workers int) (*base, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%s: nil mesh", name)
	}
	if math.Abs(m.Capsule.Max-p.CapsuleRadius) > 1e-12*p.CapsuleRadius || math.Abs(m.Pipe.Max-p.PipeLength) > 1e-12*p.PipeLength {
		return nil, fmt.Errorf("%s: mesh does not match capsule radius %g m and pipe length %g m", name, p.CapsuleRadius, p.PipeLength)
	}
	h0, err := p.InitialH()
	if err != nil {
		return nil, fmt.Errorf("%s: initial enthalpy: %w", name, err)
	}
	b := &base{
		name:     name,
		p:        p,
		m:        m,
		nx:       m.Pipe.Len(),
		nr:       m.Capsule.Len(),
		capsules: capsules,
		e:        newExecutor(workers),
		h0:       h0,
	}
	log.WithFields(log.Fields{
		"model":         name,
		"pipePoints":    b.nx,
		"capsulePoints": b.nr,
		"states":        b.Size(),
		"workers":       b.e.workers,
	}).Debug("model built")
	return b, nil
}

func (b *base) Name() string              { return b.name }
func (b *base) Params() *parameter.Values { return b.p }
func (b *base) Mesh() *mesh.Mesh          { return b.m }
func (b *base) Close()                    { b.e.close() }

func (b *base) Size() int {
	return b.nx + b.capsules*b.nr + 1
}

func (b *base) Initial() ([]float64, error) {
	y := make([]float64, b.Size())
	for j := 0; j < b.nx; j++ {
		y[j] = b.p.InitialTemperature
	}
	for i := b.nx; i < len(y)-1; i++ {
		y[i] = b.h0
	}
	return y, nil
}

// capsule returns the enthalpy profile of the capsule sitting in pipe cell j.
func (b *base) capsule(y []float64, j int) []float64 {
	if b.capsules == 1 {
		j = 0
	}
	off := b.nx + j*b.nr
	return y[off : off+b.nr]
}

func (b *base) State(y []float64) State {
	s := State{
		Fluid:    y[:b.nx],
		Enthalpy: make([][]float64, b.nx),
		Stored:   y[len(y)-1],
	}
	for j := range s.Enthalpy {
		s.Enthalpy[j] = b.capsule(y, j)
	}
	return s
}

// surface solves the Robin condition between the outermost cell centre and
// the fluid: returns the surface temperature and the flux into the PCM.
func (b *base) surface(h []float64, tf float64) (ts, q float64) {
	n := len(h)
	tn, kn := b.p.H2T(h[n-1]), b.p.K(h[n-1])
	half := b.m.Capsule.Step / 2
	q = (tf - tn) / (half/kn + 1/b.p.HeatTransferCoefficient)
	return tn + q*half/kn, q
}

// capsuleRate evaluates dH/dt of one capsule driven by fluid temperature tf
// and returns the surface flux into the PCM, W.m-2.
func (b *base) capsuleRate(h, dh []float64, tf float64) float64 {
	c := b.m.Capsule
	n := len(h)
	var in float64 // heat entering the current cell through its inner face, W
	tl, kl := b.p.H2T(h[0]), b.p.K(h[0])
	for i := 0; i < n-1; i++ {
		tr, kr := b.p.H2T(h[i+1]), b.p.K(h[i+1])
		f := (kl + kr) / 2 * (tr - tl) / c.Step * c.Areas[i+1]
		dh[i] = (in + f) / c.Volumes[i]
		in = -f
		tl, kl = tr, kr
	}
	_, q := b.surface(h, tf)
	dh[n-1] = (in + q*c.Areas[n]) / c.Volumes[n-1]
	return q
}

// fluidRate evaluates dTf/dt in pipe cell j with first-order upwinding.
func (b *base) fluidRate(t float64, tf []float64, j int, q float64) float64 {
	p := b.p
	upstream := p.Inlet(t)
	if j > 0 {
		upstream = tf[j-1]
	}
	return -p.InletVelocity*(tf[j]-upstream)/b.m.Pipe.Step -
		p.SpecificSurface()/(p.Porosity*p.FluidDensity*p.FluidHeatCapacity)*q
}

// storedRate is the net enthalpy inflow per unit area, ερc u (T_in − T_out).
func (b *base) storedRate(t float64, tf []float64) float64 {
	p := b.p
	return p.Porosity * p.FluidDensity * p.FluidHeatCapacity * p.InletVelocity * (p.Inlet(t) - tf[b.nx-1])
}

func (b *base) Surface(y []float64) (temperature, flux []float64) {
	temperature = make([]float64, b.nx)
	flux = make([]float64, b.nx)
	drive := b.driver(y)
	for j := 0; j < b.nx; j++ {
		temperature[j], flux[j] = b.surface(b.capsule(y, j), drive(j))
	}
	return temperature, flux
}

// driver is the fluid temperature seen by the capsule in pipe cell j.
func (b *base) driver(y []float64) func(j int) float64 {
	if b.capsules == 1 {
		avg := b.m.Pipe.Average(y[:b.nx])
		return func(int) float64 { return avg }
	}
	return func(j int) float64 { return y[j] }
}

// Energy returns the enthalpy per unit cross-section held by the fluid and
// by the PCM.
func (b *base) Energy(y []float64) (fluid, pcm float64) {
	p := b.p
	fluid = p.Porosity * p.FluidDensity * p.FluidHeatCapacity * b.m.Pipe.Integrate(y[:b.nx])
	var sum float64
	for j := 0; j < b.nx; j++ {
		sum += b.m.Capsule.Average(b.capsule(y, j)) * b.m.Pipe.Volumes[j]
	}
	pcm = (1 - p.Porosity) * sum
	return fluid, pcm
}

func (b *base) InitialEnergy() float64 {
	p := b.p
	return (p.Porosity*p.FluidDensity*p.FluidHeatCapacity*p.InitialTemperature + (1-p.Porosity)*b.h0) * p.PipeLength
}

// StableTimeStep bounds the forward-Euler step by the largest Gershgorin
// row sum of the linearised system, using the most diffusive PCM phase.
func (b *base) StableTimeStep() float64 {
	p := b.p
	c := b.m.Capsule
	kmax, rc := p.MaxConductivity(), p.MinHeatCapacity()
	u := 1 / (c.Step/(2*kmax) + 1/p.HeatTransferCoefficient)

	var lambda float64
	for i := 0; i < b.nr; i++ {
		l := kmax * c.Areas[i] / c.Step
		if i < b.nr-1 {
			l += kmax * c.Areas[i+1] / c.Step
		} else {
			l += u * c.Areas[i+1]
		}
		lambda = math.Max(lambda, l/(c.Volumes[i]*rc))
	}
	fluid := p.InletVelocity/b.m.Pipe.Step + p.SpecificSurface()*u/(p.Porosity*p.FluidDensity*p.FluidHeatCapacity)
	lambda = math.Max(lambda, fluid)
	return 1 / lambda
}
