// Package solution stores the states produced by a solver and derives the
// output variables of the LTES models from them.
package solution

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"gonum.org/v1/gonum/floats"

	"ltes/calculator"
	"ltes/model"
)

// Kelvin is the offset between the kelvin and celsius scales.
const Kelvin = 273.15

var (
	ErrEmpty         = errors.New("solution holds no states")
	ErrOutOfRange    = errors.New("time outside the solved interval")
	ErrUnknownOutput = errors.New("unknown output variable")
)

// Solution is a time series of model states.
type Solution struct {
	Model     calculator.Model
	Solver    string
	Times     []float64
	States    [][]float64
	SolveTime time.Duration
}

func New(m calculator.Model, solver string) *Solution {
	return &Solution{Model: m, Solver: solver}
}

// Append stores a copy of y at time t. Times must be appended in order.
func (s *Solution) Append(t float64, y []float64) {
	s.Times = append(s.Times, t)
	s.States = append(s.States, append([]float64(nil), y...))
}

func (s *Solution) Len() int {
	return len(s.Times)
}

// Snapshot evaluates every output variable at stored index i.
func (s *Solution) Snapshot(i int) *model.Snapshot {
	return Evaluate(s.Model, s.Times[i], s.States[i])
}

// Last is the snapshot at the final time.
func (s *Solution) Last() (*model.Snapshot, error) {
	if s.Len() == 0 {
		return nil, ErrEmpty
	}
	return s.Snapshot(s.Len() - 1), nil
}

// At evaluates the output variables at time t, interpolating the state
// linearly between stored times.
func (s *Solution) At(t float64) (*model.Snapshot, error) {
	y, err := s.stateAt(t)
	if err != nil {
		return nil, err
	}
	return Evaluate(s.Model, t, y), nil
}

func (s *Solution) stateAt(t float64) ([]float64, error) {
	n := s.Len()
	if n == 0 {
		return nil, ErrEmpty
	}
	first, last := s.Times[0], s.Times[n-1]
	tol := 1e-9 * (1 + last - first)
	if t < first-tol || t > last+tol {
		return nil, fmt.Errorf("%w: t=%g not in [%g, %g]", ErrOutOfRange, t, first, last)
	}
	i := sort.SearchFloat64s(s.Times, t)
	switch {
	case i == 0:
		return s.States[0], nil
	case i >= n:
		return s.States[n-1], nil
	case s.Times[i] == t:
		return s.States[i], nil
	}
	t0, t1 := s.Times[i-1], s.Times[i]
	w := (t - t0) / (t1 - t0)
	y := make([]float64, len(s.States[i]))
	floats.AddScaledTo(y, floats.ScaleTo(y, 1-w, s.States[i-1]), w, s.States[i])
	return y, nil
}

// Evaluate derives the output variables of model m from state y at time t.
func Evaluate(m calculator.Model, t float64, y []float64) *model.Snapshot {
	p := m.Params()
	msh := m.Mesh()
	st := m.State(y)
	nx, nr := msh.Pipe.Len(), msh.Capsule.Len()

	snap := &model.Snapshot{
		Time:             t,
		X:                msh.Pipe.Nodes,
		R:                msh.Capsule.Nodes,
		FluidTemperature: append([]float64(nil), st.Fluid...),
		PCMTemperature:   make([][]float64, nx),
		PCMEnthalpy:      make([][]float64, nx),
		Phase:            make([][]float64, nx),
		StateOfCharge:    make([]float64, nx),
		LiquidFraction:   make([]float64, nx),
		InletTemperature: p.Inlet(t),
		StoredEnergy:     st.Stored,
	}
	snap.OutletTemperature = st.Fluid[nx-1]

	liquid := make([]float64, nr)
	for j := 0; j < nx; j++ {
		h := st.Enthalpy[j]
		snap.PCMEnthalpy[j] = append([]float64(nil), h...)
		snap.PCMTemperature[j] = make([]float64, nr)
		snap.Phase[j] = make([]float64, nr)
		for i, v := range h {
			snap.PCMTemperature[j][i] = p.H2T(v)
			snap.Phase[j][i] = p.Phase(v)
			liquid[i] = p.LiquidFraction(v)
		}
		snap.StateOfCharge[j] = msh.Capsule.Average(snap.Phase[j])
		snap.LiquidFraction[j] = msh.Capsule.Average(liquid)
	}

	snap.AveragedPCMTemperature = make([]float64, nr)
	snap.AveragedPCMEnthalpy = make([]float64, nr)
	snap.AveragedPhase = make([]float64, nr)
	column := make([]float64, nx)
	for i := 0; i < nr; i++ {
		for j := 0; j < nx; j++ {
			column[j] = snap.PCMTemperature[j][i]
		}
		snap.AveragedPCMTemperature[i] = msh.Pipe.Average(column)
		for j := 0; j < nx; j++ {
			column[j] = snap.PCMEnthalpy[j][i]
		}
		snap.AveragedPCMEnthalpy[i] = msh.Pipe.Average(column)
		snap.AveragedPhase[i] = p.Phase(snap.AveragedPCMEnthalpy[i])
	}
	snap.AveragedStateOfCharge = msh.Capsule.Average(snap.AveragedPhase)

	snap.SurfaceTemperature, snap.Flux = m.Surface(y)
	snap.AveragedSurfaceTemperature = msh.Pipe.Average(snap.SurfaceTemperature)
	snap.AveragedFlux = msh.Pipe.Average(snap.Flux)

	snap.FluidEnergy, snap.PCMEnergy = m.Energy(y)
	snap.TotalEnergy = snap.FluidEnergy + snap.PCMEnergy
	snap.EnergyVariation = snap.TotalEnergy - m.InitialEnergy()
	snap.ConservationError = snap.EnergyVariation - snap.StoredEnergy
	snap.RelativeConservationError = snap.ConservationError / snap.TotalEnergy * 100
	return snap
}
