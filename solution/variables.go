package solution

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/interp"

	"ltes/model"
)

// Output variable names.
const (
	TimeS   = "Time [s]"
	TimeMin = "Time [min]"
	TimeH   = "Time [h]"

	InletTemperatureK                     = "Inlet temperature [K]"
	InletTemperatureC                     = "Inlet temperature [degC]"
	OutletTemperatureK                    = "Outlet temperature [K]"
	OutletTemperatureC                    = "Outlet temperature [degC]"
	AveragedStateOfCharge                 = "X-averaged state of charge"
	AveragedSurfaceTemperatureK           = "X-averaged phase-change material surface temperature [K]"
	AveragedSurfaceTemperatureC           = "X-averaged phase-change material surface temperature [degC]"
	AveragedFlux                          = "X-averaged flux into phase-change material [W.m-2]"
	PCMEnergy                             = "Total enthalpy of phase-change material per unit area [J.m-2]"
	FluidEnergy                           = "Total enthalpy of heat transfer fluid per unit area [J.m-2]"
	TotalEnergy                           = "Total enthalpy per unit area [J.m-2]"
	EnergyVariation                       = "Variation in total enthalpy per unit area [J.m-2]"
	StoredEnergy                          = "Stored energy per unit area [J.m-2]"
	ConservationError                     = "Error in energy conservation [J.m-2]"
	RelativeConservationError             = "Relative error in energy conservation [%]"
	FluidTemperatureK                     = "Heat transfer fluid temperature [K]"
	FluidTemperatureC                     = "Heat transfer fluid temperature [degC]"
	SurfaceTemperatureK                   = "Phase-change material surface temperature [K]"
	SurfaceTemperatureC                   = "Phase-change material surface temperature [degC]"
	StateOfCharge                         = "State of charge"
	Flux                                  = "Flux into phase-change material [W.m-2]"
	LiquidFraction                        = "Liquid fraction"
	AveragedPCMTemperatureK               = "X-averaged phase-change material temperature [K]"
	AveragedPCMTemperatureC               = "X-averaged phase-change material temperature [degC]"
	AveragedPCMEnthalpy                   = "X-averaged phase-change material enthalpy [J.m-3]"
	AveragedPhase                         = "X-averaged phase"
	PCMTemperatureK                       = "Phase-change material temperature [K]"
	PCMTemperatureC                       = "Phase-change material temperature [degC]"
	PCMEnthalpy                           = "Phase-change material enthalpy [J.m-3]"
	Phase                                 = "Phase"
	PipePositionM                         = "x [m]"
	CapsulePositionMM                     = "r [mm]"
)

var scalars = map[string]func(s *model.Snapshot) float64{
	TimeS:                       func(s *model.Snapshot) float64 { return s.Time },
	TimeMin:                     func(s *model.Snapshot) float64 { return s.Time / 60 },
	TimeH:                       func(s *model.Snapshot) float64 { return s.Time / 3600 },
	InletTemperatureK:           func(s *model.Snapshot) float64 { return s.InletTemperature },
	InletTemperatureC:           func(s *model.Snapshot) float64 { return s.InletTemperature - Kelvin },
	OutletTemperatureK:          func(s *model.Snapshot) float64 { return s.OutletTemperature },
	OutletTemperatureC:          func(s *model.Snapshot) float64 { return s.OutletTemperature - Kelvin },
	AveragedStateOfCharge:       func(s *model.Snapshot) float64 { return s.AveragedStateOfCharge },
	AveragedSurfaceTemperatureK: func(s *model.Snapshot) float64 { return s.AveragedSurfaceTemperature },
	AveragedSurfaceTemperatureC: func(s *model.Snapshot) float64 { return s.AveragedSurfaceTemperature - Kelvin },
	AveragedFlux:                func(s *model.Snapshot) float64 { return s.AveragedFlux },
	PCMEnergy:                   func(s *model.Snapshot) float64 { return s.PCMEnergy },
	FluidEnergy:                 func(s *model.Snapshot) float64 { return s.FluidEnergy },
	TotalEnergy:                 func(s *model.Snapshot) float64 { return s.TotalEnergy },
	EnergyVariation:             func(s *model.Snapshot) float64 { return s.EnergyVariation },
	StoredEnergy:                func(s *model.Snapshot) float64 { return s.StoredEnergy },
	ConservationError:           func(s *model.Snapshot) float64 { return s.ConservationError },
	RelativeConservationError:   func(s *model.Snapshot) float64 { return s.RelativeConservationError },
}

var pipeProfiles = map[string]func(s *model.Snapshot) []float64{
	PipePositionM:       func(s *model.Snapshot) []float64 { return s.X },
	FluidTemperatureK:   func(s *model.Snapshot) []float64 { return s.FluidTemperature },
	FluidTemperatureC:   func(s *model.Snapshot) []float64 { return toCelsius(s.FluidTemperature) },
	SurfaceTemperatureK: func(s *model.Snapshot) []float64 { return s.SurfaceTemperature },
	SurfaceTemperatureC: func(s *model.Snapshot) []float64 { return toCelsius(s.SurfaceTemperature) },
	StateOfCharge:       func(s *model.Snapshot) []float64 { return s.StateOfCharge },
	Flux:                func(s *model.Snapshot) []float64 { return s.Flux },
	LiquidFraction:      func(s *model.Snapshot) []float64 { return s.LiquidFraction },
}

var capsuleProfiles = map[string]func(s *model.Snapshot) []float64{
	CapsulePositionMM:       func(s *model.Snapshot) []float64 { return scaled(s.R, 1000) },
	AveragedPCMTemperatureK: func(s *model.Snapshot) []float64 { return s.AveragedPCMTemperature },
	AveragedPCMTemperatureC: func(s *model.Snapshot) []float64 { return toCelsius(s.AveragedPCMTemperature) },
	AveragedPCMEnthalpy:     func(s *model.Snapshot) []float64 { return s.AveragedPCMEnthalpy },
	AveragedPhase:           func(s *model.Snapshot) []float64 { return s.AveragedPhase },
}

var fields = map[string]func(s *model.Snapshot) [][]float64{
	PCMTemperatureK: func(s *model.Snapshot) [][]float64 { return s.PCMTemperature },
	PCMTemperatureC: func(s *model.Snapshot) [][]float64 {
		out := make([][]float64, len(s.PCMTemperature))
		for j, row := range s.PCMTemperature {
			out[j] = toCelsius(row)
		}
		return out
	},
	PCMEnthalpy: func(s *model.Snapshot) [][]float64 { return s.PCMEnthalpy },
	Phase:       func(s *model.Snapshot) [][]float64 { return s.Phase },
}

func toCelsius(v []float64) []float64 {
	out := make([]float64, len(v))
	for i, t := range v {
		out[i] = t - Kelvin
	}
	return out
}

func scaled(v []float64, c float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = c * x
	}
	return out
}

// Variables lists every output variable name, sorted.
func Variables() []string {
	var names []string
	for k := range scalars {
		names = append(names, k)
	}
	for k := range pipeProfiles {
		names = append(names, k)
	}
	for k := range capsuleProfiles {
		names = append(names, k)
	}
	for k := range fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// IsScalar reports whether name is a 0D variable.
func IsScalar(name string) bool {
	_, ok := scalars[name]
	return ok
}

// Scalar returns a 0D variable at every stored time.
func (s *Solution) Scalar(name string) ([]float64, error) {
	f, ok := scalars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a scalar", ErrUnknownOutput, name)
	}
	if s.Len() == 0 {
		return nil, ErrEmpty
	}
	out := make([]float64, s.Len())
	for i := range s.Times {
		if name == TimeS || name == TimeMin || name == TimeH {
			out[i] = f(&model.Snapshot{Time: s.Times[i]})
			continue
		}
		out[i] = f(s.Snapshot(i))
	}
	return out, nil
}

// Profile returns a 1D variable at time t together with its coordinates:
// pipe positions in m for pipe variables, capsule radii in mm for capsule
// variables.
func (s *Solution) Profile(name string, t float64) (coords, values []float64, err error) {
	snap, err := s.At(t)
	if err != nil {
		return nil, nil, err
	}
	if f, ok := pipeProfiles[name]; ok {
		return snap.X, f(snap), nil
	}
	if f, ok := capsuleProfiles[name]; ok {
		return scaled(snap.R, 1000), f(snap), nil
	}
	return nil, nil, fmt.Errorf("%w: %q is not a profile", ErrUnknownOutput, name)
}

// RadialProfile returns a 2D variable along the capsule radius (mm) at time t
// and pipe position x, interpolated between pipe cells.
func (s *Solution) RadialProfile(name string, t, x float64) (coords, values []float64, err error) {
	f, ok := fields[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q is not a capsule field", ErrUnknownOutput, name)
	}
	snap, err := s.At(t)
	if err != nil {
		return nil, nil, err
	}
	field := f(snap)
	values = make([]float64, len(snap.R))
	column := make([]float64, len(snap.X))
	for i := range snap.R {
		for j := range snap.X {
			column[j] = field[j][i]
		}
		values[i], err = predict(snap.X, column, x)
		if err != nil {
			return nil, nil, err
		}
	}
	return scaled(snap.R, 1000), values, nil
}

func predict(xs, ys []float64, x float64) (float64, error) {
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return 0, err
	}
	return pl.Predict(x), nil
}

// FluidTemperatureGrid samples the HTF temperature on ts × xs, flattened
// time-major.
func (s *Solution) FluidTemperatureGrid(ts, xs []float64) ([]float64, error) {
	nodes := s.Model.Mesh().Pipe.Nodes
	nx := len(nodes)
	out := make([]float64, 0, len(ts)*len(xs))
	for _, t := range ts {
		y, err := s.stateAt(t)
		if err != nil {
			return nil, err
		}
		var pl interp.PiecewiseLinear
		if err := pl.Fit(nodes, y[:nx]); err != nil {
			return nil, err
		}
		for _, x := range xs {
			out = append(out, pl.Predict(x))
		}
	}
	return out, nil
}

// PCMTemperatureGrid samples the PCM temperature on ts × xs × rs, flattened
// with r varying fastest.
func (s *Solution) PCMTemperatureGrid(ts, xs, rs []float64) ([]float64, error) {
	msh := s.Model.Mesh()
	p := s.Model.Params()
	nx, nr := msh.Pipe.Len(), msh.Capsule.Len()
	out := make([]float64, 0, len(ts)*len(xs)*len(rs))

	radial := make([]interp.PiecewiseLinear, nx)
	temps := make([]float64, nr)
	column := make([][]float64, len(rs)) // [r][pipe cell]
	for k := range column {
		column[k] = make([]float64, nx)
	}
	along := make([]interp.PiecewiseLinear, len(rs))
	for _, t := range ts {
		y, err := s.stateAt(t)
		if err != nil {
			return nil, err
		}
		st := s.Model.State(y)
		for j := 0; j < nx; j++ {
			for i, h := range st.Enthalpy[j] {
				temps[i] = p.H2T(h)
			}
			if err := radial[j].Fit(msh.Capsule.Nodes, temps); err != nil {
				return nil, err
			}
			for k, r := range rs {
				column[k][j] = radial[j].Predict(r)
			}
		}
		for k := range rs {
			if err := along[k].Fit(msh.Pipe.Nodes, column[k]); err != nil {
				return nil, err
			}
		}
		for _, x := range xs {
			for k := range rs {
				out = append(out, along[k].Predict(x))
			}
		}
	}
	return out, nil
}

// FluidTemperatureAt interpolates the HTF temperature at (t, x).
func (s *Solution) FluidTemperatureAt(t, x float64) (float64, error) {
	v, err := s.FluidTemperatureGrid([]float64{t}, []float64{x})
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// PCMTemperatureAt interpolates the PCM temperature at (t, x, r).
func (s *Solution) PCMTemperatureAt(t, x, r float64) (float64, error) {
	v, err := s.PCMTemperatureGrid([]float64{t}, []float64{x}, []float64{r})
	if err != nil {
		return 0, err
	}
	return v[0], nil
}
