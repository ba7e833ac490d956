package parameter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrMissingParameter = errors.New("missing parameter")
	ErrInvalidParameter = errors.New("invalid parameter")
)

// Canonical names of the quantities a model reads.
const (
	SolidConductivity       = "Solid phase conductivity [W.m-1.K-1]"
	LiquidConductivity      = "Liquid phase conductivity [W.m-1.K-1]"
	SolidDensity            = "Solid phase density [kg.m-3]"
	LiquidDensity           = "Liquid phase density [kg.m-3]"
	SolidHeatCapacity       = "Solid phase specific heat capacity [J.kg-1.K-1]"
	LiquidHeatCapacity      = "Liquid phase specific heat capacity [J.kg-1.K-1]"
	LatentHeat              = "Latent heat [J.kg-1]"
	MeltingTemperature      = "Melting temperature [K]"
	InitialTemperature      = "Initial temperature [K]"
	InletTemperature        = "Inlet temperature [K]"
	CapsuleRadius           = "Capsule radius [m]"
	PipeLength              = "Pipe length [m]"
	InletVelocity           = "Inlet velocity [m.s-1]"
	Porosity                = "Porosity"
	HeatTransferCoefficient = "Heat transfer coefficient [W.m-2.K-1]"
	FluidDensity            = "Heat transfer fluid density [kg.m-3]"
	FluidHeatCapacity       = "Heat transfer fluid specific heat capacity [J.kg-1.K-1]"
	FluidConductivity       = "Heat transfer fluid conductivity [W.m-1.K-1]"

	// single capsule names, mapped onto the pipe quantities
	Radius              = "Radius [m]"
	BoundaryTemperature = "Boundary temperature [K]"
	InitialEnthalpy     = "Initial enthalpy [J.m-3]"
)

var aliases = map[string]string{
	Radius:              CapsuleRadius,
	BoundaryTemperature: InletTemperature,
}

// Values is one complete set of material, geometry and operating constants.
// All quantities are SI, temperatures in kelvin.
type Values struct {
	// PCM
	SolidConductivity  float64
	LiquidConductivity float64
	SolidDensity       float64
	LiquidDensity      float64
	SolidHeatCapacity  float64
	LiquidHeatCapacity float64
	LatentHeat         float64
	MeltingTemperature float64

	// HTF
	InitialTemperature      float64
	InletTemperature        float64
	InletVelocity           float64
	HeatTransferCoefficient float64
	FluidDensity            float64
	FluidHeatCapacity       float64
	FluidConductivity       float64

	// geometry
	CapsuleRadius float64
	PipeLength    float64
	Porosity      float64

	// InitialEnthalpy is the initial PCM enthalpy when it was given by name.
	// Zero means it follows InitialTemperature.
	InitialEnthalpy float64

	// InletTemperatureFunc overrides the constant inlet temperature when set.
	InletTemperatureFunc func(t float64) float64
}

func (v *Values) fields() map[string]*float64 {
	return map[string]*float64{
		SolidConductivity:       &v.SolidConductivity,
		LiquidConductivity:      &v.LiquidConductivity,
		SolidDensity:            &v.SolidDensity,
		LiquidDensity:           &v.LiquidDensity,
		SolidHeatCapacity:       &v.SolidHeatCapacity,
		LiquidHeatCapacity:      &v.LiquidHeatCapacity,
		LatentHeat:              &v.LatentHeat,
		MeltingTemperature:      &v.MeltingTemperature,
		InitialTemperature:      &v.InitialTemperature,
		InletTemperature:        &v.InletTemperature,
		CapsuleRadius:           &v.CapsuleRadius,
		PipeLength:              &v.PipeLength,
		InletVelocity:           &v.InletVelocity,
		Porosity:                &v.Porosity,
		HeatTransferCoefficient: &v.HeatTransferCoefficient,
		FluidDensity:            &v.FluidDensity,
		FluidHeatCapacity:       &v.FluidHeatCapacity,
		FluidConductivity:       &v.FluidConductivity,
	}
}

// Keys returns the canonical parameter names in sorted order.
func Keys() []string {
	var v Values
	keys := make([]string, 0, 18)
	for k := range v.fields() {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns an independent copy.
func (v *Values) Clone() *Values {
	c := *v
	return &c
}

// Set overrides a value by its canonical name.
func (v *Values) Set(name string, value float64) error {
	if name == InitialEnthalpy {
		v.InitialEnthalpy = value
		v.InitialTemperature = v.H2T(value)
		return nil
	}
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	p, ok := v.fields()[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	*p = value
	switch name {
	case InletTemperature:
		v.InletTemperatureFunc = nil
	case InitialTemperature:
		v.InitialEnthalpy = 0
	}
	return nil
}

// Apply sets every override on v. Names are applied in sorted order with the
// initial enthalpy last, so it is converted with the final material data.
func Apply(v *Values, overrides map[string]float64) error {
	names := make([]string, 0, len(overrides))
	for k := range overrides {
		names = append(names, k)
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == InitialEnthalpy) != (names[j] == InitialEnthalpy) {
			return names[j] == InitialEnthalpy
		}
		return names[i] < names[j]
	})
	for _, k := range names {
		if err := v.Set(k, overrides[k]); err != nil {
			return err
		}
	}
	return nil
}

// Lookup reads a value by its canonical name.
func (v *Values) Lookup(name string) (float64, error) {
	if name == InitialEnthalpy {
		return v.InitialH()
	}
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	p, ok := v.fields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
	}
	return *p, nil
}

// InitialH is the initial PCM enthalpy. An enthalpy set by name is kept as
// given, which is the only way to start inside the mushy range.
func (v *Values) InitialH() (float64, error) {
	if v.InitialEnthalpy != 0 {
		return v.InitialEnthalpy, nil
	}
	return v.T2H(v.InitialTemperature)
}

// Inlet returns the inlet temperature at time t.
func (v *Values) Inlet(t float64) float64 {
	if v.InletTemperatureFunc != nil {
		return v.InletTemperatureFunc(t)
	}
	return v.InletTemperature
}

// SpecificSurface is the capsule surface area per unit bed volume, 3(1-ε)/R.
func (v *Values) SpecificSurface() float64 {
	return 3 * (1 - v.Porosity) / v.CapsuleRadius
}

// Validate checks that every quantity a pipe model reads is set and physical.
func (v *Values) Validate() error {
	fields := v.fields()
	for _, k := range Keys() {
		if k == FluidConductivity {
			// only enters through the neglected axial conduction term
			continue
		}
		if *fields[k] == 0 {
			return fmt.Errorf("%w: %q", ErrMissingParameter, k)
		}
		if *fields[k] < 0 {
			return fmt.Errorf("%w: %q must be positive, got %g", ErrInvalidParameter, k, *fields[k])
		}
	}
	if v.Porosity >= 1 {
		return fmt.Errorf("%w: %q must lie in (0, 1), got %g", ErrInvalidParameter, Porosity, v.Porosity)
	}
	if v.InitialEnthalpy < 0 {
		return fmt.Errorf("%w: %q must be positive, got %g", ErrInvalidParameter, InitialEnthalpy, v.InitialEnthalpy)
	}
	if v.InitialEnthalpy == 0 && v.InitialTemperature == v.MeltingTemperature {
		return fmt.Errorf("%w: %q equals the melting temperature", ErrInvalidParameter, InitialTemperature)
	}
	return nil
}

// LoadFile applies a JSON object of canonical name to value onto a copy of base.
func LoadFile(path string, base *Values) (*Values, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read parameter file: %w", err)
	}
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode parameter file %s: %w", path, err)
	}
	v := base.Clone()
	if err := Apply(v, raw); err != nil {
		return nil, err
	}
	return v, nil
}
