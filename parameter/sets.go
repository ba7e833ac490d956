package parameter

import (
	"errors"
	"fmt"
	"sort"
)

var ErrUnknownSet = errors.New("parameter set not recognised")

// DefaultSet is used when no set is named.
const DefaultSet = "Raul2018"

var sets = map[string]func() *Values{
	"Raul2018 enthalpy": func() *Values {
		// single capsule held at a boundary temperature, no pipe data
		return &Values{
			SolidConductivity:  0.45,
			LiquidConductivity: 0.45,
			SolidDensity:       1500,
			LiquidDensity:      1500,
			SolidHeatCapacity:  2013.3,
			LiquidHeatCapacity: 2013.3,
			LatentHeat:         2.497e5,
			MeltingTemperature: 441.85,
			InletTemperature:   453.15,
			CapsuleRadius:      1.55e-2,
			InitialTemperature: 400, // 1500 * 2013.3 * 400 J.m-3
		}
	},
	"Raul2018": func() *Values {
		return &Values{
			SolidConductivity:       0.45,
			LiquidConductivity:      0.45,
			SolidDensity:            1500,
			LiquidDensity:           1500,
			SolidHeatCapacity:       2013.3,
			LiquidHeatCapacity:      2013.3,
			LatentHeat:              2.497e5,
			MeltingTemperature:      441.85,
			InitialTemperature:      400,
			InletTemperature:        453.15,
			CapsuleRadius:           1.55e-2,
			PipeLength:              0.36,
			InletVelocity:           1.0e-2,
			Porosity:                0.6,
			HeatTransferCoefficient: 100,
			FluidDensity:            720.9,
			FluidHeatCapacity:       3097.4,
			FluidConductivity:       0.116,
		}
	},
	"Nallusamy2007": func() *Values {
		return &Values{
			SolidConductivity:       0.4,
			LiquidConductivity:      0.15,
			SolidDensity:            861,
			LiquidDensity:           778,
			SolidHeatCapacity:       1850,
			LiquidHeatCapacity:      2384,
			LatentHeat:              213000,
			MeltingTemperature:      333.15,
			InitialTemperature:      305.15,
			InletTemperature:        343.15,
			CapsuleRadius:           27.5e-3,
			PipeLength:              0.46,
			InletVelocity:           6.5e-4,
			Porosity:                0.5,
			HeatTransferCoefficient: 100,
			FluidDensity:            1000,
			FluidHeatCapacity:       4186,
			FluidConductivity:       0.6,
		}
	},
}

// Get returns a fresh copy of the named parameter set. An empty name selects
// DefaultSet.
func Get(name string) (*Values, error) {
	if name == "" {
		name = DefaultSet
	}
	f, ok := sets[name]
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", ErrUnknownSet, name)
	}
	return f(), nil
}

// Names lists the registered parameter sets.
func Names() []string {
	names := make([]string, 0, len(sets))
	for k := range sets {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
