package parameter

import (
	"errors"
	"math"
)

// ErrUndefinedEnthalpy is returned for a temperature exactly at the melting
// point, where the latent heat makes the enthalpy multivalued.
var ErrUndefinedEnthalpy = errors.New("enthalpy is not uniquely defined at melting temperature")

// SolidusEnthalpy is the enthalpy of fully solid PCM at the melting point.
func (v *Values) SolidusEnthalpy() float64 {
	return v.SolidDensity * v.SolidHeatCapacity * v.MeltingTemperature
}

// LiquidusEnthalpy is the enthalpy of fully molten PCM at the melting point.
func (v *Values) LiquidusEnthalpy() float64 {
	return v.SolidDensity * (v.SolidHeatCapacity*v.MeltingTemperature + v.LatentHeat)
}

// PhaseThreshold is the enthalpy of half-molten PCM.
func (v *Values) PhaseThreshold() float64 {
	return v.SolidusEnthalpy() + v.SolidDensity*v.LatentHeat/2
}

// H2T converts a volumetric enthalpy into a temperature. Solid and liquid
// branches are linear, the mushy range sits at the melting temperature.
func (v *Values) H2T(h float64) float64 {
	solid := h / (v.SolidDensity * v.SolidHeatCapacity)
	liquid := v.MeltingTemperature + (h-v.LiquidusEnthalpy())/(v.LiquidDensity*v.LiquidHeatCapacity)
	return math.Min(solid, v.MeltingTemperature) + math.Max(liquid, v.MeltingTemperature) - v.MeltingTemperature
}

// T2H converts a temperature into a volumetric enthalpy.
func (v *Values) T2H(t float64) (float64, error) {
	switch {
	case t < v.MeltingTemperature:
		return v.SolidDensity * v.SolidHeatCapacity * t, nil
	case t > v.MeltingTemperature:
		return v.LiquidDensity*v.LiquidHeatCapacity*(t-v.MeltingTemperature) + v.LiquidusEnthalpy(), nil
	default:
		return 0, ErrUndefinedEnthalpy
	}
}

// K is the effective conductivity, interpolated linearly in enthalpy across
// the mushy range.
func (v *Values) K(h float64) float64 {
	hs, hl := v.SolidusEnthalpy(), v.LiquidusEnthalpy()
	switch {
	case h <= hs:
		return v.SolidConductivity
	case h >= hl:
		return v.LiquidConductivity
	default:
		return (v.LiquidConductivity-v.SolidConductivity)/(v.SolidDensity*v.LatentHeat)*(h-hs) + v.SolidConductivity
	}
}

// Phase is 1 once the PCM is at least half molten, 0 otherwise.
func (v *Values) Phase(h float64) float64 {
	if h >= v.PhaseThreshold() {
		return 1
	}
	return 0
}

// LiquidFraction is the molten fraction of the latent heat, clipped to [0, 1].
func (v *Values) LiquidFraction(h float64) float64 {
	f := (h - v.SolidusEnthalpy()) / (v.LiquidusEnthalpy() - v.SolidusEnthalpy())
	return math.Max(0, math.Min(1, f))
}

// MinHeatCapacity and MaxConductivity bound the diffusivity for explicit
// time stepping.
func (v *Values) MinHeatCapacity() float64 {
	return math.Min(v.SolidDensity*v.SolidHeatCapacity, v.LiquidDensity*v.LiquidHeatCapacity)
}

func (v *Values) MaxConductivity() float64 {
	return math.Max(v.SolidConductivity, v.LiquidConductivity)
}
