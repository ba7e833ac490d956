package parameter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestT2HRegimes(t *testing.T) {
	v, _ := Get("Nallusamy2007")

	h, err := v.T2H(300)
	require.NoError(t, err)
	assert.InDelta(t, 861*1850*300.0, h, 1e-6)

	h, err = v.T2H(340)
	require.NoError(t, err)
	assert.InDelta(t, 778*2384*(340-333.15)+861*(1850*333.15+213000), h, 1e-6)

	_, err = v.T2H(v.MeltingTemperature)
	assert.ErrorIs(t, err, ErrUndefinedEnthalpy)
}

func TestH2TRoundTrip(t *testing.T) {
	v, _ := Get("Nallusamy2007")
	for _, temp := range []float64{290, 320, 333.1, 333.2, 350} {
		h, err := v.T2H(temp)
		require.NoError(t, err)
		assert.InDelta(t, temp, v.H2T(h), 1e-9, "T=%g", temp)
	}
}

func TestH2TMushy(t *testing.T) {
	v, _ := Get("Nallusamy2007")
	mid := (v.SolidusEnthalpy() + v.LiquidusEnthalpy()) / 2
	assert.InDelta(t, v.MeltingTemperature, v.H2T(mid), 1e-9)
	assert.InDelta(t, v.MeltingTemperature, v.H2T(v.SolidusEnthalpy()), 1e-9)
	assert.InDelta(t, v.MeltingTemperature, v.H2T(v.LiquidusEnthalpy()), 1e-9)
}

func TestK(t *testing.T) {
	v, _ := Get("Nallusamy2007")
	hs, hl := v.SolidusEnthalpy(), v.LiquidusEnthalpy()
	assert.Equal(t, 0.4, v.K(hs-1))
	assert.Equal(t, 0.4, v.K(hs))
	assert.Equal(t, 0.15, v.K(hl))
	assert.Equal(t, 0.15, v.K(hl+1e6))
	assert.InDelta(t, 0.275, v.K((hs+hl)/2), 1e-12)
}

func TestPhaseAndLiquidFraction(t *testing.T) {
	v, _ := Get("Raul2018")
	assert.Equal(t, 0.0, v.Phase(v.PhaseThreshold()-1))
	assert.Equal(t, 1.0, v.Phase(v.PhaseThreshold()))
	assert.Equal(t, 0.0, v.LiquidFraction(v.SolidusEnthalpy()-10))
	assert.Equal(t, 1.0, v.LiquidFraction(v.LiquidusEnthalpy()+10))
	assert.InDelta(t, 0.5, v.LiquidFraction(v.PhaseThreshold()), 1e-12)
}

func TestBounds(t *testing.T) {
	v, _ := Get("Nallusamy2007")
	assert.Equal(t, 0.4, v.MaxConductivity())
	assert.InDelta(t, 861*1850.0, v.MinHeatCapacity(), 1e-9)
}
