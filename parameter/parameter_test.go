package parameter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	v, err := Get("")
	require.NoError(t, err)
	assert.Equal(t, 0.36, v.PipeLength)

	v, err = Get("Nallusamy2007")
	require.NoError(t, err)
	assert.Equal(t, 333.15, v.MeltingTemperature)
	assert.NoError(t, v.Validate())

	_, err = Get("Bogus2020")
	assert.ErrorIs(t, err, ErrUnknownSet)
	assert.Contains(t, err.Error(), "Bogus2020")
}

func TestGetReturnsCopies(t *testing.T) {
	a, _ := Get("Raul2018")
	b, _ := Get("Raul2018")
	require.NoError(t, a.Set(HeatTransferCoefficient, 1000))
	assert.Equal(t, 100.0, b.HeatTransferCoefficient)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"Nallusamy2007", "Raul2018", "Raul2018 enthalpy"}, Names())
}

func TestSetAndLookup(t *testing.T) {
	v, _ := Get("Raul2018")
	require.NoError(t, v.Set(HeatTransferCoefficient, 1000))
	h, err := v.Lookup(HeatTransferCoefficient)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, h)

	require.NoError(t, v.Set(Radius, 0.02))
	assert.Equal(t, 0.02, v.CapsuleRadius)

	assert.ErrorIs(t, v.Set("Colour [-]", 1), ErrUnknownParameter)
	_, err = v.Lookup("Colour [-]")
	assert.ErrorIs(t, err, ErrUnknownParameter)
}

func TestInitialEnthalpyAlias(t *testing.T) {
	v, _ := Get("Raul2018 enthalpy")
	require.NoError(t, v.Set(InitialEnthalpy, 1500*2013.3*390))
	assert.InDelta(t, 390, v.InitialTemperature, 1e-6)
	h, err := v.Lookup(InitialEnthalpy)
	require.NoError(t, err)
	assert.InDelta(t, 1500*2013.3*390, h, 1e-3)
}

func TestInitialEnthalpyInMushyRange(t *testing.T) {
	v, _ := Get("Nallusamy2007")
	h := v.SolidusEnthalpy() + v.SolidDensity*v.LatentHeat/4
	require.NoError(t, v.Set(InitialEnthalpy, h))
	assert.Equal(t, v.MeltingTemperature, v.InitialTemperature)
	got, err := v.Lookup(InitialEnthalpy)
	require.NoError(t, err)
	assert.Equal(t, h, got)
	assert.NoError(t, v.Validate())

	require.NoError(t, v.Set(InitialTemperature, 300))
	assert.Equal(t, 0.0, v.InitialEnthalpy)
	got, err = v.InitialH()
	require.NoError(t, err)
	assert.InDelta(t, v.SolidDensity*v.SolidHeatCapacity*300, got, 1e-6)
}

func TestApplyConvertsEnthalpyLast(t *testing.T) {
	overrides := map[string]float64{
		InitialEnthalpy:         477891000,
		SolidDensity:            1000,
		HeatTransferCoefficient: 250,
	}
	want := 477891000 / (1000 * 2013.3)
	for i := 0; i < 50; i++ {
		v, _ := Get("Raul2018")
		require.NoError(t, Apply(v, overrides))
		assert.InDelta(t, want, v.InitialTemperature, 1e-9)
		assert.Equal(t, 250.0, v.HeatTransferCoefficient)
	}

	v, _ := Get("Raul2018")
	assert.ErrorIs(t, Apply(v, map[string]float64{"Nope": 1}), ErrUnknownParameter)
}

func TestValidate(t *testing.T) {
	v, _ := Get("Raul2018 enthalpy")
	assert.ErrorIs(t, v.Validate(), ErrMissingParameter)

	v, _ = Get("Raul2018")
	v.Porosity = 1.2
	assert.ErrorIs(t, v.Validate(), ErrInvalidParameter)

	v, _ = Get("Raul2018")
	v.InitialTemperature = v.MeltingTemperature
	assert.ErrorIs(t, v.Validate(), ErrInvalidParameter)
}

func TestInlet(t *testing.T) {
	v, _ := Get("Raul2018")
	assert.Equal(t, 453.15, v.Inlet(10))
	v.InletTemperatureFunc = func(t float64) float64 { return 400 + t }
	assert.Equal(t, 410.0, v.Inlet(10))
	require.NoError(t, v.Set(InletTemperature, 450))
	assert.Equal(t, 450.0, v.Inlet(10))
}

func TestSpecificSurface(t *testing.T) {
	v, _ := Get("Raul2018")
	assert.InDelta(t, 3*0.4/1.55e-2, v.SpecificSurface(), 1e-12)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	content := `{"Heat transfer coefficient [W.m-2.K-1]": 250, "Solid phase density [kg.m-3]": 1000, "Initial enthalpy [J.m-3]": 805320000}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	base, _ := Get("Raul2018")
	v, err := LoadFile(path, base)
	require.NoError(t, err)
	assert.Equal(t, 250.0, v.HeatTransferCoefficient)
	assert.InDelta(t, 400, v.InitialTemperature, 1e-6)
	assert.Equal(t, 100.0, base.HeatTransferCoefficient)

	require.NoError(t, os.WriteFile(path, []byte(`{"Nope": 1}`), 0o644))
	_, err = LoadFile(path, base)
	assert.ErrorIs(t, err, ErrUnknownParameter)
}
