package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltes/mesh"
	"ltes/parameter"
)

func newTestModel(t *testing.T, name string, nr, nx int) Model {
	t.Helper()
	p, err := parameter.Get("Nallusamy2007")
	require.NoError(t, err)
	m, err := mesh.New(p.CapsuleRadius, p.PipeLength, nr, nx)
	require.NoError(t, err)
	model, err := New(name, p, m, 3)
	require.NoError(t, err)
	t.Cleanup(model.Close)
	return model
}

// advance takes a few forward-Euler steps so the state is no longer uniform.
func advance(model Model, y []float64, steps int) {
	dt := model.StableTimeStep()
	dy := make([]float64, len(y))
	for n := 0; n < steps; n++ {
		model.Derivative(float64(n)*dt, y, dy)
		for i := range y {
			y[i] += dt * dy[i]
		}
	}
}

func TestNewUnknownModel(t *testing.T) {
	p, _ := parameter.Get("Raul2018")
	m, _ := mesh.New(p.CapsuleRadius, p.PipeLength, 4, 4)
	_, err := New("hybrid", p, m, 1)
	assert.ErrorIs(t, err, ErrUnknownModel)
	assert.Equal(t, []string{"reduced", "full"}, Names())
}

func TestNewRejectsBadInput(t *testing.T) {
	p, _ := parameter.Get("Raul2018 enthalpy")
	m, _ := mesh.New(p.CapsuleRadius, 1, 4, 4)
	_, err := NewFull(p, m, 1)
	assert.ErrorIs(t, err, parameter.ErrMissingParameter)

	p, _ = parameter.Get("Raul2018")
	m, _ = mesh.New(p.CapsuleRadius, 2*p.PipeLength, 4, 4)
	_, err = NewReduced(p, m, 1)
	assert.Error(t, err)

	_, err = NewFull(p, nil, 1)
	assert.Error(t, err)
}

func TestInitialState(t *testing.T) {
	model := newTestModel(t, FullName, 5, 6)
	assert.Equal(t, 6+6*5+1, model.Size())
	y, err := model.Initial()
	require.NoError(t, err)

	s := model.State(y)
	p := model.Params()
	h0, _ := p.T2H(p.InitialTemperature)
	assert.Len(t, s.Fluid, 6)
	assert.Equal(t, p.InitialTemperature, s.Fluid[0])
	assert.Equal(t, h0, s.Enthalpy[5][4])
	assert.Equal(t, 0.0, s.Stored)

	fluid, pcm := model.Energy(y)
	assert.InDelta(t, model.InitialEnergy(), fluid+pcm, 1e-9*model.InitialEnergy())
}

func TestInitialStateInMushyRange(t *testing.T) {
	p, _ := parameter.Get("Nallusamy2007")
	h0 := p.SolidusEnthalpy() + p.SolidDensity*p.LatentHeat/2
	require.NoError(t, p.Set(parameter.InitialEnthalpy, h0))
	m, _ := mesh.New(p.CapsuleRadius, p.PipeLength, 4, 5)
	model, err := NewFull(p, m, 1)
	require.NoError(t, err)
	defer model.Close()

	y, err := model.Initial()
	require.NoError(t, err)
	s := model.State(y)
	assert.Equal(t, h0, s.Enthalpy[2][3])
	assert.Equal(t, p.MeltingTemperature, s.Fluid[0])
	fluid, pcm := model.Energy(y)
	assert.InDelta(t, model.InitialEnergy(), fluid+pcm, 1e-9*model.InitialEnergy())
}

func TestReducedSharesCapsule(t *testing.T) {
	model := newTestModel(t, ReducedName, 5, 6)
	assert.Equal(t, 6+5+1, model.Size())
	y, _ := model.Initial()
	s := model.State(y)
	s.Enthalpy[0][2] = 1
	assert.Equal(t, 1.0, s.Enthalpy[5][2])
}

func TestInitialDerivative(t *testing.T) {
	model := newTestModel(t, FullName, 5, 6)
	y, _ := model.Initial()
	dy := make([]float64, len(y))
	model.Derivative(0, y, dy)

	// only the first fluid cell sees the hot inlet
	assert.Greater(t, dy[0], 0.0)
	assert.InDelta(t, 0.0, dy[1], 1e-9)
	assert.Greater(t, dy[len(dy)-1], 0.0)
	for _, row := range model.State(dy).Enthalpy {
		for _, v := range row {
			assert.InDelta(t, 0.0, v, 1e-3)
		}
	}
}

func TestSemiDiscreteEnergyBalance(t *testing.T) {
	for _, name := range Names() {
		model := newTestModel(t, name, 8, 10)
		y, _ := model.Initial()
		advance(model, y, 200)

		dy := make([]float64, len(y))
		model.Derivative(200*model.StableTimeStep(), y, dy)
		fluidRate, pcmRate := model.Energy(dy)
		stored := dy[len(dy)-1]
		assert.InDelta(t, stored, fluidRate+pcmRate, 1e-9*stored, name)
	}
}

func TestSurface(t *testing.T) {
	model := newTestModel(t, FullName, 8, 10)
	y, _ := model.Initial()
	advance(model, y, 50)
	temperature, flux := model.Surface(y)
	p := model.Params()
	require.Len(t, temperature, 10)
	// heat flows into the capsules and the surface sits between PCM and fluid
	assert.Greater(t, flux[0], 0.0)
	assert.Greater(t, temperature[0], p.InitialTemperature)
	assert.Less(t, temperature[0], y[0])
	assert.InDelta(t, flux[0], p.HeatTransferCoefficient*(y[0]-temperature[0]), 1e-9*flux[0])
}

func TestStableTimeStep(t *testing.T) {
	coarse := newTestModel(t, FullName, 10, 20)
	fine := newTestModel(t, FullName, 20, 40)
	assert.Greater(t, coarse.StableTimeStep(), 0.0)
	assert.Greater(t, coarse.StableTimeStep(), 3*fine.StableTimeStep())
}
