package solution

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltes/calculator"
	"ltes/mesh"
	"ltes/parameter"
)

// newTestSolution stores the initial state at t=0 and a state after a few
// explicit steps at t=10.
func newTestSolution(t *testing.T, name string) *Solution {
	t.Helper()
	p, err := parameter.Get("Nallusamy2007")
	require.NoError(t, err)
	m, err := mesh.New(p.CapsuleRadius, p.PipeLength, 6, 8)
	require.NoError(t, err)
	model, err := calculator.New(name, p, m, 1)
	require.NoError(t, err)
	t.Cleanup(model.Close)

	y, err := model.Initial()
	require.NoError(t, err)
	s := New(model, "test")
	s.Append(0, y)

	dy := make([]float64, len(y))
	steps := 10
	dt := 10 / float64(steps)
	for n := 0; n < steps; n++ {
		model.Derivative(float64(n)*dt, y, dy)
		for i := range y {
			y[i] += dt * dy[i]
		}
	}
	s.Append(10, y)
	return s
}

func TestEvaluateInitial(t *testing.T) {
	s := newTestSolution(t, calculator.FullName)
	snap := s.Snapshot(0)
	p := s.Model.Params()

	assert.Equal(t, 0.0, snap.Time)
	assert.Len(t, snap.X, 8)
	assert.Len(t, snap.R, 6)
	assert.Equal(t, p.InitialTemperature, snap.OutletTemperature)
	assert.Equal(t, p.InletTemperature, snap.InletTemperature)
	assert.InDelta(t, p.InitialTemperature, snap.PCMTemperature[3][2], 1e-9)
	assert.InDelta(t, p.InitialTemperature, snap.AveragedPCMTemperature[5], 1e-9)
	assert.Equal(t, 0.0, snap.AveragedStateOfCharge)
	assert.Equal(t, 0.0, snap.StoredEnergy)
	assert.InDelta(t, 0, snap.EnergyVariation, 1e-9*snap.TotalEnergy)
	assert.InDelta(t, 0, snap.RelativeConservationError, 1e-9)
	// solid PCM and fluid at the same temperature: nothing flows
	assert.InDelta(t, 0, snap.AveragedFlux, 1e-9)
}

func TestEvaluateConservesEnergy(t *testing.T) {
	for _, name := range calculator.Names() {
		s := newTestSolution(t, name)
		snap, err := s.Last()
		require.NoError(t, err)
		assert.Greater(t, snap.StoredEnergy, 0.0, name)
		assert.Greater(t, snap.AveragedFlux, 0.0, name)
		assert.Less(t, snap.OutletTemperature, snap.InletTemperature, name)
		assert.InDelta(t, 0, snap.RelativeConservationError, 1e-9, name)
		assert.InDelta(t, snap.TotalEnergy, snap.FluidEnergy+snap.PCMEnergy, 1e-9*snap.TotalEnergy, name)
	}
}

func TestAtInterpolates(t *testing.T) {
	s := newTestSolution(t, calculator.FullName)
	mid, err := s.At(5)
	require.NoError(t, err)
	a, b := s.Snapshot(0), s.Snapshot(1)
	assert.InDelta(t, (a.StoredEnergy+b.StoredEnergy)/2, mid.StoredEnergy, 1e-9)
	assert.InDelta(t, (a.FluidTemperature[0]+b.FluidTemperature[0])/2, mid.FluidTemperature[0], 1e-9)

	_, err = s.At(11)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = New(s.Model, "").At(0)
	assert.ErrorIs(t, err, ErrEmpty)
	_, err = New(s.Model, "").Last()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestAppendCopies(t *testing.T) {
	s := newTestSolution(t, calculator.ReducedName)
	y := make([]float64, s.Model.Size())
	s.Append(20, y)
	y[0] = 1
	assert.Equal(t, 0.0, s.States[2][0])
}

func TestScalar(t *testing.T) {
	s := newTestSolution(t, calculator.FullName)
	minutes, err := s.Scalar(TimeMin)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0, 10.0 / 60}, minutes, 1e-12)

	inlet, err := s.Scalar(InletTemperatureC)
	require.NoError(t, err)
	assert.InDelta(t, 70, inlet[1], 1e-9)

	_, err = s.Scalar(FluidTemperatureK)
	assert.ErrorIs(t, err, ErrUnknownOutput)
	assert.True(t, IsScalar(StoredEnergy))
	assert.False(t, IsScalar(Phase))
	assert.Contains(t, Variables(), PCMTemperatureC)
}

func TestProfiles(t *testing.T) {
	s := newTestSolution(t, calculator.FullName)
	x, tf, err := s.Profile(FluidTemperatureC, 10)
	require.NoError(t, err)
	assert.Len(t, x, 8)
	assert.Greater(t, tf[0], tf[7])

	r, tc, err := s.Profile(AveragedPCMTemperatureK, 10)
	require.NoError(t, err)
	assert.InDelta(t, 1000*s.Model.Mesh().Capsule.Nodes[0], r[0], 1e-12)
	assert.Greater(t, tc[5], tc[0])

	_, _, err = s.Profile(Phase, 10)
	assert.ErrorIs(t, err, ErrUnknownOutput)

	r, radial, err := s.RadialProfile(PCMTemperatureK, 10, 0)
	require.NoError(t, err)
	assert.Len(t, r, 6)
	snap, _ := s.Last()
	assert.InDelta(t, snap.PCMTemperature[0][5], radial[5], 1e-9)
}

func TestGrids(t *testing.T) {
	s := newTestSolution(t, calculator.FullName)
	p := s.Model.Params()
	msh := s.Model.Mesh()

	tf, err := s.FluidTemperatureGrid([]float64{0, 10}, []float64{0, msh.Pipe.Nodes[2], p.PipeLength})
	require.NoError(t, err)
	require.Len(t, tf, 6)
	assert.InDelta(t, p.InitialTemperature, tf[0], 1e-9)
	snap, _ := s.Last()
	assert.InDelta(t, snap.FluidTemperature[2], tf[4], 1e-9)
	// constant extrapolation past the last cell centre
	assert.InDelta(t, snap.OutletTemperature, tf[5], 1e-9)

	v, err := s.PCMTemperatureAt(10, msh.Pipe.Nodes[1], msh.Capsule.Nodes[4])
	require.NoError(t, err)
	assert.InDelta(t, snap.PCMTemperature[1][4], v, 1e-9)

	v, err = s.FluidTemperatureAt(5, msh.Pipe.Nodes[0])
	require.NoError(t, err)
	assert.InDelta(t, (p.InitialTemperature+snap.FluidTemperature[0])/2, v, 1e-9)

	_, err = s.PCMTemperatureGrid([]float64{-1}, []float64{0}, []float64{0})
	assert.ErrorIs(t, err, ErrOutOfRange)
}
