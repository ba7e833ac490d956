package figure

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/plotter"

	"ltes/calculator"
	"ltes/dataset"
	"ltes/mesh"
	"ltes/parameter"
	"ltes/solution"
	"ltes/solver"
	"ltes/study"
)

func paper(t *testing.T) Format {
	t.Helper()
	f, err := GetFormat("paper")
	require.NoError(t, err)
	return f
}

func assertSaved(t *testing.T, fig *Figure, name string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, fig.Save(path, 72))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func testResult() *study.Result {
	res := &study.Result{
		Levels: []int{0, 1, 2},
		Models: []string{calculator.ReducedName, calculator.FullName},
		Runs:   map[string][]*study.Run{},
	}
	for i, name := range res.Models {
		for _, l := range res.Levels {
			f := float64(int(1) << l)
			res.Runs[name] = append(res.Runs[name], &study.Run{
				Model:                 name,
				Level:                 l,
				Refinement:            f,
				MeanConservationError: 1e-3 / f,
				SolveTime:             0.1 * f * float64(i+1),
				FluidError:            1e-2 / f,
				PCMError:              2e-2 / f,
			})
		}
	}
	return res
}

func testSolutions(t *testing.T) []*solution.Solution {
	t.Helper()
	var sols []*solution.Solution
	for _, name := range []string{calculator.FullName, calculator.ReducedName} {
		p, err := parameter.Get("Nallusamy2007")
		require.NoError(t, err)
		m, err := mesh.New(p.CapsuleRadius, p.PipeLength, 4, 5)
		require.NoError(t, err)
		model, err := calculator.New(name, p, m, 1)
		require.NoError(t, err)
		t.Cleanup(model.Close)
		sol, err := (&solver.Explicit{CFL: 0.9}).Solve(context.Background(), model, solver.Times(300, 3))
		require.NoError(t, err)
		sols = append(sols, sol)
	}
	return sols
}

func TestGetFormat(t *testing.T) {
	f, err := GetFormat("presentation")
	require.NoError(t, err)
	assert.Greater(t, f.LabelSize, paper(t).LabelSize)

	_, err = GetFormat("poster")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLogLogSlope(t *testing.T) {
	f := paper(t)
	fig := newFigure(f, 1, 1, 200, 200)
	assert.Error(t, f.LogLogSlope(fig.Panel(0), Slope{Origin: plotter.XY{X: 0, Y: 1}, Width: 2, Slope: 1}))
	assert.Error(t, f.LogLogSlope(fig.Panel(0), Slope{Origin: plotter.XY{X: 1, Y: 1}, Width: 1, Slope: 1}))
	require.NoError(t, f.LogLogSlope(fig.Panel(0), Slope{Origin: plotter.XY{X: 2, Y: 1}, Width: 2, Slope: -1}))
	p := fig.Panel(0)
	assert.Equal(t, 2.0, p.X.Min)
	assert.Equal(t, 4.0, p.X.Max)
	assert.InDelta(t, 0.5, p.Y.Min, 1e-12)

	require.NoError(t, f.LogLogSlope(p, Slope{Origin: plotter.XY{X: 2, Y: 1}, Width: 2, Slope: 3, Inverted: true}))
	assert.Equal(t, 1.0, p.X.Min)
}

func TestConvergenceFigures(t *testing.T) {
	f := paper(t)
	fig, err := ConservationConvergence(testResult(), f)
	require.NoError(t, err)
	assertSaved(t, fig, "convergence_conservation_error.png")

	fig, err = VariableConvergence(testResult(), f)
	require.NoError(t, err)
	assertSaved(t, fig, "convergence_variables.png")

	short := testResult()
	short.Levels = short.Levels[:1]
	_, err = VariableConvergence(short, f)
	assert.Error(t, err)
}

func TestCompareFigures(t *testing.T) {
	f := paper(t)
	sols := testSolutions(t)

	fig, err := Compare0D(sols, nil, nil, f)
	require.NoError(t, err)
	assert.Len(t, fig.Panels, 2)
	assertSaved(t, fig, "compare_0D.png")

	fig, err = Compare1D(sols, nil, nil, []float64{0, 300}, f)
	require.NoError(t, err)
	assertSaved(t, fig, "compare_1D.jpg")

	fig, err = Compare2D(sols, "", "", nil, []float64{0.1, 0.3}, f)
	require.NoError(t, err)
	assert.Len(t, fig.Panels, 2)
	assertSaved(t, fig, "compare_2D.png")

	_, err = Compare0D(sols, []string{"Nothing"}, nil, f)
	assert.ErrorIs(t, err, solution.ErrUnknownOutput)
	_, err = Compare1D(nil, nil, nil, nil, f)
	assert.ErrorIs(t, err, ErrNoSolutions)
}

func TestCompareData(t *testing.T) {
	sols := testSolutions(t)
	data := &dataset.Data{}
	for _, x := range dataset.DefaultPositions {
		s := &dataset.Series{Position: x, Time: []float64{0, 2, 4}, Temperature: []float64{32, 40, 50}}
		data.HTF = append(data.HTF, s)
		data.PCM = append(data.PCM, s)
	}
	fig, err := CompareData(sols[0], data, paper(t))
	require.NoError(t, err)
	assertSaved(t, fig, "comparison_data.png")

	_, err = CompareData(sols[0], nil, paper(t))
	assert.Error(t, err)
}

func TestSaveUnknownExtension(t *testing.T) {
	fig, err := ConservationConvergence(testResult(), paper(t))
	require.NoError(t, err)
	assert.ErrorIs(t, fig.Save(filepath.Join(t.TempDir(), "plot.svg"), 72), ErrUnknownExtension)
}

func TestSpread(t *testing.T) {
	assert.Equal(t, []float64{0, 5, 10}, Spread(10, 3))
	assert.Equal(t, []float64{10}, Spread(10, 1))
}
