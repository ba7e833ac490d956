package figure

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"ltes/dataset"
	"ltes/solution"
)

var ErrNoSolutions = errors.New("nothing to compare")

// Default variables of the comparison plots.
var (
	Default0D = []string{
		solution.OutletTemperatureC,
		solution.AveragedStateOfCharge,
		solution.StoredEnergy,
		solution.RelativeConservationError,
	}
	Default0DNames = []string{
		"Outlet temperature [°C]",
		"State of charge",
		"Stored energy per unit area [J m^-2]",
		"Relative error in energy conservation [%]",
	}
	Default1D = []string{
		solution.FluidTemperatureC,
		solution.SurfaceTemperatureC,
	}
	Default1DNames = []string{
		"HTF temperature [°C]",
		"PCM surface temperature [°C]",
	}
	Default2D     = solution.PCMEnthalpy
	Default2DName = "Phase-change material enthalpy [J m^-3]"
)

// Spread returns n equally spaced values on [0, end]. Fewer than two values
// collapse to end.
func Spread(end float64, n int) []float64 {
	if n < 2 {
		return []float64{end}
	}
	return floats.Span(make([]float64, n), 0, end)
}

func endTime(sol *solution.Solution) float64 {
	return sol.Times[len(sol.Times)-1]
}

func panelHeight(rows int) vg.Length {
	return vg.Length(0.5+1.5*float64(rows)) * vg.Inch
}

func rowsFor(n int) int {
	return (n + 1) / 2
}

func toXYs(xs, ys []float64) plotter.XYs {
	xys := make(plotter.XYs, len(xs))
	for i := range xs {
		xys[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}
	return xys
}

func (f Format) line(xs, ys []float64, c color.Color, dashed bool) (*plotter.Line, error) {
	l, err := plotter.NewLine(toXYs(xs, ys))
	if err != nil {
		return nil, err
	}
	l.Color = c
	l.Width = f.LineWidth
	if dashed {
		l.Dashes = []vg.Length{3 * f.LineWidth, 2 * f.LineWidth}
	}
	return l, nil
}

func labelsFor(vars, names []string) []string {
	if len(names) == len(vars) {
		return names
	}
	return vars
}

// drawOrder puts the second solution underneath the first. Further
// solutions are ignored.
func drawOrder(sols []*solution.Solution) []int {
	if len(sols) > 1 {
		return []int{1, 0}
	}
	return []int{0}
}

func checkSolutions(sols []*solution.Solution) error {
	if len(sols) == 0 {
		return ErrNoSolutions
	}
	for _, s := range sols {
		if s == nil || s.Len() == 0 {
			return fmt.Errorf("%w: empty solution", ErrNoSolutions)
		}
	}
	return nil
}

// Compare0D plots scalar variables against time. The first solution is
// drawn in colour, the second dashed in black.
func Compare0D(sols []*solution.Solution, vars, names []string, f Format) (*Figure, error) {
	if err := checkSolutions(sols); err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		vars, names = Default0D, Default0DNames
	}
	names = labelsFor(vars, names)
	rows := rowsFor(len(vars))
	fig := newFigure(f, rows, 2, 5.5*vg.Inch, panelHeight(rows))

	for k, name := range vars {
		p := fig.Panel(k)
		p.X.Label.Text = solution.TimeS
		p.Y.Label.Text = names[k]
		for _, n := range drawOrder(sols) {
			sol := sols[n]
			ys, err := sol.Scalar(name)
			if err != nil {
				return nil, err
			}
			c, dashed := plotutil.Color(0), false
			if n == 1 {
				c, dashed = black, true
			}
			l, err := f.line(sol.Times, ys, c, dashed)
			if err != nil {
				return nil, err
			}
			p.Add(l)
			if k == 0 {
				p.Legend.Add(sol.Model.Name(), l)
			}
		}
	}
	return fig, nil
}

// Compare1D plots pipe or capsule profiles at several times. The first
// solution uses one colour per time, the second is dashed in black.
func Compare1D(sols []*solution.Solution, vars, names []string, times []float64, f Format) (*Figure, error) {
	if err := checkSolutions(sols); err != nil {
		return nil, err
	}
	if len(vars) == 0 {
		vars, names = Default1D, Default1DNames
	}
	names = labelsFor(vars, names)
	if len(times) == 0 {
		times = Spread(endTime(sols[0]), 5)
	}
	rows := rowsFor(len(vars))
	fig := newFigure(f, rows, 2, 5.5*vg.Inch, panelHeight(rows))

	for k, name := range vars {
		p := fig.Panel(k)
		p.Y.Label.Text = names[k]
		for _, n := range drawOrder(sols) {
			sol := sols[n]
			for i, t := range times {
				coords, ys, err := sol.Profile(name, t)
				if err != nil {
					return nil, err
				}
				c, dashed := plotutil.Color(i), false
				if n == 1 {
					c, dashed = black, true
				}
				l, err := f.line(coords, ys, c, dashed)
				if err != nil {
					return nil, err
				}
				p.Add(l)
				if k == 0 && i == 0 {
					p.Legend.Add(sol.Model.Name(), l)
				}
			}
		}
		p.X.Label.Text = "z [m]"
		if isCapsuleProfile(name) {
			p.X.Label.Text = solution.CapsulePositionMM
		}
	}
	return fig, nil
}

func isCapsuleProfile(name string) bool {
	switch name {
	case solution.AveragedPCMTemperatureK, solution.AveragedPCMTemperatureC,
		solution.AveragedPCMEnthalpy, solution.AveragedPhase, solution.CapsulePositionMM:
		return true
	}
	return false
}

// Compare2D plots a capsule field along the radius, one panel per time. The
// first solution is drawn at the middle of the pipe, the second in light grey
// at every position of xs.
func Compare2D(sols []*solution.Solution, variable, name string, times, xs []float64, f Format) (*Figure, error) {
	if err := checkSolutions(sols); err != nil {
		return nil, err
	}
	if variable == "" {
		variable, name = Default2D, Default2DName
	}
	if name == "" {
		name = variable
	}
	z := sols[0].Model.Params().PipeLength
	if len(times) == 0 {
		times = Spread(endTime(sols[0]), 4)
	}
	if len(xs) == 0 {
		xs = Spread(z, 5)
	}
	rows := rowsFor(len(times))
	fig := newFigure(f, rows, 2, 5.5*vg.Inch, panelHeight(rows))

	for k, t := range times {
		p := fig.Panel(k)
		p.Title.Text = fmt.Sprintf("t = %.0f s", t)
		p.X.Label.Text = solution.CapsulePositionMM
		p.Y.Label.Text = name
		if len(sols) > 1 {
			for i, x := range xs {
				r, ys, err := sols[1].RadialProfile(variable, t, x)
				if err != nil {
					return nil, err
				}
				l, err := f.line(r, ys, lightGray, false)
				if err != nil {
					return nil, err
				}
				p.Add(l)
				if k == 0 && i == 0 {
					p.Legend.Add(sols[1].Model.Name(), l)
				}
			}
		}
		r, ys, err := sols[0].RadialProfile(variable, t, z/2)
		if err != nil {
			return nil, err
		}
		l, err := f.line(r, ys, plotutil.Color(0), false)
		if err != nil {
			return nil, err
		}
		p.Add(l)
		if k == 0 {
			p.Legend.Add(sols[0].Model.Name(), l)
		}
	}
	return fig, nil
}

// CompareData plots the model HTF and PCM temperatures next to the measured
// series at the same positions. PCM temperatures are taken at 0.8 R.
func CompareData(sol *solution.Solution, data *dataset.Data, f Format) (*Figure, error) {
	if err := checkSolutions([]*solution.Solution{sol}); err != nil {
		return nil, err
	}
	if data == nil || len(data.HTF) == 0 {
		return nil, fmt.Errorf("%w: no measurements", ErrNoSolutions)
	}
	p := sol.Model.Params()
	fig := newFigure(f, 2, 2, 5.5*vg.Inch, 3.5*vg.Inch)
	fig.Panels[0][0].Title.Text = "(a) Full model"
	fig.Panels[0][1].Title.Text = "(b) Experimental data"
	fig.Panels[1][0].Title.Text = "(c)"
	fig.Panels[1][1].Title.Text = "(d)"
	fig.Panels[0][0].Y.Label.Text = "HTF temperature [°C]"
	fig.Panels[1][0].Y.Label.Text = "PCM temperature [°C]"
	for _, q := range fig.Panels[1] {
		q.X.Label.Text = solution.TimeS
	}

	type sample func(t, x float64) (float64, error)
	rows := []struct {
		series []*dataset.Series
		model  sample
	}{
		{data.HTF, sol.FluidTemperatureAt},
		{data.PCM, func(t, x float64) (float64, error) {
			return sol.PCMTemperatureAt(t, x, 0.8*p.CapsuleRadius)
		}},
	}
	for j, row := range rows {
		for i, s := range row.series {
			label := fmt.Sprintf("%.2fL", s.Position)
			ys := make([]float64, sol.Len())
			for n, t := range sol.Times {
				v, err := row.model(t, s.Position*p.PipeLength)
				if err != nil {
					return nil, err
				}
				ys[n] = v - solution.Kelvin
			}
			l, err := f.line(sol.Times, ys, plotutil.Color(i), false)
			if err != nil {
				return nil, err
			}
			fig.Panels[j][0].Add(l)
			if j == 0 {
				fig.Panels[0][0].Legend.Add(label, l)
			}

			dl, pts, err := plotter.NewLinePoints(toXYs(s.Seconds(), s.Temperature))
			if err != nil {
				return nil, err
			}
			dl.Color, dl.Width = plotutil.Color(i), f.LineWidth
			pts.Color, pts.Radius = plotutil.Color(i), f.LineWidth
			fig.Panels[j][1].Add(dl, pts)
		}
	}
	shareY(fig.Panels[0][0], fig.Panels[0][1], fig.Panels[1][0], fig.Panels[1][1])
	return fig, nil
}

// shareY gives every panel the union of their y ranges.
func shareY(ps ...*plot.Plot) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range ps {
		lo, hi = math.Min(lo, p.Y.Min), math.Max(hi, p.Y.Max)
	}
	for _, p := range ps {
		p.Y.Min, p.Y.Max = lo, hi
	}
}
