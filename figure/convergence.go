package figure

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"ltes/study"
)

const refinementLabel = "Mesh refinement factor"

// logLog switches p to log axes with ticks at the refinement factors.
func logLog(p *plot.Plot, refinement []float64) {
	p.X.Scale = plot.LogScale{}
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	ticks := make(plot.ConstantTicks, len(refinement))
	for i, x := range refinement {
		ticks[i] = plot.Tick{Value: x, Label: fmt.Sprintf("%g", x)}
	}
	p.X.Tick.Marker = ticks
	p.X.Label.Text = refinementLabel
}

// padLog widens the data range of a log-log panel so that single points and
// triangles stay inside the axes.
func padLog(p *plot.Plot) {
	p.X.Min /= 1.5
	p.X.Max *= 1.5
	p.Y.Min /= 2
	p.Y.Max *= 2
}

func (f Format) addSeries(p *plot.Plot, i int, name string, xs, ys []float64) error {
	xys := make(plotter.XYs, len(xs))
	for k := range xs {
		xys[k] = plotter.XY{X: xs[k], Y: ys[k]}
	}
	l, pts, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	c := plotutil.Color(i)
	l.Color = c
	l.Width = f.LineWidth
	pts.Color = c
	pts.Shape = draw.CircleGlyph{}
	pts.Radius = f.LineWidth
	p.Add(l, pts)
	if name != "" {
		p.Legend.Add(name, l, pts)
	}
	return nil
}

func midpoint(n int) int {
	if n < 1 {
		return 0
	}
	return (n - 1) / 2
}

// ConservationConvergence plots the mean relative error in energy
// conservation and the solve time against the mesh refinement factor.
func ConservationConvergence(res *study.Result, f Format) (*Figure, error) {
	fig := newFigure(f, 1, 2, 5.5*vg.Inch, 2*vg.Inch)
	left, right := fig.Panels[0][0], fig.Panels[0][1]
	mesh := res.Refinement()
	for _, p := range []*plot.Plot{left, right} {
		logLog(p, mesh)
	}
	left.Y.Label.Text = "Relative error in energy conservation [%]"
	right.Y.Label.Text = "Solve time [s]"

	mid := midpoint(len(mesh))
	var peak float64
	var times [][]float64
	for i, name := range res.Models {
		errs := floorAbs(res.ConservationErrors(name))
		ts := floorAbs(res.SolveTimes(name))
		if err := f.addSeries(left, i, name, mesh, errs); err != nil {
			return nil, err
		}
		if err := f.addSeries(right, i, "", mesh, ts); err != nil {
			return nil, err
		}
		peak = math.Max(peak, errs[mid])
		times = append(times, ts)
	}

	if err := f.LogLogSlope(left, Slope{Origin: plotter.XY{X: mesh[mid], Y: 1.2 * peak}, Width: 2, Slope: -1}); err != nil {
		return nil, err
	}
	for i, order := range []float64{1, 3} {
		if i >= len(times) {
			break
		}
		s := Slope{Origin: plotter.XY{X: mesh[mid], Y: 0.6 * times[i][mid]}, Width: 2, Slope: order}
		if err := f.LogLogSlope(right, s); err != nil {
			return nil, err
		}
	}
	padLog(left)
	padLog(right)
	return fig, nil
}

// VariableConvergence plots the relative errors of the HTF and PCM
// temperatures against the finest level.
func VariableConvergence(res *study.Result, f Format) (*Figure, error) {
	fig := newFigure(f, 1, 2, 5.5*vg.Inch, 2*vg.Inch)
	mesh := res.Refinement()
	if len(mesh) < 2 {
		return nil, fmt.Errorf("variable convergence needs two levels, got %d", len(mesh))
	}
	mesh = mesh[:len(mesh)-1]
	mid := midpoint(len(mesh))

	panels := []struct {
		title string
		get   func(string) []float64
	}{
		{"HTF temperature [K]", res.FluidErrors},
		{"PCM temperature [K]", res.PCMErrors},
	}
	for k, panel := range panels {
		p := fig.Panels[0][k]
		logLog(p, mesh)
		p.Title.Text = panel.title
		p.Y.Label.Text = "Relative error"
		var peak float64
		for i, name := range res.Models {
			label := name
			if k > 0 {
				label = ""
			}
			errs := floorAbs(panel.get(name))
			if err := f.addSeries(p, i, label, mesh, errs); err != nil {
				return nil, err
			}
			peak = math.Max(peak, errs[mid])
		}
		if err := f.LogLogSlope(p, Slope{Origin: plotter.XY{X: mesh[mid], Y: 1.2 * peak}, Width: 2, Slope: -1}); err != nil {
			return nil, err
		}
		padLog(p)
	}
	return fig, nil
}
