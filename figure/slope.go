package figure

import (
	"fmt"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
)

// Slope is a convergence triangle on log-log axes. Origin is the lower-left
// corner, or the lower-right one when Inverted, and Width is the horizontal
// extent as a factor of Origin.X.
type Slope struct {
	Origin   plotter.XY
	Width    float64
	Slope    float64
	Inverted bool
}

// LogLogSlope draws s onto p with its "1" and slope labels.
func (f Format) LogLogSlope(p *plot.Plot, s Slope) error {
	if s.Origin.X <= 0 || s.Origin.Y <= 0 || s.Width <= 1 {
		return fmt.Errorf("slope triangle needs a positive origin and width > 1, got %v and %g", s.Origin, s.Width)
	}
	w := s.Width
	if s.Inverted {
		w = 1 / w
	}
	x1, y1 := s.Origin.X, s.Origin.Y
	x2 := x1 * w
	y2 := y1 * math.Pow(w, s.Slope)

	tri, err := plotter.NewPolygon(plotter.XYs{{X: x1, Y: y1}, {X: x2, Y: y1}, {X: x2, Y: y2}})
	if err != nil {
		return err
	}
	tri.Color = lightGray
	tri.LineStyle.Color = lightGray
	tri.LineStyle.Width = 0.75 * f.LineWidth

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs: plotter.XYs{
			{X: math.Sqrt(x1 * x2), Y: y1},
			{X: x2, Y: math.Sqrt(y1 * y2)},
		},
		Labels: []string{"1", strconv.FormatFloat(s.Slope, 'g', -1, 64)},
	})
	if err != nil {
		return err
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = black
		labels.TextStyle[i].Font.Size = 0.8 * f.FontSize
	}
	bottom, side := &labels.TextStyle[0], &labels.TextStyle[1]
	bottom.XAlign = text.XCenter
	if !s.Inverted && s.Slope > 0 {
		bottom.YAlign = text.YTop
	} else {
		bottom.YAlign = text.YBottom
	}
	side.YAlign = text.YCenter
	if s.Inverted {
		side.XAlign = text.XRight
	} else {
		side.XAlign = text.XLeft
	}
	p.Add(tri, labels)
	return nil
}
