// Package figure draws the static plots of the LTES studies with gonum/plot.
package figure

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	ErrUnknownFormat    = errors.New("mode should be either 'presentation' or 'paper'")
	ErrUnknownExtension = errors.New("unsupported image extension")
)

// Format sets the font sizes and line widths of a figure.
type Format struct {
	Name      string
	FontSize  vg.Length
	LabelSize vg.Length
	LineWidth vg.Length
}

// GetFormat returns the "presentation" or "paper" format.
func GetFormat(mode string) (Format, error) {
	switch mode {
	case "presentation":
		return Format{Name: mode, FontSize: vg.Points(10), LabelSize: vg.Points(12), LineWidth: vg.Points(2)}, nil
	case "paper":
		return Format{Name: mode, FontSize: vg.Points(6), LabelSize: vg.Points(8), LineWidth: vg.Points(1)}, nil
	}
	return Format{}, fmt.Errorf("%w: got %q", ErrUnknownFormat, mode)
}

var (
	lightGray = color.Gray{Y: 211}
	black     = color.Black
)

// Figure is a grid of panels saved as one image.
type Figure struct {
	Panels [][]*plot.Plot
	Width  vg.Length
	Height vg.Length
	format Format
}

func newFigure(f Format, rows, cols int, width, height vg.Length) *Figure {
	fig := &Figure{Width: width, Height: height, format: f}
	fig.Panels = make([][]*plot.Plot, rows)
	for j := range fig.Panels {
		fig.Panels[j] = make([]*plot.Plot, cols)
		for i := range fig.Panels[j] {
			fig.Panels[j][i] = f.newPlot()
		}
	}
	return fig
}

// Panel returns the k-th panel in row-major order.
func (fig *Figure) Panel(k int) *plot.Plot {
	cols := len(fig.Panels[0])
	return fig.Panels[k/cols][k%cols]
}

func (f Format) newPlot() *plot.Plot {
	p := plot.New()
	p.Title.TextStyle.Font.Size = f.LabelSize
	p.X.Label.TextStyle.Font.Size = f.LabelSize
	p.Y.Label.TextStyle.Font.Size = f.LabelSize
	p.X.Tick.Label.Font.Size = f.FontSize
	p.Y.Tick.Label.Font.Size = f.FontSize
	p.Legend.TextStyle.Font.Size = f.FontSize
	p.Legend.Top = true
	return p
}

// Save renders the figure at dpi. The image type follows the extension:
// .png, .jpg/.jpeg or .tif/.tiff.
func (fig *Figure) Save(path string, dpi int) error {
	img := vgimg.NewWith(vgimg.UseWH(fig.Width, fig.Height), vgimg.UseDPI(dpi))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(fig.Panels),
		Cols: len(fig.Panels[0]),
		PadX:      vg.Millimeter,
		PadY:      vg.Millimeter,
		PadTop:    vg.Points(2),
		PadBottom: vg.Points(2),
		PadLeft:   vg.Points(2),
		PadRight:  vg.Points(2),
	}
	canvases := plot.Align(fig.Panels, tiles, dc)
	for j := range fig.Panels {
		for i, p := range fig.Panels[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	var w io.WriterTo
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		w = vgimg.PngCanvas{Canvas: img}
	case ".jpg", ".jpeg":
		w = vgimg.JpegCanvas{Canvas: img}
	case ".tif", ".tiff":
		w = vgimg.TiffCanvas{Canvas: img}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExtension, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

// floorAbs makes values drawable on a log axis.
func floorAbs(v []float64) []float64 {
	const floor = 1e-16
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = math.Max(math.Abs(x), floor)
	}
	return out
}
