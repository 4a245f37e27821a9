package plotstyle

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/go-fonts/liberation/liberationsansbold"
	"golang.org/x/image/font/opentype"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Figure is a styled plot with its physical size.
type Figure struct {
	Plot   *plot.Plot
	Width  vg.Length
	Height vg.Length
	style  Style
}

// boldVariant names Liberation Sans Bold registered as a regular-weight
// face. The PDF backend registers every face without a style but selects
// bold faces with one, so a WeightBold font cannot be drawn to PDF.
const boldVariant font.Variant = "SansBold"

func init() {
	face, err := opentype.Parse(liberationsansbold.TTF)
	if err != nil {
		panic(fmt.Errorf("plotstyle: parsing bold face: %w", err))
	}
	font.DefaultCache.Add(font.Collection{{
		Font: font.Font{Typeface: "Liberation", Variant: boldVariant},
		Face: face,
	}})
}

// sans returns the sans-serif face at the given point size.
func sans(size float64, bold bool) font.Font {
	f := font.Font{
		Typeface: "Liberation",
		Variant:  "Sans",
		Size:     vg.Points(size),
	}
	if bold {
		f.Variant = boldVariant
	}
	return f
}

// Apply sets the style's fonts, axis lines and background on p.
// Applying the same style twice leaves p unchanged.
func (s Style) Apply(p *plot.Plot) {
	p.BackgroundColor = color.White

	p.Title.TextStyle.Font = sans(s.FontSizes.Title, true)
	p.Legend.TextStyle.Font = sans(s.FontSizes.Legend, false)
	p.Legend.Top = false
	p.Legend.Left = true

	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.Label.TextStyle.Font = sans(s.FontSizes.AxisLabel, true)
		axis.Tick.Label.Font = sans(s.FontSizes.TickLabel, false)
		axis.LineStyle.Width = vg.Points(s.LineWidths.Spine)
		axis.Tick.LineStyle.Width = vg.Points(s.LineWidths.Spine)
	}
}

// Grid returns a dashed background grid in the style's grid colour.
// Add it before data plotters so it draws underneath.
func (s Style) Grid() (*plotter.Grid, error) {
	c, err := withAlpha(s.GridColor, s.GridAlpha)
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}

	g := plotter.NewGrid()
	line := draw.LineStyle{
		Color:  c,
		Width:  vg.Points(s.LineWidths.Grid),
		Dashes: []vg.Length{vg.Points(4), vg.Points(2)},
	}
	g.Vertical = line
	g.Horizontal = line
	return g, nil
}

// NewFigure creates a styled figure of the given size class.
func (s Style) NewFigure(class SizeClass) (*Figure, error) {
	p := plot.New()
	s.Apply(p)

	grid, err := s.Grid()
	if err != nil {
		return nil, err
	}
	p.Add(grid)

	size := s.Size(class)
	return &Figure{
		Plot:   p,
		Width:  vg.Length(size.Width) * vg.Inch,
		Height: vg.Length(size.Height) * vg.Inch,
		style:  s,
	}, nil
}

// Save writes the figure to path at dpi, or at the style's DPI when dpi is 0.
// PNG and JPEG honour dpi; SVG, EPS, PDF and TIFF go through plot.Save.
func (f *Figure) Save(path string, dpi int) error {
	if dpi <= 0 {
		dpi = f.style.DPI
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png", ".jpg", ".jpeg":
	default:
		if err := f.Plot.Save(f.Width, f.Height, path); err != nil {
			return fmt.Errorf("saving figure: %w", err)
		}
		return nil
	}

	c := vgimg.NewWith(
		vgimg.UseWH(f.Width, f.Height),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(color.White),
	)
	f.Plot.Draw(draw.New(c))

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer out.Close()

	if ext == ".png" {
		_, err = vgimg.PngCanvas{Canvas: c}.WriteTo(out)
	} else {
		_, err = vgimg.JpegCanvas{Canvas: c}.WriteTo(out)
	}
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return out.Close()
}
