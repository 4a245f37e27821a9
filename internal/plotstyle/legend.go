package plotstyle

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// LegendTitle heads model legends.
const LegendTitle = "Models"

// LegendPosition places the legend inside the plot area.
type LegendPosition struct {
	Top  bool
	Left bool
}

// LowerLeft is the default legend position.
var LowerLeft = LegendPosition{Top: false, Left: true}

// patch is a filled, outlined legend swatch.
type patch struct {
	fill color.Color
	edge draw.LineStyle
}

// Thumbnail implements plot.Thumbnailer.
func (pt patch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(pt.fill, pts)
	c.StrokeLines(pt.edge, append(pts, pts[0]))
}

// title draws the legend heading in the thumbnail slot of an entry with no
// text, so it can use its own font size.
type title struct {
	text  string
	style text.Style
	right bool
}

// Thumbnail implements plot.Thumbnailer.
func (t title) Thumbnail(c *draw.Canvas) {
	pt := vg.Point{X: c.Min.X, Y: c.Min.Y}
	if t.right {
		pt.X = c.Max.X
	}
	c.FillText(t.style, pt, t.text)
}

func (s Style) legendTitle(p *plot.Plot, pos LegendPosition) title {
	sty := p.Legend.TextStyle
	sty.Font = sans(s.FontSizes.LegendTitle, false)
	sty.Color = color.Black
	sty.YAlign = text.YBottom
	sty.XAlign = text.XLeft
	if !pos.Left {
		sty.XAlign = text.XRight
	}
	if sty.Handler == nil {
		sty.Handler = plot.DefaultTextHandler
	}
	return title{text: LegendTitle, style: sty, right: !pos.Left}
}

// ModelLegend adds one swatch per model key, in the order given, under a
// title entry. Nil keys means every model in declared order; unknown keys
// are skipped. It returns the keys that were added.
func (s Style) ModelLegend(p *plot.Plot, keys []string, pos LegendPosition) ([]string, error) {
	if keys == nil {
		for _, m := range s.Models {
			keys = append(keys, m.Key)
		}
	}

	p.Legend.Top = pos.Top
	p.Legend.Left = pos.Left
	p.Legend.Add("", s.legendTitle(p, pos))

	var added []string
	for _, key := range keys {
		m, ok := s.Model(key)
		if !ok {
			continue
		}
		fill, err := withAlpha(m.Color, s.PatchAlpha)
		if err != nil {
			return added, fmt.Errorf("model %s: %w", key, err)
		}
		p.Legend.Add(m.Label, patch{
			fill: fill,
			edge: draw.LineStyle{Color: color.Black, Width: vg.Points(s.LineWidths.Secondary)},
		})
		added = append(added, key)
	}
	return added, nil
}
