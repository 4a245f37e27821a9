package plotstyle

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Significance thresholds, strictest first.
var significanceLevels = []struct {
	below  float64
	marker string
}{
	{0.001, "***"},
	{0.01, "**"},
	{0.05, "*"},
}

// NotSignificant is the marker for p >= 0.05.
const NotSignificant = "ns"

// DefaultBracketHeight is the bracket rise in data units.
const DefaultBracketHeight = 0.02

// bracketLabelGap lifts the marker clear of the bracket, in data units.
const bracketLabelGap = 0.005

// SignificanceMarker returns the star marker for a p-value.
func SignificanceMarker(pValue float64) string {
	for _, lvl := range significanceLevels {
		if pValue < lvl.below {
			return lvl.marker
		}
	}
	return NotSignificant
}

// AddSignificanceBracket draws a bracket from x1 to x2 rising h above y,
// labelled with the p-value's marker. It returns the marker used.
func (s Style) AddSignificanceBracket(p *plot.Plot, x1, x2, y, pValue, h float64) (string, error) {
	if h <= 0 {
		h = DefaultBracketHeight
	}
	marker := SignificanceMarker(pValue)

	bracket, err := plotter.NewLine(plotter.XYs{
		{X: x1, Y: y}, {X: x1, Y: y + h}, {X: x2, Y: y + h}, {X: x2, Y: y},
	})
	if err != nil {
		return "", fmt.Errorf("building bracket: %w", err)
	}
	bracket.LineStyle = draw.LineStyle{Color: color.Black, Width: vg.Points(s.LineWidths.Bracket)}

	label, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    plotter.XYs{{X: (x1 + x2) / 2, Y: y + h + bracketLabelGap}},
		Labels: []string{marker},
	})
	if err != nil {
		return "", fmt.Errorf("building bracket label: %w", err)
	}
	for i := range label.TextStyle {
		label.TextStyle[i].Font = sans(s.FontSizes.Significance, true)
		label.TextStyle[i].XAlign = text.XCenter
		label.TextStyle[i].YAlign = text.YBottom
	}

	p.Add(bracket, label)
	return marker, nil
}
