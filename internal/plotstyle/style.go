// Package plotstyle holds the shared visual defaults for review figures and
// a few helpers that build styled gonum plots.
//
// Styling is explicit: a Style value is applied to each plot by the caller,
// and nothing here mutates package-level plotting state.
package plotstyle

import (
	"fmt"
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Model is a benchmarked model with its legend label and colour.
type Model struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
	Color string `yaml:"color"`
}

// FontSizes are point sizes per text role.
type FontSizes struct {
	Base         float64 `yaml:"base"`
	Title        float64 `yaml:"title"`
	AxisLabel    float64 `yaml:"axis_label"`
	TickLabel    float64 `yaml:"tick_label"`
	LegendTitle  float64 `yaml:"legend_title"`
	Legend       float64 `yaml:"legend"`
	Annotation   float64 `yaml:"annotation"`
	Significance float64 `yaml:"significance"`
}

// LineWidths are point widths per line role.
type LineWidths struct {
	Main      float64 `yaml:"main"`
	Secondary float64 `yaml:"secondary"`
	Grid      float64 `yaml:"grid"`
	Spine     float64 `yaml:"spine"`
	Box       float64 `yaml:"box"`
	Whisker   float64 `yaml:"whisker"`
	Bracket   float64 `yaml:"bracket"`
}

// Size is a figure size in inches.
type Size struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SizeClass names a figure size.
type SizeClass string

const (
	Large  SizeClass = "large"
	Medium SizeClass = "medium"
	Small  SizeClass = "small"
)

// Style is the complete set of visual defaults.
type Style struct {
	PrimaryPalette  []string           `yaml:"primary_palette"`
	ExtendedPalette []string           `yaml:"extended_palette"`
	Models          []Model            `yaml:"models"`
	FontSizes       FontSizes          `yaml:"font_sizes"`
	LineWidths      LineWidths         `yaml:"line_widths"`
	Sizes           map[SizeClass]Size `yaml:"figure_sizes"`
	DPI             int                `yaml:"dpi"`
	GridColor       string             `yaml:"grid_color"`
	GridAlpha       float64            `yaml:"grid_alpha"`
	PatchAlpha      float64            `yaml:"patch_alpha"`
}

// DefaultDPI is the resolution figures are saved at.
const DefaultDPI = 300

// Default returns the review figure style. Each call returns a fresh copy.
func Default() Style {
	return Style{
		PrimaryPalette:  []string{"#F09395", "#6AB7A1", "#8F97C9", "#30B3BB", "#FBB070"},
		ExtendedPalette: []string{"#E8B4B8", "#A8D5BA", "#B8C5E2", "#7DCFCF", "#FFD4A3"},
		Models: []Model{
			{Key: "claude", Label: "Claude Opus 4.1", Color: "#F09395"},
			{Key: "sonnet", Label: "Claude Sonnet 4.5", Color: "#E8B4B8"},
			{Key: "gpt4o", Label: "GPT-4o", Color: "#8F97C9"},
			{Key: "gemini", Label: "Gemini 3.0 Pro", Color: "#6AB7A1"},
			{Key: "qwen", Label: "Qwen3-MAX", Color: "#FBB070"},
			{Key: "deepseek", Label: "DeepSeek-R1", Color: "#30B3BB"},
		},
		FontSizes: FontSizes{
			Base:         14,
			Title:        26,
			AxisLabel:    24,
			TickLabel:    20,
			LegendTitle:  18,
			Legend:       16,
			Annotation:   16,
			Significance: 18,
		},
		LineWidths: LineWidths{
			Main:      2.0,
			Secondary: 1.5,
			Grid:      0.5,
			Spine:     1.5,
			Box:       1.5,
			Whisker:   1.5,
			Bracket:   1.2,
		},
		Sizes: map[SizeClass]Size{
			Large:  {Width: 12, Height: 9},
			Medium: {Width: 10, Height: 7.5},
			Small:  {Width: 8, Height: 6},
		},
		DPI:        DefaultDPI,
		GridColor:  "#808080",
		GridAlpha:  0.4,
		PatchAlpha: 0.8,
	}
}

// Size returns the figure size for a class. Unknown classes are small.
func (s Style) Size(class SizeClass) Size {
	if size, ok := s.Sizes[class]; ok {
		return size
	}
	return s.Sizes[Small]
}

// Model returns the model registered under key.
func (s Style) Model(key string) (Model, bool) {
	for _, m := range s.Models {
		if m.Key == key {
			return m, true
		}
	}
	return Model{}, false
}

// ParseColor converts a #RRGGBB string to a colour.
func ParseColor(hex string) (colorful.Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parsing colour %q: %w", hex, err)
	}
	return c, nil
}

// withAlpha converts a #RRGGBB string to a colour with the given opacity.
func withAlpha(hex string, alpha float64) (color.NRGBA, error) {
	c, err := ParseColor(hex)
	if err != nil {
		return color.NRGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(alpha*255 + 0.5)}, nil
}
