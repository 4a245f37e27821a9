package normalize

import "strings"

// Reactive species labels.
const (
	SingletOxygen Label = "1O2"
	HighValent    Label = "HVM"
	Sulfate       Label = "SO4"
	Hydroxyl      Label = "OH"
	Superoxide    Label = "O2"
	SpeciesOther  Label = "Other"
)

// SpeciesLabels is the declared column order for species tables.
var SpeciesLabels = []Label{SingletOxygen, HighValent, Sulfate, Hydroxyl, Superoxide, SpeciesOther}

// High-valent metal markers, grouped by metal.
var highValentMarkers = []string{
	"fe(iv)", "fe(v)", "ferryl", "feiv",
	"co(iv)", "co(v)", "co=", "co4+",
	"cu(iii)", "cu3+", "cu(ii)",
	"mn(iv)", "mn(v)", "mn(iii)",
	"ni(iii)", "ni(iv)",
	"high-valent", "hvm",
	"miv(o)", "mv(o)", "m(iv)",
}

const (
	sulfateMarker  = "so4"
	hydroxylMarker = "oh"
	singletMarker  = "1o2"
)

func both(a, b string) func(string) bool {
	return func(s string) bool {
		return strings.Contains(s, a) && strings.Contains(s, b)
	}
}

// Mixed-marker rules must precede the single-marker rules.
var speciesRules = []rule{
	{SingletOxygen, has(singletMarker, "singlet")},
	{HighValent, has(highValentMarkers...)},
	{SpeciesOther, both(sulfateMarker, hydroxylMarker)},
	{SpeciesOther, both(sulfateMarker, singletMarker)},
	{SpeciesOther, both(hydroxylMarker, singletMarker)},
	{Sulfate, has(sulfateMarker)},
	{Hydroxyl, has(hydroxylMarker)},
	{Superoxide, has("o2•", "superoxide", "o2.-")},
}

// Species normalizes a dominant reactive species description.
// The second result is false for empty input.
func Species(text string) (Label, bool) {
	if text == "" {
		return "", false
	}
	return cascade(lower(text), speciesRules, SpeciesOther), true
}
