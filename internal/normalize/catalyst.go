package normalize

import "strings"

// Catalyst type labels.
const (
	MOFDerived    Label = "MOF-derived"
	SingleAtom    Label = "SAC"
	Biochar       Label = "Biochar"
	MetalOxide    Label = "Metal oxide"
	CarbonBased   Label = "Carbon-based"
	Perovskite    Label = "Perovskite"
	CatalystOther Label = "Other"
)

// CatalystLabels lists the catalyst labels in rule order.
var CatalystLabels = []Label{MOFDerived, SingleAtom, Biochar, MetalOxide, CarbonBased, Perovskite, CatalystOther}

var catalystRules = []rule{
	{MOFDerived, has("mof", "metal-organic")},
	{SingleAtom, has("sac", "single atom", "single-atom")},
	{Biochar, has("biochar")},
	{MetalOxide, has("oxide")},
	{CarbonBased, func(s string) bool {
		return strings.Contains(s, "carbon") && !strings.Contains(s, "biochar")
	}},
	{Perovskite, has("perovskite")},
}

// CatalystType normalizes a catalyst type description.
// Whitespace-only input is not empty and falls through to Other.
func CatalystType(text string) (Label, bool) {
	if text == "" {
		return "", false
	}
	return cascade(lower(strings.TrimSpace(text)), catalystRules, CatalystOther), true
}
