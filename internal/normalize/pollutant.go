package normalize

import "strings"

// Pollutant category labels.
const (
	Antibiotic     Label = "Antibiotic"
	Phenolic       Label = "Phenolic compound"
	Dye            Label = "Dye"
	Pharmaceutical Label = "Pharmaceutical"
	Pesticide      Label = "Pesticide"
	PollutantOther Label = "Other"
)

// PollutantLabels lists the pollutant labels in rule order.
var PollutantLabels = []Label{Antibiotic, Phenolic, Dye, Pharmaceutical, Pesticide, PollutantOther}

var pollutantRules = []rule{
	{Antibiotic, has("antibiotic")},
	{Phenolic, has("phenol")},
	{Dye, has("dye")},
	{Pharmaceutical, has("pharmac")},
	{Pesticide, has("pestic")},
}

// PollutantCategory normalizes a target pollutant category description.
func PollutantCategory(text string) (Label, bool) {
	if text == "" {
		return "", false
	}
	return cascade(lower(strings.TrimSpace(text)), pollutantRules, PollutantOther), true
}
