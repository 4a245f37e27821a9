// Package paper loads per-paper extraction results into flat records.
package paper

import (
	"math"
	"strings"
)

// Record is one successfully extracted paper.
//
// Zero values mean "not reported": a year of 0 and empty strings are treated
// exactly like absent fields by every aggregate.
type Record struct {
	Source            string `json:"source"` // file name the record was loaded from
	Year              int    `json:"year,omitempty"`
	DominantMechanism string `json:"dominant_mechanism,omitempty"`
	DominantSpecies   string `json:"dominant_species,omitempty"`
	CatalystType      string `json:"catalyst_type,omitempty"`
	PollutantCategory string `json:"pollutant_category,omitempty"`
}

// Field paths inside an extraction result.
const (
	YearPath      = "paper_info.year"
	MechanismPath = "catalytic_mechanism.dominant_mechanism"
	SpeciesPath   = "reactive_species.dominant_species"
	CatalystPath  = "experimental_system.catalyst.type"
	PollutantPath = "experimental_system.target_pollutant.category"
)

// FromResult flattens a decoded extraction result.
func FromResult(source string, result map[string]any) Record {
	year, _ := LookupInt(result, YearPath)
	mech, _ := LookupString(result, MechanismPath)
	species, _ := LookupString(result, SpeciesPath)
	catalyst, _ := LookupString(result, CatalystPath)
	pollutant, _ := LookupString(result, PollutantPath)
	return Record{
		Source:            source,
		Year:              year,
		DominantMechanism: mech,
		DominantSpecies:   species,
		CatalystType:      catalyst,
		PollutantCategory: pollutant,
	}
}

// Lookup walks a dotted path through nested JSON objects.
// It returns false when any segment is missing, null, or not an object.
func Lookup(m map[string]any, path string) (any, bool) {
	var cur any = m
	for _, key := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// LookupString returns a non-empty string at path.
func LookupString(m map[string]any, path string) (string, bool) {
	v, ok := Lookup(m, path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// LookupInt returns a non-zero integral number at path.
func LookupInt(m map[string]any, path string) (int, bool) {
	v, ok := Lookup(m, path)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || f == 0 || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
