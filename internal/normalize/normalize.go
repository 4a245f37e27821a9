// Package normalize maps free-text extraction fields onto the small fixed
// vocabularies used for aggregation.
//
// Every normalizer is a first-match-wins cascade of substring checks over the
// lower-cased input. Rule order matters: categories overlap syntactically, so
// earlier rules shadow later ones. Empty input yields no label.
package normalize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Label is a canonical category label.
type Label string

// rule is one step of a cascade.
type rule struct {
	label Label
	match func(s string) bool
}

// cascade returns the label of the first matching rule, or fallback.
func cascade(s string, rules []rule, fallback Label) Label {
	for _, r := range rules {
		if r.match(s) {
			return r.label
		}
	}
	return fallback
}

// lower lower-cases text with full Unicode case mapping.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

// containsAny reports whether s contains any of the markers.
func containsAny(s string, markers ...string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

// has builds a predicate matching any of the markers.
func has(markers ...string) func(string) bool {
	return func(s string) bool {
		return containsAny(s, markers...)
	}
}

// Kind names one of the normalized fields.
type Kind string

const (
	KindSpecies   Kind = "species"
	KindCatalyst  Kind = "catalyst"
	KindPollutant Kind = "pollutant"
)

// Kinds lists the supported kinds in declared order.
var Kinds = []Kind{KindSpecies, KindCatalyst, KindPollutant}

// For returns the normalizer for a kind.
func For(kind Kind) (func(string) (Label, bool), bool) {
	switch kind {
	case KindSpecies:
		return Species, true
	case KindCatalyst:
		return CatalystType, true
	case KindPollutant:
		return PollutantCategory, true
	}
	return nil, false
}
