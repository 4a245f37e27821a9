package aggregate

import (
	"github.com/pmsaops/sidata/internal/normalize"
	"github.com/pmsaops/sidata/internal/paper"
)

// FlowRow is one mechanism to species link.
type FlowRow struct {
	Mechanism  string
	Species    normalize.Label
	Count      int
	Percentage float64 // share of the mechanism's total
}

// Flow is the mechanism-species cross tabulation, mechanism outer and
// species inner, both in declared order.
type Flow []FlowRow

// MechanismSpeciesFlow cross-tabulates dominant mechanism against
// normalized dominant species.
func MechanismSpeciesFlow(records []paper.Record) Flow {
	counts := make(map[string]map[normalize.Label]int)
	totals := make(map[string]int)

	for _, r := range records {
		if r.DominantMechanism == "" || r.DominantSpecies == "" {
			continue
		}
		label, ok := normalize.Species(r.DominantSpecies)
		if !ok {
			continue
		}
		if counts[r.DominantMechanism] == nil {
			counts[r.DominantMechanism] = make(map[normalize.Label]int)
		}
		counts[r.DominantMechanism][label]++
		totals[r.DominantMechanism]++
	}

	rows := make(Flow, 0, len(Mechanisms)*len(normalize.SpeciesLabels))
	for _, mech := range Mechanisms {
		total := totals[mech]
		for _, sp := range normalize.SpeciesLabels {
			n := counts[mech][sp]
			rows = append(rows, FlowRow{
				Mechanism:  mech,
				Species:    sp,
				Count:      n,
				Percentage: percentage(n, total),
			})
		}
	}
	return rows
}

// Table renders mechanism_species_flow.csv.
func (f Flow) Table() Table {
	t := Table{
		Name:   MechanismSpeciesFlowName,
		Header: []string{"mechanism", "species", "count", "percentage"},
	}
	for _, row := range f {
		t.Rows = append(t.Rows, []string{
			row.Mechanism, string(row.Species), itoa(row.Count), formatPercent(row.Percentage),
		})
	}
	return t
}
