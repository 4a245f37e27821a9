package aggregate

import (
	"strconv"

	"github.com/pmsaops/sidata/internal/normalize"
	"github.com/pmsaops/sidata/internal/paper"
)

// EarlyPeriod collects every year up to and including EarlyPeriodEnd.
const (
	EarlyPeriod    = "2019-2021"
	EarlyPeriodEnd = 2021
)

// Periods is the fixed row order of the species-by-period table.
var Periods = []string{EarlyPeriod, "2022", "2023", "2024", "2025"}

// Period maps a publication year to its period key.
func Period(year int) string {
	if year <= EarlyPeriodEnd {
		return EarlyPeriod
	}
	return strconv.Itoa(year)
}

// PeriodSpecies holds normalized species counts for one period.
type PeriodSpecies struct {
	Period string
	Counts map[normalize.Label]int
	Total  int
}

// SpeciesPeriods is the species-by-period aggregate in Periods order.
type SpeciesPeriods []PeriodSpecies

// SpeciesByPeriod counts normalized dominant species per period.
// Periods outside Periods are counted but not reported.
func SpeciesByPeriod(records []paper.Record) SpeciesPeriods {
	counts := make(map[string]map[normalize.Label]int)

	for _, r := range records {
		if r.Year == 0 || r.DominantSpecies == "" {
			continue
		}
		label, ok := normalize.Species(r.DominantSpecies)
		if !ok {
			continue
		}
		period := Period(r.Year)
		if counts[period] == nil {
			counts[period] = make(map[normalize.Label]int)
		}
		counts[period][label]++
	}

	rows := make(SpeciesPeriods, 0, len(Periods))
	for _, period := range Periods {
		row := PeriodSpecies{Period: period, Counts: make(map[normalize.Label]int)}
		for _, sp := range normalize.SpeciesLabels {
			n := counts[period][sp]
			row.Counts[sp] = n
			row.Total += n
		}
		rows = append(rows, row)
	}
	return rows
}

// Table renders species_by_period.csv.
func (s SpeciesPeriods) Table() Table {
	header := []string{"period"}
	for _, sp := range normalize.SpeciesLabels {
		header = append(header, string(sp))
	}
	header = append(header, "total")

	t := Table{Name: SpeciesByPeriodName, Header: header}
	for _, row := range s {
		cells := []string{row.Period}
		for _, sp := range normalize.SpeciesLabels {
			cells = append(cells, itoa(row.Counts[sp]))
		}
		cells = append(cells, itoa(row.Total))
		t.Rows = append(t.Rows, cells)
	}
	return t
}
