// Package aggregate reduces loaded paper records into summary tables.
//
// Every aggregator is a pure function of the record list. A record
// contributes to an aggregate only when all of the fields that aggregate
// needs are present.
package aggregate

import (
	"strconv"

	"github.com/pmsaops/sidata/internal/paper"
	"go.uber.org/zap"
)

// Table is a flat, already-ordered output table.
type Table struct {
	Name   string     // output file stem, e.g. "mechanism_by_year"
	Header []string   // column names
	Rows   [][]string // rows in final order
}

// Output table names.
const (
	MechanismByYearName       = "mechanism_by_year"
	SpeciesByPeriodName       = "species_by_period"
	MechanismSpeciesFlowName  = "mechanism_species_flow"
	CatalystDistributionName  = "catalyst_distribution"
	PollutantDistributionName = "pollutant_distribution"
	BasicStatisticsName       = "basic_statistics"
)

// All runs every aggregator and returns the tables in output order.
func All(records []paper.Record, logger *zap.Logger) []Table {
	return []Table{
		MechanismByYear(records, logger).Table(),
		SpeciesByPeriod(records).Table(),
		MechanismSpeciesFlow(records).Table(),
		CatalystDistribution(records).Table(),
		PollutantDistribution(records).Table(),
		Statistics(records).Table(),
	}
}

// percentage returns count as a share of total, or 0 for an empty total.
func percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}

// formatPercent renders a percentage with one decimal place.
func formatPercent(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
