package aggregate

import "github.com/pmsaops/sidata/internal/paper"

// Year range sentinels, reported unchanged when no record has a year.
const (
	NoYearStart = 9999
	NoYearEnd   = 0
)

// BasicStatistics holds corpus-wide completeness counters.
type BasicStatistics struct {
	TotalPapers            int `json:"total_papers"`
	PapersWithMechanism    int `json:"papers_with_mechanism"`
	PapersWithSpecies      int `json:"papers_with_species"`
	PapersWithBoth         int `json:"papers_with_both"`
	PapersWithCatalystType int `json:"papers_with_catalyst_type"`
	PapersWithPollutant    int `json:"papers_with_pollutant"`
	YearRangeStart         int `json:"year_range_start"`
	YearRangeEnd           int `json:"year_range_end"`
}

// Statistics computes BasicStatistics in a single pass.
func Statistics(records []paper.Record) BasicStatistics {
	s := BasicStatistics{
		TotalPapers:    len(records),
		YearRangeStart: NoYearStart,
		YearRangeEnd:   NoYearEnd,
	}

	for _, r := range records {
		hasMech := r.DominantMechanism != ""
		hasSpecies := r.DominantSpecies != ""
		if hasMech {
			s.PapersWithMechanism++
		}
		if hasSpecies {
			s.PapersWithSpecies++
		}
		if hasMech && hasSpecies {
			s.PapersWithBoth++
		}
		if r.CatalystType != "" {
			s.PapersWithCatalystType++
		}
		if r.PollutantCategory != "" {
			s.PapersWithPollutant++
		}
		if r.Year != 0 {
			s.YearRangeStart = min(s.YearRangeStart, r.Year)
			s.YearRangeEnd = max(s.YearRangeEnd, r.Year)
		}
	}
	return s
}

// Table renders basic_statistics.csv, one row per statistic.
func (s BasicStatistics) Table() Table {
	stats := []struct {
		key   string
		value int
	}{
		{"total_papers", s.TotalPapers},
		{"papers_with_mechanism", s.PapersWithMechanism},
		{"papers_with_species", s.PapersWithSpecies},
		{"papers_with_both", s.PapersWithBoth},
		{"papers_with_catalyst_type", s.PapersWithCatalystType},
		{"papers_with_pollutant", s.PapersWithPollutant},
		{"year_range_start", s.YearRangeStart},
		{"year_range_end", s.YearRangeEnd},
	}

	t := Table{Name: BasicStatisticsName, Header: []string{"statistic", "value"}}
	for _, st := range stats {
		t.Rows = append(t.Rows, []string{st.key, itoa(st.value)})
	}
	return t
}
