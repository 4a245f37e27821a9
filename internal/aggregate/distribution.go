package aggregate

import (
	"sort"

	"github.com/pmsaops/sidata/internal/normalize"
	"github.com/pmsaops/sidata/internal/paper"
)

// Share is one category of a distribution.
type Share struct {
	Label      normalize.Label
	Count      int
	Percentage float64 // share of the distribution total
}

// Distribution is a ranked category count.
type Distribution struct {
	name   string
	column string
	Shares []Share
	Total  int
}

// CatalystDistribution ranks normalized catalyst types.
func CatalystDistribution(records []paper.Record) Distribution {
	return distribute(records, CatalystDistributionName, "catalyst_type",
		func(r paper.Record) string { return r.CatalystType }, normalize.CatalystType)
}

// PollutantDistribution ranks normalized pollutant categories.
func PollutantDistribution(records []paper.Record) Distribution {
	return distribute(records, PollutantDistributionName, "pollutant_category",
		func(r paper.Record) string { return r.PollutantCategory }, normalize.PollutantCategory)
}

// distribute counts normalized labels and ranks them by descending count.
// Ties keep first-seen order.
func distribute(records []paper.Record, name, column string,
	field func(paper.Record) string, norm func(string) (normalize.Label, bool)) Distribution {

	d := Distribution{name: name, column: column}
	index := make(map[normalize.Label]int)

	for _, r := range records {
		text := field(r)
		if text == "" {
			continue
		}
		label, ok := norm(text)
		if !ok {
			continue
		}
		i, seen := index[label]
		if !seen {
			i = len(d.Shares)
			index[label] = i
			d.Shares = append(d.Shares, Share{Label: label})
		}
		d.Shares[i].Count++
		d.Total++
	}

	sort.SliceStable(d.Shares, func(i, j int) bool {
		return d.Shares[i].Count > d.Shares[j].Count
	})
	for i := range d.Shares {
		d.Shares[i].Percentage = percentage(d.Shares[i].Count, d.Total)
	}
	return d
}

// Table renders the distribution CSV.
func (d Distribution) Table() Table {
	t := Table{
		Name:   d.name,
		Header: []string{d.column, "count", "percentage"},
	}
	for _, s := range d.Shares {
		t.Rows = append(t.Rows, []string{string(s.Label), itoa(s.Count), formatPercent(s.Percentage)})
	}
	return t
}
