package aggregate

import (
	"sort"

	"github.com/pmsaops/sidata/internal/paper"
	"go.uber.org/zap"
)

// Dominant mechanism labels.
const (
	NonRadical = "Non-radical"
	Both       = "Both"
	Radical    = "Radical"
)

// Mechanisms is the declared mechanism order used by every table.
var Mechanisms = []string{NonRadical, Both, Radical}

// YearMechanisms holds mechanism counts for one publication year.
// Total counts every reported mechanism, including labels outside
// Mechanisms, so it may exceed the sum of the three columns.
type YearMechanisms struct {
	Year       int
	NonRadical int
	Both       int
	Radical    int
	Total      int
}

// MechanismYears is the mechanism-by-year aggregate, ordered by year.
type MechanismYears []YearMechanisms

// MechanismByYear counts dominant mechanisms per publication year.
//
// Every year seen on any record gets a row. Mechanism labels outside
// Mechanisms have no column of their own; they are logged at warn level.
func MechanismByYear(records []paper.Record, logger *zap.Logger) MechanismYears {
	if logger == nil {
		logger = zap.NewNop()
	}

	byYear := make(map[int]*YearMechanisms)
	unknown := make(map[string]int)

	for _, r := range records {
		if r.Year == 0 {
			continue
		}
		row, ok := byYear[r.Year]
		if !ok {
			row = &YearMechanisms{Year: r.Year}
			byYear[r.Year] = row
		}
		if r.DominantMechanism == "" {
			continue
		}

		switch r.DominantMechanism {
		case NonRadical:
			row.NonRadical++
		case Both:
			row.Both++
		case Radical:
			row.Radical++
		default:
			unknown[r.DominantMechanism]++
		}
		row.Total++
	}

	if len(unknown) > 0 {
		labels := make([]string, 0, len(unknown))
		for label := range unknown {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		logger.Warn("mechanism labels without a column",
			zap.Strings("labels", labels), zap.Int("records", sumValues(unknown)))
	}

	rows := make(MechanismYears, 0, len(byYear))
	for _, row := range byYear {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Year < rows[j].Year })
	return rows
}

// Table renders mechanism_by_year.csv.
func (m MechanismYears) Table() Table {
	t := Table{
		Name:   MechanismByYearName,
		Header: []string{"year", "non_radical", "both", "radical", "total"},
	}
	for _, row := range m {
		t.Rows = append(t.Rows, []string{
			itoa(row.Year), itoa(row.NonRadical), itoa(row.Both), itoa(row.Radical), itoa(row.Total),
		})
	}
	return t
}

func sumValues(m map[string]int) int {
	total := 0
	for _, v := range m {
		total += v
	}
	return total
}
