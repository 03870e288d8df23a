package unify

import (
	"sort"

	"github.com/guregu/null/v6"

	"FinWeave/internal/domain/models"
)

// Compose reduces each aligned series to its closing column and assembles
// the wide master table: one row per calendar date, one "<symbol>_Close"
// column per symbol in lexicographic order. All aligned series are expected
// to share the same length and date sequence, so the date for row i can be
// taken from any of them. An empty input yields an empty table.
func Compose(aligned map[string]models.Series) models.MasterTable {
	symbols := make([]string, 0, len(aligned))
	for s := range aligned {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	if len(symbols) == 0 {
		return models.MasterTable{}
	}

	first := aligned[symbols[0]]
	table := make(models.MasterTable, 0, len(first))
	for i := range first {
		row := models.MasterRow{
			Date:   first[i].Date,
			Closes: make(map[string]null.Float, len(symbols)),
		}
		for _, s := range symbols {
			row.Closes[models.CloseColumn(s)] = aligned[s][i].Close
		}
		table = append(table, row)
	}
	return table
}
