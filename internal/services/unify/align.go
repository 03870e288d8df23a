package unify

import "FinWeave/internal/domain/models"

// Align produces, per symbol, exactly one record per master-calendar date:
// the asset's own record where it has coverage, or an all-null placeholder
// carrying that date. A date-keyed lookup is built once per asset so the
// calendar sweep stays O(1) per date instead of re-scanning the series.
// If a series somehow still contains duplicate dates, the last record wins.
// Records are value types, so the aligned output never aliases the input.
func Align(universe models.Universe, calendar []string) map[string]models.Series {
	aligned := make(map[string]models.Series, len(universe))
	for symbol, series := range universe {
		byDate := make(map[string]models.Record, len(series))
		for _, r := range series {
			if r.Date == "" {
				continue
			}
			byDate[r.Date] = r
		}
		out := make(models.Series, 0, len(calendar))
		for _, d := range calendar {
			if r, ok := byDate[d]; ok {
				out = append(out, r)
			} else {
				out = append(out, models.Placeholder(d))
			}
		}
		aligned[symbol] = out
	}
	return aligned
}
