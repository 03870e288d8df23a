package unify

import (
	"sort"

	"FinWeave/internal/domain/models"
)

// BuildMasterCalendar returns the sorted union of every date present in any
// series of the universe. Each market trades its own calendar, so no single
// asset covers all dates. Empty dates should not survive cleaning but are
// skipped defensively. Dates in YYYY-MM-DD form sort chronologically under
// plain string order.
func BuildMasterCalendar(universe models.Universe) []string {
	set := make(map[string]struct{})
	for _, series := range universe {
		for _, r := range series {
			if r.Date == "" {
				continue
			}
			set[r.Date] = struct{}{}
		}
	}
	calendar := make([]string, 0, len(set))
	for d := range set {
		calendar = append(calendar, d)
	}
	sort.Strings(calendar)
	return calendar
}
