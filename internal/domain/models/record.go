package models

import (
	"sort"

	"github.com/guregu/null/v6"

	"FinWeave/pkg/util"
)

// DateLayout is the canonical calendar-date form for Record.Date.
// Lexicographic order of dates in this layout equals chronological order,
// which the calendar builder relies on.
const DateLayout = util.DateLayout

// Record is one trading day for one asset. Any numeric field may be null
// when the upstream source had no value for that cell.
type Record struct {
	Date   string     `json:"date"`
	Open   null.Float `json:"open"`
	High   null.Float `json:"high"`
	Low    null.Float `json:"low"`
	Close  null.Float `json:"close"`
	Volume null.Int   `json:"volume"`
}

// Placeholder returns an all-null record carrying only the date. The aligner
// inserts these where an asset has no coverage for a calendar date.
func Placeholder(date string) Record {
	return Record{Date: date}
}

// Series is one asset's records ordered by non-decreasing date, as delivered
// by the source.
type Series []Record

// Universe maps symbol (case-sensitive) to its series. Map iteration order
// is not meaningful; callers sort symbols wherever output order matters.
type Universe map[string]Series

// Symbols returns the universe's symbols in lexicographic order.
func (u Universe) Symbols() []string {
	out := make([]string, 0, len(u))
	for s := range u {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
