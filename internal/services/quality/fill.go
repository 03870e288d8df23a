package quality

import (
	"github.com/guregu/null/v6"

	"FinWeave/internal/domain/models"
)

// ForwardFillClose replaces null closes with the last valid close seen while
// scanning left to right, assuming the price persists until the next
// observation. A leading run of null closes stays null since no earlier
// value exists to carry. Only the Close field is touched; the slice is
// modified in place. Applying the fill twice yields the same series as once.
func ForwardFillClose(series models.Series) {
	var last null.Float
	for i := range series {
		if series[i].Close.Valid {
			last = series[i].Close
		} else if last.Valid {
			series[i].Close = last
		}
	}
}

// RemoveInvalid returns a new series holding, in original order, only the
// records with a usable close. The input slice is left untouched so callers
// can compare pre and post counts for reporting. A record with a valid close
// but null open/high/low/volume is still kept.
func RemoveInvalid(series models.Series) models.Series {
	kept := make(models.Series, 0, len(series))
	for _, r := range series {
		if r.Close.Valid {
			kept = append(kept, r)
		}
	}
	return kept
}
