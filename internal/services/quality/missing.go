package quality

import "FinWeave/internal/domain/models"

// DetectMissing counts null cells across the five numeric fields of every
// record and returns the distinct positions holding at least one null, in
// first-encountered order. One linear pass; a membership set keeps the
// position list duplicate-free without losing detection order.
func DetectMissing(series models.Series) (int, []int) {
	if len(series) == 0 {
		return 0, nil
	}
	var (
		count     int
		positions []int
	)
	seen := make(map[int]struct{})
	for i, r := range series {
		for _, valid := range [5]bool{r.Open.Valid, r.High.Valid, r.Low.Valid, r.Close.Valid, r.Volume.Valid} {
			if valid {
				continue
			}
			count++
			if _, dup := seen[i]; !dup {
				seen[i] = struct{}{}
				positions = append(positions, i)
			}
		}
	}
	return count, positions
}
