package quality

import "FinWeave/internal/domain/models"

// DetectInconsistencies scans a series for logical OHLC violations: a high
// below its low, and a close or open outside [low, high]. The three checks
// are independent, so a single record can produce up to three anomalies.
// Records missing low or high are skipped entirely; absent bounds are a
// missing-value concern, not a range one.
func DetectInconsistencies(series models.Series) []models.Anomaly {
	var anomalies []models.Anomaly
	for i, r := range series {
		if !r.Low.Valid || !r.High.Valid {
			continue
		}
		low, high := r.Low.Float64, r.High.Float64
		if high < low {
			anomalies = append(anomalies, models.Anomaly{Position: i, Kind: models.HighBelowLow, Row: r})
		}
		if r.Close.Valid && (r.Close.Float64 < low || r.Close.Float64 > high) {
			anomalies = append(anomalies, models.Anomaly{Position: i, Kind: models.CloseOutOfRange, Row: r})
		}
		if r.Open.Valid && (r.Open.Float64 < low || r.Open.Float64 > high) {
			anomalies = append(anomalies, models.Anomaly{Position: i, Kind: models.OpenOutOfRange, Row: r})
		}
	}
	return anomalies
}
