package models

// AnomalyKind classifies an OHLC bound violation.
type AnomalyKind string

const (
	// HighBelowLow flags a record whose high is below its low.
	HighBelowLow AnomalyKind = "high_below_low"
	// CloseOutOfRange flags a close outside [low, high].
	CloseOutOfRange AnomalyKind = "close_out_of_range"
	// OpenOutOfRange flags an open outside [low, high].
	OpenOutOfRange AnomalyKind = "open_out_of_range"
)

// Anomaly is one logical inconsistency found in a series. Row is a value
// copy of the offending record taken at detection time, so later cleaning
// passes cannot rewrite what was reported.
type Anomaly struct {
	Position int         `json:"position"`
	Kind     AnomalyKind `json:"kind"`
	Row      Record      `json:"row"`
}
