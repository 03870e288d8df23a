package models

// SymbolReport summarizes what quality checks found and what cleaning did
// for one asset. Counts refer to the raw series as fetched; RowsKept is the
// length of the cleaned series.
type SymbolReport struct {
	Symbol           string              `json:"symbol"`
	MissingCells     int                 `json:"missing_cells"`
	MissingPositions []int               `json:"missing_positions"`
	Anomalies        int                 `json:"anomalies"`
	AnomaliesByKind  map[AnomalyKind]int `json:"anomalies_by_kind"`
	RowsRemoved      int                 `json:"rows_removed"`
	RowsKept         int                 `json:"rows_kept"`
}
