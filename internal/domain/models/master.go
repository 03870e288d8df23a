package models

import "github.com/guregu/null/v6"

// MasterRow is one calendar date with one closing price per symbol. Keys in
// Closes are column names of the form "<symbol>_Close".
type MasterRow struct {
	Date   string                `json:"date"`
	Closes map[string]null.Float `json:"closes"`
}

// MasterTable is the consolidated wide table, one row per master-calendar
// date in calendar order.
type MasterTable []MasterRow

// CloseColumn returns the master-table column name for a symbol.
func CloseColumn(symbol string) string {
	return symbol + "_Close"
}
