package repository

import (
	"context"
	"fmt"
	"strings"

	"FinWeave/internal/domain/models"
	"FinWeave/pkg/clickhouse"
	"FinWeave/pkg/logger"
)

const insertChunkRows = 500

// ClickHouseStore persists the master table in long form, one
// (date, symbol, close) tuple per cell, into a ReplacingMergeTree table so
// re-runs over the same window overwrite rather than duplicate.
type ClickHouseStore struct {
	client *clickhouse.Client
	table  string
	log    *logger.Logger
}

// NewClickHouseStore creates a store writing into the given table.
func NewClickHouseStore(client *clickhouse.Client, table string, log *logger.Logger) *ClickHouseStore {
	if table == "" {
		table = "master_closes"
	}
	return &ClickHouseStore{client: client, table: table, log: log}
}

// InitSchema creates the target table if it does not exist.
func (s *ClickHouseStore) InitSchema(ctx context.Context) error {
	stmt := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			date        Date,
			symbol      LowCardinality(String),
			close       Nullable(Float64),
			inserted_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(inserted_at)
		ORDER BY (symbol, date)
	`, s.table)
	return s.client.InitSchema(ctx, []string{stmt})
}

func (s *ClickHouseStore) Export(ctx context.Context, table models.MasterTable, symbols []string) error {
	if len(table) == 0 {
		s.log.Warn("master table is empty, skipping clickhouse export")
		return nil
	}

	type cell struct {
		date   string
		symbol string
		close  any
	}
	cells := make([]cell, 0, len(table)*len(symbols))
	for _, row := range table {
		for _, sym := range symbols {
			v := row.Closes[models.CloseColumn(sym)]
			var px any
			if v.Valid {
				px = v.Float64
			}
			cells = append(cells, cell{date: row.Date, symbol: sym, close: px})
		}
	}

	for start := 0; start < len(cells); start += insertChunkRows {
		end := start + insertChunkRows
		if end > len(cells) {
			end = len(cells)
		}
		chunk := cells[start:end]

		placeholders := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*3)
		for i, c := range chunk {
			placeholders[i] = "(?, ?, ?)"
			args = append(args, c.date, c.symbol, c.close)
		}

		query := fmt.Sprintf("INSERT INTO %s (date, symbol, close) VALUES %s",
			s.table, strings.Join(placeholders, ", "))
		if _, err := s.client.DB().ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert chunk [%d:%d]: %w", start, end, err)
		}
	}

	s.log.Info("master table stored",
		logger.String("table", s.table),
		logger.Int("rows", len(table)),
		logger.Int("cells", len(cells)),
	)
	return nil
}

func (s *ClickHouseStore) Backend() string { return "clickhouse" }

func (s *ClickHouseStore) Close() error { return s.client.Close() }
