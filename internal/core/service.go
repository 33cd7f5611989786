// Package core provides the business logic for importing, resetting
// and reading the sales data. It has no HTTP dependencies and is used
// by both the web server and the CLI.
package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/KieuOanh0106/sales-dashboard/internal/config"
	"github.com/KieuOanh0106/sales-dashboard/internal/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Service exposes the import pipeline and the read side over one
// connection pool.
type Service struct {
	pool *pgxpool.Pool
	cfg  *config.Config
}

// NewService creates a Service bound to the given pool and config.
func NewService(pool *pgxpool.Pool, cfg *config.Config) *Service {
	return &Service{pool: pool, cfg: cfg}
}

// ImportResult summarizes one import run.
type ImportResult struct {
	RunID    string        `json:"runId"`
	Rows     int           `json:"rows"`
	Inserted int64         `json:"inserted"`
	Duration time.Duration `json:"-"`
}

// ImportFile ingests one CSV/TSV sales export. The whole file runs
// inside a single transaction: a database failure on any row rolls
// back everything, leaving no partial state.
func (s *Service) ImportFile(ctx context.Context, r io.Reader) (*ImportResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Import.Timeout)
	defer cancel()

	runID := uuid.New().String()
	logger := slog.Default().With("import_id", runID)
	start := time.Now()

	cr, err := NewSalesReader(r)
	if err != nil {
		return nil, fmt.Errorf("read sales file: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin import transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	rows, inserted, err := importRows(ctx, database.New(tx), cr, s.cfg.Import.BatchSize, time.Now().In(SaigonTime), logger)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	result := &ImportResult{
		RunID:    runID,
		Rows:     rows,
		Inserted: inserted,
		Duration: time.Since(start),
	}
	logger.Info("import complete",
		"rows", result.Rows,
		"inserted", result.Inserted,
		"duration_ms", result.Duration.Milliseconds(),
	)
	return result, nil
}

// ImportPath ingests the sales export at the given filesystem path.
func (s *Service) ImportPath(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sales file: %w", err)
	}
	defer f.Close()

	return s.ImportFile(ctx, f)
}

// Reset deletes all sales data, children before parents so the
// delete-protected foreign keys never fire. Irreversible; callers are
// responsible for any confirmation.
func (s *Service) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Import.ResetTimeout)
	defer cancel()

	q := database.New(s.pool)
	steps := []struct {
		table string
		fn    func(context.Context) error
	}{
		{"order_items", q.DeleteAllOrderItems},
		{"orders", q.DeleteAllOrders},
		{"products", q.DeleteAllProducts},
		{"product_groups", q.DeleteAllProductGroups},
		{"customers", q.DeleteAllCustomers},
		{"segments", q.DeleteAllSegments},
	}

	for _, step := range steps {
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("reset %s: %w", step.table, err)
		}
		slog.Info("cleared table", "table", step.table)
	}

	return nil
}

// Counts returns the row counts of all six tables.
func (s *Service) Counts(ctx context.Context) (database.EntityCounts, error) {
	return database.New(s.pool).CountEntities(ctx)
}

// SalesData returns every order item flattened for the charting
// frontend.
func (s *Service) SalesData(ctx context.Context) ([]database.SalesDataRow, error) {
	return database.New(s.pool).ListSalesData(ctx)
}

// Ping verifies database connectivity.
func (s *Service) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
