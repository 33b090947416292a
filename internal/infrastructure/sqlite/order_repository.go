package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zjrosen/printcal/internal/orders"
)

// OrderModel is one row of order_snapshot.
type OrderModel struct {
	Position    int
	OrderNumber string
	Company     string
}

func (m OrderModel) toRecord() orders.Record {
	return orders.Record{OrderNumber: m.OrderNumber, Company: m.Company}
}

// OrderRepository keeps exactly one snapshot: the last fetched list.
type OrderRepository struct {
	db *sql.DB
}

func newOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ orders.SnapshotStore = (*OrderRepository)(nil)

// SaveSnapshot replaces the stored list with records in one transaction.
func (r *OrderRepository) SaveSnapshot(ctx context.Context, records []orders.Record, fetchedAt time.Time) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM order_snapshot`); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO order_snapshot (position, order_number, company) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare snapshot insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, rec := range records {
		if _, err := stmt.ExecContext(ctx, i, rec.OrderNumber, rec.Company); err != nil {
			return fmt.Errorf("failed to insert order %q: %w", rec.OrderNumber, err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO snapshot_meta (id, fetched_at) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET fetched_at = excluded.fetched_at`,
		fetchedAt.Unix(),
	); err != nil {
		return fmt.Errorf("failed to record snapshot time: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns the stored list in its original order. fetchedAt is
// zero when nothing was ever saved.
func (r *OrderRepository) LoadSnapshot(ctx context.Context) ([]orders.Record, time.Time, error) {
	var unix int64
	err := r.db.QueryRowContext(ctx, `SELECT fetched_at FROM snapshot_meta WHERE id = 1`).Scan(&unix)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, nil
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to read snapshot time: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT position, order_number, company FROM order_snapshot ORDER BY position`)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query snapshot: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []orders.Record
	for rows.Next() {
		var m OrderModel
		if err := rows.Scan(&m.Position, &m.OrderNumber, &m.Company); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan order: %w", err)
		}
		records = append(records, m.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to iterate snapshot: %w", err)
	}
	return records, time.Unix(unix, 0), nil
}
