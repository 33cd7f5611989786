package database

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const upsertOrder = `
INSERT INTO orders (order_code, created_at, customer_id)
VALUES ($1, $2, $3)
ON CONFLICT (order_code) DO UPDATE
SET created_at = EXCLUDED.created_at,
    customer_id = EXCLUDED.customer_id
RETURNING id, order_code, created_at, customer_id
`

// UpsertOrderParams holds the header values for an order.
type UpsertOrderParams struct {
	OrderCode  string
	CreatedAt  time.Time
	CustomerID int64
}

// UpsertOrder inserts the order or, if the order code already exists,
// replaces its timestamp and customer. Re-imports are therefore
// idempotent at the header level.
func (q *Queries) UpsertOrder(ctx context.Context, arg UpsertOrderParams) (Order, error) {
	var o Order
	err := q.db.QueryRow(ctx, upsertOrder, arg.OrderCode, arg.CreatedAt, arg.CustomerID).
		Scan(&o.ID, &o.OrderCode, &o.CreatedAt, &o.CustomerID)
	return o, err
}

const insertOrderItem = `
INSERT INTO order_items (order_id, product_id, quantity, unit_price, line_total)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT DO NOTHING
`

// InsertOrderItemParams holds one buffered line item.
type InsertOrderItemParams struct {
	OrderID   int64
	ProductID int64
	Quantity  int32
	UnitPrice pgtype.Numeric
	LineTotal pgtype.Numeric
}

// InsertOrderItems inserts line items through a single pgx batch.
// Rows that would violate a uniqueness constraint are skipped rather
// than failing the batch. Returns the number of rows actually written.
func (q *Queries) InsertOrderItems(ctx context.Context, items []InsertOrderItemParams) (int64, error) {
	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(insertOrderItem, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.LineTotal)
	}

	results := q.db.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int64
	for range items {
		tag, err := results.Exec()
		if err != nil {
			return inserted, err
		}
		inserted += tag.RowsAffected()
	}

	return inserted, results.Close()
}
