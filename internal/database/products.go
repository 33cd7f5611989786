package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getProductGroupByCode = `
SELECT id, code, name FROM product_groups WHERE code = $1
`

// GetProductGroupByCode returns the product group with the given code.
// Returns pgx.ErrNoRows if no such group exists.
func (q *Queries) GetProductGroupByCode(ctx context.Context, code string) (ProductGroup, error) {
	var g ProductGroup
	err := q.db.QueryRow(ctx, getProductGroupByCode, code).Scan(&g.ID, &g.Code, &g.Name)
	return g, err
}

const insertProductGroup = `
INSERT INTO product_groups (code, name)
VALUES ($1, $2)
RETURNING id, code, name
`

// InsertProductGroupParams holds the values for a new product group.
type InsertProductGroupParams struct {
	Code string
	Name string
}

// InsertProductGroup creates a product group and returns the stored row.
func (q *Queries) InsertProductGroup(ctx context.Context, arg InsertProductGroupParams) (ProductGroup, error) {
	var g ProductGroup
	err := q.db.QueryRow(ctx, insertProductGroup, arg.Code, arg.Name).
		Scan(&g.ID, &g.Code, &g.Name)
	return g, err
}

const getProductByCode = `
SELECT id, code, name, group_id, cost_price FROM products WHERE code = $1
`

// GetProductByCode returns the product with the given natural code.
// Returns pgx.ErrNoRows if no such product exists.
func (q *Queries) GetProductByCode(ctx context.Context, code string) (Product, error) {
	var p Product
	err := q.db.QueryRow(ctx, getProductByCode, code).
		Scan(&p.ID, &p.Code, &p.Name, &p.GroupID, &p.CostPrice)
	return p, err
}

const insertProduct = `
INSERT INTO products (code, name, group_id, cost_price)
VALUES ($1, $2, $3, $4)
RETURNING id, code, name, group_id, cost_price
`

// InsertProductParams holds the values for a new product.
type InsertProductParams struct {
	Code      string
	Name      string
	GroupID   int64
	CostPrice pgtype.Numeric
}

// InsertProduct creates a product and returns the stored row.
func (q *Queries) InsertProduct(ctx context.Context, arg InsertProductParams) (Product, error) {
	var p Product
	err := q.db.QueryRow(ctx, insertProduct, arg.Code, arg.Name, arg.GroupID, arg.CostPrice).
		Scan(&p.ID, &p.Code, &p.Name, &p.GroupID, &p.CostPrice)
	return p, err
}

const backfillProductCost = `
UPDATE products SET cost_price = $2, group_id = $3 WHERE id = $1
`

// BackfillProductCostParams carries the late-arriving purchase cost and
// the group observed alongside it.
type BackfillProductCostParams struct {
	ID        int64
	CostPrice pgtype.Numeric
	GroupID   int64
}

// BackfillProductCost sets a product's cost price and refreshes its
// group. Callers are expected to have checked that the stored cost is
// still unset; the group rides along with the backfill.
func (q *Queries) BackfillProductCost(ctx context.Context, arg BackfillProductCostParams) error {
	_, err := q.db.Exec(ctx, backfillProductCost, arg.ID, arg.CostPrice, arg.GroupID)
	return err
}
