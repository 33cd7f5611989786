package database

import "context"

const listSalesData = `
SELECT o.order_code,
       o.created_at,
       c.code,
       c.name,
       s.code,
       s.description,
       g.code,
       g.name,
       p.code,
       p.name,
       p.cost_price,
       i.quantity,
       i.unit_price,
       i.line_total
FROM order_items i
JOIN orders o ON o.id = i.order_id
JOIN customers c ON c.id = o.customer_id
JOIN segments s ON s.id = c.segment_id
JOIN products p ON p.id = i.product_id
JOIN product_groups g ON g.id = p.group_id
ORDER BY i.id
`

// ListSalesData returns every order item flattened across all six
// tables, in insertion order.
func (q *Queries) ListSalesData(ctx context.Context) ([]SalesDataRow, error) {
	rows, err := q.db.Query(ctx, listSalesData)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []SalesDataRow
	for rows.Next() {
		var r SalesDataRow
		if err := rows.Scan(
			&r.OrderCode,
			&r.CreatedAt,
			&r.CustomerCode,
			&r.CustomerName,
			&r.SegmentCode,
			&r.SegmentDesc,
			&r.GroupCode,
			&r.GroupName,
			&r.ProductCode,
			&r.ProductName,
			&r.CostPrice,
			&r.Quantity,
			&r.UnitPrice,
			&r.LineTotal,
		); err != nil {
			return nil, err
		}
		result = append(result, r)
	}

	return result, rows.Err()
}

const countEntities = `
SELECT
  (SELECT count(*) FROM orders),
  (SELECT count(*) FROM customers),
  (SELECT count(*) FROM products),
  (SELECT count(*) FROM segments),
  (SELECT count(*) FROM product_groups),
  (SELECT count(*) FROM order_items)
`

// CountEntities returns row counts for all six tables in one round trip.
func (q *Queries) CountEntities(ctx context.Context) (EntityCounts, error) {
	var c EntityCounts
	err := q.db.QueryRow(ctx, countEntities).Scan(
		&c.Orders,
		&c.Customers,
		&c.Products,
		&c.Segments,
		&c.ProductGroups,
		&c.OrderItems,
	)
	return c, err
}
