package database

import "context"

// The reset statements run children before parents so RESTRICT foreign
// keys never fire.

// DeleteAllOrderItems removes every order item.
func (q *Queries) DeleteAllOrderItems(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `DELETE FROM order_items`)
	return err
}

// DeleteAllOrders removes every order.
func (q *Queries) DeleteAllOrders(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `DELETE FROM orders`)
	return err
}

// DeleteAllProducts removes every product.
func (q *Queries) DeleteAllProducts(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `DELETE FROM products`)
	return err
}

// DeleteAllProductGroups removes every product group.
func (q *Queries) DeleteAllProductGroups(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `DELETE FROM product_groups`)
	return err
}

// DeleteAllCustomers removes every customer.
func (q *Queries) DeleteAllCustomers(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `DELETE FROM customers`)
	return err
}

// DeleteAllSegments removes every segment.
func (q *Queries) DeleteAllSegments(ctx context.Context) error {
	_, err := q.db.Exec(ctx, `DELETE FROM segments`)
	return err
}
