package database

import "context"

const getCustomerByCode = `
SELECT id, code, name, segment_id FROM customers WHERE code = $1
`

// GetCustomerByCode returns the customer with the given natural code.
// Returns pgx.ErrNoRows if no such customer exists.
func (q *Queries) GetCustomerByCode(ctx context.Context, code string) (Customer, error) {
	var c Customer
	err := q.db.QueryRow(ctx, getCustomerByCode, code).
		Scan(&c.ID, &c.Code, &c.Name, &c.SegmentID)
	return c, err
}

const insertCustomer = `
INSERT INTO customers (code, name, segment_id)
VALUES ($1, $2, $3)
RETURNING id, code, name, segment_id
`

// InsertCustomerParams holds the values for a new customer.
type InsertCustomerParams struct {
	Code      string
	Name      string
	SegmentID int64
}

// InsertCustomer creates a customer and returns the stored row.
func (q *Queries) InsertCustomer(ctx context.Context, arg InsertCustomerParams) (Customer, error) {
	var c Customer
	err := q.db.QueryRow(ctx, insertCustomer, arg.Code, arg.Name, arg.SegmentID).
		Scan(&c.ID, &c.Code, &c.Name, &c.SegmentID)
	return c, err
}

const updateCustomerSegment = `
UPDATE customers SET segment_id = $2 WHERE id = $1
`

// UpdateCustomerSegmentParams identifies a customer and its new segment.
type UpdateCustomerSegmentParams struct {
	ID        int64
	SegmentID int64
}

// UpdateCustomerSegment moves a customer to a different segment.
// Name and code are deliberately left untouched.
func (q *Queries) UpdateCustomerSegment(ctx context.Context, arg UpdateCustomerSegmentParams) error {
	_, err := q.db.Exec(ctx, updateCustomerSegment, arg.ID, arg.SegmentID)
	return err
}
