package database

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Segment is a customer classification used for reporting grouping.
type Segment struct {
	ID          int64
	Code        string
	Description string
}

// Customer belongs to exactly one Segment.
type Customer struct {
	ID        int64
	Code      string
	Name      string
	SegmentID int64
}

// ProductGroup groups products for reporting.
type ProductGroup struct {
	ID   int64
	Code string
	Name string
}

// Product belongs to one ProductGroup. CostPrice is nullable: an
// invalid Numeric means the purchase cost is not yet known.
type Product struct {
	ID        int64
	Code      string
	Name      string
	GroupID   int64
	CostPrice pgtype.Numeric
}

// Order is the header row for a set of line items.
type Order struct {
	ID         int64
	OrderCode  string
	CreatedAt  time.Time
	CustomerID int64
}

// OrderItem is one product line within an order.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int32
	UnitPrice pgtype.Numeric
	LineTotal pgtype.Numeric
}

// SalesDataRow is one flattened record of the denormalized sales view,
// joined across all six tables.
type SalesDataRow struct {
	OrderCode    string
	CreatedAt    time.Time
	CustomerCode string
	CustomerName string
	SegmentCode  string
	SegmentDesc  string
	GroupCode    string
	GroupName    string
	ProductCode  string
	ProductName  string
	CostPrice    pgtype.Numeric
	Quantity     int32
	UnitPrice    pgtype.Numeric
	LineTotal    pgtype.Numeric
}

// EntityCounts holds row counts for all six tables.
type EntityCounts struct {
	Orders        int64
	Customers     int64
	Products      int64
	Segments      int64
	ProductGroups int64
	OrderItems    int64
}
