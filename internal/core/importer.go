package core

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/KieuOanh0106/sales-dashboard/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UnknownCode is the fallback natural key for reference entities whose
// code column is absent or empty.
const UnknownCode = "UNK"

// store is the subset of database.Queries the importer relies on.
// Narrowing the dependency keeps the reconciliation logic testable
// without a live database.
type store interface {
	GetSegmentByCode(ctx context.Context, code string) (database.Segment, error)
	InsertSegment(ctx context.Context, arg database.InsertSegmentParams) (database.Segment, error)
	GetCustomerByCode(ctx context.Context, code string) (database.Customer, error)
	InsertCustomer(ctx context.Context, arg database.InsertCustomerParams) (database.Customer, error)
	UpdateCustomerSegment(ctx context.Context, arg database.UpdateCustomerSegmentParams) error
	GetProductGroupByCode(ctx context.Context, code string) (database.ProductGroup, error)
	InsertProductGroup(ctx context.Context, arg database.InsertProductGroupParams) (database.ProductGroup, error)
	GetProductByCode(ctx context.Context, code string) (database.Product, error)
	InsertProduct(ctx context.Context, arg database.InsertProductParams) (database.Product, error)
	BackfillProductCost(ctx context.Context, arg database.BackfillProductCostParams) error
	UpsertOrder(ctx context.Context, arg database.UpsertOrderParams) (database.Order, error)
	InsertOrderItems(ctx context.Context, items []database.InsertOrderItemParams) (int64, error)
}

// rowValues holds one fully normalized data row.
type rowValues struct {
	createdAt    time.Time
	hasCreatedAt bool
	orderCode    string
	customerCode string
	customerName string
	segmentCode  string
	segmentDesc  string
	groupCode    string
	groupName    string
	productCode  string
	productName  string
	costPrice    decimal.Decimal
	quantity     int
	unitPrice    decimal.Decimal
	lineTotal    decimal.Decimal
}

// parseRow normalizes every cell of a data row. Individual parse
// failures degrade to defaults and never abort the row; only the
// timestamp failure is worth a diagnostic.
func parseRow(record []string, hm headerMap, logger *slog.Logger) rowValues {
	rv := rowValues{
		orderCode:    NormalizeText(hm.cell(record, FieldOrderCode)),
		customerCode: NormalizeText(hm.cell(record, FieldCustomerCode)),
		customerName: NormalizeText(hm.cell(record, FieldCustomerName)),
		segmentCode:  NormalizeText(hm.cell(record, FieldSegmentCode)),
		segmentDesc:  NormalizeText(hm.cell(record, FieldSegmentDesc)),
		groupCode:    NormalizeText(hm.cell(record, FieldGroupCode)),
		groupName:    NormalizeText(hm.cell(record, FieldGroupName)),
		productCode:  NormalizeText(hm.cell(record, FieldProductCode)),
		productName:  NormalizeText(hm.cell(record, FieldProductName)),
		costPrice:    NormalizeDecimal(hm.cell(record, FieldCostPrice), decimal.Zero),
		quantity:     NormalizeInt(hm.cell(record, FieldQuantity), 1),
		unitPrice:    NormalizeDecimal(hm.cell(record, FieldUnitPrice), decimal.Zero),
	}

	rawTime := hm.cell(record, FieldOrderTime)
	rv.createdAt, rv.hasCreatedAt = NormalizeTimestamp(rawTime)
	if !rv.hasCreatedAt && NormalizeText(rawTime) != "" {
		warnUnparseableTimestamp(logger, rawTime)
	}

	// An absent line total is derived exactly from unit price and
	// quantity; no rounding is involved.
	defaultTotal := rv.unitPrice.Mul(decimal.NewFromInt(int64(rv.quantity)))
	rv.lineTotal = NormalizeDecimal(hm.cell(record, FieldLineTotal), defaultTotal)

	return rv
}

// codeOrUnknown substitutes the fallback key for empty codes.
func codeOrUnknown(code string) string {
	if code == "" {
		return UnknownCode
	}
	return code
}

// resolveSegment returns the row's segment, creating it on first sight.
func resolveSegment(ctx context.Context, st store, rv rowValues) (database.Segment, error) {
	code := codeOrUnknown(rv.segmentCode)

	seg, err := st.GetSegmentByCode(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return st.InsertSegment(ctx, database.InsertSegmentParams{
			Code:        code,
			Description: rv.segmentDesc,
		})
	}
	return seg, err
}

// resolveCustomer returns the row's customer, creating it on first
// sight and applying the segment merge rule on re-encounter.
func resolveCustomer(ctx context.Context, st store, rv rowValues, seg database.Segment) (database.Customer, error) {
	code := codeOrUnknown(rv.customerCode)

	cust, err := st.GetCustomerByCode(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return st.InsertCustomer(ctx, database.InsertCustomerParams{
			Code:      code,
			Name:      rv.customerName,
			SegmentID: seg.ID,
		})
	}
	if err != nil {
		return cust, err
	}

	if MergePolicy.CustomerSegment == AlwaysOverwrite && cust.SegmentID != seg.ID {
		if err := st.UpdateCustomerSegment(ctx, database.UpdateCustomerSegmentParams{
			ID:        cust.ID,
			SegmentID: seg.ID,
		}); err != nil {
			return cust, err
		}
		cust.SegmentID = seg.ID
	}

	return cust, nil
}

// resolveProductGroup returns the row's product group, creating it on
// first sight.
func resolveProductGroup(ctx context.Context, st store, rv rowValues) (database.ProductGroup, error) {
	code := codeOrUnknown(rv.groupCode)

	group, err := st.GetProductGroupByCode(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return st.InsertProductGroup(ctx, database.InsertProductGroupParams{
			Code: code,
			Name: rv.groupName,
		})
	}
	return group, err
}

// resolveProduct returns the row's product, creating it on first sight
// and applying the cost backfill rule on re-encounter.
func resolveProduct(ctx context.Context, st store, rv rowValues, group database.ProductGroup) (database.Product, error) {
	code := codeOrUnknown(rv.productCode)

	prod, err := st.GetProductByCode(ctx, code)
	if errors.Is(err, pgx.ErrNoRows) {
		return st.InsertProduct(ctx, database.InsertProductParams{
			Code:      code,
			Name:      rv.productName,
			GroupID:   group.ID,
			CostPrice: NumericFromDecimal(rv.costPrice),
		})
	}
	if err != nil {
		return prod, err
	}

	if MergePolicy.ProductCost == OverwriteIfUnset && !rv.costPrice.IsZero() && costUnset(prod) {
		cost := NumericFromDecimal(rv.costPrice)
		if err := st.BackfillProductCost(ctx, database.BackfillProductCostParams{
			ID:        prod.ID,
			CostPrice: cost,
			GroupID:   group.ID,
		}); err != nil {
			return prod, err
		}
		prod.CostPrice = cost
		prod.GroupID = group.ID
	}

	return prod, nil
}

// costUnset reports whether a product's stored cost price is still
// null or zero, i.e. eligible for backfill.
func costUnset(p database.Product) bool {
	return !p.CostPrice.Valid || DecimalFromNumeric(p.CostPrice).IsZero()
}

// importRows drives the whole file through the reconciliation chain
// and bulk-inserts the buffered line items. The caller supplies the
// transaction; any error here aborts it with no partial commit.
//
// The returned row count is the number of line items buffered, taken
// before the bulk insert; conflict-skipped rows still count, matching
// the reported total to the rows processed rather than persisted.
func importRows(ctx context.Context, st store, cr *csv.Reader, batchSize int, now time.Time, logger *slog.Logger) (int, int64, error) {
	header, err := cr.Read()
	if err == io.EOF {
		return 0, 0, nil
	}
	if err != nil {
		return 0, 0, err
	}
	hm := mapHeader(header)

	var items []database.InsertOrderItemParams

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, 0, err
		}

		rv := parseRow(record, hm, logger)

		seg, err := resolveSegment(ctx, st, rv)
		if err != nil {
			return 0, 0, err
		}

		cust, err := resolveCustomer(ctx, st, rv, seg)
		if err != nil {
			return 0, 0, err
		}

		group, err := resolveProductGroup(ctx, st, rv)
		if err != nil {
			return 0, 0, err
		}

		prod, err := resolveProduct(ctx, st, rv, group)
		if err != nil {
			return 0, 0, err
		}

		createdAt := rv.createdAt
		if !rv.hasCreatedAt {
			createdAt = now
		}

		order, err := st.UpsertOrder(ctx, database.UpsertOrderParams{
			OrderCode:  codeOrUnknown(rv.orderCode),
			CreatedAt:  createdAt,
			CustomerID: cust.ID,
		})
		if err != nil {
			return 0, 0, err
		}

		items = append(items, database.InsertOrderItemParams{
			OrderID:   order.ID,
			ProductID: prod.ID,
			Quantity:  int32(rv.quantity),
			UnitPrice: NumericFromDecimal(rv.unitPrice),
			LineTotal: NumericFromDecimal(rv.lineTotal),
		})
	}

	var inserted int64
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		n, err := st.InsertOrderItems(ctx, items[start:end])
		if err != nil {
			return 0, 0, err
		}
		inserted += n
	}

	return len(items), inserted, nil
}
