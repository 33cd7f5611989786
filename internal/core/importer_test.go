package core

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/KieuOanh0106/sales-dashboard/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ----------------------------------------------------------------------------
// In-memory store
// ----------------------------------------------------------------------------

// fakeStore implements the store interface against maps keyed by
// natural code, mirroring the unique constraints of the real schema.
type fakeStore struct {
	segments  map[string]database.Segment
	customers map[string]database.Customer
	groups    map[string]database.ProductGroup
	products  map[string]database.Product
	orders    map[string]database.Order
	items     []database.InsertOrderItemParams
	nextID    int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		segments:  make(map[string]database.Segment),
		customers: make(map[string]database.Customer),
		groups:    make(map[string]database.ProductGroup),
		products:  make(map[string]database.Product),
		orders:    make(map[string]database.Order),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func (f *fakeStore) GetSegmentByCode(_ context.Context, code string) (database.Segment, error) {
	if s, ok := f.segments[code]; ok {
		return s, nil
	}
	return database.Segment{}, pgx.ErrNoRows
}

func (f *fakeStore) InsertSegment(_ context.Context, arg database.InsertSegmentParams) (database.Segment, error) {
	s := database.Segment{ID: f.id(), Code: arg.Code, Description: arg.Description}
	f.segments[arg.Code] = s
	return s, nil
}

func (f *fakeStore) GetCustomerByCode(_ context.Context, code string) (database.Customer, error) {
	if c, ok := f.customers[code]; ok {
		return c, nil
	}
	return database.Customer{}, pgx.ErrNoRows
}

func (f *fakeStore) InsertCustomer(_ context.Context, arg database.InsertCustomerParams) (database.Customer, error) {
	c := database.Customer{ID: f.id(), Code: arg.Code, Name: arg.Name, SegmentID: arg.SegmentID}
	f.customers[arg.Code] = c
	return c, nil
}

func (f *fakeStore) UpdateCustomerSegment(_ context.Context, arg database.UpdateCustomerSegmentParams) error {
	for code, c := range f.customers {
		if c.ID == arg.ID {
			c.SegmentID = arg.SegmentID
			f.customers[code] = c
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStore) GetProductGroupByCode(_ context.Context, code string) (database.ProductGroup, error) {
	if g, ok := f.groups[code]; ok {
		return g, nil
	}
	return database.ProductGroup{}, pgx.ErrNoRows
}

func (f *fakeStore) InsertProductGroup(_ context.Context, arg database.InsertProductGroupParams) (database.ProductGroup, error) {
	g := database.ProductGroup{ID: f.id(), Code: arg.Code, Name: arg.Name}
	f.groups[arg.Code] = g
	return g, nil
}

func (f *fakeStore) GetProductByCode(_ context.Context, code string) (database.Product, error) {
	if p, ok := f.products[code]; ok {
		return p, nil
	}
	return database.Product{}, pgx.ErrNoRows
}

func (f *fakeStore) InsertProduct(_ context.Context, arg database.InsertProductParams) (database.Product, error) {
	p := database.Product{ID: f.id(), Code: arg.Code, Name: arg.Name, GroupID: arg.GroupID, CostPrice: arg.CostPrice}
	f.products[arg.Code] = p
	return p, nil
}

func (f *fakeStore) BackfillProductCost(_ context.Context, arg database.BackfillProductCostParams) error {
	for code, p := range f.products {
		if p.ID == arg.ID {
			p.CostPrice = arg.CostPrice
			p.GroupID = arg.GroupID
			f.products[code] = p
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeStore) UpsertOrder(_ context.Context, arg database.UpsertOrderParams) (database.Order, error) {
	if o, ok := f.orders[arg.OrderCode]; ok {
		o.CreatedAt = arg.CreatedAt
		o.CustomerID = arg.CustomerID
		f.orders[arg.OrderCode] = o
		return o, nil
	}
	o := database.Order{ID: f.id(), OrderCode: arg.OrderCode, CreatedAt: arg.CreatedAt, CustomerID: arg.CustomerID}
	f.orders[arg.OrderCode] = o
	return o, nil
}

func (f *fakeStore) InsertOrderItems(_ context.Context, items []database.InsertOrderItemParams) (int64, error) {
	f.items = append(f.items, items...)
	return int64(len(items)), nil
}

// ----------------------------------------------------------------------------
// Helpers
// ----------------------------------------------------------------------------

const salesHeader = "Thời gian tạo đơn,Mã đơn hàng,Mã khách hàng,Tên khách hàng," +
	"Mã PKKH,Mô tả Phân Khúc Khách hàng,Mã nhóm hàng,Tên nhóm hàng," +
	"Mã mặt hàng,Tên mặt hàng,Giá Nhập,SL,Đơn giá,Thành tiền"

var importNow = time.Date(2024, 6, 1, 12, 0, 0, 0, SaigonTime)

func runImport(t *testing.T, st *fakeStore, csvData string) (int, int64) {
	t.Helper()

	cr, err := NewSalesReader(strings.NewReader(csvData))
	if err != nil {
		t.Fatalf("NewSalesReader() error = %v", err)
	}

	rows, inserted, err := importRows(context.Background(), st, cr, 1000, importNow, slog.Default())
	if err != nil {
		t.Fatalf("importRows() error = %v", err)
	}
	return rows, inserted
}

// ----------------------------------------------------------------------------
// Importer Tests
// ----------------------------------------------------------------------------

func TestImport_CreatesReferenceEntities(t *testing.T) {
	st := newFakeStore()
	data := salesHeader + "\n" +
		"2024-03-15 10:30:00,DH001,KH01,Nguyễn Văn A,S1,Khách lẻ,NH01,Trà sữa,SP001,Trà sữa trân châu,10,2,25000,50000\n"

	rows, inserted := runImport(t, st, data)
	if rows != 1 || inserted != 1 {
		t.Fatalf("rows = %d inserted = %d, want 1 and 1", rows, inserted)
	}

	if _, ok := st.segments["S1"]; !ok {
		t.Error("segment S1 not created")
	}
	cust, ok := st.customers["KH01"]
	if !ok {
		t.Fatal("customer KH01 not created")
	}
	if cust.Name != "Nguyễn Văn A" {
		t.Errorf("customer name = %q", cust.Name)
	}
	if _, ok := st.groups["NH01"]; !ok {
		t.Error("group NH01 not created")
	}
	prod, ok := st.products["SP001"]
	if !ok {
		t.Fatal("product SP001 not created")
	}
	if got := DecimalFromNumeric(prod.CostPrice); !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("cost price = %s, want 10", got)
	}
	order, ok := st.orders["DH001"]
	if !ok {
		t.Fatal("order DH001 not created")
	}
	want := time.Date(2024, 3, 15, 10, 30, 0, 0, SaigonTime)
	if !order.CreatedAt.Equal(want) {
		t.Errorf("order created_at = %v, want %v", order.CreatedAt, want)
	}
}

func TestImport_SegmentSwitchUpdatesCustomer(t *testing.T) {
	// Row 2 reuses customer C1 under a new segment S2: the segment must
	// follow the latest row while the name stays as first imported.
	st := newFakeStore()
	data := salesHeader + "\n" +
		"2024-03-15 10:30:00,DH001,C1,First Name,S1,Retail,G1,Group One,P1,Product One,10,1,100,100\n" +
		"2024-03-16 11:00:00,DH002,C1,Other Name,S2,Wholesale,G1,Group One,P1,Product One,0,2,100,200\n"

	rows, _ := runImport(t, st, data)
	if rows != 2 {
		t.Fatalf("rows = %d, want 2", rows)
	}

	cust := st.customers["C1"]
	seg2 := st.segments["S2"]
	if cust.SegmentID != seg2.ID {
		t.Errorf("customer segment = %d, want %d (S2)", cust.SegmentID, seg2.ID)
	}
	if cust.Name != "First Name" {
		t.Errorf("customer name = %q, want first-seen name", cust.Name)
	}
	if len(st.items) != 2 {
		t.Errorf("order items = %d, want 2", len(st.items))
	}
	if len(st.orders) != 2 {
		t.Errorf("orders = %d, want 2", len(st.orders))
	}
}

func TestImport_LineTotalDefaultsToUnitPriceTimesQuantity(t *testing.T) {
	st := newFakeStore()
	// Thành tiền column left empty; 3 × 33333.33 must come out exact.
	data := salesHeader + "\n" +
		"2024-03-15,DH001,C1,Name,S1,Desc,G1,Group,P1,Product,0,3,33333.33,\n"

	runImport(t, st, data)

	if len(st.items) != 1 {
		t.Fatalf("items = %d, want 1", len(st.items))
	}
	got := DecimalFromNumeric(st.items[0].LineTotal)
	want := decimal.RequireFromString("99999.99")
	if !got.Equal(want) {
		t.Errorf("line_total = %s, want %s", got, want)
	}
}

func TestImport_ReimportUpsertsOrdersAppendsItems(t *testing.T) {
	st := newFakeStore()
	data := salesHeader + "\n" +
		"2024-03-15,DH001,C1,Name,S1,Desc,G1,Group,P1,Product,0,1,100,100\n" +
		"2024-03-15,DH001,C1,Name,S1,Desc,G1,Group,P2,Other,0,1,50,50\n"

	runImport(t, st, data)
	runImport(t, st, data)

	// Header upsert is idempotent, line items are append-only.
	if len(st.orders) != 1 {
		t.Errorf("orders = %d, want 1", len(st.orders))
	}
	if len(st.items) != 4 {
		t.Errorf("items = %d, want 4", len(st.items))
	}
}

func TestImport_CostPriceBackfill(t *testing.T) {
	st := newFakeStore()

	// First sight with zero cost, then a row supplying the real cost.
	data := salesHeader + "\n" +
		"2024-03-15,DH001,C1,Name,S1,Desc,G1,Group,P1,Product,0,1,100,100\n" +
		"2024-03-16,DH002,C1,Name,S1,Desc,G2,New Group,P1,Product,42.50,1,100,100\n"
	runImport(t, st, data)

	prod := st.products["P1"]
	if got := DecimalFromNumeric(prod.CostPrice); !got.Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("cost price = %s, want 42.50", got)
	}
	// Group is refreshed together with the backfill.
	if prod.GroupID != st.groups["G2"].ID {
		t.Errorf("group = %d, want %d (G2)", prod.GroupID, st.groups["G2"].ID)
	}

	// A later row must not overwrite the established cost.
	data = salesHeader + "\n" +
		"2024-03-17,DH003,C1,Name,S1,Desc,G1,Group,P1,Product,99,1,100,100\n"
	runImport(t, st, data)

	prod = st.products["P1"]
	if got := DecimalFromNumeric(prod.CostPrice); !got.Equal(decimal.RequireFromString("42.50")) {
		t.Errorf("cost price after re-import = %s, want 42.50", got)
	}
}

func TestImport_DefaultsForMissingValues(t *testing.T) {
	st := newFakeStore()
	// Empty codes, unparseable timestamp, missing quantity.
	data := salesHeader + "\n" +
		"not a date,,,,,,,,,,,,100,\n"

	rows, _ := runImport(t, st, data)
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}

	if _, ok := st.segments[UnknownCode]; !ok {
		t.Error("segment UNK not created")
	}
	if _, ok := st.customers[UnknownCode]; !ok {
		t.Error("customer UNK not created")
	}
	if _, ok := st.products[UnknownCode]; !ok {
		t.Error("product UNK not created")
	}

	order, ok := st.orders[UnknownCode]
	if !ok {
		t.Fatal("order UNK not created")
	}
	if !order.CreatedAt.Equal(importNow) {
		t.Errorf("created_at = %v, want import time %v", order.CreatedAt, importNow)
	}

	item := st.items[0]
	if item.Quantity != 1 {
		t.Errorf("quantity = %d, want default 1", item.Quantity)
	}
	// line_total = unit_price × default quantity
	if got := DecimalFromNumeric(item.LineTotal); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("line_total = %s, want 100", got)
	}
}

func TestImport_SemicolonAndTabDelimited(t *testing.T) {
	for _, tt := range []struct {
		name string
		sep  string
	}{
		{name: "semicolon", sep: ";"},
		{name: "tab", sep: "\t"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			st := newFakeStore()
			header := strings.ReplaceAll(salesHeader, ",", tt.sep)
			row := strings.Join([]string{
				"2024-03-15", "DH001", "C1", "Name", "S1", "Desc",
				"G1", "Group", "P1", "Product", "0", "1", "100", "100",
			}, tt.sep)

			rows, _ := runImport(t, st, header+"\n"+row+"\n")
			if rows != 1 {
				t.Fatalf("rows = %d, want 1", rows)
			}
			if _, ok := st.orders["DH001"]; !ok {
				t.Error("order DH001 not created")
			}
		})
	}
}

func TestImport_TransliteratedHeaders(t *testing.T) {
	st := newFakeStore()
	header := "Thoi gian tao don,Ma don hang,Ma khach hang,Ten khach hang," +
		"Ma PKKH,Mo ta Phan Khuc,Ma nhom hang,Ten nhom hang," +
		"Ma mat hang,Ten mat hang,Gia Nhap,So luong,Don gia,Thanh tien"
	data := header + "\n" +
		"2024-03-15,DH001,C1,Name,S1,Desc,G1,Group,P1,Product,0,2,100,200\n"

	rows, _ := runImport(t, st, data)
	if rows != 1 {
		t.Fatalf("rows = %d, want 1", rows)
	}
	if st.items[0].Quantity != 2 {
		t.Errorf("quantity = %d, want 2", st.items[0].Quantity)
	}
}

func TestImport_EmptyFile(t *testing.T) {
	st := newFakeStore()
	rows, inserted := runImport(t, st, "")
	if rows != 0 || inserted != 0 {
		t.Errorf("rows = %d inserted = %d, want 0 and 0", rows, inserted)
	}
}

func TestImport_BatchSizeSplitsInserts(t *testing.T) {
	st := newFakeStore()

	var b strings.Builder
	b.WriteString(salesHeader + "\n")
	for i := 0; i < 5; i++ {
		b.WriteString("2024-03-15,DH001,C1,Name,S1,Desc,G1,Group,P1,Product,0,1,100,100\n")
	}

	cr, err := NewSalesReader(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("NewSalesReader() error = %v", err)
	}

	rows, inserted, err := importRows(context.Background(), st, cr, 2, importNow, slog.Default())
	if err != nil {
		t.Fatalf("importRows() error = %v", err)
	}
	if rows != 5 || inserted != 5 {
		t.Errorf("rows = %d inserted = %d, want 5 and 5", rows, inserted)
	}
}
