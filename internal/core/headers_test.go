package core

import "testing"

func TestMapHeader_VietnameseHeaders(t *testing.T) {
	header := []string{
		"Thời gian tạo đơn", "Mã đơn hàng", "Mã khách hàng", "Tên khách hàng",
		"Mã PKKH", "Mô tả Phân Khúc Khách hàng", "Mã nhóm hàng", "Tên nhóm hàng",
		"Mã mặt hàng", "Tên mặt hàng", "Giá Nhập", "SL", "Đơn giá", "Thành tiền",
	}

	hm := mapHeader(header)
	if len(hm) != 14 {
		t.Fatalf("mapped %d fields, want 14", len(hm))
	}
	if pos := hm[FieldOrderTime]; pos != 0 {
		t.Errorf("FieldOrderTime at %d, want 0", pos)
	}
	if pos := hm[FieldLineTotal]; pos != 13 {
		t.Errorf("FieldLineTotal at %d, want 13", pos)
	}
}

func TestMapHeader_TransliteratedHeaders(t *testing.T) {
	header := []string{
		"Thoi gian tao don", "Ma don hang", "Ma khach hang", "Ten khach hang",
		"Ma PKKH", "Mo ta Phan Khuc", "Ma nhom hang", "Ten nhom hang",
		"Ma mat hang", "Ten mat hang", "Gia Nhap", "So luong", "Don gia", "Thanh tien",
	}

	hm := mapHeader(header)
	if len(hm) != 14 {
		t.Fatalf("mapped %d fields, want 14", len(hm))
	}
}

func TestMapHeader_BOMPrefixedFirstColumn(t *testing.T) {
	header := []string{"\uFEFFThời gian tạo đơn", "Mã đơn hàng"}

	hm := mapHeader(header)
	if pos, ok := hm[FieldOrderTime]; !ok || pos != 0 {
		t.Errorf("FieldOrderTime = (%d, %v), want (0, true)", pos, ok)
	}
}

func TestMapHeader_ExactMatchOnly(t *testing.T) {
	// Header matching is deliberately case-sensitive: unknown spellings
	// must be added to the alias table, not fuzzy-matched.
	header := []string{"mã đơn hàng", "MA DON HANG"}

	hm := mapHeader(header)
	if _, ok := hm[FieldOrderCode]; ok {
		t.Error("case-variant header should not match")
	}
}

func TestMapHeader_MissingColumns(t *testing.T) {
	header := []string{"Mã đơn hàng", "Đơn giá"}

	hm := mapHeader(header)
	if len(hm) != 2 {
		t.Fatalf("mapped %d fields, want 2", len(hm))
	}

	row := []string{"DH001", "25000"}
	if got := hm.cell(row, FieldOrderCode); got != "DH001" {
		t.Errorf("order code = %q, want %q", got, "DH001")
	}
	if got := hm.cell(row, FieldCustomerName); got != "" {
		t.Errorf("absent column = %q, want empty", got)
	}
}

func TestHeaderMapCell_ShortRow(t *testing.T) {
	header := []string{"Mã đơn hàng", "Đơn giá"}
	hm := mapHeader(header)

	// Row shorter than the header must read as empty, not panic.
	row := []string{"DH001"}
	if got := hm.cell(row, FieldUnitPrice); got != "" {
		t.Errorf("short row cell = %q, want empty", got)
	}
}
