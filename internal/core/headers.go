package core

// headers.go defines the recognized column headers of the sales export.
//
// The source files carry Vietnamese-diacritic headers, but some export
// paths transliterate them to ASCII, and files written by Windows tools
// may leave a BOM glued to the first header cell. Each logical field
// therefore lists every alias it is known under. Matching is an exact
// string comparison: header variants are NOT case-normalized, so a new
// spelling must be added here explicitly rather than fuzzy-matched.

// Field identifies one logical column of the sales export.
type Field int

const (
	FieldOrderTime Field = iota
	FieldOrderCode
	FieldCustomerCode
	FieldCustomerName
	FieldSegmentCode
	FieldSegmentDesc
	FieldGroupCode
	FieldGroupName
	FieldProductCode
	FieldProductName
	FieldCostPrice
	FieldQuantity
	FieldUnitPrice
	FieldLineTotal
)

// headerAliases maps each logical field to the header spellings it is
// recognized under: the Vietnamese form, the ASCII transliteration,
// and (for the customary first column) the BOM-prefixed variant.
var headerAliases = map[Field][]string{
	FieldOrderTime:    {"Thời gian tạo đơn", "\uFEFFThời gian tạo đơn", "Thoi gian tao don"},
	FieldOrderCode:    {"Mã đơn hàng", "Ma don hang"},
	FieldCustomerCode: {"Mã khách hàng", "Ma khach hang"},
	FieldCustomerName: {"Tên khách hàng", "Ten khach hang"},
	FieldSegmentCode:  {"Mã PKKH", "Ma PKKH"},
	FieldSegmentDesc:  {"Mô tả Phân Khúc Khách hàng", "Mo ta Phan Khuc"},
	FieldGroupCode:    {"Mã nhóm hàng", "Ma nhom hang"},
	FieldGroupName:    {"Tên nhóm hàng", "Ten nhom hang"},
	FieldProductCode:  {"Mã mặt hàng", "Ma mat hang"},
	FieldProductName:  {"Tên mặt hàng", "Ten mat hang"},
	FieldCostPrice:    {"Giá Nhập", "Gia Nhap"},
	FieldQuantity:     {"SL", "So luong"},
	FieldUnitPrice:    {"Đơn giá", "Don gia"},
	FieldLineTotal:    {"Thành tiền", "Thanh tien"},
}

// headerMap maps logical fields to their column position in the file.
// Fields whose header is absent have no entry; their cells read as "".
type headerMap map[Field]int

// mapHeader resolves a header row against the alias table.
// The first alias found wins; later columns with a duplicate alias are
// ignored.
func mapHeader(record []string) headerMap {
	byName := make(map[string]int, len(record))
	for i, cell := range record {
		if _, seen := byName[cell]; !seen {
			byName[cell] = i
		}
	}

	hm := make(headerMap, len(headerAliases))
	for field, aliases := range headerAliases {
		for _, alias := range aliases {
			if pos, ok := byName[alias]; ok {
				hm[field] = pos
				break
			}
		}
	}
	return hm
}

// cell returns the raw cell for a logical field, or "" when the field's
// column is absent from the file or the row is short.
func (hm headerMap) cell(record []string, f Field) string {
	pos, ok := hm[f]
	if !ok || pos >= len(record) {
		return ""
	}
	return record[pos]
}
