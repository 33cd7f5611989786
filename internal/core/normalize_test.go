package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// ----------------------------------------------------------------------------
// NormalizeText Tests
// ----------------------------------------------------------------------------

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain value",
			input: "SP001",
			want:  "SP001",
		},
		{
			name:  "surrounding whitespace",
			input: "  Trà sữa  ",
			want:  "Trà sữa",
		},
		{
			name:  "leading BOM",
			input: "\uFEFFThời gian tạo đơn",
			want:  "Thời gian tạo đơn",
		},
		{
			name:  "BOM and whitespace",
			input: " \uFEFFKH01 ",
			want:  "KH01",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeText(tt.input); got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// NormalizeInt Tests
// ----------------------------------------------------------------------------

func TestNormalizeInt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   int
		want  int
	}{
		{name: "plain integer", input: "12", def: 1, want: 12},
		{name: "whitespace", input: " 7 ", def: 1, want: 7},
		{name: "negative", input: "-3", def: 1, want: -3},
		{name: "empty uses default", input: "", def: 1, want: 1},
		{name: "garbage uses default", input: "abc", def: 5, want: 5},
		{name: "decimal uses default", input: "2.5", def: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeInt(tt.input, tt.def); got != tt.want {
				t.Errorf("NormalizeInt(%q, %d) = %d, want %d", tt.input, tt.def, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// NormalizeDecimal Tests
// ----------------------------------------------------------------------------

func TestNormalizeDecimal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		def   string
		want  string
	}{
		{name: "plain decimal", input: "123.45", def: "0", want: "123.45"},
		{name: "thousands separators", input: "1,234,567.89", def: "0", want: "1234567.89"},
		{name: "integer", input: "50000", def: "0", want: "50000"},
		{name: "empty uses default", input: "", def: "9.99", want: "9.99"},
		{name: "garbage uses default", input: "n/a", def: "0", want: "0"},
		{name: "negative", input: "-15,000", def: "0", want: "-15000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := decimal.RequireFromString(tt.def)
			got := NormalizeDecimal(tt.input, def)
			if got.String() != tt.want {
				t.Errorf("NormalizeDecimal(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeDecimal_ExactPrecision(t *testing.T) {
	// 0.1 + 0.2 style values must survive exactly, not as binary floats.
	got := NormalizeDecimal("0.1", decimal.Zero).Add(NormalizeDecimal("0.2", decimal.Zero))
	if got.String() != "0.3" {
		t.Errorf("0.1 + 0.2 = %s, want 0.3", got)
	}
}

// ----------------------------------------------------------------------------
// NormalizeTimestamp Tests
// ----------------------------------------------------------------------------

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantOK  bool
		want    time.Time
	}{
		{
			name:   "ISO datetime localized to UTC+7",
			input:  "2024-03-15 10:30:00",
			wantOK: true,
			want:   time.Date(2024, 3, 15, 10, 30, 0, 0, SaigonTime),
		},
		{
			name:   "ISO date only",
			input:  "2024-03-15",
			wantOK: true,
			want:   time.Date(2024, 3, 15, 0, 0, 0, 0, SaigonTime),
		},
		{
			name:   "day-first slashed",
			input:  "15/03/2024 10:30",
			wantOK: true,
			want:   time.Date(2024, 3, 15, 10, 30, 0, 0, SaigonTime),
		},
		{
			name:   "RFC3339 keeps its own offset",
			input:  "2024-03-15T10:30:00+02:00",
			wantOK: true,
			want:   time.Date(2024, 3, 15, 10, 30, 0, 0, time.FixedZone("", 2*60*60)),
		},
		{
			name:   "with BOM and whitespace",
			input:  " \uFEFF2024-03-15 10:30:00 ",
			wantOK: true,
			want:   time.Date(2024, 3, 15, 10, 30, 0, 0, SaigonTime),
		},
		{
			name:   "empty",
			input:  "",
			wantOK: false,
		},
		{
			name:   "garbage",
			input:  "yesterday",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := NormalizeTimestamp(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("NormalizeTimestamp(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("NormalizeTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// Numeric conversion Tests
// ----------------------------------------------------------------------------

func TestNumericRoundTrip(t *testing.T) {
	tests := []string{"0", "1", "123.45", "-15000", "99999999.99"}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			d := decimal.RequireFromString(s)
			n := NumericFromDecimal(d)
			if !n.Valid {
				t.Fatalf("NumericFromDecimal(%s) not valid", s)
			}
			back := DecimalFromNumeric(n)
			if !back.Equal(d) {
				t.Errorf("round trip %s -> %s", d, back)
			}
		})
	}
}
