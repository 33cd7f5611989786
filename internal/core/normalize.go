package core

// normalize.go provides field-level normalization for raw CSV values.
//
// These functions handle the messy reality of exported sales data:
//   - Surrounding whitespace and UTF-8 BOM remnants in cells
//   - Thousands separators in money columns
//   - Free-form timestamps with and without time-of-day
//   - Missing or garbage values in numeric columns
//
// Parse failures never abort a row: every normalizer degrades to the
// caller-supplied default. Money values are parsed as exact decimals
// (shopspring/decimal) because they feed fixed-point monetary totals;
// binary floats would accumulate rounding drift.

import (
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// SaigonTime is the reference timezone attached to timestamps that
// carry no offset of their own. Vietnam does not observe DST, so a
// fixed UTC+7 zone is exact and avoids a tzdata dependency.
var SaigonTime = time.FixedZone("ICT", 7*60*60)

// timestampLayouts are tried in order. RFC3339 comes first because it
// carries its own offset; the remaining layouts are naive and get
// localized to SaigonTime. Day-first layouts match Vietnamese exports.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006 15:04:05",
	"2/1/2006 15:04",
	"2/1/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"20060102",
}

// NormalizeText trims surrounding whitespace and strips a leading
// byte-order mark. Empty or absent input yields the empty string.
func NormalizeText(raw string) string {
	s := strings.TrimSpace(raw)
	return strings.TrimPrefix(s, "\uFEFF")
}

// NormalizeInt parses an integer from normalized text.
// Returns def on any parse failure.
func NormalizeInt(raw string, def int) int {
	s := NormalizeText(raw)
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// NormalizeDecimal parses an exact decimal from normalized text,
// stripping thousands-separator commas first. Returns def on failure.
func NormalizeDecimal(raw string, def decimal.Decimal) decimal.Decimal {
	s := strings.ReplaceAll(NormalizeText(raw), ",", "")
	if s == "" {
		return def
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return d
}

// NormalizeTimestamp parses a free-form date/time string. Values
// without a timezone offset are localized to SaigonTime. The second
// return value is false when the input is absent or unparseable;
// failures are logged as warnings by the caller, never treated as
// fatal.
func NormalizeTimestamp(raw string) (time.Time, bool) {
	s := NormalizeText(raw)
	if s == "" {
		return time.Time{}, false
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, SaigonTime); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// warnUnparseableTimestamp emits the non-fatal diagnostic for a
// timestamp that could not be parsed.
func warnUnparseableTimestamp(logger *slog.Logger, raw string) {
	logger.Warn("cannot parse timestamp, defaulting to import time", "value", raw)
}

// NumericFromDecimal converts an exact decimal to the pgtype.Numeric
// wire representation.
func NumericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric
	if err := n.Scan(d.String()); err != nil {
		// decimal.Decimal.String always produces a valid numeric literal
		return pgtype.Numeric{}
	}
	return n
}

// DecimalFromNumeric converts a pgtype.Numeric back to an exact
// decimal. Invalid (NULL) numerics yield zero.
func DecimalFromNumeric(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	v, err := n.Value()
	if err != nil {
		return decimal.Zero
	}
	s, ok := v.(string)
	if !ok {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
