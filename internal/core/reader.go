package core

// reader.go builds the CSV reader for a raw sales export.
//
// Export files arrive with three quirks that encoding/csv does not
// handle on its own: an optional UTF-8 BOM (Windows tooling), a field
// separator that varies between semicolon, tab and comma, and the odd
// unescaped quote. The BOM is stripped at the reader level so it can
// never leak into the first header cell; the separator is sniffed from
// the first line without consuming it.

import (
	"bufio"
	"encoding/csv"
	"io"
)

// sniffLimit bounds how far ahead the delimiter sniffer looks for the
// end of the first line.
const sniffLimit = 64 * 1024

// DetectDelimiter picks the field separator from the first line of a
// file: semicolon if present, else tab, else comma.
func DetectDelimiter(firstLine string) rune {
	for _, c := range firstLine {
		if c == ';' {
			return ';'
		}
	}
	for _, c := range firstLine {
		if c == '\t' {
			return '\t'
		}
	}
	return ','
}

// NewSalesReader wraps r with BOM stripping, sniffs the delimiter from
// the first line, and returns a csv.Reader positioned at the start of
// the file. The reader tolerates unescaped quotes and rows with a
// deviating field count; the row parser deals with short rows.
func NewSalesReader(r io.Reader) (*csv.Reader, error) {
	br := bufio.NewReaderSize(newBOMReader(r), sniffLimit)

	firstLine, err := peekFirstLine(br)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(br)
	cr.Comma = DetectDelimiter(firstLine)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	return cr, nil
}

// peekFirstLine returns the first line of the buffered reader without
// consuming it. A file smaller than one line is returned whole.
func peekFirstLine(br *bufio.Reader) (string, error) {
	peeked, err := br.Peek(sniffLimit)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return "", err
	}
	for i, b := range peeked {
		if b == '\n' {
			return string(peeked[:i]), nil
		}
	}
	return string(peeked), nil
}

// bomReader wraps an io.Reader and skips a leading UTF-8 BOM
// (0xEF 0xBB 0xBF) if present.
type bomReader struct {
	reader  io.Reader
	checked bool
	pending []byte
}

func newBOMReader(r io.Reader) *bomReader {
	return &bomReader{reader: r}
}

// Read implements io.Reader. The first call checks for and drops the BOM.
func (b *bomReader) Read(p []byte) (int, error) {
	if !b.checked {
		b.checked = true

		var head [3]byte
		n, err := io.ReadFull(b.reader, head[:])
		if err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if n == 0 {
			return 0, err
		}
		if err != nil && err != io.EOF {
			return 0, err
		}

		if n == 3 && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
			// BOM found, drop it
			b.pending = nil
		} else {
			b.pending = append(b.pending, head[:n]...)
		}
	}

	if len(b.pending) > 0 {
		n := copy(p, b.pending)
		b.pending = b.pending[n:]
		return n, nil
	}

	return b.reader.Read(p)
}
