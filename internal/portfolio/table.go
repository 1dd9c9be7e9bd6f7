package portfolio

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Helper: get file extension
func fileExt(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

// ReadTable parses an uploaded disclosure file into a raw [][]string. CSV
// delimiter is sniffed (comma/semicolon/tab) and a UTF-8 BOM is discarded;
// xlsx reads the first sheet.
func ReadTable(r io.Reader, filename string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	switch fileExt(filename) {
	case ".csv":
		br := bufio.NewReader(bytes.NewReader(data))
		peek, _ := br.Peek(1024)
		delimiter := ','
		if bytes.Contains(peek, []byte(";")) {
			delimiter = ';'
		} else if bytes.Contains(peek, []byte("\t")) {
			delimiter = '\t'
		}
		if len(peek) >= 3 && peek[0] == 0xEF && peek[1] == 0xBB && peek[2] == 0xBF {
			br.Discard(3)
		}

		csvr := csv.NewReader(br)
		csvr.Comma = delimiter
		csvr.TrimLeadingSpace = true
		csvr.FieldsPerRecord = -1 // allow variable length rows
		return csvr.ReadAll()

	case ".xlsx", ".xlsm":
		f, err := excelize.OpenReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheet := f.GetSheetName(0)
		return f.GetRows(sheet)

	default:
		return nil, errors.New("unsupported file type: " + filename)
	}
}

// normalizeColumnName collapses the newline-wrapped header cells the sheets
// produce into single-spaced lowercase text for alias matching.
func normalizeColumnName(h string) string {
	h = strings.ReplaceAll(h, "\n", " ")
	h = strings.Join(strings.Fields(h), " ")
	return strings.ToLower(h)
}

// columnIndex maps each canonical field the profile knows to its position in
// the header row. Fields absent from this upload's layout are simply not in
// the map; cellFor returns "" for them.
type columnIndex map[Field]int

// ResolveColumns locates the profile's fields in a header row: exact alias
// match first (in declared alias order), then the profile's prefix fallback.
// A missing required field aborts the whole upload.
func ResolveColumns(p *Profile, header []string) (columnIndex, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeColumnName(h)
	}

	idx := make(columnIndex)
	for field, aliases := range p.Columns {
		for _, alias := range aliases {
			want := normalizeColumnName(alias)
			for i, h := range normalized {
				if h == want {
					idx[field] = i
					break
				}
			}
			if _, ok := idx[field]; ok {
				break
			}
		}
	}
	for field, prefix := range p.PrefixColumns {
		if _, ok := idx[field]; ok {
			continue
		}
		for i, h := range normalized {
			if strings.HasPrefix(h, prefix) {
				idx[field] = i
				break
			}
		}
	}

	for _, field := range p.RequiredFields() {
		if _, ok := idx[field]; !ok {
			return nil, &MissingColumnError{AMC: p.AMC, Field: field}
		}
	}
	return idx, nil
}

// cellFor returns the raw cell for a field, or "" when the column is absent
// from this layout or the row is short.
func (c columnIndex) cellFor(row []string, field Field) string {
	i, ok := c[field]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
