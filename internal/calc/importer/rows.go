// Package importer reads tabular uploads (CSV-like text or xlsx) into rows of
// cells and turns them into load spectra.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"Durability/internal/calc/calcerr"
)

// MaxUploadSize bounds every uploaded table.
const MaxUploadSize = 10 << 20 // 10MB

// ReadRows reads all rows of an upload. Files ending in .xlsx are read from
// their first sheet, anything else as delimited text.
func ReadRows(filename string, r io.Reader) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(filename), ".xlsx") {
		return readXLSX(r)
	}
	return ReadDelimited(r)
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, calcerr.Invalid("upload", "not a readable xlsx file: %v", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, calcerr.Invalid("upload", "sheet %q: %v", sheet, err)
	}
	return dropEmpty(rows), nil
}

// ReadDelimited reads comma, semicolon or tab separated text. The delimiter
// is taken from the first line.
func ReadDelimited(r io.Reader) ([][]string, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, err
	}
	cr := csv.NewReader(br)
	cr.Comma = sniffDelimiter(head)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, calcerr.Invalid("upload", "%v", err)
	}
	return dropEmpty(rows), nil
}

func sniffDelimiter(head []byte) rune {
	line, _, _ := bytes.Cut(head, []byte("\n"))
	best, bestCount := ',', bytes.Count(line, []byte(","))
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func dropEmpty(rows [][]string) [][]string {
	out := rows[:0]
	for _, row := range rows {
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// thousandsGroup matches cells like 1,000 or -25,000 where the comma may be
// a thousands separator as well as a decimal comma.
var thousandsGroup = regexp.MustCompile(`^[+-]?[1-9][0-9]{0,2},[0-9]{3}$`)

// ParseFloat parses a numeric cell, accepting a decimal comma. Cells where
// the comma could also group thousands are rejected.
func ParseFloat(cell string) (float64, error) {
	s := strings.TrimSpace(cell)
	if thousandsGroup.MatchString(s) {
		return 0, fmt.Errorf("%q is ambiguous: write it without a thousands separator or with a decimal point", cell)
	}
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", cell)
	}
	return v, nil
}

// IsHeader reports whether the first row is a header rather than data.
func IsHeader(row []string) bool {
	if len(row) == 0 {
		return false
	}
	if thousandsGroup.MatchString(strings.TrimSpace(row[0])) {
		return false
	}
	_, err := ParseFloat(row[0])
	return err != nil
}
