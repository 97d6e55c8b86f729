// Package results writes and reads the S-N evaluation download: one column
// per evaluation method, one row per curve parameter.
package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/woehler"
)

const (
	ContentType = "text/csv"
	FileName    = "SN_results.csv"
)

// Params are the row names in download order. k_2 is only written when at
// least one curve has it.
var Params = []string{"k_1", "ND", "SD", "TN", "TS", "k_2"}

func value(c woehler.Curve, param string) (string, bool) {
	var v float64
	switch param {
	case "k_1":
		v = c.K1
	case "ND":
		v = c.ND
	case "SD":
		v = c.SD
	case "TN":
		v = c.TN
	case "TS":
		v = c.TS
	case "k_2":
		if c.K2 == nil {
			return "", false
		}
		v = *c.K2
	}
	return strconv.FormatFloat(v, 'g', -1, 64), true
}

func set(c *woehler.Curve, param string, v float64) {
	switch param {
	case "k_1":
		c.K1 = v
	case "ND":
		c.ND = v
	case "SD":
		c.SD = v
	case "TN":
		c.TN = v
	case "TS":
		c.TS = v
	case "k_2":
		c.K2 = woehler.Slope(v)
	}
}

// WriteCSV writes the curves of methods, in that order. Nothing is written
// unless every selected curve is valid.
func WriteCSV(w io.Writer, curves map[string]woehler.Curve, methods []string) error {
	withK2 := false
	for _, m := range methods {
		c, ok := curves[m]
		if !ok {
			return &calcerr.ConfigurationError{Method: m}
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("%s: %w", m, err)
		}
		withK2 = withK2 || c.K2 != nil
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{""}, methods...)); err != nil {
		return err
	}
	for _, p := range Params {
		if p == "k_2" && !withK2 {
			continue
		}
		row := []string{p}
		for _, m := range methods {
			v, _ := value(curves[m], p)
			row = append(row, v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a download back into curves and the method column order.
// Unknown parameter rows are ignored.
func ReadCSV(r io.Reader) (map[string]woehler.Curve, []string, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, nil, calcerr.Invalid("results", "%v", err)
	}
	if len(rows) == 0 || len(rows[0]) < 2 {
		return nil, nil, calcerr.Invalid("results", "no method columns")
	}
	methods := rows[0][1:]
	curves := make(map[string]woehler.Curve, len(methods))
	known := make(map[string]bool, len(Params))
	for _, p := range Params {
		known[p] = true
	}
	for _, row := range rows[1:] {
		param := strings.TrimSpace(row[0])
		if !known[param] {
			continue
		}
		for i, m := range methods {
			if i+1 >= len(row) || strings.TrimSpace(row[i+1]) == "" {
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
			if err != nil {
				return nil, nil, calcerr.Invalid(param, "method %q: %q is not a number", m, row[i+1])
			}
			c := curves[m]
			set(&c, param, v)
			curves[m] = c
		}
	}
	for _, m := range methods {
		if _, ok := curves[m]; !ok {
			return nil, nil, calcerr.Invalid("results", "column %q has no values", m)
		}
	}
	return curves, methods, nil
}

// Filename returns the attachment header value for the download.
func Filename() string {
	return fmt.Sprintf("attachment; filename=%q", FileName)
}
