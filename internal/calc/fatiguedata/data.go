package fatiguedata

import (
	"fmt"
	"io"
	"math"
	"strings"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/importer"
	"Durability/internal/plot"
)

// Columns are the names the three upload columns are given, in order.
var Columns = []string{"load", "cycles", "fracture"}

// Record is one specimen result. Fracture is false for a run-out.
type Record struct {
	Load     float64 `json:"load"`
	Cycles   float64 `json:"cycles"`
	Fracture bool    `json:"fracture"`
}

type Data []Record

// Parse reads an upload with exactly three columns: load, cycles and a
// fracture flag. Column titles are ignored; a header row is optional.
func Parse(filename string, r io.Reader) (Data, error) {
	rows, err := importer.ReadRows(filename, r)
	if err != nil {
		return nil, err
	}
	first := 1
	if len(rows) > 0 && importer.IsHeader(rows[0]) {
		if len(rows[0]) != len(Columns) {
			return nil, calcerr.Invalid("header", "want %d columns (%s), got %d",
				len(Columns), strings.Join(Columns, ", "), len(rows[0]))
		}
		rows = rows[1:]
		first = 2
	}
	data := make(Data, 0, len(rows))
	for i, row := range rows {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, calcerr.Invalid(fmt.Sprintf("row %d", i+first), "%v", err)
		}
		data = append(data, rec)
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}
	return data, nil
}

func parseRecord(row []string) (Record, error) {
	if len(row) != len(Columns) {
		return Record{}, fmt.Errorf("want %d columns, got %d", len(Columns), len(row))
	}
	load, err := importer.ParseFloat(row[0])
	if err != nil {
		return Record{}, fmt.Errorf("load: %w", err)
	}
	cycles, err := importer.ParseFloat(row[1])
	if err != nil {
		return Record{}, fmt.Errorf("cycles: %w", err)
	}
	fracture, err := ParseFracture(row[2])
	if err != nil {
		return Record{}, err
	}
	return Record{Load: load, Cycles: cycles, Fracture: fracture}, nil
}

// ParseFracture reads a boolean-like fracture flag.
func ParseFracture(cell string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "1", "1.0", "true", "t", "yes", "y", "fracture", "broken", "x":
		return true, nil
	case "0", "0.0", "false", "f", "no", "n", "runout", "run-out", "run out", "":
		return false, nil
	}
	return false, fmt.Errorf("fracture: %q is not a boolean flag", cell)
}

func (d Data) Validate() error {
	if len(d) == 0 {
		return calcerr.Invalid("fatigue data", "no records")
	}
	for i, rec := range d {
		if !(rec.Load > 0) || math.IsInf(rec.Load, 0) {
			return calcerr.Invalid("load", "record %d: %g must be positive", i+1, rec.Load)
		}
		if !(rec.Cycles > 0) || math.IsInf(rec.Cycles, 0) {
			return calcerr.Invalid("cycles", "record %d: %g must be positive", i+1, rec.Cycles)
		}
	}
	return nil
}

func (d Data) filter(fracture bool) Data {
	var out Data
	for _, rec := range d {
		if rec.Fracture == fracture {
			out = append(out, rec)
		}
	}
	return out
}

func (d Data) Fractures() Data { return d.filter(true) }

func (d Data) Runouts() Data { return d.filter(false) }

func (d Data) Loads() []float64 {
	out := make([]float64, len(d))
	for i, rec := range d {
		out[i] = rec.Load
	}
	return out
}

func (d Data) Cycles() []float64 {
	out := make([]float64, len(d))
	for i, rec := range d {
		out[i] = rec.Cycles
	}
	return out
}

// CycleRange returns the smallest and largest cycle count.
func (d Data) CycleRange() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, rec := range d {
		lo = math.Min(lo, rec.Cycles)
		hi = math.Max(hi, rec.Cycles)
	}
	return lo, hi
}

// CycleAxis returns n log-spaced cycle counts spanning CycleRange.
func (d Data) CycleAxis(n int) ([]float64, error) {
	lo, hi := d.CycleRange()
	return plot.LogSpace(lo, hi, n)
}

type Stats struct {
	Count      int     `json:"count"`
	Fractures  int     `json:"fractures"`
	Runouts    int     `json:"runouts"`
	LoadLevels int     `json:"load_levels"`
	MinLoad    float64 `json:"min_load"`
	MaxLoad    float64 `json:"max_load"`
	MinCycles  float64 `json:"min_cycles"`
	MaxCycles  float64 `json:"max_cycles"`
}

// Summary counts the records of d. It assumes d has passed Validate.
func (d Data) Summary() Stats {
	s := Stats{Count: len(d), MinLoad: math.Inf(1), MaxLoad: math.Inf(-1)}
	levels := make(map[float64]struct{})
	for _, rec := range d {
		if rec.Fracture {
			s.Fractures++
		} else {
			s.Runouts++
		}
		levels[rec.Load] = struct{}{}
		s.MinLoad = math.Min(s.MinLoad, rec.Load)
		s.MaxLoad = math.Max(s.MaxLoad, rec.Load)
	}
	s.LoadLevels = len(levels)
	s.MinCycles, s.MaxCycles = d.CycleRange()
	return s
}
