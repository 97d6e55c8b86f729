package damage

import (
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "damage"

// WriteXLSX writes the spectrum with one damage column per method and a
// closing row of damage sums.
func WriteXLSX(w io.Writer, spectrum Spectrum, result Result, methods []string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}
	header := append([]any{"amplitude", "cycles"}, toAny(methods)...)
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	for i, l := range spectrum {
		row := []any{l.Amplitude, l.Cycles}
		for _, m := range methods {
			if per := result[m].PerLevel; i < len(per) {
				row = append(row, per[i])
			} else {
				row = append(row, "")
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
	}
	totals := []any{"total", ""}
	for _, m := range methods {
		totals = append(totals, result[m].Total)
	}
	cell, err := excelize.CoordinatesToCellName(1, len(spectrum)+2)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &totals); err != nil {
		return err
	}
	return f.Write(w)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
