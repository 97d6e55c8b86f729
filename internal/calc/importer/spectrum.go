package importer

import (
	"fmt"
	"io"
	"net/http"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/damage"
	"Durability/internal/respond"
)

// ParseSpectrum reads a two-column amplitude/cycles table. A header row is
// optional.
func ParseSpectrum(filename string, r io.Reader) (damage.Spectrum, error) {
	rows, err := ReadRows(filename, r)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && IsHeader(rows[0]) {
		rows = rows[1:]
	}
	spectrum := make(damage.Spectrum, 0, len(rows))
	for i, row := range rows {
		field := fmt.Sprintf("row %d", i+1)
		if len(row) != 2 {
			return nil, calcerr.Invalid(field, "want 2 columns (amplitude, cycles), got %d", len(row))
		}
		amp, err := ParseFloat(row[0])
		if err != nil {
			return nil, calcerr.Invalid(field, "amplitude: %v", err)
		}
		cyc, err := ParseFloat(row[1])
		if err != nil {
			return nil, calcerr.Invalid(field, "cycles: %v", err)
		}
		spectrum = append(spectrum, damage.Level{Amplitude: amp, Cycles: cyc})
	}
	if err := spectrum.Validate(); err != nil {
		return nil, err
	}
	return spectrum, nil
}

type SpectrumResult struct {
	Count    int             `json:"count"`
	Spectrum damage.Spectrum `json:"spectrum"`
}

type Handler struct{}

// Spectrum parses the multipart "file" field into a load spectrum.
func (h *Handler) Spectrum(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "File required")
		return
	}
	defer file.Close()

	spectrum, err := ParseSpectrum(header.Filename, file)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, SpectrumResult{Count: len(spectrum), Spectrum: spectrum})
}
