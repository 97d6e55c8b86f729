package damage

import (
	"bytes"
	"encoding/json"
	"math"
	"net/http"
	"slices"
	"sort"

	"Durability/internal/calc/woehler"
	"Durability/internal/plot"
	"Durability/internal/respond"
)

// Chart cycle axis of the damage tool: 1e1 to 1e12.
const (
	chartMinCycles = 1e1
	chartMaxCycles = 1e12
	chartPoints    = 200
)

type MethodResult struct {
	Curve           woehler.Curve `json:"curve"`
	PerLevel        []float64     `json:"per_level"`
	Total           float64       `json:"total"`
	BlocksToFailure *float64      `json:"blocks_to_failure"`
	Summary         string        `json:"summary"`
}

type CalcResult struct {
	Spectrum Spectrum                `json:"spectrum"`
	Selected []string                `json:"selected"`
	Results  map[string]MethodResult `json:"results"`
}

type Handler struct {
	Materials Materials
}

// Evaluate resolves the request and runs Summarize.
func (h *Handler) Evaluate(in *Input) (map[string]woehler.Curve, Result, error) {
	methods, _, err := in.Resolve(h.Materials)
	if err != nil {
		return nil, nil, err
	}
	res, err := Summarize(in.Spectrum, methods, in.Selected)
	if err != nil {
		return nil, nil, err
	}
	return methods, res, nil
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	methods, res, err := h.Evaluate(&input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	out := CalcResult{Spectrum: input.Spectrum, Selected: input.Selected, Results: make(map[string]MethodResult, len(res))}
	for _, name := range input.Selected {
		s := res[name]
		mr := MethodResult{
			Curve:    methods[name],
			PerLevel: s.PerLevel,
			Total:    s.Total,
			Summary:  TotalLine(name, s.Total),
		}
		if b := s.BlocksToFailure(); !math.IsInf(b, 0) {
			mr.BlocksToFailure = &b
		}
		out.Results[name] = mr
	}
	respond.JSON(w, http.StatusOK, out)
}

// Chart renders the spectrum together with the S-N band of each selected
// method. ?format=svg switches from PNG.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	format, err := plot.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	methods, _, err := h.Evaluate(&input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	fig, err := h.Figure(input, methods)
	if err != nil {
		respond.Error(w, err)
		return
	}
	var buf bytes.Buffer
	if err := fig.Render(&buf, format); err != nil {
		respond.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Write(buf.Bytes())
}

// Figure builds the chart drawn by Chart; the PDF report embeds it too.
func (h *Handler) Figure(input Input, methods map[string]woehler.Curve) (*plot.Figure, error) {
	cycles, err := plot.LogSpace(chartMinCycles, chartMaxCycles, chartPoints)
	if err != nil {
		return nil, err
	}
	return Overlay(plot.NewFigure("Damage calculation"), input.Spectrum, methods, input.Selected, cycles, input.Colors)
}

// XLSX returns the evaluation as an Excel workbook.
func (h *Handler) XLSX(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	_, res, err := h.Evaluate(&input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, input.Spectrum, res, input.Selected); err != nil {
		respond.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"damage.xlsx\"")
	w.Write(buf.Bytes())
}

// MethodNames lists the canonical methods first, then any others sorted.
func MethodNames(methods map[string]woehler.Curve) []string {
	names := make([]string, 0, len(methods))
	for _, m := range MethodOrder {
		if _, ok := methods[m]; ok {
			names = append(names, m)
		}
	}
	var extra []string
	for m := range methods {
		if !slices.Contains(MethodOrder, m) {
			extra = append(extra, m)
		}
	}
	sort.Strings(extra)
	return append(names, extra...)
}
