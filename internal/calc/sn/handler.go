package sn

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/fatiguedata"
	"Durability/internal/calc/importer"
	"Durability/internal/calc/results"
	"Durability/internal/calc/woehler"
	"Durability/internal/plot"
	"Durability/internal/respond"
)

type UploadResult struct {
	Stats   fatiguedata.Stats `json:"stats"`
	Records fatiguedata.Data  `json:"records"`
}

type DownloadInput struct {
	Curves  map[string]woehler.Curve `json:"curves"`
	Methods []string                 `json:"methods"`
}

type Handler struct{}

func readData(w http.ResponseWriter, r *http.Request) (fatiguedata.Data, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, importer.MaxUploadSize)
	if err := r.ParseMultipartForm(importer.MaxUploadSize); err != nil {
		respond.Message(w, http.StatusBadRequest, "File too big or not multipart")
		return nil, false
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respond.Message(w, http.StatusBadRequest, "File required")
		return nil, false
	}
	defer file.Close()

	data, err := fatiguedata.Parse(header.Filename, file)
	if err != nil {
		respond.Error(w, err)
		return nil, false
	}
	return data, true
}

// Upload parses the fatigue data file and echoes it back with counts.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	data, ok := readData(w, r)
	if !ok {
		return
	}
	respond.JSON(w, http.StatusOK, UploadResult{Stats: data.Summary(), Records: data})
}

// Chart draws the uploaded data with the selected curves. Curves come either
// as a JSON object in the "curves" field or as a results file in "results".
// "methods" is a comma separated selection; empty selects every curve.
func (h *Handler) Chart(w http.ResponseWriter, r *http.Request) {
	format, err := plot.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		respond.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	data, ok := readData(w, r)
	if !ok {
		return
	}
	curves, order, err := formCurves(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	methods := splitList(r.FormValue("methods"))
	if len(methods) == 0 {
		methods = order
	}
	ev, err := Evaluate(data, curves, methods, splitList(r.FormValue("colors")))
	if err != nil {
		respond.Error(w, err)
		return
	}
	var buf bytes.Buffer
	if err := ev.Figure.Render(&buf, format); err != nil {
		respond.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Write(buf.Bytes())
}

func formCurves(r *http.Request) (map[string]woehler.Curve, []string, error) {
	if raw := r.FormValue("curves"); raw != "" {
		var curves map[string]woehler.Curve
		if err := json.Unmarshal([]byte(raw), &curves); err != nil {
			return nil, nil, calcerr.Invalid("curves", "%v", err)
		}
		return curves, sortedKeys(curves), nil
	}
	file, _, err := r.FormFile("results")
	if err != nil {
		return nil, nil, calcerr.Invalid("curves", "either a curves field or a results file is required")
	}
	defer file.Close()
	return results.ReadCSV(file)
}

// Download returns the curve parameters as the CSV results table.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var input DownloadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if len(input.Methods) == 0 {
		input.Methods = sortedKeys(input.Curves)
	}
	if len(input.Methods) == 0 {
		respond.Message(w, http.StatusBadRequest, "No curves to download")
		return
	}
	var buf bytes.Buffer
	if err := results.WriteCSV(&buf, input.Curves, input.Methods); err != nil {
		respond.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", results.ContentType+"; charset=utf-8")
	w.Header().Set("Content-Disposition", results.Filename())
	w.Write(buf.Bytes())
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func sortedKeys(m map[string]woehler.Curve) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
