package report

import (
	"bytes"
	"encoding/json"
	"net/http"

	"Durability/internal/calc/damage"
	"Durability/internal/respond"
)

type Input struct {
	damage.Input
	Project string `json:"project"`
	Author  string `json:"author"`
	Title   string `json:"title"`
	Notes   string `json:"notes"`
}

type Handler struct {
	Materials damage.Materials
}

// Generate evaluates the damage request and returns it as a PDF. An empty
// selection reports every method.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	calc := &damage.Handler{Materials: h.Materials}
	methods, _, err := input.Resolve(h.Materials)
	if err != nil {
		respond.Error(w, err)
		return
	}
	if len(input.Selected) == 0 {
		input.Selected = damage.MethodNames(methods)
	}
	res, err := damage.Summarize(input.Spectrum, methods, input.Selected)
	if err != nil {
		respond.Error(w, err)
		return
	}
	fig, err := calc.Figure(input.Input, methods)
	if err != nil {
		respond.Error(w, err)
		return
	}

	var buf bytes.Buffer
	err = Write(&buf, Document{
		Title:    input.Title,
		Project:  input.Project,
		Author:   input.Author,
		Notes:    input.Notes,
		Material: input.Material,
		Spectrum: input.Spectrum,
		Methods:  methods,
		Selected: input.Selected,
		Result:   res,
		Chart:    fig,
	})
	if err != nil {
		respond.Error(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}
