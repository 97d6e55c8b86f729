package batch

import (
	"encoding/json"
	"net/http"

	"Durability/internal/calc/damage"
	"Durability/internal/respond"
)

// Input carries the curve source of a damage request plus the cases. Its own
// spectrum field is ignored. An empty selection means every method.
type Input struct {
	damage.Input
	Cases []Case `json:"cases"`
}

type Result struct {
	Selected []string     `json:"selected"`
	Results  []CaseResult `json:"results"`
}

type Handler struct {
	Materials damage.Materials
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	methods, _, err := input.Resolve(h.Materials)
	if err != nil {
		respond.Error(w, err)
		return
	}
	selected := input.Selected
	if len(selected) == 0 {
		selected = damage.MethodNames(methods)
	}
	res, err := Evaluate(r.Context(), input.Cases, methods, selected)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, Result{Selected: selected, Results: res})
}
