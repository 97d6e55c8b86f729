package woehler

import (
	"encoding/json"
	"net/http"

	"Durability/internal/respond"
)

type LoadInput struct {
	Curve              Curve     `json:"curve"`
	Cycles             []float64 `json:"cycles"`
	FailureProbability float64   `json:"failure_probability"`
}

type LoadResult struct {
	FailureProbability float64   `json:"failure_probability"`
	Cycles             []float64 `json:"cycles"`
	Load               []float64 `json:"load"`
}

type Handler struct{}

// Load evaluates the Basquin relation at the posted cycle counts.
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	var input LoadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respond.Message(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if input.FailureProbability == 0 {
		input.FailureProbability = MedianProbability
	}
	load, err := input.Curve.BasquinLoad(input.Cycles, input.FailureProbability)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, LoadResult{
		FailureProbability: input.FailureProbability,
		Cycles:             input.Cycles,
		Load:               load,
	})
}
