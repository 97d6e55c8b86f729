package allowable

import (
	"encoding/json"
	"net/http"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/damage"
	"Durability/internal/respond"
)

// Input extends the damage request with the method to scale against and the
// damage sum to reach. Both have defaults.
type Input struct {
	damage.Input
	Method string  `json:"method"`
	Target float64 `json:"target"`
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
	res, err := h.Solve(&input)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, res)
}

// Solve resolves the request defaults and runs Scale.
func (h *Handler) Solve(in *Input) (Result, error) {
	methods, _, err := in.Resolve(h.Materials)
	if err != nil {
		return Result{}, err
	}
	if in.Method == "" {
		in.Method = DefaultMethod
	}
	if in.Target == 0 {
		in.Target = DefaultTarget
	}
	curve, ok := methods[in.Method]
	if !ok {
		return Result{}, &calcerr.ConfigurationError{Method: in.Method}
	}
	return Scale(in.Spectrum, curve, in.Method, in.Target)
}
