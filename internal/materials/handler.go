package materials

import (
	"net/http"

	"github.com/gorilla/mux"

	"Durability/internal/calc/woehler"
	"Durability/internal/respond"
)

type Preset struct {
	Name  string        `json:"name"`
	Curve woehler.Curve `json:"curve"`
}

type Handler struct {
	Catalog *Catalog
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	names := h.Catalog.Names()
	out := make([]Preset, 0, len(names))
	for _, n := range names {
		if c, ok := h.Catalog.Lookup(n); ok {
			out = append(out, Preset{Name: n, Curve: c})
		}
	}
	respond.JSON(w, http.StatusOK, map[string][]Preset{"materials": out})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	c, ok := h.Catalog.Lookup(name)
	if !ok {
		respond.Message(w, http.StatusNotFound, "Unknown material")
		return
	}
	respond.JSON(w, http.StatusOK, Preset{Name: name, Curve: c})
}
