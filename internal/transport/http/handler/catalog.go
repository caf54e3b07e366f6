package handler

import (
	"net/http"

	"github.com/whatsdish-gateway/internal/application/catalog"
)

// CatalogHandler serves restaurant and menu listings from the managed store.
type CatalogHandler struct {
	svc catalog.Service
}

func NewCatalogHandler(svc catalog.Service) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) ListRestaurants(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Restaurants(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, rows)
}

func (h *CatalogHandler) Menu(w http.ResponseWriter, r *http.Request) {
	rows, err := h.svc.Menu(r.Context(), r.URL.Query().Get("restaurant_id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, rows)
}
