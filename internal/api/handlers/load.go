package handlers

import (
	"delivery-cost-service/internal/api/dto"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/services"
	"log"
	"net/http"

	"github.com/shopspring/decimal"
)

// LoadHandler reads and replaces the service load level applied to new quotes.
type LoadHandler struct {
	Service *services.QuoteService
}

func (h *LoadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *LoadHandler) get(w http.ResponseWriter, r *http.Request) {
	l, err := h.Service.CurrentLoad(r.Context())
	if err != nil {
		log.Printf("read load failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toLoadResponse(l))
}

func (h *LoadHandler) put(w http.ResponseWriter, r *http.Request) {
	var req dto.LoadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	l, err := domain.ParseLoad(req.Load)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "load must be one of NORMAL, INCREASED, HIGH, VERY_HIGH")
		return
	}

	if err := h.Service.SetLoad(r.Context(), l); err != nil {
		log.Printf("set load failed: load=%s err=%v", l, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	log.Printf("service load changed: load=%s", l)
	writeJSON(w, r, http.StatusOK, toLoadResponse(l))
}

func toLoadResponse(l domain.Load) dto.LoadResponse {
	return dto.LoadResponse{Load: string(l), Multiplier: multiplier(l)}
}

func multiplier(l domain.Load) float64 {
	m, ok := l.Multiplier()
	if !ok {
		return 0
	}
	return decimal.RequireFromString(m).InexactFloat64()
}
