package handlers

import (
	"delivery-cost-service/internal/api/dto"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/services"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
)

// QuoteHandler issues and retrieves delivery price quotes.
type QuoteHandler struct {
	Service *services.QuoteService
}

// Collection serves /quotes: POST issues a quote, GET lists recent ones.
func (h *QuoteHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *QuoteHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	svcReq := services.QuoteRequest{
		DistanceKm:  req.DistanceKm,
		Origin:      req.Origin,
		Destination: req.Destination,
		Fragile:     req.Fragile,
	}

	if req.Size != nil {
		size, err := domain.ParseSize(*req.Size)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "size must be one of SMALL, LARGE")
			return
		}
		svcReq.Size = size
	}

	if req.Load != nil {
		load, err := domain.ParseLoad(*req.Load)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "load must be one of NORMAL, INCREASED, HIGH, VERY_HIGH")
			return
		}
		svcReq.Load = load
	}

	q, err := h.Service.Quote(r.Context(), svcReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrDistanceLookup):
			log.Printf("quote distance lookup failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "distance lookup failed")
		default:
			log.Printf("create quote failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusCreated, toQuoteResponse(q))
}

func (h *QuoteHandler) list(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, r, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	qs, err := h.Service.ListQuotes(r.Context(), limit)
	if err != nil {
		log.Printf("list quotes failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListQuotesResponse{Quotes: make([]dto.QuoteResponse, 0, len(qs))}
	for _, q := range qs {
		res.Quotes = append(res.Quotes, toQuoteResponse(q))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get serves GET /quotes/{id}.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, "quote id is required")
		return
	}

	q, err := h.Service.GetQuote(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrQuoteNotFound) {
			writeError(w, r, http.StatusNotFound, "quote not found")
			return
		}
		log.Printf("get quote failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toQuoteResponse(q))
}

func toQuoteResponse(q *domain.Quote) dto.QuoteResponse {
	b := q.Breakdown
	return dto.QuoteResponse{
		ID:          q.ID,
		Origin:      q.Origin,
		Destination: q.Destination,
		DistanceKm:  q.DistanceKm,
		Size:        string(q.Size),
		Fragile:     q.Fragile,
		Load:        string(q.Load),
		Total:       b.Total,
		Breakdown: dto.CostBreakdownResponse{
			BaseCost:     b.BaseCost,
			SizeCost:     b.SizeCost,
			FragileCost:  b.FragileCost,
			Subtotal:     b.Subtotal,
			Multiplier:   b.Multiplier,
			FloorApplied: b.FloorApplied,
		},
		CreatedAt: q.CreatedAt,
	}
}
