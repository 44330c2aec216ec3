package handlers

import (
	"context"
	"delivery-cost-service/internal/adapters/distance"
	"delivery-cost-service/internal/adapters/load"
	"delivery-cost-service/internal/api/dto"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/services"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type memQuoteRepo struct {
	mu     sync.Mutex
	quotes []*domain.Quote
}

func (r *memQuoteRepo) Save(ctx context.Context, q *domain.Quote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quotes = append(r.quotes, q)
	return nil
}

func (r *memQuoteRepo) Get(ctx context.Context, id string) (*domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.quotes {
		if q.ID == id {
			return q, nil
		}
	}
	return nil, domain.ErrQuoteNotFound
}

func (r *memQuoteRepo) List(ctx context.Context, limit int) ([]*domain.Quote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 {
		limit = 20
	}
	out := []*domain.Quote{}
	for i := len(r.quotes) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.quotes[i])
	}
	return out, nil
}

func newTestService() *services.QuoteService {
	provider := distance.NewStaticDistanceProvider([]distance.StaticPair{
		{From: "Depot", To: "Market Square", Meters: 12400, Seconds: 1500},
	})
	return services.NewQuoteService(&memQuoteRepo{}, load.NewMemoryLoadStore(domain.LoadNormal), provider)
}

func newMux(svc *services.QuoteService) *http.ServeMux {
	qh := &QuoteHandler{Service: svc}
	mux := http.NewServeMux()
	mux.HandleFunc("/quotes", qh.Collection)
	mux.HandleFunc("/quotes/{id}", qh.Get)
	mux.Handle("/load", &LoadHandler{Service: svc})
	mux.HandleFunc("/tariff", Tariff)
	return mux
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body %q: %v", rr.Body.String(), err)
	}
	return body["error"]
}

func TestCreateQuote(t *testing.T) {
	mux := newMux(newTestService())

	rr := do(t, mux, http.MethodPost, "/quotes", `{"distance_km":5,"size":"small","fragile":true,"load":"HIGH"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}

	var res dto.QuoteResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Total != 910 || res.Size != "SMALL" || res.Load != "HIGH" {
		t.Fatalf("unexpected quote: %+v", res)
	}
	if res.Breakdown.BaseCost != 250 || res.Breakdown.Multiplier != 1.4 || res.Breakdown.FloorApplied {
		t.Fatalf("unexpected breakdown: %+v", res.Breakdown)
	}
	if res.ID == "" {
		t.Fatalf("quote id is empty")
	}

	rr = do(t, mux, http.MethodGet, "/quotes/"+res.ID, "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
}

func TestCreateQuoteFromAddresses(t *testing.T) {
	mux := newMux(newTestService())

	rr := do(t, mux, http.MethodPost, "/quotes", `{"origin":"Depot","destination":"Market Square","size":"LARGE","fragile":false}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d body=%s", rr.Code, rr.Body.String())
	}

	var res dto.QuoteResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// 200 + 200 at NORMAL load.
	if res.DistanceKm != 12.4 || res.Total != 400 || res.Load != "NORMAL" {
		t.Fatalf("unexpected quote: %+v", res)
	}

	rr = do(t, mux, http.MethodPost, "/quotes", `{"origin":"Depot","destination":"Moon","size":"LARGE","fragile":false}`)
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("unknown route status = %d, want 502", rr.Code)
	}
}

func TestCreateQuoteValidation(t *testing.T) {
	mux := newMux(newTestService())

	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"missing fragile", `{"distance_km":5,"size":"SMALL","load":"NORMAL"}`, domain.ErrMissingParameters.Error()},
		{"missing distance", `{"size":"SMALL","fragile":false}`, domain.ErrMissingParameters.Error()},
		{"negative distance", `{"distance_km":-1,"size":"SMALL","fragile":false}`, domain.ErrNegativeDistance.Error()},
		{"fragile too far", `{"distance_km":31,"size":"SMALL","fragile":true}`, domain.ErrFragileTooFar.Error()},
		{"unknown size", `{"distance_km":5,"size":"HUGE","fragile":false}`, "size must be one of SMALL, LARGE"},
		{"unknown load", `{"distance_km":5,"size":"SMALL","fragile":false,"load":"EXTREME"}`, "load must be one of NORMAL, INCREASED, HIGH, VERY_HIGH"},
		{"unknown field", `{"distance":5}`, "invalid json body"},
		{"two objects", `{"distance_km":5}{}`, "body must contain only one JSON object"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := do(t, mux, http.MethodPost, "/quotes", tc.body)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400 body=%s", rr.Code, rr.Body.String())
			}
			if got := errorMessage(t, rr); got != tc.msg {
				t.Fatalf("error = %q, want %q", got, tc.msg)
			}
		})
	}
}

func TestListAndGetQuotes(t *testing.T) {
	mux := newMux(newTestService())

	for _, km := range []string{"1", "15", "40"} {
		rr := do(t, mux, http.MethodPost, "/quotes", `{"distance_km":`+km+`,"size":"SMALL","fragile":false}`)
		if rr.Code != http.StatusCreated {
			t.Fatalf("create %s: status %d", km, rr.Code)
		}
	}

	rr := do(t, mux, http.MethodGet, "/quotes?limit=2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	var list dto.ListQuotesResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list.Quotes) != 2 || list.Quotes[0].DistanceKm != 40 {
		t.Fatalf("unexpected list: %+v", list.Quotes)
	}

	if rr := do(t, mux, http.MethodGet, "/quotes?limit=0", ""); rr.Code != http.StatusBadRequest {
		t.Fatalf("limit=0 status = %d, want 400", rr.Code)
	}
	if rr := do(t, mux, http.MethodGet, "/quotes/does-not-exist", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("missing quote status = %d, want 404", rr.Code)
	}
	if rr := do(t, mux, http.MethodDelete, "/quotes", ""); rr.Code != http.StatusMethodNotAllowed || rr.Header().Get("Allow") != "GET, POST" {
		t.Fatalf("delete status = %d allow=%q", rr.Code, rr.Header().Get("Allow"))
	}
}

func TestLoadEndpoint(t *testing.T) {
	svc := newTestService()
	mux := newMux(svc)

	rr := do(t, mux, http.MethodGet, "/load", "")
	var res dto.LoadResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rr.Code != http.StatusOK || res.Load != "NORMAL" || res.Multiplier != 1 {
		t.Fatalf("status=%d load=%+v", rr.Code, res)
	}

	rr = do(t, mux, http.MethodPut, "/load", `{"load":"very_high"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("put status = %d body=%s", rr.Code, rr.Body.String())
	}

	// New quotes without a load pick up the stored level: (200 + 100) * 1.6.
	rr = do(t, mux, http.MethodPost, "/quotes", `{"distance_km":15,"size":"SMALL","fragile":false}`)
	var q dto.QuoteResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &q); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if q.Load != "VERY_HIGH" || q.Total != 480 {
		t.Fatalf("unexpected quote: %+v", q)
	}

	rr = do(t, mux, http.MethodPut, "/load", `{"load":"PANIC"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bad load status = %d, want 400", rr.Code)
	}
	if l, _ := svc.CurrentLoad(context.Background()); l != domain.LoadVeryHigh {
		t.Fatalf("load = %q after rejected update", l)
	}
}

func TestTariff(t *testing.T) {
	rr := do(t, newMux(newTestService()), http.MethodGet, "/tariff", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	var res dto.TariffResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.MinimumCost != 400 || res.FragileCost != 300 || res.MaxFragileDistanceKm != 30 {
		t.Fatalf("unexpected constants: %+v", res)
	}
	if len(res.DistanceTiers) != 4 || res.DistanceTiers[1].Cost != 250 || res.DistanceTiers[3].UpToKm != nil {
		t.Fatalf("unexpected tiers: %+v", res.DistanceTiers)
	}
	if res.LoadMultipliers["VERY_HIGH"] != 1.6 || res.SizeCosts["LARGE"] != 200 {
		t.Fatalf("unexpected tables: %+v %+v", res.LoadMultipliers, res.SizeCosts)
	}
}

func TestHealth(t *testing.T) {
	h := &HealthHandler{}
	if rr := do(t, h, http.MethodGet, "/health", ""); rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}

	h.Checks = map[string]HealthCheck{
		"database": func(ctx context.Context) error { return nil },
		"redis":    func(ctx context.Context) error { return errors.New("connection refused") },
	}
	rr := do(t, h, http.MethodGet, "/health", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "degraded" || body["database"] != "ok" || body["redis"] != "unavailable" {
		t.Fatalf("unexpected body: %v", body)
	}
}
