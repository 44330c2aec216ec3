package api

import (
	"delivery-cost-service/internal/api/handlers"
	"delivery-cost-service/internal/services"
	"net/http"

	"github.com/justinas/alice"
	"github.com/rs/cors"
)

// RouterOptions carries the HTTP-only settings of the server.
type RouterOptions struct {
	// AllowedOrigins lists CORS origins. Empty allows any origin.
	AllowedOrigins []string
	// HealthChecks are run by GET /health, keyed by dependency name.
	HealthChecks map[string]handlers.HealthCheck
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers only see the QuoteService; concrete adapters stay in cmd/server.
func NewRouter(svc *services.QuoteService, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	quoteHandler := &handlers.QuoteHandler{Service: svc}
	loadHandler := &handlers.LoadHandler{Service: svc}

	mux.Handle("/health", &handlers.HealthHandler{Checks: opts.HealthChecks})
	mux.HandleFunc("/tariff", handlers.Tariff)
	mux.HandleFunc("/quotes", quoteHandler.Collection)
	mux.HandleFunc("/quotes/{id}", quoteHandler.Get)
	mux.Handle("/load", loadHandler)

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})

	return alice.New(recoverPanic, requestID, loggingMiddleware, c.Handler).Then(mux)
}
