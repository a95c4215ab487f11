package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lettergreep/internal/transport/middleware"
)

// RouterDeps wires the handlers and optional middleware into a router.
// Nil middleware is skipped.
type RouterDeps struct {
	Logger    *slog.Logger
	Health    *HealthHandler
	Syllables *SyllableHandler
	CORS      middleware.Middleware
	RateLimit middleware.Middleware
	Auth      middleware.Middleware
}

// NewRouter returns the API handler. Every route runs behind Recovery,
// RequestID, Logger and CORS; /v1 routes additionally run behind RateLimit
// and Auth.
func NewRouter(d RouterDeps) http.Handler {
	api := middleware.Chain(d.RateLimit, d.Auth)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", d.Health.Live)
	mux.HandleFunc("GET /ready", d.Health.Ready)
	mux.HandleFunc("GET /health", d.Health.Health)
	mux.Handle("GET /v1/words/{word}/syllables", api(http.HandlerFunc(d.Syllables.Word)))
	mux.Handle("POST /v1/texts/syllables", api(http.HandlerFunc(d.Syllables.Texts)))

	return middleware.Chain(
		middleware.Recovery(d.Logger),
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		d.CORS,
	)(mux)
}
