package rest

import "net/http"

// NewRouter registers the API and probe routes.
func NewRouter(lookup *LookupHandler, health *HealthHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/lookup", lookup.Lookup)
	mux.HandleFunc("GET /v1/graphemes", lookup.Graphemes)
	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)
	return mux
}
