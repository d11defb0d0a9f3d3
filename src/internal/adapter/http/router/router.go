package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/api-sage/transfer-engine/src/internal/adapter/http/middleware"
)

type RouteRegistrar interface {
	RegisterRoutes(mux *http.ServeMux)
}

// New wires the registrars, docs, health and metrics endpoints behind panic
// recovery. A nil gatherer disables /metrics.
func New(gatherer prometheus.Gatherer, registrars ...RouteRegistrar) http.Handler {
	mux := http.NewServeMux()
	registerSwaggerRoutes(mux)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	for _, registrar := range registrars {
		if registrar != nil {
			registrar.RegisterRoutes(mux)
		}
	}

	return middleware.Recover(mux)
}
