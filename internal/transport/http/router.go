package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fairlens/internal/platform/middleware"
)

// Registrar is implemented by domain handlers that mount their own routes.
type Registrar interface {
	Register(r chi.Router)
}

// NewRouter wires all endpoints behind the shared middleware stack. Domain
// handlers register themselves so transport stays free of business wiring.
func NewRouter(logger *slog.Logger, handlers ...Registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	for _, h := range handlers {
		h.Register(r)
	}
	return r
}
