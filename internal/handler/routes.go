package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Router builds the HTTP API. events, when non-nil, serves /api/events.
func Router(h *HypergraphHandler, events http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Route("/edges", func(r chi.Router) {
			r.Get("/", h.ListEdges)
			r.Post("/", h.CreateEdge)
			r.Get("/{key}", h.GetEdge)
			r.Put("/{key}", h.PutEdge)
			r.Delete("/{key}", h.DeleteEdge)
			r.Post("/{key}/dual", h.CreateDual)
		})

		r.Route("/duals", func(r chi.Router) {
			r.Get("/", h.ListDuals)
			r.Get("/{key}", h.GetDual)
			r.Delete("/{key}", h.DeleteDual)
		})

		r.Route("/light-edges", func(r chi.Router) {
			r.Get("/", h.ListLightEdges)
			r.Get("/{key}", h.GetLightEdge)
			r.Put("/{key}", h.PutLightEdge)
			r.Delete("/{key}", h.DeleteLightEdge)
		})

		r.Post("/incidence", h.Incidence)
		r.Post("/dual-hypergraph", h.DualHypergraph)
		r.Post("/import", h.Import)
		r.Get("/export", h.Export)

		if events != nil {
			r.Get("/events", events.ServeHTTP)
		}
	})

	return r
}

// RequestLogger logs one line per request through logger
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Debug("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
