package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
)

// Routes builds the HTTP router.
func (h *Handler) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/doc.json", h.SwaggerDoc)
	r.Post("/system/install", h.InstallDatabase)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/teams/{id}", func(r chi.Router) {
			r.Get("/", h.GetTeam)
			r.Post("/optimize", h.OptimizeTeam)
			r.Get("/scores/top", h.GetTopScores)
			r.Get("/runs", h.GetRuns)
			r.Get("/runs/stats", h.GetRunStats)
		})

		r.Get("/players/free-agents", h.ListFreeAgents)

		r.Route("/thresholds", func(r chi.Router) {
			r.Get("/", h.ListThresholds)
			r.Post("/", h.CreateThreshold)
			r.Post("/upload", h.UploadThreshold)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetThreshold)
				r.Delete("/", h.DeleteThreshold)
				r.Post("/what-if", h.WhatIf)
			})
		})
	})

	return r
}

// SwaggerDoc serves the registered API document.
func (h *Handler) SwaggerDoc(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		h.errorResponse(w, http.StatusNotFound, "API document not registered")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(doc))
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.logger.Infow("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
