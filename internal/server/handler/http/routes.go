// Package http provides HTTP routing and middleware configuration
// for the visa case tracker service.
package http

import (
	"net/http"

	"github.com/casetrackhq/casetrack/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter constructs and returns an HTTP handler that serves the case
// tracker API. It applies CORS, request logging, and bearer-token
// authentication, and mounts the upload, share, and case endpoints under /api.
//
// Routes:
//
//	GET    /api/health         → liveness probe (public)
//	GET    /api/share/{token}  → shareHandler.Resolve (public viewer)
//	POST   /api/upload         → uploadHandler.Upload
//	POST   /api/share          → shareHandler.Create
//	GET    /api/cases          → caseHandler.List
//	GET    /api/cases/{id}     → caseHandler.GetByID
//	PUT    /api/cases/{id}     → caseHandler.Update
//	DELETE /api/cases/{id}     → caseHandler.Delete
//
// Middleware chain (applied in order):
//  1. cors.Handler                      — allows the dashboard origin
//  2. WithRequestLogging(logger)        — logs incoming requests
//  3. Auth(jwtSecret)                   — enforces bearer-token auth
//
// JSON-body routes additionally reject non-JSON content types. The upload
// route is multipart and is exempt from that check.
func NewRouter(
	caseHandler *CaseHandler,
	uploadHandler *UploadHandler,
	shareHandler *ShareHandler,
	logger *zap.Logger,
	jwtSecret []byte,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	// Enforce bearer-token authentication (viewer links stay public)
	r.Use(middleware.Auth(jwtSecret))

	// Only allow requests with Content-Type: application/json
	requireJSON := chiMiddleware.AllowContentType("application/json")

	// Mount API routes
	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("VisaCase Tracker backend running"))
		})
		r.Get("/share/{token}", shareHandler.Resolve)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Post("/upload", uploadHandler.Upload)
			r.With(requireJSON).Post("/share", shareHandler.Create)

			r.Route("/cases", func(r chi.Router) {
				r.Get("/", caseHandler.List)
				r.Get("/{id}", caseHandler.GetByID)
				r.With(requireJSON).Put("/{id}", caseHandler.Update)
				r.Delete("/{id}", caseHandler.Delete)
			})
		})
	})

	return r
}
