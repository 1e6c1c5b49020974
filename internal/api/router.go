// Package api wires the HTTP routes and the middleware chain.
package api

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/notekeeper/backend/internal/auth"
	"github.com/notekeeper/backend/internal/health"
	"github.com/notekeeper/backend/internal/middleware"
	"github.com/notekeeper/backend/internal/notes"
)

type Router struct {
	mux          *http.ServeMux
	handler      http.Handler
	authHandlers *auth.Handlers
	authService  *auth.Service
	noteHandlers *notes.Handlers
	healthCheck  *health.Checker
	logger       *zap.Logger
}

func NewRouter(
	authHandlers *auth.Handlers,
	authService *auth.Service,
	noteHandlers *notes.Handlers,
	healthCheck *health.Checker,
	logger *zap.Logger,
) *Router {
	r := &Router{
		mux:          http.NewServeMux(),
		authHandlers: authHandlers,
		authService:  authService,
		noteHandlers: noteHandlers,
		healthCheck:  healthCheck,
		logger:       logger,
	}
	r.setupRoutes()

	// Outermost first: request ID, then logging, recovery, CORS, gzip.
	var handler http.Handler = r.mux
	handler = middleware.Gzip(handler)
	handler = middleware.CORS(handler)
	handler = middleware.Recover(logger)(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.RequestID(handler)
	r.handler = handler

	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}

func (r *Router) setupRoutes() {
	r.mux.HandleFunc("GET /health", r.healthCheck.Handler)

	// Auth routes (no auth required). {$} pins the trailing-slash paths to
	// exact matches instead of subtree matches.
	r.mux.HandleFunc("POST /register/{$}", r.authHandlers.Register)
	r.mux.HandleFunc("POST /token/{$}", r.authHandlers.Token)
	r.mux.HandleFunc("POST /refresh/{$}", r.authHandlers.Refresh)

	// Note routes (auth required)
	r.mux.HandleFunc("POST /note/{$}", r.withAuth(r.noteHandlers.Create))
	r.mux.HandleFunc("GET /note/all", r.withAuth(r.noteHandlers.List))
	r.mux.HandleFunc("GET /note/{id}", r.withAuth(r.noteHandlers.Get))
	r.mux.HandleFunc("PUT /note/{id}", r.withAuth(r.noteHandlers.Update))
	r.mux.HandleFunc("DELETE /note/{id}", r.withAuth(r.noteHandlers.Delete))
}

func (r *Router) withAuth(next http.HandlerFunc) http.HandlerFunc {
	mw := auth.Middleware(r.authService, r.logger)
	return func(w http.ResponseWriter, req *http.Request) {
		mw(http.HandlerFunc(next)).ServeHTTP(w, req)
	}
}
