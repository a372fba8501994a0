package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kaduacademy/console/internal/report"
	"github.com/kaduacademy/console/internal/store"
)

// Config holds runtime handler options.
type Config struct {
	SecureCookies bool // Set Secure flag on cookies (disable for local dev)
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store     *store.Store
	generator *report.Generator
	validate  *validator.Validate
	config    Config

	mu      sync.Mutex
	runners map[string]*report.Runner // one per admin session
}

// New creates a new Handler.
func New(s *store.Store, cfg Config) *Handler {
	return &Handler{
		store:     s,
		generator: report.NewGenerator(s),
		validate:  validator.New(),
		config:    cfg,
		runners:   make(map[string]*report.Runner),
	}
}

// Routes registers all HTTP routes. Everything under /admin requires an
// authenticated admin; the role check lives here, not in any client.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Use(requireAdmin)
		r.Use(h.csrfMiddleware)

		r.Get("/catalog", h.handleCatalog)

		r.Get("/tests", h.handleListTests)
		r.Post("/tests", h.handleCreateTest)
		r.Post("/tests/{testID}/publish", h.handlePublishTest)
		r.Post("/tests/{testID}/archive", h.handleArchiveTest)
		r.Post("/tests/{testID}/ordering", h.handleSetOrdering)
		r.Get("/tests/{testID}/questions", h.handleListQuestions)
		r.Post("/tests/{testID}/questions", h.handleCreateQuestion)
		r.Delete("/questions/{questionID}", h.handleDeleteQuestion)

		r.Get("/users", h.handleListUsers)
		r.Post("/users/{userID}/approval", h.handleToggleApproval)
		r.Post("/users/{userID}/denial", h.handleToggleDenied)

		r.Get("/marks", h.handleMarksOverview)
		r.Get("/tests/{testID}/marks", h.handleTestMarks)
		r.Get("/tests/{testID}/marks/export", h.handleExportMarks)
	})
}

// runnerFor returns the report runner bound to one admin session, so a
// newer report request from the same session supersedes an in-flight one.
func (h *Handler) runnerFor(sessionID string) *report.Runner {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.runners[sessionID]
	if !ok {
		r = &report.Runner{}
		h.runners[sessionID] = r
	}
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
