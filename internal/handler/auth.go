package handler

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	appI18n "github.com/kaduacademy/console/internal/i18n"
	"github.com/kaduacademy/console/internal/model"
)

const (
	sessionCookieName = "session"
	csrfCookieName    = "csrf_token"
	csrfHeaderName    = "X-CSRF-Token"
)

type sessionTokenKey struct{}

func sessionTokenFromContext(ctx context.Context) string {
	if tok, ok := ctx.Value(sessionTokenKey{}).(string); ok {
		return tok
	}
	return ""
}

func generateCSRFToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func (h *Handler) setCSRFCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: false,
		Secure:   h.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// csrfMiddleware issues a fresh token on safe methods and verifies the
// X-CSRF-Token header against the cookie on mutating ones.
func (h *Handler) csrfMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == "GET" || r.Method == "HEAD" {
			token, err := generateCSRFToken()
			if err != nil {
				slog.Error("failed to generate CSRF token", "error", err)
				writeError(w, http.StatusInternalServerError, "internal error")
				return
			}
			h.setCSRFCookie(w, token)
			ctx := model.ContextWithCSRFToken(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		cookie, err := r.Cookie(csrfCookieName)
		if err != nil || cookie.Value == "" {
			slog.Warn("CSRF cookie missing")
			writeError(w, http.StatusForbidden, "csrf token missing")
			return
		}

		headerToken := r.Header.Get(csrfHeaderName)
		if headerToken == "" {
			slog.Warn("CSRF header missing")
			writeError(w, http.StatusForbidden, "csrf token missing")
			return
		}

		if len(headerToken) != len(cookie.Value) || subtle.ConstantTimeCompare([]byte(headerToken), []byte(cookie.Value)) != 1 {
			slog.Warn("CSRF token mismatch")
			writeError(w, http.StatusForbidden, "invalid csrf token")
			return
		}

		token, err := generateCSRFToken()
		if err != nil {
			slog.Error("failed to generate CSRF token", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		h.setCSRFCookie(w, token)

		ctx := model.ContextWithCSRFToken(r.Context(), token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAuth is middleware that checks for a valid session cookie.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		authSess, err := h.store.GetAuthSession(cookie.Value)
		if err != nil {
			slog.Error("failed to get auth session", "error", err)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if authSess == nil {
			// Expired or revoked; its runner must not outlive it.
			h.dropRunner(cookie.Value)
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		user, err := h.store.GetUser(authSess.UserID)
		if err != nil || user == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := model.ContextWithUser(r.Context(), user)
		ctx = context.WithValue(ctx, sessionTokenKey{}, cookie.Value)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireAdmin rejects any authenticated user without the admin flag.
// The check happens here on every admin route, never in a client.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := model.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !user.Admin {
			writeError(w, http.StatusForbidden, appI18n.T(r.Context(), "Forbidden"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}

	user, err := h.store.GetUserByEmail(req.Email)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		writeError(w, http.StatusUnauthorized, appI18n.T(r.Context(), "LoginError"))
		return
	}
	if user == nil || user.PasswordHash == "" {
		writeError(w, http.StatusUnauthorized, appI18n.T(r.Context(), "LoginError"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, appI18n.T(r.Context(), "LoginError"))
		return
	}

	token, err := h.store.CreateAuthSession(user.ID)
	if err != nil {
		slog.Error("failed to create auth session", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   h.config.SecureCookies,
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": user.ID,
		"admin":   user.Admin,
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" {
		_ = h.store.DeleteAuthSession(cookie.Value)
		h.dropRunner(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.config.SecureCookies,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) dropRunner(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.runners, sessionID)
}
