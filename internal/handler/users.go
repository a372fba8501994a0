package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/kaduacademy/console/internal/i18n"
	"github.com/kaduacademy/console/internal/model"
	"github.com/kaduacademy/console/internal/store"
)

type userView struct {
	model.User
	ApprovalStatus model.ApprovalStatus `json:"approval_status"`
}

func viewUsers(users []model.User) []userView {
	views := make([]userView, 0, len(users))
	for _, u := range users {
		views = append(views, userView{User: u, ApprovalStatus: u.Approval()})
	}
	return views
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.UserFilter{
		Branch: q.Get("branch"),
		Year:   q.Get("year"),
	}
	switch q.Get("student_type") {
	case "college", "College Student":
		filter.StudentType = model.StudentTypeCollege
	case "kadu_academy", "Kadu Academy Student":
		filter.StudentType = model.StudentTypeKaduAcademy
	}
	switch q.Get("approval_status") {
	case "Approved":
		filter.Approval = model.StatusApproved
	case "Unapproved":
		filter.Approval = model.StatusUnapproved
	case "Denied":
		filter.Approval = model.StatusDenied
	}

	users, err := h.store.ListUsers(filter)
	if err != nil {
		slog.Error("failed to list users", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, viewUsers(users))
}

// loadUser resolves {userID} and writes the 404 itself when missing.
func (h *Handler) loadUser(w http.ResponseWriter, r *http.Request) *model.User {
	id := chi.URLParam(r, "userID")
	user, err := h.store.GetUser(id)
	if err != nil {
		slog.Error("failed to get user", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil
	}
	if user == nil {
		writeError(w, http.StatusNotFound, appI18n.T(r.Context(), "UserNotFound"))
		return nil
	}
	return user
}

func (h *Handler) handleToggleApproval(w http.ResponseWriter, r *http.Request) {
	user := h.loadUser(w, r)
	if user == nil {
		return
	}
	if err := h.store.ToggleApproval(user.ID); err != nil {
		slog.Error("failed to toggle approval", "id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	updated, err := h.store.GetUser(user.ID)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, userView{User: *updated, ApprovalStatus: updated.Approval()})
}

func (h *Handler) handleToggleDenied(w http.ResponseWriter, r *http.Request) {
	user := h.loadUser(w, r)
	if user == nil {
		return
	}
	if err := h.store.ToggleDenied(user.ID); err != nil {
		slog.Error("failed to toggle denial", "id", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	updated, err := h.store.GetUser(user.ID)
	if err != nil || updated == nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, userView{User: *updated, ApprovalStatus: updated.Approval()})
}
