package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/kaduacademy/console/internal/i18n"
	"github.com/kaduacademy/console/internal/model"
)

const (
	defaultBankTitle       = "Untitled Question Bank"
	defaultBankDescription = "Question bank for internal use."
)

type audiencePayload struct {
	Kind     string   `json:"kind" validate:"required,oneof=free college kadu_academy"`
	Branches []string `json:"branches" validate:"dive,required"`
	Years    []string `json:"years" validate:"dive,required"`
	Courses  []string `json:"courses" validate:"dive,required"`
}

type createTestRequest struct {
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	DurationMinutes  *int            `json:"duration_minutes" validate:"omitempty,gt=0"`
	MarksPerQuestion float64         `json:"marks_per_question" validate:"gte=0"`
	NegativeMarking  bool            `json:"negative_marking"`
	NegativeMarks    float64         `json:"negative_marks" validate:"gte=0"`
	EnableOptionE    bool            `json:"enable_option_e"`
	QuestionBank     bool            `json:"question_bank"`
	Audience         audiencePayload `json:"audience" validate:"required"`
	QuestionOrdering string          `json:"question_ordering" validate:"omitempty,oneof=position created_at"`
}

func (h *Handler) handleCreateTest(w http.ResponseWriter, r *http.Request) {
	var req createTestRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}

	if req.QuestionBank {
		// Banks are internal; give them placeholder metadata and no timer.
		if req.Title == "" {
			req.Title = defaultBankTitle
		}
		if req.Description == "" {
			req.Description = defaultBankDescription
		}
		req.DurationMinutes = nil
	} else {
		if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Description) == "" {
			writeError(w, http.StatusBadRequest, "title and description are required")
			return
		}
		if req.DurationMinutes == nil {
			writeError(w, http.StatusBadRequest, "duration_minutes is required")
			return
		}
	}
	if req.MarksPerQuestion == 0 {
		req.MarksPerQuestion = 1
	}

	audience := model.Audience{
		Kind:     model.AudienceKind(req.Audience.Kind),
		Branches: req.Audience.Branches,
		Years:    req.Audience.Years,
		Courses:  req.Audience.Courses,
	}
	if !validAudienceLists(audience) {
		writeError(w, http.StatusBadRequest, "audience entries must come from the fixed catalogs")
		return
	}
	// Only the lists relevant to the kind are stored.
	switch audience.Kind {
	case model.AudienceCollege:
		audience.Courses = nil
	case model.AudienceKaduAcademy:
		audience.Branches, audience.Years = nil, nil
	default:
		audience.Branches, audience.Years, audience.Courses = nil, nil, nil
	}
	ordering := model.QuestionOrdering(req.QuestionOrdering)
	if ordering == "" {
		ordering = model.OrderByPosition
	}

	test := model.Test{
		Title:            req.Title,
		TitleLowercase:   strings.ToLower(req.Title),
		Description:      req.Description,
		DurationMinutes:  req.DurationMinutes,
		MarksPerQuestion: req.MarksPerQuestion,
		NegativeMarking:  req.NegativeMarking,
		NegativeMarks:    req.NegativeMarks,
		EnableOptionE:    req.EnableOptionE,
		Audience:         audience,
		QuestionBank:     req.QuestionBank,
		QuestionOrdering: ordering,
	}

	id, err := h.store.CreateTest(test)
	if err != nil {
		slog.Error("failed to create test", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	created, err := h.store.GetTest(id)
	if err != nil || created == nil {
		slog.Error("failed to load created test", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *Handler) handleListTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.store.ListTests()
	if err != nil {
		slog.Error("failed to list tests", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if tests == nil {
		tests = []model.Test{}
	}
	writeJSON(w, http.StatusOK, tests)
}

// loadTest resolves {testID} and writes the 404 itself when missing.
func (h *Handler) loadTest(w http.ResponseWriter, r *http.Request) *model.Test {
	id := chi.URLParam(r, "testID")
	test, err := h.store.GetTest(id)
	if err != nil {
		slog.Error("failed to get test", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil
	}
	if test == nil {
		writeError(w, http.StatusNotFound, appI18n.T(r.Context(), "TestNotFound"))
		return nil
	}
	return test
}

type publishRequest struct {
	Published bool `json:"published"`
}

func (h *Handler) handlePublishTest(w http.ResponseWriter, r *http.Request) {
	test := h.loadTest(w, r)
	if test == nil {
		return
	}
	var req publishRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}
	if err := h.store.SetTestPublished(test.ID, req.Published); err != nil {
		slog.Error("failed to update test", "id", test.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	test.Published = req.Published
	writeJSON(w, http.StatusOK, test)
}

type archiveRequest struct {
	Archived bool `json:"archived"`
}

func (h *Handler) handleArchiveTest(w http.ResponseWriter, r *http.Request) {
	test := h.loadTest(w, r)
	if test == nil {
		return
	}
	var req archiveRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}
	if err := h.store.SetTestArchived(test.ID, req.Archived); err != nil {
		slog.Error("failed to update test", "id", test.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	test.Archived = req.Archived
	writeJSON(w, http.StatusOK, test)
}

type orderingRequest struct {
	QuestionOrdering string `json:"question_ordering" validate:"required,oneof=position created_at"`
}

func (h *Handler) handleSetOrdering(w http.ResponseWriter, r *http.Request) {
	test := h.loadTest(w, r)
	if test == nil {
		return
	}
	var req orderingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}
	ordering := model.QuestionOrdering(req.QuestionOrdering)
	if err := h.store.SetQuestionOrdering(test.ID, ordering); err != nil {
		slog.Error("failed to update test", "id", test.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	test.QuestionOrdering = ordering
	writeJSON(w, http.StatusOK, test)
}
