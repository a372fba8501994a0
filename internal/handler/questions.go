package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	appI18n "github.com/kaduacademy/console/internal/i18n"
	"github.com/kaduacademy/console/internal/model"
)

type optionPayload struct {
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
	ImageURL string `json:"image_url"`
	Latex    bool   `json:"latex"`
}

type createQuestionRequest struct {
	Text           string          `json:"text"`
	TextPart2      string          `json:"text_part2"`
	ImageURL       string          `json:"image_url"`
	ImagePlacement string          `json:"image_placement" validate:"omitempty,oneof=above between below"`
	Latex          bool            `json:"latex"`
	Position       int             `json:"position" validate:"gte=0"`
	Options        []optionPayload `json:"options" validate:"required,min=2,max=5"`
}

func (h *Handler) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	test := h.loadTest(w, r)
	if test == nil {
		return
	}

	var req createQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "InvalidPayload"))
		return
	}
	if strings.TrimSpace(req.Text) == "" && req.ImageURL == "" {
		writeError(w, http.StatusBadRequest, "question needs text or an image")
		return
	}
	maxOptions := 4
	if test.EnableOptionE {
		maxOptions = 5
	}
	if len(req.Options) > maxOptions {
		writeError(w, http.StatusBadRequest, "too many options for this test")
		return
	}
	correct := 0
	for _, opt := range req.Options {
		if opt.Text == "" && opt.ImageURL == "" {
			writeError(w, http.StatusBadRequest, "every option needs text or an image")
			return
		}
		if opt.Correct {
			correct++
		}
	}
	if correct == 0 {
		writeError(w, http.StatusBadRequest, "at least one option must be correct")
		return
	}

	q := model.Question{
		TestID:         test.ID,
		Text:           req.Text,
		TextPart2:      req.TextPart2,
		ImageURL:       req.ImageURL,
		ImagePlacement: model.ImagePlacement(req.ImagePlacement),
		Latex:          req.Latex,
		Position:       req.Position,
	}
	for _, opt := range req.Options {
		q.Options = append(q.Options, model.Option{
			Text:     opt.Text,
			Correct:  opt.Correct,
			ImageURL: opt.ImageURL,
			Latex:    opt.Latex,
		})
	}

	id, err := h.store.InsertQuestion(q)
	if err != nil {
		slog.Error("failed to insert question", "test_id", test.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) handleListQuestions(w http.ResponseWriter, r *http.Request) {
	test := h.loadTest(w, r)
	if test == nil {
		return
	}
	questions, err := h.store.ListQuestions(test.ID, test.QuestionOrdering)
	if err != nil {
		slog.Error("failed to list questions", "test_id", test.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if questions == nil {
		questions = []model.Question{}
	}
	writeJSON(w, http.StatusOK, questions)
}

func (h *Handler) handleDeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "questionID")
	if err := h.store.DeleteQuestion(id); err != nil {
		slog.Error("failed to delete question", "id", id, "error", err)
		writeError(w, http.StatusNotFound, "question not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
