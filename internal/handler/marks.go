package handler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	appI18n "github.com/kaduacademy/console/internal/i18n"
	"github.com/kaduacademy/console/internal/model"
	"github.com/kaduacademy/console/internal/report"
	"github.com/kaduacademy/console/internal/report/export"
)

type overviewEntry struct {
	Test             model.Test `json:"test"`
	Submissions      int        `json:"submissions"`
	SubmissionsLabel string     `json:"submissions_label"`
	AudienceLabel    string     `json:"audience_label"`
}

// handleMarksOverview lists tests that received completed submissions in the
// selected window, filtered by audience kind and the kind-specific dimensions.
func (h *Handler) handleMarksOverview(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := report.DateFilter(q.Get("date_filter"))
	if filter == "" {
		filter = report.FilterAllTime
	}
	rng, err := report.ResolveDateRange(filter, time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "MissingDateFilter"))
		return
	}

	entries, err := h.store.TestsWithSubmissions(rng.Start, rng.End)
	if err != nil {
		slog.Error("failed to load marks overview", "error", err)
		writeError(w, http.StatusInternalServerError, appI18n.T(r.Context(), "LoadMarksError"))
		return
	}

	kind := model.AudienceKind(q.Get("test_type"))
	branch, year, course := q.Get("branch"), q.Get("year"), q.Get("course")

	out := make([]overviewEntry, 0, len(entries))
	for _, e := range entries {
		a := e.Test.Audience
		if kind != "" && a.Kind != kind {
			continue
		}
		switch a.Kind {
		case model.AudienceCollege:
			if !allowsFilter(a.Branches, branch) || !allowsFilter(a.Years, year) {
				continue
			}
		case model.AudienceKaduAcademy:
			if !allowsFilter(a.Courses, course) {
				continue
			}
		}
		out = append(out, overviewEntry{
			Test:             e.Test,
			Submissions:      e.Submissions,
			SubmissionsLabel: appI18n.Tp(r.Context(), "SubmissionCount", e.Submissions),
			AudienceLabel:    export.AudienceLabel(a),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// allowsFilter reports whether an audience allow-list admits the selected
// filter value. An unset or "All" filter admits everything, and a list
// carrying the wildcard admits any value.
func allowsFilter(list []string, selected string) bool {
	if selected == "" || selected == model.MatchAll {
		return true
	}
	return slices.Contains(list, model.MatchAll) || slices.Contains(list, selected)
}

func (h *Handler) reportParams(r *http.Request, test *model.Test) report.Params {
	q := r.URL.Query()
	sortOpt := report.SortOption(q.Get("sort"))
	if sortOpt == "" || !slices.Contains(report.SortOptions(test.Audience.Kind), sortOpt) {
		// Roll-number sort is college-only; anything unknown falls back.
		sortOpt = report.SortBySubmissionTime
	}
	return report.Params{
		Test:       test,
		DateFilter: report.DateFilter(q.Get("date_filter")),
		Sort:       sortOpt,
		Branch:     q.Get("branch"),
		Year:       q.Get("year"),
		Course:     q.Get("course"),
	}
}

func (h *Handler) writeReportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, report.ErrMissingDateFilter):
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "MissingDateFilter"))
	case errors.Is(err, report.ErrMissingTest), errors.Is(err, report.ErrMissingTestID):
		writeError(w, http.StatusNotFound, appI18n.T(r.Context(), "TestNotFound"))
	case errors.Is(err, report.ErrLoadSubmissions):
		slog.Error("failed to load submissions", "error", err)
		writeError(w, http.StatusInternalServerError, appI18n.T(r.Context(), "LoadSubmissionsError"))
	case errors.Is(err, context.Canceled):
		writeError(w, http.StatusConflict, appI18n.T(r.Context(), "ReportSuperseded"))
	default:
		slog.Error("report generation failed", "error", err)
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "LoadMarksError"))
	}
}

type marksResponse struct {
	TestID   string          `json:"test_id"`
	RowCount int             `json:"row_count"`
	Columns  []report.Column `json:"columns"`
	Cells    [][]string      `json:"cells"`
	Rows     []report.Row    `json:"rows"`
}

// handleTestMarks runs the marks pipeline for the on-screen table. Runs are
// serialized per admin session; a request superseded by a newer one from the
// same session returns 409 instead of stale rows.
func (h *Handler) handleTestMarks(w http.ResponseWriter, r *http.Request) {
	test := h.loadTest(w, r)
	if test == nil {
		return
	}
	params := h.reportParams(r, test)

	runner := h.runnerFor(sessionTokenFromContext(r.Context()))
	rows, latest, err := runner.Run(r.Context(), func(ctx context.Context) ([]report.Row, error) {
		return h.generator.Generate(ctx, params)
	})
	if !latest {
		writeError(w, http.StatusConflict, appI18n.T(r.Context(), "ReportSuperseded"))
		return
	}
	if err != nil {
		h.writeReportError(w, r, err)
		return
	}

	cols := report.SelectColumns(rows, report.TargetTable)
	cells := make([][]string, len(rows))
	for i, row := range rows {
		line := make([]string, len(cols))
		for j, c := range cols {
			line[j] = report.CellValue(c, row, i)
		}
		cells[i] = line
	}
	if rows == nil {
		rows = []report.Row{}
	}
	writeJSON(w, http.StatusOK, marksResponse{
		TestID:   test.ID,
		RowCount: len(rows),
		Columns:  cols,
		Cells:    cells,
		Rows:     rows,
	})
}

// handleExportMarks generates the report and streams it as a download.
// Downloads bypass the per-session runner; an explicit export should never be
// cancelled by a table refresh.
func (h *Handler) handleExportMarks(w http.ResponseWriter, r *http.Request) {
	test := h.loadTest(w, r)
	if test == nil {
		return
	}

	format := r.URL.Query().Get("format")
	if format != "xlsx" && format != "pdf" {
		writeError(w, http.StatusBadRequest, appI18n.T(r.Context(), "UnknownExportFormat"))
		return
	}

	params := h.reportParams(r, test)
	rows, err := h.generator.Generate(r.Context(), params)
	if err != nil {
		h.writeReportError(w, r, err)
		return
	}

	table, err := export.BuildTable(*test, rows, time.Now())
	if errors.Is(err, export.ErrNoData) {
		writeError(w, http.StatusUnprocessableEntity, appI18n.T(r.Context(), "NoDataToExport"))
		return
	}
	if err != nil {
		slog.Error("failed to build export table", "test_id", test.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var buf bytes.Buffer
	contentType := "application/pdf"
	if format == "xlsx" {
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = export.WriteXLSX(table, &buf)
	} else {
		err = export.WritePDF(table, &buf)
	}
	if err != nil {
		slog.Error("failed to render export", "format", format, "test_id", test.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+export.Filename(test.Title, format)+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to stream export", "error", err)
	}
}
