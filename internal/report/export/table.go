// Package export renders a finished report row set as a downloadable file.
// Every format consumes the same Table, so the data in an xlsx and a PDF of
// the same run is identical; only the bytes around it differ.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kaduacademy/console/internal/model"
	"github.com/kaduacademy/console/internal/report"
)

// ErrNoData means the row set was empty; no file is produced.
var ErrNoData = errors.New("export: no data to export")

// Table is the format-independent report: a title block plus a fully
// formatted cell grid.
type Table struct {
	Title       string // test title
	Audience    string // audience description line
	GeneratedAt time.Time
	Columns     []string
	Rows        [][]string
}

// BuildTable selects columns for the export target and formats every cell.
func BuildTable(test model.Test, rows []report.Row, now time.Time) (Table, error) {
	if len(rows) == 0 {
		return Table{}, ErrNoData
	}

	cols := report.SelectColumns(rows, report.TargetExport)
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}

	grid := make([][]string, len(rows))
	for i, r := range rows {
		cells := make([]string, len(cols))
		for j, c := range cols {
			cells[j] = report.CellValue(c, r, i)
		}
		grid[i] = cells
	}

	return Table{
		Title:       test.Title,
		Audience:    AudienceLabel(test.Audience),
		GeneratedAt: now,
		Columns:     headers,
		Rows:        grid,
	}, nil
}

// AudienceLabel describes a test's audience the way the report header and
// the overview screen show it.
func AudienceLabel(a model.Audience) string {
	switch a.Kind {
	case model.AudienceFree:
		return "Free Test"
	case model.AudienceCollege:
		return fmt.Sprintf("College Test (Branches: %s, Years: %s)",
			joinOrNA(a.Branches), joinOrNA(a.Years))
	case model.AudienceKaduAcademy:
		return fmt.Sprintf("Kadu Academy Test (Courses: %s)", joinOrNA(a.Courses))
	}
	return ""
}

func joinOrNA(list []string) string {
	if len(list) == 0 {
		return "N/A"
	}
	return strings.Join(list, ", ")
}

// Filename builds the download name for a report file.
func Filename(testTitle, ext string) string {
	if testTitle == "" {
		testTitle = "Test"
	}
	return testTitle + "_Marks_Report." + ext
}
