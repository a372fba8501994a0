package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/kaduacademy/console/internal/model"
	"github.com/kaduacademy/console/internal/report"
)

func sampleTest() model.Test {
	return model.Test{
		Title: "Physics Midterm",
		Audience: model.Audience{
			Kind:     model.AudienceCollege,
			Branches: []string{"CSE", "ECE"},
			Years:    []string{"2nd Year"},
		},
	}
}

func sampleRows() []report.Row {
	pct80, pct60 := 80, 60
	return []report.Row{
		{
			StudentName:    "Asha Patil",
			RollNo:         "21",
			Branch:         "CSE",
			Year:           "2nd Year",
			Score:          16,
			TotalMarks:     20,
			Percentage:     &pct80,
			CorrectAnswers: 8,
			SubmittedAt:    time.Date(2024, time.March, 5, 9, 30, 0, 0, time.UTC),
		},
		{
			StudentName:    "Ravi Kumar",
			RollNo:         "22",
			Branch:         "ECE",
			Year:           "2nd Year",
			Score:          12,
			TotalMarks:     20,
			Percentage:     &pct60,
			CorrectAnswers: 6,
			SubmittedAt:    time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC),
		},
	}
}

func TestBuildTable(t *testing.T) {
	now := time.Date(2024, time.March, 6, 12, 0, 0, 0, time.UTC)
	table, err := BuildTable(sampleTest(), sampleRows(), now)
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}

	if table.Title != "Physics Midterm" {
		t.Errorf("title = %q", table.Title)
	}
	if table.Audience != "College Test (Branches: CSE, ECE, Years: 2nd Year)" {
		t.Errorf("audience = %q", table.Audience)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(table.Rows))
	}
	if len(table.Columns) == 0 || len(table.Rows[0]) != len(table.Columns) {
		t.Fatalf("grid shape: %d columns, first row %d cells", len(table.Columns), len(table.Rows[0]))
	}

	// Exports carry correct answers, never the submission timestamp.
	for _, h := range table.Columns {
		if h == "Submitted At" {
			t.Error("export table includes the Submitted At column")
		}
	}
	found := false
	for _, h := range table.Columns {
		if h == "Correct Answers" {
			found = true
		}
	}
	if !found {
		t.Errorf("Correct Answers column missing from %v", table.Columns)
	}

	// Serial numbers count from 1 in row order.
	if table.Rows[0][0] != "1" || table.Rows[1][0] != "2" {
		t.Errorf("serial cells = %q, %q", table.Rows[0][0], table.Rows[1][0])
	}
}

func TestBuildTableNoData(t *testing.T) {
	_, err := BuildTable(sampleTest(), nil, time.Now())
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	table, err := BuildTable(sampleTest(), sampleRows(), time.Now())
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}

	var buf bytes.Buffer
	if err := WriteXLSX(table, &buf); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	cells, err := f.GetRows("Test Results")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(cells) != len(table.Rows)+1 {
		t.Fatalf("sheet has %d rows, want %d", len(cells), len(table.Rows)+1)
	}
	for i, h := range table.Columns {
		if cells[0][i] != h {
			t.Errorf("header %d = %q, want %q", i, cells[0][i], h)
		}
	}
	// The sheet carries exactly the table grid.
	for i, row := range table.Rows {
		for j, want := range row {
			if cells[i+1][j] != want {
				t.Errorf("cell (%d,%d) = %q, want %q", i+1, j, cells[i+1][j], want)
			}
		}
	}
}

func TestWritePDF(t *testing.T) {
	table, err := BuildTable(sampleTest(), sampleRows(), time.Now())
	if err != nil {
		t.Fatalf("BuildTable: %v", err)
	}

	var buf bytes.Buffer
	if err := WritePDF(table, &buf); err != nil {
		t.Fatalf("WritePDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestAudienceLabel(t *testing.T) {
	tests := []struct {
		name     string
		audience model.Audience
		want     string
	}{
		{"free", model.Audience{Kind: model.AudienceFree}, "Free Test"},
		{
			"college",
			model.Audience{Kind: model.AudienceCollege, Branches: []string{"CSE"}, Years: []string{"All"}},
			"College Test (Branches: CSE, Years: All)",
		},
		{
			"college empty lists",
			model.Audience{Kind: model.AudienceCollege},
			"College Test (Branches: N/A, Years: N/A)",
		},
		{
			"kadu",
			model.Audience{Kind: model.AudienceKaduAcademy, Courses: []string{"Banking", "MBA CET"}},
			"Kadu Academy Test (Courses: Banking, MBA CET)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AudienceLabel(tt.audience); got != tt.want {
				t.Errorf("AudienceLabel = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFilename(t *testing.T) {
	if got := Filename("Physics Midterm", "xlsx"); got != "Physics Midterm_Marks_Report.xlsx" {
		t.Errorf("Filename = %q", got)
	}
	if got := Filename("", "pdf"); got != "Test_Marks_Report.pdf" {
		t.Errorf("empty title Filename = %q", got)
	}
}
