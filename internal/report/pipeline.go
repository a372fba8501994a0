package report

import (
	"context"
	"fmt"
	"time"

	"github.com/kaduacademy/console/internal/model"
)

// Store is the slice of the session/user store the pipeline reads.
type Store interface {
	UserSource
	CompletedSessions(testID string, start, end *time.Time) ([]model.TestSession, error)
}

// Row is one exportable report line: a completed session joined with its
// student and the computed marks.
type Row struct {
	SessionID      string    `json:"session_id"`
	StudentID      string    `json:"student_id"`
	StudentName    string    `json:"student_name"`
	RollNo         string    `json:"roll_no"`
	Branch         string    `json:"branch"`
	Year           string    `json:"year"`
	Course         string    `json:"course"`
	Score          float64   `json:"score"`
	TotalMarks     float64   `json:"total_marks"`
	Percentage     *int      `json:"percentage"` // nil renders as N/A
	CorrectAnswers int       `json:"correct_answers"`
	SubmittedAt    time.Time `json:"submitted_at"` // zero when missing
}

// Params configures one pipeline run.
type Params struct {
	Test       *model.Test
	DateFilter DateFilter
	Sort       SortOption

	// Secondary filters; "All" or empty means no filtering.
	Branch string
	Year   string
	Course string
}

// Generator runs the marks pipeline: resolve the date range, fetch completed
// sessions, filter by audience, enrich, compute marks, then apply the
// UI-selected filters and sort.
type Generator struct {
	store Store
}

func NewGenerator(store Store) *Generator {
	return &Generator{store: store}
}

// Generate produces the report rows for one run. Precondition failures
// return sentinel errors before any fetch; session fetch failures wrap
// ErrLoadSubmissions. Missing users and fields never fail the run.
func (g *Generator) Generate(ctx context.Context, p Params) ([]Row, error) {
	if p.Test == nil {
		return nil, ErrMissingTest
	}
	if p.Test.ID == "" {
		return nil, ErrMissingTestID
	}
	rng, err := ResolveDateRange(p.DateFilter, time.Now())
	if err != nil {
		return nil, err
	}

	sessions, err := g.store.CompletedSessions(p.Test.ID, rng.Start, rng.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadSubmissions, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enricher := NewEnricher(g.store)
	var rows []Row
	for _, sess := range sessions {
		// A session without a student cannot be attributed to anyone.
		if sess.StudentID == "" {
			continue
		}
		en := enricher.Enrich(sess.StudentID)
		if !MatchesAudience(p.Test.Audience, en) {
			continue
		}

		totalMarks, percentage := ComputeMarks(sess.Score, sess.TotalQuestions, p.Test.MarksPerQuestion)
		row := Row{
			SessionID:      sess.ID,
			StudentID:      sess.StudentID,
			StudentName:    en.Name(),
			RollNo:         en.RollNo,
			Branch:         en.Branch,
			Year:           en.Year,
			Course:         en.Course,
			Score:          sess.Score,
			TotalMarks:     totalMarks,
			Percentage:     percentage,
			CorrectAnswers: sess.CorrectAnswers,
		}
		if sess.SubmissionTime != nil {
			row.SubmittedAt = *sess.SubmissionTime
		}
		rows = append(rows, row)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows = ApplySecondaryFilters(p.Test.Audience.Kind, rows, p.Branch, p.Year, p.Course)
	SortRows(rows, p.Sort)
	return rows, nil
}
