package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/kaduacademy/console/internal/model"
)

const testColumns = `id, title, title_lowercase, description, duration_minutes,
	marks_per_question, negative_marking, negative_marks, enable_option_e,
	audience_kind, allowed_branches, allowed_years, allowed_courses,
	question_bank, published, archived, total_questions, question_ordering,
	created_at, updated_at`

// CreateTest inserts a test and returns its id.
func (s *Store) CreateTest(t model.Test) (string, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.QuestionOrdering == "" {
		t.QuestionOrdering = model.OrderByPosition
	}
	_, err := s.db.Exec(
		`INSERT INTO tests (`+testColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.TitleLowercase, t.Description, t.DurationMinutes,
		t.MarksPerQuestion, t.NegativeMarking, t.NegativeMarks, t.EnableOptionE,
		t.Audience.Kind, marshalList(t.Audience.Branches), marshalList(t.Audience.Years),
		marshalList(t.Audience.Courses), t.QuestionBank, t.Published, t.Archived,
		t.TotalQuestions, t.QuestionOrdering, t.CreatedAt, now,
	)
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

func scanTest(row interface{ Scan(...any) error }) (model.Test, error) {
	var (
		t                        model.Test
		branches, years, courses string
	)
	err := row.Scan(
		&t.ID, &t.Title, &t.TitleLowercase, &t.Description, &t.DurationMinutes,
		&t.MarksPerQuestion, &t.NegativeMarking, &t.NegativeMarks, &t.EnableOptionE,
		&t.Audience.Kind, &branches, &years, &courses,
		&t.QuestionBank, &t.Published, &t.Archived, &t.TotalQuestions,
		&t.QuestionOrdering, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	t.Audience.Branches = unmarshalList(branches)
	t.Audience.Years = unmarshalList(years)
	t.Audience.Courses = unmarshalList(courses)
	return t, nil
}

// GetTest returns a test by id, or nil if it does not exist.
func (s *Store) GetTest(id string) (*model.Test, error) {
	t, err := scanTest(s.db.QueryRow(`SELECT `+testColumns+` FROM tests WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListTests returns all tests, newest first. Archived tests are included;
// the caller decides what to show.
func (s *Store) ListTests() ([]model.Test, error) {
	rows, err := s.db.Query(`SELECT ` + testColumns + ` FROM tests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var tests []model.Test
	for rows.Next() {
		t, err := scanTest(rows)
		if err != nil {
			return nil, err
		}
		tests = append(tests, t)
	}
	return tests, rows.Err()
}

// SetTestPublished flips the published flag.
func (s *Store) SetTestPublished(id string, published bool) error {
	_, err := s.db.Exec(
		`UPDATE tests SET published = ?, updated_at = ? WHERE id = ?`,
		published, time.Now(), id,
	)
	return err
}

// SetTestArchived flips the archived flag.
func (s *Store) SetTestArchived(id string, archived bool) error {
	_, err := s.db.Exec(
		`UPDATE tests SET archived = ?, updated_at = ? WHERE id = ?`,
		archived, time.Now(), id,
	)
	return err
}

// SetQuestionOrdering switches a test between the two ordering schemes.
func (s *Store) SetQuestionOrdering(id string, ordering model.QuestionOrdering) error {
	_, err := s.db.Exec(
		`UPDATE tests SET question_ordering = ?, updated_at = ? WHERE id = ?`,
		ordering, time.Now(), id,
	)
	return err
}
