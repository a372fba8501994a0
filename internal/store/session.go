package store

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/kaduacademy/console/internal/model"
)

const sessionColumns = `id, test_id, student_id, status, submission_time,
	score, total_questions, correct_answers`

// InsertSession stores a test session. Sessions are normally written by the
// student-facing app; the console inserts them only in tests and seeds.
func (s *Store) InsertSession(sess model.TestSession) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO test_sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.TestID, sess.StudentID, sess.Status, sess.SubmissionTime,
		sess.Score, sess.TotalQuestions, sess.CorrectAnswers,
	)
	if err != nil {
		return "", err
	}
	return sess.ID, nil
}

// CompletedSessions returns completed sessions for a test, newest submission
// first. Nil bounds mean unbounded; start is inclusive, end exclusive.
func (s *Store) CompletedSessions(testID string, start, end *time.Time) ([]model.TestSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM test_sessions
		WHERE test_id = ? AND status = 'completed'`
	args := []any{testID}
	if start != nil {
		query += ` AND submission_time >= ?`
		args = append(args, *start)
	}
	if end != nil {
		query += ` AND submission_time < ?`
		args = append(args, *end)
	}
	query += ` ORDER BY submission_time DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var sessions []model.TestSession
	for rows.Next() {
		var sess model.TestSession
		if err := rows.Scan(&sess.ID, &sess.TestID, &sess.StudentID, &sess.Status,
			&sess.SubmissionTime, &sess.Score, &sess.TotalQuestions, &sess.CorrectAnswers); err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// TestSubmissions pairs a test with its completed-submission count for the
// marks overview.
type TestSubmissions struct {
	Test        model.Test `json:"test"`
	Submissions int        `json:"submissions"`
}

// TestsWithSubmissions returns every test that has at least one completed
// session inside the date range, with its count, newest test first.
// Audience filtering happens in the caller, where the allow-lists are
// already unmarshaled.
func (s *Store) TestsWithSubmissions(start, end *time.Time) ([]TestSubmissions, error) {
	query := `SELECT test_id, COUNT(*) FROM test_sessions WHERE status = 'completed'`
	var args []any
	if start != nil {
		query += ` AND submission_time >= ?`
		args = append(args, *start)
	}
	if end != nil {
		query += ` AND submission_time < ?`
		args = append(args, *end)
	}
	query += ` GROUP BY test_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var testID string
		var n int
		if err := rows.Scan(&testID, &n); err != nil {
			return nil, err
		}
		counts[testID] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var result []TestSubmissions
	for testID, n := range counts {
		t, err := s.GetTest(testID)
		if err != nil {
			return nil, err
		}
		if t == nil {
			// Session references a deleted test; skip.
			continue
		}
		result = append(result, TestSubmissions{Test: *t, Submissions: n})
	}

	// Newest test first, matching the overview screen.
	sort.Slice(result, func(i, j int) bool {
		return result[i].Test.CreatedAt.After(result[j].Test.CreatedAt)
	})
	return result, nil
}
