package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaduacademy/console/internal/model"
)

// InsertQuestion stores a question with its options and bumps the owning
// test's question count, all in one transaction.
func (s *Store) InsertQuestion(q model.Question) (string, error) {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if q.Position == 0 {
		// Next free slot under the position scheme.
		var max sql.NullInt64
		if err := tx.QueryRow(
			`SELECT MAX(position) FROM questions WHERE test_id = ?`, q.TestID,
		).Scan(&max); err != nil {
			return "", err
		}
		q.Position = int(max.Int64) + 1
	}

	_, err = tx.Exec(
		`INSERT INTO questions (id, test_id, text, text_part2, image_url, image_placement, latex, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.TestID, q.Text, q.TextPart2, q.ImageURL, q.ImagePlacement, q.Latex, q.Position, q.CreatedAt,
	)
	if err != nil {
		return "", err
	}

	for i, opt := range q.Options {
		if opt.ID == "" {
			opt.ID = uuid.NewString()
		}
		if opt.Position == 0 {
			opt.Position = i + 1
		}
		_, err = tx.Exec(
			`INSERT INTO question_options (id, question_id, text, correct, image_url, latex, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			opt.ID, q.ID, opt.Text, opt.Correct, opt.ImageURL, opt.Latex, opt.Position,
		)
		if err != nil {
			return "", err
		}
	}

	_, err = tx.Exec(
		`UPDATE tests SET total_questions = total_questions + 1, updated_at = ? WHERE id = ?`,
		time.Now(), q.TestID,
	)
	if err != nil {
		return "", err
	}

	return q.ID, tx.Commit()
}

// ListQuestions returns a test's questions with options, ordered per the
// given scheme.
func (s *Store) ListQuestions(testID string, ordering model.QuestionOrdering) ([]model.Question, error) {
	orderBy := `position, created_at`
	if ordering == model.OrderByCreatedAt {
		orderBy = `created_at, position`
	}
	rows, err := s.db.Query(
		`SELECT id, test_id, text, text_part2, image_url, image_placement, latex, position, created_at
		 FROM questions WHERE test_id = ? ORDER BY `+orderBy, testID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var questions []model.Question
	for rows.Next() {
		var q model.Question
		if err := rows.Scan(&q.ID, &q.TestID, &q.Text, &q.TextPart2, &q.ImageURL,
			&q.ImagePlacement, &q.Latex, &q.Position, &q.CreatedAt); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range questions {
		opts, err := s.listOptions(questions[i].ID)
		if err != nil {
			return nil, err
		}
		questions[i].Options = opts
	}
	return questions, nil
}

func (s *Store) listOptions(questionID string) ([]model.Option, error) {
	rows, err := s.db.Query(
		`SELECT id, text, correct, image_url, latex, position
		 FROM question_options WHERE question_id = ? ORDER BY position`, questionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var opts []model.Option
	for rows.Next() {
		var o model.Option
		if err := rows.Scan(&o.ID, &o.Text, &o.Correct, &o.ImageURL, &o.Latex, &o.Position); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// DeleteQuestion removes a question with its options and decrements the
// owning test's question count.
func (s *Store) DeleteQuestion(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var testID string
	err = tx.QueryRow(`SELECT test_id FROM questions WHERE id = ?`, id).Scan(&testID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("question %s not found", id)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM question_options WHERE question_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM questions WHERE id = ?`, id); err != nil {
		return err
	}
	_, err = tx.Exec(
		`UPDATE tests SET total_questions = MAX(total_questions - 1, 0), updated_at = ? WHERE id = ?`,
		time.Now(), testID,
	)
	if err != nil {
		return err
	}
	return tx.Commit()
}

// QuestionCount returns the number of questions stored for a test.
func (s *Store) QuestionCount(testID string) (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM questions WHERE test_id = ?`, testID).Scan(&count)
	return count, err
}
