package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tests (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		title_lowercase TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		duration_minutes INTEGER,
		marks_per_question REAL NOT NULL DEFAULT 1.0,
		negative_marking INTEGER NOT NULL DEFAULT 0,
		negative_marks REAL NOT NULL DEFAULT 0,
		enable_option_e INTEGER NOT NULL DEFAULT 0,
		audience_kind TEXT NOT NULL DEFAULT 'free',
		allowed_branches TEXT NOT NULL DEFAULT '[]',
		allowed_years TEXT NOT NULL DEFAULT '[]',
		allowed_courses TEXT NOT NULL DEFAULT '[]',
		question_bank INTEGER NOT NULL DEFAULT 0,
		published INTEGER NOT NULL DEFAULT 0,
		archived INTEGER NOT NULL DEFAULT 0,
		total_questions INTEGER NOT NULL DEFAULT 0,
		question_ordering TEXT NOT NULL DEFAULT 'position',
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS questions (
		id TEXT PRIMARY KEY,
		test_id TEXT NOT NULL,
		text TEXT NOT NULL,
		text_part2 TEXT NOT NULL DEFAULT '',
		image_url TEXT NOT NULL DEFAULT '',
		image_placement TEXT NOT NULL DEFAULT '',
		latex INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL,
		FOREIGN KEY (test_id) REFERENCES tests(id)
	);

	CREATE TABLE IF NOT EXISTS question_options (
		id TEXT PRIMARY KEY,
		question_id TEXT NOT NULL,
		text TEXT NOT NULL,
		correct INTEGER NOT NULL DEFAULT 0,
		image_url TEXT NOT NULL DEFAULT '',
		latex INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (question_id) REFERENCES questions(id)
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		roll_no TEXT NOT NULL DEFAULT '',
		branch TEXT NOT NULL DEFAULT '',
		year TEXT NOT NULL DEFAULT '',
		course TEXT NOT NULL DEFAULT '',
		student_type TEXT NOT NULL DEFAULT 'college',
		admin INTEGER NOT NULL DEFAULT 0,
		approved_kadu_academy INTEGER NOT NULL DEFAULT 0,
		approved_college INTEGER NOT NULL DEFAULT 0,
		denied INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS test_sessions (
		id TEXT PRIMARY KEY,
		test_id TEXT NOT NULL,
		student_id TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'in_progress',
		submission_time DATETIME,
		score REAL NOT NULL DEFAULT 0,
		total_questions INTEGER NOT NULL DEFAULT 0,
		correct_answers INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (test_id) REFERENCES tests(id)
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_test_status
		ON test_sessions(test_id, status, submission_time);

	CREATE TABLE IF NOT EXISTS auth_sessions (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		expires_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS imported_files (
		path TEXT PRIMARY KEY,
		hash TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// GetImportedFileHash returns the recorded content hash for an imported
// file, or empty string if the file was never imported.
func (s *Store) GetImportedFileHash(path string) (string, error) {
	var hash string
	err := s.db.QueryRow(`SELECT hash FROM imported_files WHERE path = ?`, path).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return hash, err
}

// SetImportedFileHash records the content hash for an imported file.
func (s *Store) SetImportedFileHash(path, hash string) error {
	_, err := s.db.Exec(
		`INSERT INTO imported_files (path, hash) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET hash = ?`,
		path, hash, hash,
	)
	return err
}

func marshalList(list []string) string {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	return string(b)
}

func unmarshalList(raw string) []string {
	if raw == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	if len(list) == 0 {
		return nil
	}
	return list
}
