package store

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kaduacademy/console/internal/model"
)

const userColumns = `id, email, password_hash, first_name, last_name, roll_no,
	branch, year, course, student_type, admin,
	approved_kadu_academy, approved_college, denied, created_at`

// CreateUser inserts a new user and returns its id.
func (s *Store) CreateUser(u model.User) (string, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(
		`INSERT INTO users (`+userColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.RollNo,
		u.Branch, u.Year, u.Course, u.StudentType, u.Admin,
		u.ApprovedKaduAcademy, u.ApprovedCollege, u.Denied, u.CreatedAt,
	)
	if err != nil {
		slog.Error("failed to create user", "email", u.Email, "error", err)
		return "", err
	}
	slog.Info("created user", "id", u.ID, "email", u.Email)
	return u.ID, nil
}

func scanUser(row interface{ Scan(...any) error }) (model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.RollNo,
		&u.Branch, &u.Year, &u.Course, &u.StudentType, &u.Admin,
		&u.ApprovedKaduAcademy, &u.ApprovedCollege, &u.Denied, &u.CreatedAt,
	)
	return u, err
}

// GetUser returns a user by id, or nil if no such user exists.
func (s *Store) GetUser(id string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail returns a user by email, or nil if no such user exists.
func (s *Store) GetUserByEmail(email string) (*model.User, error) {
	u, err := scanUser(s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE email = ?`, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// UserFilter narrows ListUsers. Zero values mean no filtering on that field.
type UserFilter struct {
	StudentType model.StudentType
	Approval    model.ApprovalStatus
	Branch      string // college students only
	Year        string // college students only
}

// ListUsers returns non-admin users matching the filter, newest first.
func (s *Store) ListUsers(f UserFilter) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE admin = 0`
	var args []any
	if f.StudentType != "" {
		query += ` AND student_type = ?`
		args = append(args, f.StudentType)
	}
	switch f.Approval {
	case model.StatusDenied:
		query += ` AND denied = 1`
	case model.StatusApproved:
		query += ` AND denied = 0 AND ((student_type = 'kadu_academy' AND approved_kadu_academy = 1)
			OR (student_type != 'kadu_academy' AND approved_college = 1))`
	case model.StatusUnapproved:
		query += ` AND denied = 0 AND ((student_type = 'kadu_academy' AND approved_kadu_academy = 0)
			OR (student_type != 'kadu_academy' AND approved_college = 0))`
	}
	if f.StudentType == model.StudentTypeCollege {
		if f.Branch != "" && f.Branch != model.MatchAll {
			query += ` AND branch = ?`
			args = append(args, f.Branch)
		}
		if f.Year != "" && f.Year != model.MatchAll {
			query += ` AND year = ?`
			args = append(args, f.Year)
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ToggleApproval flips the approval flag matching the user's student type.
func (s *Store) ToggleApproval(id string) error {
	_, err := s.db.Exec(
		`UPDATE users SET
			approved_kadu_academy = CASE WHEN student_type = 'kadu_academy'
				THEN NOT approved_kadu_academy ELSE approved_kadu_academy END,
			approved_college = CASE WHEN student_type != 'kadu_academy'
				THEN NOT approved_college ELSE approved_college END
		 WHERE id = ?`, id,
	)
	return err
}

// ToggleDenied flips the denied flag.
func (s *Store) ToggleDenied(id string) error {
	_, err := s.db.Exec(`UPDATE users SET denied = NOT denied WHERE id = ?`, id)
	return err
}

// UserCount returns the total number of users.
func (s *Store) UserCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&count)
	return count, err
}
