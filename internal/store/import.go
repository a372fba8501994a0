package store

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kaduacademy/console/internal/model"
)

// RawUserDoc is one user document exported from the legacy store. Field
// casing varies across documents, so everything beyond the id is kept as an
// untyped map and normalized on import.
type RawUserDoc struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// ImportRawUsers normalizes and inserts legacy user documents. Existing ids
// are skipped, not overwritten. Returns the number of users inserted.
func (s *Store) ImportRawUsers(docs []RawUserDoc) (int, error) {
	inserted := 0
	for _, doc := range docs {
		if doc.ID == "" {
			return inserted, fmt.Errorf("raw user document without id")
		}
		existing, err := s.GetUser(doc.ID)
		if err != nil {
			return inserted, fmt.Errorf("check user %s: %w", doc.ID, err)
		}
		if existing != nil {
			continue
		}

		u := model.NormalizeUser(doc.Fields)
		u.ID = doc.ID
		if email, ok := doc.Fields["email"].(string); ok {
			u.Email = email
		}
		if st, ok := doc.Fields["studentType"].(string); ok {
			u.StudentType = model.StudentType(st)
		} else {
			u.StudentType = model.StudentTypeCollege
		}
		if b, ok := doc.Fields["isApprovedByAdminKaduAcademy"].(bool); ok {
			u.ApprovedKaduAcademy = b
		}
		if b, ok := doc.Fields["isApprovedByAdminCollegeStudent"].(bool); ok {
			u.ApprovedCollege = b
		}
		if b, ok := doc.Fields["isDenied"].(bool); ok {
			u.Denied = b
		}
		if b, ok := doc.Fields["isAdmin"].(bool); ok {
			u.Admin = b
		}
		u.CreatedAt = time.Now()

		if _, err := s.CreateUser(u); err != nil {
			return inserted, fmt.Errorf("insert user %s: %w", doc.ID, err)
		}
		inserted++
	}
	slog.Info("imported legacy users", "count", inserted)
	return inserted, nil
}
