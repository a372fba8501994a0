package report

import (
	"log/slog"

	"github.com/kaduacademy/console/internal/model"
)

// UserSource resolves a student id to a user record. A nil user (no error)
// means the record does not exist.
type UserSource interface {
	GetUser(id string) (*model.User, error)
}

// Enrichment carries the display attributes attached to a session. All
// fields are empty for a missing user; for an existing user the roll
// number, branch, year and course default to "N/A" when absent.
type Enrichment struct {
	FirstName string
	LastName  string
	RollNo    string
	Branch    string
	Year      string
	Course    string
}

// Name joins the name parts, dropping empty ones.
func (e Enrichment) Name() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Enricher memoizes user lookups for one pipeline run: at most one fetch
// per distinct student id, with misses and fetch failures cached as empty
// enrichments so gaps render instead of erroring.
type Enricher struct {
	source UserSource
	cache  map[string]Enrichment
}

func NewEnricher(source UserSource) *Enricher {
	return &Enricher{source: source, cache: make(map[string]Enrichment)}
}

// Enrich returns the display attributes for a student id.
func (e *Enricher) Enrich(id string) Enrichment {
	if en, ok := e.cache[id]; ok {
		return en
	}

	var en Enrichment
	u, err := e.source.GetUser(id)
	if err != nil {
		slog.Error("failed to fetch user for enrichment", "student_id", id, "error", err)
	} else if u != nil {
		en = Enrichment{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			RollNo:    orNA(u.RollNo),
			Branch:    orNA(u.Branch),
			Year:      orNA(u.Year),
			Course:    orNA(u.Course),
		}
	}

	e.cache[id] = en
	return en
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
