package report

import (
	"errors"
	"testing"

	"github.com/kaduacademy/console/internal/model"
)

// countingUserSource records how many fetches each id received.
type countingUserSource struct {
	users   map[string]*model.User
	err     error
	fetches map[string]int
}

func newCountingUserSource(users map[string]*model.User) *countingUserSource {
	return &countingUserSource{users: users, fetches: make(map[string]int)}
}

func (s *countingUserSource) GetUser(id string) (*model.User, error) {
	s.fetches[id]++
	if s.err != nil {
		return nil, s.err
	}
	return s.users[id], nil
}

func TestEnrichDefaults(t *testing.T) {
	src := newCountingUserSource(map[string]*model.User{
		"u1": {FirstName: "Asha", LastName: "Patil", RollNo: "21", Branch: "CSE", Year: "2nd Year", Course: "Banking"},
		"u2": {FirstName: "Ravi"}, // everything else absent
	})
	e := NewEnricher(src)

	en := e.Enrich("u1")
	if en.Name() != "Asha Patil" {
		t.Errorf("name = %q, want %q", en.Name(), "Asha Patil")
	}
	if en.RollNo != "21" || en.Branch != "CSE" {
		t.Errorf("unexpected enrichment %+v", en)
	}

	// Existing user with absent fields gets the N/A sentinel.
	en = e.Enrich("u2")
	if en.Name() != "Ravi" {
		t.Errorf("name = %q, want %q", en.Name(), "Ravi")
	}
	if en.RollNo != "N/A" || en.Branch != "N/A" || en.Year != "N/A" || en.Course != "N/A" {
		t.Errorf("expected N/A defaults, got %+v", en)
	}

	// Missing user stays fully empty, no N/A.
	en = e.Enrich("ghost")
	if en != (Enrichment{}) {
		t.Errorf("missing user enrichment = %+v, want zero", en)
	}
}

func TestEnrichFetchesOncePerStudent(t *testing.T) {
	src := newCountingUserSource(map[string]*model.User{
		"u1": {FirstName: "Asha"},
	})
	e := NewEnricher(src)

	for range 3 {
		e.Enrich("u1")
		e.Enrich("ghost")
	}

	if src.fetches["u1"] != 1 {
		t.Errorf("u1 fetched %d times, want 1", src.fetches["u1"])
	}
	// Misses are cached too.
	if src.fetches["ghost"] != 1 {
		t.Errorf("ghost fetched %d times, want 1", src.fetches["ghost"])
	}
}

func TestEnrichFetchErrorYieldsEmpty(t *testing.T) {
	src := newCountingUserSource(nil)
	src.err = errors.New("store down")
	e := NewEnricher(src)

	if en := e.Enrich("u1"); en != (Enrichment{}) {
		t.Errorf("enrichment after error = %+v, want zero", en)
	}
	e.Enrich("u1")
	if src.fetches["u1"] != 1 {
		t.Errorf("failed fetch retried; got %d fetches, want 1", src.fetches["u1"])
	}
}

func TestEnrichmentName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Asha", "Patil", "Asha Patil"},
		{"Asha", "", "Asha"},
		{"", "Patil", "Patil"},
		{"", "", ""},
	}
	for _, tt := range tests {
		en := Enrichment{FirstName: tt.first, LastName: tt.last}
		if got := en.Name(); got != tt.want {
			t.Errorf("Name(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}
