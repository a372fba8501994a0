package store

import (
	"testing"
	"time"

	"github.com/kaduacademy/console/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("newTestStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createCollegeTest(t *testing.T, s *Store, title string) string {
	t.Helper()
	id, err := s.CreateTest(model.Test{
		Title:            title,
		TitleLowercase:   title,
		Description:      "desc",
		MarksPerQuestion: 2,
		Audience: model.Audience{
			Kind:     model.AudienceCollege,
			Branches: []string{"CSE", "ECE"},
			Years:    []string{model.MatchAll},
		},
	})
	if err != nil {
		t.Fatalf("createCollegeTest: %v", err)
	}
	return id
}

func TestTestCRUD(t *testing.T) {
	s := newTestStore(t)

	id := createCollegeTest(t, s, "Physics Midterm")

	got, err := s.GetTest(id)
	if err != nil {
		t.Fatalf("GetTest: %v", err)
	}
	if got == nil {
		t.Fatal("GetTest returned nil for existing test")
	}
	if got.Title != "Physics Midterm" {
		t.Errorf("title = %q", got.Title)
	}
	if got.MarksPerQuestion != 2 {
		t.Errorf("marks per question = %v, want 2", got.MarksPerQuestion)
	}
	if got.Audience.Kind != model.AudienceCollege {
		t.Errorf("audience kind = %q", got.Audience.Kind)
	}
	// Allow-lists survive the JSON round trip.
	if len(got.Audience.Branches) != 2 || got.Audience.Branches[0] != "CSE" {
		t.Errorf("branches = %v", got.Audience.Branches)
	}
	if len(got.Audience.Years) != 1 || got.Audience.Years[0] != model.MatchAll {
		t.Errorf("years = %v", got.Audience.Years)
	}
	if got.QuestionOrdering != model.OrderByPosition {
		t.Errorf("default ordering = %q, want position", got.QuestionOrdering)
	}

	// Unknown id yields nil, not an error.
	missing, err := s.GetTest("nope")
	if err != nil {
		t.Fatalf("GetTest missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown test id")
	}
}

func TestTestFlags(t *testing.T) {
	s := newTestStore(t)
	id := createCollegeTest(t, s, "Flags")

	if err := s.SetTestPublished(id, true); err != nil {
		t.Fatalf("SetTestPublished: %v", err)
	}
	if err := s.SetTestArchived(id, true); err != nil {
		t.Fatalf("SetTestArchived: %v", err)
	}
	if err := s.SetQuestionOrdering(id, model.OrderByCreatedAt); err != nil {
		t.Fatalf("SetQuestionOrdering: %v", err)
	}

	got, err := s.GetTest(id)
	if err != nil {
		t.Fatalf("GetTest: %v", err)
	}
	if !got.Published || !got.Archived {
		t.Errorf("flags = published %v archived %v, want both true", got.Published, got.Archived)
	}
	if got.QuestionOrdering != model.OrderByCreatedAt {
		t.Errorf("ordering = %q, want created_at", got.QuestionOrdering)
	}
}

func TestListTestsNewestFirst(t *testing.T) {
	s := newTestStore(t)

	old := model.Test{Title: "Old", TitleLowercase: "old",
		Audience:  model.Audience{Kind: model.AudienceFree},
		CreatedAt: time.Now().Add(-time.Hour)}
	if _, err := s.CreateTest(old); err != nil {
		t.Fatalf("CreateTest: %v", err)
	}
	if _, err := s.CreateTest(model.Test{Title: "New", TitleLowercase: "new",
		Audience: model.Audience{Kind: model.AudienceFree}}); err != nil {
		t.Fatalf("CreateTest: %v", err)
	}

	tests, err := s.ListTests()
	if err != nil {
		t.Fatalf("ListTests: %v", err)
	}
	if len(tests) != 2 {
		t.Fatalf("got %d tests, want 2", len(tests))
	}
	if tests[0].Title != "New" {
		t.Errorf("first test = %q, want New", tests[0].Title)
	}
}
