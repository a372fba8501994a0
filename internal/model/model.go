package model

import (
	"context"
	"time"
)

// AudienceKind tags which student population a test is meant for.
// Exactly one kind applies to a test; the legacy representation as three
// independent booleans (isFree/isPaidCollege/isPaidKaduAcademy) collapses
// into this variant so two-flags-true states are unrepresentable.
type AudienceKind string

const (
	// AudienceFree tests accept every student.
	AudienceFree AudienceKind = "free"
	// AudienceCollege tests are restricted by branch and year.
	AudienceCollege AudienceKind = "college"
	// AudienceKaduAcademy tests are restricted by enrolled course.
	AudienceKaduAcademy AudienceKind = "kadu_academy"
)

// MatchAll is the wildcard entry in audience allow-lists and in the
// secondary report filters.
const MatchAll = "All"

// Audience is the eligibility rule for a test. Branches and Years are
// meaningful only for AudienceCollege, Courses only for AudienceKaduAcademy.
type Audience struct {
	Kind     AudienceKind `json:"kind"`
	Branches []string     `json:"branches,omitempty"`
	Years    []string     `json:"years,omitempty"`
	Courses  []string     `json:"courses,omitempty"`
}

// QuestionOrdering selects which of the two historical question ordering
// schemes a test uses. Legacy data ordered questions by creation timestamp;
// newer data carries an explicit integer position.
type QuestionOrdering string

const (
	OrderByPosition  QuestionOrdering = "position"
	OrderByCreatedAt QuestionOrdering = "created_at"
)

// Test is an exam or question bank as administered through the console.
type Test struct {
	ID               string           `json:"id"`
	Title            string           `json:"title"`
	TitleLowercase   string           `json:"title_lowercase"`
	Description      string           `json:"description"`
	DurationMinutes  *int             `json:"duration_minutes"` // nil for question banks
	MarksPerQuestion float64          `json:"marks_per_question"`
	NegativeMarking  bool             `json:"negative_marking"`
	NegativeMarks    float64          `json:"negative_marks"`
	EnableOptionE    bool             `json:"enable_option_e"`
	Audience         Audience         `json:"audience"`
	QuestionBank     bool             `json:"question_bank"`
	Published        bool             `json:"published"`
	Archived         bool             `json:"archived"`
	TotalQuestions   int              `json:"total_questions"`
	QuestionOrdering QuestionOrdering `json:"question_ordering"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// SessionStatus is the lifecycle state of a student test session.
// The reporting pipeline only ever reads completed sessions.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// TestSession is one student's attempt at a test. Written by the
// student-facing app, immutable once completed; the console only reads it.
type TestSession struct {
	ID             string        `json:"id"`
	TestID         string        `json:"test_id"`
	StudentID      string        `json:"student_id"`
	Status         SessionStatus `json:"status"`
	SubmissionTime *time.Time    `json:"submission_time,omitempty"`
	Score          float64       `json:"score"`
	TotalQuestions int           `json:"total_questions"`
	CorrectAnswers int           `json:"correct_answers"`
}

// StudentType distinguishes the two paid student populations.
type StudentType string

const (
	StudentTypeCollege     StudentType = "college"
	StudentTypeKaduAcademy StudentType = "kadu_academy"
)

// ApprovalStatus is derived from a user's flags, never stored.
type ApprovalStatus string

const (
	StatusApproved   ApprovalStatus = "Approved"
	StatusUnapproved ApprovalStatus = "Unapproved"
	StatusDenied     ApprovalStatus = "Denied"
)

// User is a canonical user record. Raw store documents carry inconsistently
// cased field names; NormalizeUser maps them onto this shape at the boundary.
type User struct {
	ID                  string      `json:"id"`
	Email               string      `json:"email"`
	PasswordHash        string      `json:"-"`
	FirstName           string      `json:"first_name"`
	LastName            string      `json:"last_name"`
	RollNo              string      `json:"roll_no"`
	Branch              string      `json:"branch"`
	Year                string      `json:"year"`
	Course              string      `json:"course"`
	StudentType         StudentType `json:"student_type"`
	Admin               bool        `json:"admin"`
	ApprovedKaduAcademy bool        `json:"approved_kadu_academy"`
	ApprovedCollege     bool        `json:"approved_college"`
	Denied              bool        `json:"denied"`
	CreatedAt           time.Time   `json:"created_at"`
}

// Approval derives the display status. Denial wins over approval, and the
// approval flag consulted depends on the student type.
func (u User) Approval() ApprovalStatus {
	if u.Denied {
		return StatusDenied
	}
	approved := u.ApprovedCollege
	if u.StudentType == StudentTypeKaduAcademy {
		approved = u.ApprovedKaduAcademy
	}
	if approved {
		return StatusApproved
	}
	return StatusUnapproved
}

// AuthSession is an authenticated admin console session.
type AuthSession struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Option is one answer choice on a question.
type Option struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Correct  bool   `json:"correct"`
	ImageURL string `json:"image_url,omitempty"`
	Latex    bool   `json:"latex"`
	Position int    `json:"position"`
}

// ImagePlacement says where a question's image sits relative to the split
// text parts.
type ImagePlacement string

const (
	ImageNone    ImagePlacement = ""
	ImageAbove   ImagePlacement = "above"
	ImageBetween ImagePlacement = "between"
	ImageBelow   ImagePlacement = "below"
)

// Question belongs to a test. Text may be split into two parts around an
// image; Position is the ordering key under OrderByPosition.
type Question struct {
	ID             string         `json:"id"`
	TestID         string         `json:"test_id"`
	Text           string         `json:"text"`
	TextPart2      string         `json:"text_part2,omitempty"`
	ImageURL       string         `json:"image_url,omitempty"`
	ImagePlacement ImagePlacement `json:"image_placement,omitempty"`
	Latex          bool           `json:"latex"`
	Position       int            `json:"position"`
	Options        []Option       `json:"options"`
	CreatedAt      time.Time      `json:"created_at"`
}

type userCtxKey struct{}

// ContextWithUser stores a user in the request context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// UserFromContext retrieves the authenticated user from context, or nil.
func UserFromContext(ctx context.Context) *User {
	u, _ := ctx.Value(userCtxKey{}).(*User)
	return u
}

type csrfCtxKey struct{}

// ContextWithCSRFToken stores the CSRF token in context.
func ContextWithCSRFToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, csrfCtxKey{}, token)
}

// CSRFTokenFromContext retrieves the CSRF token from context.
func CSRFTokenFromContext(ctx context.Context) string {
	t, _ := ctx.Value(csrfCtxKey{}).(string)
	return t
}
