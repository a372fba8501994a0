package model

import "testing"

func TestNormalizeUserSynonyms(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want User
	}{
		{
			name: "camel case",
			raw: map[string]any{
				"firstName": "Asha", "lastName": "Patil", "rollNo": "21",
				"branch": "CSE", "year": "2nd Year", "course": "Banking",
			},
			want: User{FirstName: "Asha", LastName: "Patil", RollNo: "21",
				Branch: "CSE", Year: "2nd Year", Course: "Banking"},
		},
		{
			name: "lower case legacy",
			raw:  map[string]any{"firstname": "asha", "lastname": "patil", "rollno": "21"},
			want: User{FirstName: "asha", LastName: "patil", RollNo: "21",
				Branch: "N/A", Year: "N/A", Course: "N/A"},
		},
		{
			name: "pascal case legacy",
			raw:  map[string]any{"FirstName": "Asha", "LastName": "Patil", "Branch": "ECE"},
			want: User{FirstName: "Asha", LastName: "Patil", RollNo: "N/A",
				Branch: "ECE", Year: "N/A", Course: "N/A"},
		},
		{
			name: "first synonym wins",
			raw:  map[string]any{"firstName": "Canonical", "firstname": "legacy"},
			want: User{FirstName: "Canonical", RollNo: "N/A",
				Branch: "N/A", Year: "N/A", Course: "N/A"},
		},
		{
			name: "empty string falls through to next synonym",
			raw:  map[string]any{"firstName": "", "firstname": "asha"},
			want: User{FirstName: "asha", RollNo: "N/A",
				Branch: "N/A", Year: "N/A", Course: "N/A"},
		},
		{
			name: "non-string values ignored",
			raw:  map[string]any{"firstName": 42, "rollNo": true},
			want: User{RollNo: "N/A", Branch: "N/A", Year: "N/A", Course: "N/A"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeUser(tt.raw)
			if got != tt.want {
				t.Errorf("NormalizeUser = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeUserEmptyDoc(t *testing.T) {
	// A missing document yields a zero user, not N/A placeholders; the
	// pipeline renders missing users as fully blank.
	if got := NormalizeUser(nil); got != (User{}) {
		t.Errorf("NormalizeUser(nil) = %+v, want zero user", got)
	}
	if got := NormalizeUser(map[string]any{}); got != (User{}) {
		t.Errorf("NormalizeUser(empty) = %+v, want zero user", got)
	}
}

func TestUserApproval(t *testing.T) {
	tests := []struct {
		name string
		user User
		want ApprovalStatus
	}{
		{"college approved", User{StudentType: StudentTypeCollege, ApprovedCollege: true}, StatusApproved},
		{"college unapproved", User{StudentType: StudentTypeCollege}, StatusUnapproved},
		{"college ignores kadu flag", User{StudentType: StudentTypeCollege, ApprovedKaduAcademy: true}, StatusUnapproved},
		{"kadu approved", User{StudentType: StudentTypeKaduAcademy, ApprovedKaduAcademy: true}, StatusApproved},
		{"kadu ignores college flag", User{StudentType: StudentTypeKaduAcademy, ApprovedCollege: true}, StatusUnapproved},
		{"denied wins over approval", User{StudentType: StudentTypeCollege, ApprovedCollege: true, Denied: true}, StatusDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.user.Approval(); got != tt.want {
				t.Errorf("Approval = %q, want %q", got, tt.want)
			}
		})
	}
}
