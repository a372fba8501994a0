package report

import (
	"testing"

	"github.com/kaduacademy/console/internal/model"
)

func TestMatchesAudience(t *testing.T) {
	collegeStudent := Enrichment{Branch: "CSE", Year: "2nd Year", Course: "N/A"}
	kaduStudent := Enrichment{Branch: "N/A", Year: "N/A", Course: "Banking"}

	tests := []struct {
		name     string
		audience model.Audience
		en       Enrichment
		want     bool
	}{
		{
			name:     "free test accepts anyone",
			audience: model.Audience{Kind: model.AudienceFree},
			en:       Enrichment{},
			want:     true,
		},
		{
			name: "college wildcard branches and years",
			audience: model.Audience{Kind: model.AudienceCollege,
				Branches: []string{model.MatchAll}, Years: []string{model.MatchAll}},
			en:   collegeStudent,
			want: true,
		},
		{
			name: "college exact branch and year",
			audience: model.Audience{Kind: model.AudienceCollege,
				Branches: []string{"CSE", "ECE"}, Years: []string{"2nd Year"}},
			en:   collegeStudent,
			want: true,
		},
		{
			name: "college branch matches but year does not",
			audience: model.Audience{Kind: model.AudienceCollege,
				Branches: []string{"CSE"}, Years: []string{"3rd Year"}},
			en:   collegeStudent,
			want: false,
		},
		{
			name: "college wildcard branch with exact year",
			audience: model.Audience{Kind: model.AudienceCollege,
				Branches: []string{model.MatchAll}, Years: []string{"2nd Year"}},
			en:   collegeStudent,
			want: true,
		},
		{
			name: "kadu exact course",
			audience: model.Audience{Kind: model.AudienceKaduAcademy,
				Courses: []string{"Banking", "MBA CET"}},
			en:   kaduStudent,
			want: true,
		},
		{
			name: "kadu course mismatch",
			audience: model.Audience{Kind: model.AudienceKaduAcademy,
				Courses: []string{"MBA CET"}},
			en:   kaduStudent,
			want: false,
		},
		{
			name: "kadu wildcard course",
			audience: model.Audience{Kind: model.AudienceKaduAcademy,
				Courses: []string{model.MatchAll}},
			en:   Enrichment{},
			want: true,
		},
		{
			name: "college empty allow-lists reject",
			audience: model.Audience{Kind: model.AudienceCollege,
				Branches: nil, Years: nil},
			en:   collegeStudent,
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesAudience(tt.audience, tt.en); got != tt.want {
				t.Errorf("MatchesAudience = %v, want %v", got, tt.want)
			}
		})
	}
}
