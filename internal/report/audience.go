package report

import (
	"slices"

	"github.com/kaduacademy/console/internal/model"
)

// MatchesAudience reports whether an enriched student belongs to the test's
// audience. Free tests accept everyone; college tests match on branch AND
// year; Kadu Academy tests match on course. Each allow-list honors the
// "All" wildcard.
func MatchesAudience(a model.Audience, en Enrichment) bool {
	switch a.Kind {
	case model.AudienceFree:
		return true
	case model.AudienceCollege:
		return allows(a.Branches, en.Branch) && allows(a.Years, en.Year)
	case model.AudienceKaduAcademy:
		return allows(a.Courses, en.Course)
	}
	return false
}

func allows(list []string, value string) bool {
	return slices.Contains(list, model.MatchAll) || slices.Contains(list, value)
}
