package handler

import (
	"net/http"
	"slices"

	"github.com/kaduacademy/console/internal/model"
	"github.com/kaduacademy/console/internal/report"
)

type catalogResponse struct {
	Branches    []string            `json:"branches"`
	Years       []string            `json:"years"`
	Courses     []string            `json:"courses"`
	DateFilters []report.DateFilter `json:"date_filters"`

	SortOptions map[model.AudienceKind][]report.SortOption `json:"sort_options"`
}

// handleCatalog serves the fixed pick-lists the console builds its filter
// and audience dropdowns from.
func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Branches:    model.Branches,
		Years:       model.Years,
		Courses:     model.KaduCourses,
		DateFilters: report.DateFilters,
		SortOptions: map[model.AudienceKind][]report.SortOption{
			model.AudienceFree:        report.SortOptions(model.AudienceFree),
			model.AudienceCollege:     report.SortOptions(model.AudienceCollege),
			model.AudienceKaduAcademy: report.SortOptions(model.AudienceKaduAcademy),
		},
	})
}

// validAudienceLists checks every allow-list entry against the fixed
// catalogs. The wildcard is always admissible.
func validAudienceLists(a model.Audience) bool {
	inCatalog := func(list, catalog []string) bool {
		for _, v := range list {
			if v != model.MatchAll && !slices.Contains(catalog, v) {
				return false
			}
		}
		return true
	}
	switch a.Kind {
	case model.AudienceCollege:
		return inCatalog(a.Branches, model.Branches) && inCatalog(a.Years, model.Years)
	case model.AudienceKaduAcademy:
		return inCatalog(a.Courses, model.KaduCourses)
	}
	return true
}
