package report

import (
	"sort"

	"github.com/kaduacademy/console/internal/model"
)

// SortOption selects the report row ordering.
type SortOption string

const (
	SortBySubmissionTime SortOption = "Submission Time (Latest First)"
	SortByRollNo         SortOption = "Roll Number (Ascending)"
)

// SortOptions lists the selectable sorts. Roll-number sort only makes sense
// for college tests, where roll numbers exist.
func SortOptions(kind model.AudienceKind) []SortOption {
	if kind == model.AudienceCollege {
		return []SortOption{SortBySubmissionTime, SortByRollNo}
	}
	return []SortOption{SortBySubmissionTime}
}

// missing roll numbers sort last
const rollNoSentinel = "ZZZ"

// ApplySecondaryFilters keeps rows matching the UI-selected branch, year and
// course filters. Each filter only applies to the dimension relevant to the
// test's audience kind: branch/year for college tests, course for Kadu
// Academy tests, nothing for free tests. "All" or empty means no filtering.
func ApplySecondaryFilters(kind model.AudienceKind, rows []Row, branch, year, course string) []Row {
	out := rows[:0:0]
	for _, r := range rows {
		keep := true
		switch kind {
		case model.AudienceCollege:
			if specific(branch) && r.Branch != branch {
				keep = false
			}
			if specific(year) && r.Year != year {
				keep = false
			}
		case model.AudienceKaduAcademy:
			if specific(course) && r.Course != course {
				keep = false
			}
		}
		if keep {
			out = append(out, r)
		}
	}
	return out
}

func specific(filter string) bool {
	return filter != "" && filter != model.MatchAll
}

// SortRows orders rows in place. Roll-number sort is a lexicographic
// ascending compare with missing values pushed last; the default is newest
// submission first with missing timestamps last.
func SortRows(rows []Row, opt SortOption) {
	if opt == SortByRollNo {
		sort.SliceStable(rows, func(i, j int) bool {
			return sortableRollNo(rows[i].RollNo) < sortableRollNo(rows[j].RollNo)
		})
		return
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SubmittedAt.After(rows[j].SubmittedAt)
	})
}

func sortableRollNo(rollNo string) string {
	if rollNo == "" || rollNo == "N/A" {
		return rollNoSentinel
	}
	return rollNo
}
