package report

import "math"

// ComputeMarks derives total marks and the rounded percentage for one
// session. Percentage is nil when total marks is zero (a test with no
// questions); callers must render the sentinel, never treat it as 0.
func ComputeMarks(score float64, totalQuestions int, marksPerQuestion float64) (totalMarks float64, percentage *int) {
	totalMarks = float64(totalQuestions) * marksPerQuestion
	if totalMarks > 0 {
		p := int(math.Round(score / totalMarks * 100))
		percentage = &p
	}
	return totalMarks, percentage
}
