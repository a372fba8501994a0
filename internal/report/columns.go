package report

import (
	"fmt"
	"strconv"
)

// Target distinguishes the two column layouts: the on-screen table shows the
// submission time, file exports show the correct-answer count instead.
type Target int

const (
	TargetTable Target = iota
	TargetExport
)

// Column is one report column.
type Column struct {
	Key    string `json:"key"`
	Header string `json:"header"`
}

var (
	colSerial      = Column{Key: "serialNumber", Header: "S.No."}
	colStudentName = Column{Key: "studentName", Header: "Student Name"}
	colRollNo      = Column{Key: "rollNo", Header: "Roll No"}
	colBranch      = Column{Key: "branch", Header: "Branch"}
	colYear        = Column{Key: "year", Header: "Year"}
	colCourse      = Column{Key: "course", Header: "Course"}
	colScore       = Column{Key: "score", Header: "Score"}
	colPercentage  = Column{Key: "percentage", Header: "Percentage"}
	colCorrect     = Column{Key: "correctAnswers", Header: "Correct Answers"}
	colSubmittedAt = Column{Key: "submissionTime", Header: "Submitted At"}
)

// SelectColumns picks the materially populated columns for a row set.
// Serial, name, score, percentage and the target-specific column are always
// present; roll number, branch, year and course appear only when at least
// one row carries a real value, so reports never ship all-blank columns.
func SelectColumns(rows []Row, target Target) []Column {
	candidates := []Column{
		colSerial, colStudentName, colRollNo, colBranch, colYear, colCourse,
		colScore, colPercentage,
	}
	if target == TargetExport {
		candidates = append(candidates, colCorrect)
	} else {
		candidates = append(candidates, colSubmittedAt)
	}

	var cols []Column
	for _, c := range candidates {
		switch c.Key {
		case "serialNumber", "studentName", "score", "percentage", "correctAnswers", "submissionTime":
			cols = append(cols, c)
			continue
		}
		for _, r := range rows {
			if populated(fieldValue(r, c.Key)) {
				cols = append(cols, c)
				break
			}
		}
	}
	return cols
}

func populated(v string) bool {
	return v != "" && v != "N/A"
}

func fieldValue(r Row, key string) string {
	switch key {
	case "studentName":
		return r.StudentName
	case "rollNo":
		return r.RollNo
	case "branch":
		return r.Branch
	case "year":
		return r.Year
	case "course":
		return r.Course
	}
	return ""
}

// submittedAtLayout matches the format the legacy console displayed.
const submittedAtLayout = "02/01/2006, 15:04:05"

// CellValue formats one cell. index is the zero-based row position used for
// the serial number. Both exporters and the table endpoint go through this
// single formatter, so every surface shows identical data.
func CellValue(col Column, r Row, index int) string {
	switch col.Key {
	case "serialNumber":
		return strconv.Itoa(index + 1)
	case "score":
		return fmt.Sprintf("%.2f / %.2f", r.Score, r.TotalMarks)
	case "percentage":
		if r.Percentage == nil {
			return "N/A"
		}
		return fmt.Sprintf("%d%%", *r.Percentage)
	case "correctAnswers":
		return strconv.Itoa(r.CorrectAnswers)
	case "submissionTime":
		if r.SubmittedAt.IsZero() {
			return "N/A"
		}
		return r.SubmittedAt.Format(submittedAtLayout)
	}
	if v := fieldValue(r, col.Key); v != "" {
		return v
	}
	return "N/A"
}
