package model

// Fixed catalogs shared by the admin console and the student app.
// These mirror the values students pick at registration, so the report
// filters and audience allow-lists draw from the same sets.

// Branches lists the college branches a student can belong to.
var Branches = []string{"CSE", "IT", "ENTC", "MECH", "CIVIL", "ELPO", "OTHER"}

// Years lists the college years.
var Years = []string{"First Year", "Second Year", "Third Year", "Final Year", "Other"}

// KaduCourses lists the Kadu Academy course offerings.
var KaduCourses = []string{
	"Banking", "MBA CET", "BBA CET", "BCA CET", "MCA CET", "Railway",
	"Staff selection commission", "MPSC", "Police Bharti", "Others",
}
