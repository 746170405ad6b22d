package store

// Attendance statuses persisted in the attendance table. The strings match
// the CHECK constraint exactly and must not be reworded without a migration.
const (
	StatusPresent   = "Present"
	StatusAbsent    = "Absent"
	StatusJustified = "Absent Justifié"
)

// Student is one row of the students table. Matricule is the natural key;
// re-importing the same matricule updates the existing row.
type Student struct {
	ID        int64  `db:"id"`
	Matricule string `db:"matricule"`
	LastName  string `db:"last_name"`
	FirstName string `db:"first_name"`
	Section   string `db:"section"`
	Group     string `db:"group_name"`
	CreatedAt string `db:"created_at"`
	UpdatedAt string `db:"updated_at"`
}

// Session is one dated meeting of a course for a group.
type Session struct {
	ID          int64  `db:"id"`
	CourseName  string `db:"course_name"`
	SubjectName string `db:"subject_name"`
	ClassDate   string `db:"class_date"`
	Group       string `db:"group_name"`
	CreatedAt   string `db:"created_at"`
}

// Page is one page of a group's student listing.
type Page struct {
	Students   []Student
	Page       int
	TotalPages int
	TotalCount int
}

// StudentStats aggregates a student's recorded marks and attendance.
// AvgScore is rounded to 2 decimal places, AttendanceRate to 1.
type StudentStats struct {
	Student        Student
	TotalMarks     int
	AvgScore       float64
	MaxScore       float64
	MinScore       float64
	TotalClasses   int
	PresentCount   int
	AttendanceRate float64
	AttendanceDist map[string]int
}
