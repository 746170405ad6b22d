package store

import (
	"context"
	"fmt"
	"math"
)

const studentColumns = `id, matricule, last_name, first_name,
	IFNULL(section, '') AS section, IFNULL(group_name, '') AS group_name,
	created_at, updated_at`

// Search returns students whose matricule, last name or first name contains
// the given text (case-insensitive), optionally restricted to one group,
// ordered by last name then first name.
func (s *Store) Search(ctx context.Context, text, group string) ([]Student, error) {
	pattern := "%" + text + "%"

	query := `SELECT ` + studentColumns + `
		FROM students
		WHERE (matricule LIKE ? OR last_name LIKE ? OR first_name LIKE ?)`
	args := []interface{}{pattern, pattern, pattern}

	if group != "" {
		query += ` AND group_name = ?`
		args = append(args, group)
	}
	query += ` ORDER BY last_name, first_name`

	students := []Student{}
	if err := s.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, fmt.Errorf("search students: %w", err)
	}
	return students, nil
}

// ListPage returns one page of a group's students, ordered by last name
// then first name for stable page boundaries. Pages are 1-indexed; a page
// outside [1, TotalPages] yields an empty slice, not an error.
func (s *Store) ListPage(ctx context.Context, group string, page, pageSize int) (Page, error) {
	if pageSize <= 0 {
		return Page{}, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	var total int
	err := s.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM students WHERE group_name = ?`, group)
	if err != nil {
		return Page{}, fmt.Errorf("count students in group %q: %w", group, err)
	}

	result := Page{
		Students:   []Student{},
		Page:       page,
		TotalPages: (total + pageSize - 1) / pageSize,
		TotalCount: total,
	}

	if page < 1 || page > result.TotalPages {
		return result, nil
	}

	err = s.db.SelectContext(ctx, &result.Students,
		`SELECT `+studentColumns+`
		 FROM students
		 WHERE group_name = ?
		 ORDER BY last_name, first_name
		 LIMIT ? OFFSET ?`,
		group, pageSize, (page-1)*pageSize)
	if err != nil {
		return Page{}, fmt.Errorf("list group %q page %d: %w", group, page, err)
	}
	return result, nil
}

// ListByGroup returns every student in one group, ordered by last name
// then first name.
func (s *Store) ListByGroup(ctx context.Context, group string) ([]Student, error) {
	students := []Student{}
	err := s.db.SelectContext(ctx, &students,
		`SELECT `+studentColumns+`
		 FROM students
		 WHERE group_name = ?
		 ORDER BY last_name, first_name`, group)
	if err != nil {
		return nil, fmt.Errorf("list group %q: %w", group, err)
	}
	return students, nil
}

// ListAll returns every student, ordered by group then last name then
// first name so each group forms a contiguous block.
func (s *Store) ListAll(ctx context.Context) ([]Student, error) {
	students := []Student{}
	err := s.db.SelectContext(ctx, &students,
		`SELECT `+studentColumns+`
		 FROM students
		 ORDER BY group_name, last_name, first_name`)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListGroups returns the distinct non-empty group labels, ascending.
func (s *Store) ListGroups(ctx context.Context) ([]string, error) {
	groups := []string{}
	err := s.db.SelectContext(ctx, &groups,
		`SELECT DISTINCT group_name FROM students
		 WHERE group_name IS NOT NULL AND group_name != ''
		 ORDER BY group_name`)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// Stats returns the aggregate mark and attendance statistics for one
// student, or nil when the id does not exist.
func (s *Store) Stats(ctx context.Context, studentID int64) (*StudentStats, error) {
	student, err := s.GetStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, nil
	}

	stats := &StudentStats{
		Student:        *student,
		AttendanceDist: map[string]int{},
	}

	var marks struct {
		Count int     `db:"cnt"`
		Avg   float64 `db:"avg"`
		Max   float64 `db:"max"`
		Min   float64 `db:"min"`
	}
	err = s.db.GetContext(ctx, &marks,
		`SELECT COUNT(score) AS cnt,
		        IFNULL(AVG(score), 0) AS avg,
		        IFNULL(MAX(score), 0) AS max,
		        IFNULL(MIN(score), 0) AS min
		 FROM marks
		 WHERE student_id = ? AND score IS NOT NULL`, studentID)
	if err != nil {
		return nil, fmt.Errorf("mark stats for student %d: %w", studentID, err)
	}
	stats.TotalMarks = marks.Count
	stats.AvgScore = round(marks.Avg, 2)
	stats.MaxScore = marks.Max
	stats.MinScore = marks.Min

	rows, err := s.db.QueryxContext(ctx,
		`SELECT status, COUNT(*) FROM attendance WHERE student_id = ? GROUP BY status`,
		studentID)
	if err != nil {
		return nil, fmt.Errorf("attendance stats for student %d: %w", studentID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("attendance stats for student %d: %w", studentID, err)
		}
		stats.AttendanceDist[status] = count
		stats.TotalClasses += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attendance stats for student %d: %w", studentID, err)
	}

	stats.PresentCount = stats.AttendanceDist[StatusPresent]
	if stats.TotalClasses > 0 {
		rate := float64(stats.PresentCount) / float64(stats.TotalClasses) * 100
		stats.AttendanceRate = round(rate, 1)
	}

	return stats, nil
}

// round rounds x to the given number of decimal places.
func round(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}
