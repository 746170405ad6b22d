package store

import (
	"context"
	"fmt"
)

// CreateSession records one dated meeting of a course and returns its id.
func (s *Store) CreateSession(ctx context.Context, sess *Session) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO classes (course_name, subject_name, class_date, group_name)
		 VALUES (?, ?, ?, ?)`,
		sess.CourseName, sess.SubjectName, sess.ClassDate, sess.Group)
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create session: %w", err)
	}
	sess.ID = id
	return id, nil
}

// DeleteSession removes the class session and, through cascading foreign
// keys, all attendance, mark and comment rows referencing it. Deleting an
// unknown id is a no-op.
func (s *Store) DeleteSession(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM classes WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}

// SetAttendance records a student's status for a class session. At most one
// record exists per (student, session) pair; a re-submission replaces the
// prior status.
func (s *Store) SetAttendance(ctx context.Context, studentID, classID int64, status string) error {
	switch status {
	case StatusPresent, StatusAbsent, StatusJustified:
	default:
		return fmt.Errorf("invalid attendance status %q", status)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO attendance (student_id, class_id, status)
		 VALUES (?, ?, ?)
		 ON CONFLICT(student_id, class_id) DO UPDATE SET status = excluded.status`,
		studentID, classID, status)
	if err != nil {
		return fmt.Errorf("set attendance: %w", err)
	}
	return nil
}

// SetMark records a student's score for a class session, replacing any
// prior mark for the pair. The caller validates the score against the
// configured range; the table's CHECK constraint is the final guard.
func (s *Store) SetMark(ctx context.Context, studentID, classID int64, score float64) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO marks (student_id, class_id, score)
		 VALUES (?, ?, ?)
		 ON CONFLICT(student_id, class_id) DO UPDATE SET score = excluded.score`,
		studentID, classID, score)
	if err != nil {
		return fmt.Errorf("set mark: %w", err)
	}
	return nil
}

// AddComment attaches a free-text note to a (student, session) pair.
// Multiple comments per pair are permitted.
func (s *Store) AddComment(ctx context.Context, studentID, classID int64, comment string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO comments (student_id, class_id, comment) VALUES (?, ?, ?)`,
		studentID, classID, comment)
	if err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	return nil
}
