package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UpsertStudent inserts a new student or, when a row with the same
// matricule already exists, overwrites its name, section, group and
// update timestamp. The surrogate id of an existing row never changes.
// On return st.ID is set to the row's id.
func (s *Store) UpsertStudent(ctx context.Context, st *Student) error {
	var existingID int64
	err := s.db.GetContext(ctx, &existingID,
		`SELECT id FROM students WHERE matricule = ?`, st.Matricule)

	switch {
	case err == nil:
		_, err = s.db.ExecContext(ctx,
			`UPDATE students
			 SET last_name = ?, first_name = ?, section = ?, group_name = ?,
			     updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			st.LastName, st.FirstName, st.Section, st.Group, existingID)
		if err != nil {
			return fmt.Errorf("update student %s: %w", st.Matricule, err)
		}
		st.ID = existingID
		return nil

	case errors.Is(err, sql.ErrNoRows):
		res, err := s.db.ExecContext(ctx,
			`INSERT INTO students (matricule, last_name, first_name, section, group_name)
			 VALUES (?, ?, ?, ?, ?)`,
			st.Matricule, st.LastName, st.FirstName, st.Section, st.Group)
		if err != nil {
			return fmt.Errorf("insert student %s: %w", st.Matricule, err)
		}
		st.ID, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("insert student %s: %w", st.Matricule, err)
		}
		return nil

	default:
		return fmt.Errorf("lookup student %s: %w", st.Matricule, err)
	}
}

// GetStudent returns the student with the given id, or nil when absent.
func (s *Store) GetStudent(ctx context.Context, id int64) (*Student, error) {
	var st Student
	err := s.db.GetContext(ctx, &st,
		`SELECT id, matricule, last_name, first_name,
		        IFNULL(section, '') AS section, IFNULL(group_name, '') AS group_name,
		        created_at, updated_at
		 FROM students WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get student %d: %w", id, err)
	}
	return &st, nil
}

// GetStudentByMatricule returns the student with the given matricule,
// or nil when absent.
func (s *Store) GetStudentByMatricule(ctx context.Context, matricule string) (*Student, error) {
	var st Student
	err := s.db.GetContext(ctx, &st,
		`SELECT id, matricule, last_name, first_name,
		        IFNULL(section, '') AS section, IFNULL(group_name, '') AS group_name,
		        created_at, updated_at
		 FROM students WHERE matricule = ?`, matricule)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get student %s: %w", matricule, err)
	}
	return &st, nil
}

// CountStudents returns the total number of students in the store.
func (s *Store) CountStudents(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return n, nil
}

// DeleteStudent removes the student and, through cascading foreign keys,
// all of its attendance, mark and comment rows. Deleting an id that does
// not exist is a no-op, not an error.
func (s *Store) DeleteStudent(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete student %d: %w", id, err)
	}
	return nil
}
