package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "tracker.db"), 5*time.Second)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func mustUpsert(t *testing.T, s *Store, matricule, last, first, section, group string) *Student {
	t.Helper()

	st := &Student{Matricule: matricule, LastName: last, FirstName: first, Section: section, Group: group}
	if err := s.UpsertStudent(context.Background(), st); err != nil {
		t.Fatalf("UpsertStudent(%s) error = %v", matricule, err)
	}
	return st
}

func tableCount(t *testing.T, s *Store, table string, studentID int64) int {
	t.Helper()

	var n int
	err := s.db.Get(&n, `SELECT COUNT(*) FROM `+table+` WHERE student_id = ?`, studentID)
	if err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestOpen_SchemaIsIdempotent(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tracker.db")

	s, err := Open(path, 5*time.Second)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	mustUpsert(t, s, "123456789012", "Doe", "Jane", "A", "Groupe1")
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Reopening must re-run the DDL without touching existing data.
	s, err = Open(path, 5*time.Second)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer s.Close()

	n, err := s.CountStudents(ctx)
	if err != nil {
		t.Fatalf("CountStudents() error = %v", err)
	}
	if n != 1 {
		t.Errorf("student count after reopen = %d, want 1", n)
	}
}

func TestUpsertStudent_LastWriteWins(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	first := mustUpsert(t, s, "123456789012", "Doe", "Jane", "A", "Groupe1")
	second := mustUpsert(t, s, "123456789012", "Doe-Smith", "Jane", "B", "Groupe2")

	if second.ID != first.ID {
		t.Errorf("upsert created new row: id %d != %d", second.ID, first.ID)
	}

	n, err := s.CountStudents(ctx)
	if err != nil {
		t.Fatalf("CountStudents() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("student count = %d, want 1", n)
	}

	got, err := s.GetStudentByMatricule(ctx, "123456789012")
	if err != nil {
		t.Fatalf("GetStudentByMatricule() error = %v", err)
	}
	if got == nil {
		t.Fatal("GetStudentByMatricule() = nil, want student")
	}
	if got.LastName != "Doe-Smith" || got.Section != "B" || got.Group != "Groupe2" {
		t.Errorf("student after upsert = %+v, want latest values", got)
	}
}

func TestDeleteStudent_CascadesAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	st := mustUpsert(t, s, "123456789012", "Doe", "Jane", "A", "Groupe1")
	classID, err := s.CreateSession(ctx, &Session{CourseName: "Algebra", ClassDate: "2024-03-01", Group: "Groupe1"})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if err := s.SetAttendance(ctx, st.ID, classID, StatusPresent); err != nil {
		t.Fatalf("SetAttendance() error = %v", err)
	}
	if err := s.SetMark(ctx, st.ID, classID, 15); err != nil {
		t.Fatalf("SetMark() error = %v", err)
	}
	if err := s.AddComment(ctx, st.ID, classID, "solid work"); err != nil {
		t.Fatalf("AddComment() error = %v", err)
	}

	if err := s.DeleteStudent(ctx, st.ID); err != nil {
		t.Fatalf("DeleteStudent() error = %v", err)
	}

	for _, table := range []string{"attendance", "marks", "comments"} {
		if n := tableCount(t, s, table, st.ID); n != 0 {
			t.Errorf("%s rows after delete = %d, want 0", table, n)
		}
	}

	stats, err := s.Stats(ctx, st.ID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats != nil {
		t.Errorf("Stats() after delete = %+v, want nil", stats)
	}

	// Deleting again is a no-op success.
	if err := s.DeleteStudent(ctx, st.ID); err != nil {
		t.Errorf("second DeleteStudent() error = %v, want nil", err)
	}
}

func TestDeleteSession_Cascades(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	st := mustUpsert(t, s, "123456789012", "Doe", "Jane", "A", "Groupe1")
	classID, err := s.CreateSession(ctx, &Session{CourseName: "Algebra", ClassDate: "2024-03-01"})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}
	if err := s.SetAttendance(ctx, st.ID, classID, StatusAbsent); err != nil {
		t.Fatalf("SetAttendance() error = %v", err)
	}
	if err := s.SetMark(ctx, st.ID, classID, 9.5); err != nil {
		t.Fatalf("SetMark() error = %v", err)
	}

	if err := s.DeleteSession(ctx, classID); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	if n := tableCount(t, s, "attendance", st.ID); n != 0 {
		t.Errorf("attendance rows after session delete = %d, want 0", n)
	}
	if n := tableCount(t, s, "marks", st.ID); n != 0 {
		t.Errorf("mark rows after session delete = %d, want 0", n)
	}
}

func TestSetAttendance_ReplacesPriorStatus(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	st := mustUpsert(t, s, "123456789012", "Doe", "Jane", "A", "Groupe1")
	classID, err := s.CreateSession(ctx, &Session{CourseName: "Algebra", ClassDate: "2024-03-01"})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if err := s.SetAttendance(ctx, st.ID, classID, StatusPresent); err != nil {
		t.Fatalf("SetAttendance() error = %v", err)
	}
	if err := s.SetAttendance(ctx, st.ID, classID, StatusJustified); err != nil {
		t.Fatalf("SetAttendance() resubmit error = %v", err)
	}

	if n := tableCount(t, s, "attendance", st.ID); n != 1 {
		t.Fatalf("attendance rows = %d, want 1", n)
	}
	var status string
	if err := s.db.Get(&status, `SELECT status FROM attendance WHERE student_id = ?`, st.ID); err != nil {
		t.Fatalf("read status: %v", err)
	}
	if status != StatusJustified {
		t.Errorf("status = %q, want %q", status, StatusJustified)
	}
}

func TestSetAttendance_RejectsUnknownStatus(t *testing.T) {
	s := openTestStore(t)

	if err := s.SetAttendance(context.Background(), 1, 1, "Late"); err == nil {
		t.Error("SetAttendance() with unknown status succeeded, want error")
	}
}

func TestSetMark_ReplacesAndEnforcesRange(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	st := mustUpsert(t, s, "123456789012", "Doe", "Jane", "A", "Groupe1")
	classID, err := s.CreateSession(ctx, &Session{CourseName: "Algebra", ClassDate: "2024-03-01"})
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	if err := s.SetMark(ctx, st.ID, classID, 11); err != nil {
		t.Fatalf("SetMark() error = %v", err)
	}
	if err := s.SetMark(ctx, st.ID, classID, 17.5); err != nil {
		t.Fatalf("SetMark() resubmit error = %v", err)
	}

	if n := tableCount(t, s, "marks", st.ID); n != 1 {
		t.Fatalf("mark rows = %d, want 1", n)
	}
	var score float64
	if err := s.db.Get(&score, `SELECT score FROM marks WHERE student_id = ?`, st.ID); err != nil {
		t.Fatalf("read score: %v", err)
	}
	if score != 17.5 {
		t.Errorf("score = %g, want 17.5", score)
	}

	// The CHECK constraint is the last guard against out-of-range scores.
	if err := s.SetMark(ctx, st.ID, classID, 25); err == nil {
		t.Error("SetMark(25) succeeded, want constraint violation")
	}
	if err := s.db.Get(&score, `SELECT score FROM marks WHERE student_id = ?`, st.ID); err != nil {
		t.Fatalf("read score: %v", err)
	}
	if score != 17.5 {
		t.Errorf("score after rejected write = %g, want 17.5 untouched", score)
	}
}
