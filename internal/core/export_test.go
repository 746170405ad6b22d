package core

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ybennacer/studenttracker/internal/store"
)

func seedStudents(t *testing.T, svc *Service) {
	t.Helper()

	ctx := context.Background()
	students := []store.Student{
		{Matricule: "202400000001", LastName: "Bennacer", FirstName: "Younes", Section: "A", Group: "Groupe2"},
		{Matricule: "202400000002", LastName: "Martin", FirstName: "Claire", Section: "A", Group: "Groupe1"},
		{Matricule: "202400000003", LastName: "Dupont", FirstName: "Paul", Section: "B", Group: "Groupe1"},
	}
	for i := range students {
		if err := svc.store.UpsertStudent(ctx, &students[i]); err != nil {
			t.Fatalf("UpsertStudent() error = %v", err)
		}
	}
}

func readSheet(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile(%s) error = %v", path, err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	return rows
}

func TestExport_AllGroups(t *testing.T) {
	svc := newTestService(t)
	seedStudents(t, svc)
	out := filepath.Join(t.TempDir(), "export.xlsx")

	res := svc.Export(context.Background(), out, "")
	if !res.OK {
		t.Fatalf("Export() failed: %s", res.Message)
	}
	if res.Rows != 3 {
		t.Errorf("Rows = %d, want 3", res.Rows)
	}
	if !strings.Contains(res.Message, "Exported 3 students") {
		t.Errorf("Message = %q, want row count", res.Message)
	}

	rows := readSheet(t, out)
	if len(rows) != 4 {
		t.Fatalf("sheet rows = %d, want header + 3", len(rows))
	}
	if rows[0][0] != "Matricule" {
		t.Errorf("header = %v, want Matricule first", rows[0])
	}

	// Unfiltered order is group, last name, first name.
	wantOrder := []string{"Dupont", "Martin", "Bennacer"}
	for i, want := range wantOrder {
		if rows[i+1][1] != want {
			t.Errorf("row %d last name = %q, want %q", i+1, rows[i+1][1], want)
		}
	}
}

func TestExport_GroupFiltered(t *testing.T) {
	svc := newTestService(t)
	seedStudents(t, svc)
	out := filepath.Join(t.TempDir(), "export.xlsx")

	res := svc.Export(context.Background(), out, "Groupe1")
	if !res.OK {
		t.Fatalf("Export() failed: %s", res.Message)
	}
	if res.Rows != 2 {
		t.Errorf("Rows = %d, want 2", res.Rows)
	}

	rows := readSheet(t, out)
	if len(rows) != 3 {
		t.Fatalf("sheet rows = %d, want header + 2", len(rows))
	}
	if rows[1][1] != "Dupont" || rows[2][1] != "Martin" {
		t.Errorf("filtered order = [%s, %s], want [Dupont, Martin]", rows[1][1], rows[2][1])
	}
}

func TestExport_EmptyStore(t *testing.T) {
	svc := newTestService(t)
	out := filepath.Join(t.TempDir(), "export.xlsx")

	res := svc.Export(context.Background(), out, "")
	if !res.OK {
		t.Fatalf("Export() failed: %s", res.Message)
	}
	if res.Rows != 0 {
		t.Errorf("Rows = %d, want 0", res.Rows)
	}

	rows := readSheet(t, out)
	if len(rows) != 1 {
		t.Errorf("sheet rows = %d, want header only", len(rows))
	}
}

func TestExport_UnwritablePath(t *testing.T) {
	svc := newTestService(t)
	seedStudents(t, svc)

	res := svc.Export(context.Background(), filepath.Join(t.TempDir(), "no", "such", "dir", "out.xlsx"), "")
	if res.OK {
		t.Fatal("Export() to unwritable path succeeded, want failure")
	}
	if !strings.Contains(res.Message, "Export error") {
		t.Errorf("Message = %q, want export error text", res.Message)
	}
}
