package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ybennacer/studenttracker/internal/store"
	"github.com/ybennacer/studenttracker/internal/xlsx"
)

// exportSheet is the sheet name of exported workbooks.
const exportSheet = "Students"

var exportHeader = []string{
	"Matricule", "Nom", "Prénom", "Section", "Groupe", "Créé le", "Mis à jour le",
}

// ExportResult is the outcome of one export.
type ExportResult struct {
	OK      bool
	Message string
	Rows    int
}

// Export writes students to a single-sheet workbook at outPath. With a
// group filter the rows are ordered by last then first name; unfiltered
// exports order by group first so each cohort forms a contiguous block.
func (s *Service) Export(ctx context.Context, outPath, group string) ExportResult {
	students, err := s.exportRows(ctx, group)
	if err != nil {
		msg := fmt.Sprintf("Export error: %v", err)
		slog.Error("export failed", "path", outPath, "error", err)
		return ExportResult{OK: false, Message: msg}
	}

	rows := make([][]interface{}, len(students))
	for i, st := range students {
		rows[i] = []interface{}{
			st.Matricule, st.LastName, st.FirstName, st.Section, st.Group,
			st.CreatedAt, st.UpdatedAt,
		}
	}

	if err := xlsx.WriteSheet(outPath, exportSheet, exportHeader, rows); err != nil {
		msg := fmt.Sprintf("Export error: %v", err)
		slog.Error("export failed", "path", outPath, "error", err)
		return ExportResult{OK: false, Message: msg}
	}

	msg := fmt.Sprintf("Exported %d students to %s", len(students), outPath)
	slog.Info("export completed", "path", outPath, "rows", len(students), "group", group)
	return ExportResult{OK: true, Message: msg, Rows: len(students)}
}

// exportRows fetches the students to export in their output order.
func (s *Service) exportRows(ctx context.Context, group string) ([]store.Student, error) {
	if group != "" {
		return s.store.ListByGroup(ctx, group)
	}
	return s.store.ListAll(ctx)
}
