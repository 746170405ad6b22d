package core

// import.go implements the spreadsheet import pipeline.
//
// The pipeline has two failure modes. Structural failures (unreadable
// workbook, no sheets, no identifier column, missing required labels)
// abort the whole import with OK=false. Per-row validation failures are
// soft: the offending row is recorded in RowErrors and the fold continues
// over the remaining rows. A single bad row never aborts an import.
//
// Import runs synchronously and reports progress through the injected
// callback; callers that want it off their thread of control run it in
// their own goroutine and marshal the callback themselves. Imports are
// not safe to run concurrently with other writes; the caller serializes.

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/ybennacer/studenttracker/internal/logging"
	"github.com/ybennacer/studenttracker/internal/store"
	"github.com/ybennacer/studenttracker/internal/xlsx"
)

// Column labels recognized in the header row. MarkerMatricule doubles as
// the header-detection marker: the first cell containing it fixes the
// header row.
const (
	colMatricule = "Matricule"
	colLastName  = "Nom"
	colFirstName = "Prénom"
	colSection   = "Section"
	colGroup     = "Groupe"
)

var requiredColumns = []string{colMatricule, colLastName, colFirstName}

// progressRowInterval is how many rows pass between progress callbacks
// during ingestion.
const progressRowInterval = 10

// ImportResult is the outcome of one import run.
type ImportResult struct {
	OK        bool
	Message   string
	Imported  int
	Skipped   int
	RowErrors []string
	RunID     string
}

// Import reads a spreadsheet and upserts its students into the store.
// groupOverride, when non-empty, replaces the group of every imported row.
// progress, which may be nil, receives fractions in [0, 1] at phase
// boundaries and periodically during row ingestion.
func (s *Service) Import(ctx context.Context, path, groupOverride string, progress func(float64)) ImportResult {
	runID := uuid.New().String()
	logger := logging.WithRun(runID)
	logger.Info("import started", "file", path, "group_override", groupOverride)

	report := func(p float64) {
		if progress != nil {
			progress(p)
		}
	}
	fail := func(msg string) ImportResult {
		logger.Error("import failed", "reason", msg)
		return ImportResult{OK: false, Message: msg, RunID: runID}
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return fail(fmt.Sprintf("open workbook: %v", err))
	}
	defer f.Close()

	sheet, preferred := xlsx.PickSheet(f, s.cfg.Import.SheetNames)
	if sheet == "" {
		return fail("workbook has no sheets")
	}
	if preferred {
		logger.Info("found sheet", "sheet", sheet)
	} else {
		logger.Warn("no preferred sheet name matched, using first sheet", "sheet", sheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fail(fmt.Sprintf("read sheet %q: %v", sheet, err))
	}
	report(0.1)

	headerRow, headerCol, ok := xlsx.FindHeaderCell(rows, colMatricule)
	if !ok {
		return fail(fmt.Sprintf("could not find %q column in sheet %q", colMatricule, sheet))
	}
	logger.Debug("header detected", "row", headerRow, "col", headerCol)

	idx := xlsx.HeaderIndex(rows[headerRow])
	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return fail(fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")))
	}
	report(0.2)

	// Section and Groupe are optional; an absent label yields "" rather
	// than falling back to some other column.
	cell := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok {
			return ""
		}
		return xlsx.Cell(row, i)
	}

	// Fold over the data rows accumulating successes and per-row errors.
	dataRows := rows[headerRow+1:]
	total := len(dataRows)
	imported := 0
	var rowErrors []string

	for i, row := range dataRows {
		matricule := cell(row, colMatricule)
		if matricule == "" {
			continue // blank separator row
		}

		if ok, reason := s.rules.Matricule(matricule); !ok {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", i+1, reason))
			continue
		}

		student := store.Student{
			Matricule: matricule,
			LastName:  cell(row, colLastName),
			FirstName: cell(row, colFirstName),
			Section:   cell(row, colSection),
			Group:     cell(row, colGroup),
		}
		if groupOverride != "" {
			student.Group = groupOverride
		}

		if err := s.store.UpsertStudent(ctx, &student); err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %v", i+1, err))
			logger.Error("row upsert failed", "row", i+1, "error", err)
			continue
		}
		imported++

		if i%progressRowInterval == 0 && total > 0 {
			report(0.2 + 0.7*float64(i)/float64(total))
		}
	}

	report(1.0)

	message := fmt.Sprintf("Successfully imported %d students", imported)
	if len(rowErrors) > 0 {
		message += fmt.Sprintf("\nWarnings: %d rows skipped", len(rowErrors))
	}
	logger.Info("import completed", "imported", imported, "skipped", len(rowErrors))

	return ImportResult{
		OK:        true,
		Message:   message,
		Imported:  imported,
		Skipped:   len(rowErrors),
		RowErrors: rowErrors,
		RunID:     runID,
	}
}
