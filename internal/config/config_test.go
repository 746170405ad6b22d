package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify defaults
	if cfg.Store.Path != "student_tracker.db" {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, "student_tracker.db")
	}
	if cfg.Store.BusyTimeout != 5*time.Second {
		t.Errorf("Store.BusyTimeout = %v, want %v", cfg.Store.BusyTimeout, 5*time.Second)
	}
	if cfg.Import.MatriculeLength != 12 {
		t.Errorf("Import.MatriculeLength = %d, want %d", cfg.Import.MatriculeLength, 12)
	}
	if cfg.Import.MinScore != 0 || cfg.Import.MaxScore != 20 {
		t.Errorf("score bounds = [%g, %g], want [0, 20]", cfg.Import.MinScore, cfg.Import.MaxScore)
	}
	if cfg.Query.PageSize != 50 {
		t.Errorf("Query.PageSize = %d, want %d", cfg.Query.PageSize, 50)
	}
	if cfg.Backup.Dir != "backups" {
		t.Errorf("Backup.Dir = %q, want %q", cfg.Backup.Dir, "backups")
	}
	if cfg.Backup.Interval != time.Hour {
		t.Errorf("Backup.Interval = %v, want %v", cfg.Backup.Interval, time.Hour)
	}

	wantSheets := []string{"note", "noteDataTable1", "Sheet1", "Feuil1", "notes"}
	if len(cfg.Import.SheetNames) != len(wantSheets) {
		t.Fatalf("Import.SheetNames = %v, want %v", cfg.Import.SheetNames, wantSheets)
	}
	for i, name := range wantSheets {
		if cfg.Import.SheetNames[i] != name {
			t.Errorf("Import.SheetNames[%d] = %q, want %q", i, cfg.Import.SheetNames[i], name)
		}
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("STORE_PATH", "/tmp/tracker.db")
	t.Setenv("QUERY_PAGE_SIZE", "25")
	t.Setenv("BACKUP_INTERVAL", "30m")
	t.Setenv("IMPORT_SHEET_NAMES", "grades, Sheet1")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Store.Path != "/tmp/tracker.db" {
		t.Errorf("Store.Path = %q, want %q", cfg.Store.Path, "/tmp/tracker.db")
	}
	if cfg.Query.PageSize != 25 {
		t.Errorf("Query.PageSize = %d, want %d", cfg.Query.PageSize, 25)
	}
	if cfg.Backup.Interval != 30*time.Minute {
		t.Errorf("Backup.Interval = %v, want %v", cfg.Backup.Interval, 30*time.Minute)
	}
	if len(cfg.Import.SheetNames) != 2 || cfg.Import.SheetNames[0] != "grades" || cfg.Import.SheetNames[1] != "Sheet1" {
		t.Errorf("Import.SheetNames = %v, want [grades Sheet1]", cfg.Import.SheetNames)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		envVar  string
		value   string
		wantErr string
	}{
		{"bad page size", "QUERY_PAGE_SIZE", "abc", "invalid value"},
		{"zero page size", "QUERY_PAGE_SIZE", "0", "must be positive"},
		{"bad interval", "BACKUP_INTERVAL", "soon", "invalid value"},
		{"negative interval", "BACKUP_INTERVAL", "-1h", "must be positive"},
		{"zero matricule length", "IMPORT_MATRICULE_LENGTH", "0", "must be positive"},
		{"inverted score bounds", "IMPORT_MIN_SCORE", "25", "must be <"},
		{"bad log level", "LOG_LEVEL", "verbose", "must be one of"},
		{"bad log format", "LOG_FORMAT", "xml", "must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Load() succeeded, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}
