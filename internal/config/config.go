// Package config provides centralized configuration management for the
// application. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast
// on misconfiguration.
package config

import "time"

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Store   StoreConfig
	Import  ImportConfig
	Query   QueryConfig
	Backup  BackupConfig
	Logging LoggingConfig
}

// StoreConfig holds settings for the SQLite store file.
type StoreConfig struct {
	// Path is the location of the store file (default: student_tracker.db)
	Path string `env:"STORE_PATH" default:"student_tracker.db"`

	// BusyTimeout is how long SQLite waits on a locked store (default: 5s)
	BusyTimeout time.Duration `env:"STORE_BUSY_TIMEOUT" default:"5s"`
}

// ImportConfig holds spreadsheet import settings.
type ImportConfig struct {
	// SheetNames is the preference-ordered list of sheet names to try
	// before falling back to the first sheet in the workbook.
	SheetNames []string `env:"IMPORT_SHEET_NAMES" default:"note,noteDataTable1,Sheet1,Feuil1,notes"`

	// MatriculeLength is the exact digit count of a valid matricule (default: 12)
	MatriculeLength int `env:"IMPORT_MATRICULE_LENGTH" default:"12"`

	// MinScore is the lowest admissible mark (default: 0)
	MinScore float64 `env:"IMPORT_MIN_SCORE" default:"0"`

	// MaxScore is the highest admissible mark (default: 20)
	MaxScore float64 `env:"IMPORT_MAX_SCORE" default:"20"`
}

// QueryConfig holds read-side settings.
type QueryConfig struct {
	// PageSize is the default number of students per page (default: 50)
	PageSize int `env:"QUERY_PAGE_SIZE" default:"50"`
}

// BackupConfig holds store backup settings.
type BackupConfig struct {
	// Dir is the directory backup copies are written to (default: backups)
	Dir string `env:"BACKUP_DIR" default:"backups"`

	// Interval is how often the automatic backup runs (default: 1h)
	Interval time.Duration `env:"BACKUP_INTERVAL" default:"1h"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}
