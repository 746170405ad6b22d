package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// BackupResult is the outcome of one backup attempt. Backup failures are
// reported here and logged, never escalated: a failed backup must not take
// down the operation that triggered it.
type BackupResult struct {
	OK      bool
	Message string
	Path    string
}

// Backup copies the store file verbatim into the backup directory as
// backup_<YYYYMMDD_HHMMSS>.<ext>, creating the directory if absent.
func (s *Service) Backup() BackupResult {
	if err := os.MkdirAll(s.cfg.Backup.Dir, 0o755); err != nil {
		return backupFailed(fmt.Errorf("create backup directory: %w", err))
	}

	// Fold the WAL into the main file so the copy carries every
	// committed row.
	if err := s.store.Checkpoint(); err != nil {
		return backupFailed(err)
	}

	src := s.store.Path()
	name := fmt.Sprintf("backup_%s%s", time.Now().Format("20060102_150405"), filepath.Ext(src))
	dest := filepath.Join(s.cfg.Backup.Dir, name)

	if err := copyFile(src, dest); err != nil {
		return backupFailed(err)
	}

	slog.Info("store backed up", "path", dest)
	return BackupResult{OK: true, Message: fmt.Sprintf("Store backed up to %s", dest), Path: dest}
}

// StartAutoBackup launches the recurring backup goroutine. It runs until
// ctx is cancelled; each tick's failure is logged and the ticker keeps
// going.
func (s *Service) StartAutoBackup(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if res := s.Backup(); res.OK {
					slog.Info("auto-backup completed", "path", res.Path)
				} else {
					slog.Error("auto-backup failed", "message", res.Message)
				}
			}
		}
	}()
}

func backupFailed(err error) BackupResult {
	msg := fmt.Sprintf("Backup error: %v", err)
	slog.Error("backup failed", "error", err)
	return BackupResult{OK: false, Message: msg}
}

// copyFile copies src to dest, replacing dest if it exists.
func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}
