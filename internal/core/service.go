// Package core provides the collaborator-facing surface of the student
// tracker: spreadsheet import, export, backups and the query/mutation
// operations a front end calls. Operations return a result value carrying
// a success flag and a human-readable message; no failure escapes this
// boundary as a panic.
package core

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ybennacer/studenttracker/internal/config"
	"github.com/ybennacer/studenttracker/internal/store"
	"github.com/ybennacer/studenttracker/internal/validate"
)

// Service owns the store and the domain rules. All operations are safe to
// re-run; none retries automatically. The caller serializes imports
// against other writes (see Import).
type Service struct {
	cfg   *config.Config
	store *store.Store
	rules validate.Rules
}

// NewService builds a Service over an opened store.
func NewService(cfg *config.Config, st *store.Store) *Service {
	return &Service{
		cfg:   cfg,
		store: st,
		rules: validate.Rules{
			MatriculeLength: cfg.Import.MatriculeLength,
			MinScore:        cfg.Import.MinScore,
			MaxScore:        cfg.Import.MaxScore,
		},
	}
}

// Rules exposes the validators so entry surfaces beyond import can reuse
// them.
func (s *Service) Rules() validate.Rules {
	return s.rules
}

// Close performs the unconditional shutdown backup, then closes the store.
// A backup failure is logged but does not block the close.
func (s *Service) Close() error {
	if res := s.Backup(); !res.OK {
		slog.Error("shutdown backup failed", "message", res.Message)
	}
	return s.store.Close()
}

// Search finds students whose matricule or name contains text,
// optionally restricted to one group.
func (s *Service) Search(ctx context.Context, text, group string) ([]store.Student, error) {
	return s.store.Search(ctx, text, group)
}

// ListPage returns one page of a group's students using the configured
// page size when pageSize is zero.
func (s *Service) ListPage(ctx context.Context, group string, page, pageSize int) (store.Page, error) {
	if pageSize == 0 {
		pageSize = s.cfg.Query.PageSize
	}
	return s.store.ListPage(ctx, group, page, pageSize)
}

// ListGroups returns the distinct group labels, ascending.
func (s *Service) ListGroups(ctx context.Context) ([]string, error) {
	return s.store.ListGroups(ctx)
}

// Stats returns a student's aggregate statistics, or nil when the id is
// unknown.
func (s *Service) Stats(ctx context.Context, studentID int64) (*store.StudentStats, error) {
	return s.store.Stats(ctx, studentID)
}

// DeleteStudent removes a student and all dependent records. Unknown ids
// are a no-op success.
func (s *Service) DeleteStudent(ctx context.Context, studentID int64) error {
	if err := s.store.DeleteStudent(ctx, studentID); err != nil {
		return err
	}
	slog.Info("student deleted", "student_id", studentID)
	return nil
}

// CreateSession records a dated course meeting.
func (s *Service) CreateSession(ctx context.Context, sess *store.Session) (int64, error) {
	return s.store.CreateSession(ctx, sess)
}

// DeleteSession removes a class session and all dependent records.
func (s *Service) DeleteSession(ctx context.Context, sessionID int64) error {
	return s.store.DeleteSession(ctx, sessionID)
}

// SetAttendance records a student's status for a session, replacing any
// prior record for the pair.
func (s *Service) SetAttendance(ctx context.Context, studentID, sessionID int64, status string) error {
	return s.store.SetAttendance(ctx, studentID, sessionID, status)
}

// SetMark records a student's score for a session. The score is validated
// against the configured range before anything touches the store.
func (s *Service) SetMark(ctx context.Context, studentID, sessionID int64, score string) error {
	ok, reason := s.rules.Score(score)
	if !ok {
		return fmt.Errorf("invalid score %q: %s", score, reason)
	}
	if score == "" {
		return nil // no mark recorded
	}

	value, err := parseScore(score)
	if err != nil {
		return err
	}
	return s.store.SetMark(ctx, studentID, sessionID, value)
}

// AddComment attaches a note to a (student, session) pair.
func (s *Service) AddComment(ctx context.Context, studentID, sessionID int64, comment string) error {
	return s.store.AddComment(ctx, studentID, sessionID, comment)
}

// parseScore converts a validated score string to its numeric value.
func parseScore(score string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(score), 64)
	if err != nil {
		return 0, fmt.Errorf("parse score %q: %w", score, err)
	}
	return value, nil
}
