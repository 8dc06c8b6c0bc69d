// Package history keeps a log of the notifications the wizards emitted, so
// the TUI and the CLI can show what happened in earlier sessions. Only
// notifications are stored, never registration data.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jask/cadastro/internal/database"
	"github.com/jask/cadastro/internal/validate"
	"github.com/jask/cadastro/internal/wizard"
)

// Entry is one stored notification.
type Entry struct {
	ID        string
	Session   string
	Kind      wizard.Kind
	Severity  validate.Severity
	Message   string
	CreatedAt time.Time
}

// Store handles the notifications table.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Add inserts e, assigning an id and timestamp when missing.
func (s *Store) Add(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = database.Now()
	}
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO notifications(id, session_id, wizard, severity, message, created_at)
	VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Session, string(e.Kind), string(e.Severity), e.Message, e.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// List returns up to limit entries, newest first. A limit <= 0 returns
// everything.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	q := `SELECT id, session_id, wizard, severity, message, created_at FROM notifications ORDER BY created_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		var kind, severity string
		if err := rows.Scan(&e.ID, &e.Session, &kind, &severity, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = wizard.Kind(kind)
		if e.Severity, err = validate.ParseSeverity(severity); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Clear deletes every entry.
func (s *Store) Clear(ctx context.Context) error {
	if err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM notifications"); err != nil {
			return fmt.Errorf("clear notifications: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	_, _ = s.db.ExecContext(ctx, "VACUUM")
	return nil
}

// Notifier records every notification in the store. Write failures are
// logged and dropped so a broken database never blocks a wizard.
func (s *Store) Notifier(ctx context.Context, log *zap.SugaredLogger) wizard.Notifier {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return wizard.NotifierFunc(func(n wizard.Notification) {
		e := Entry{
			Session:   n.Session,
			Kind:      n.Kind,
			Severity:  n.Severity,
			Message:   n.Message,
			CreatedAt: n.At,
		}
		if err := s.Add(ctx, e); err != nil {
			log.Errorw("record notification", "error", err, "session", n.Session)
		}
	})
}
