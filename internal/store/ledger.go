package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/profile"
)

// Ledger is the write handle for profile and session history. It only
// exists as the result of Load, which forces every writer to have read
// the current state first.
type Ledger struct {
	s       *Store
	prof    *profile.UserProfile
	history []coach.SessionRecord
}

// Load reads the profile and full session history. A missing or
// unreadable profile row comes back as a first run rather than an
// error: a corrupted local database should never lock the user out.
func (s *Store) Load(ctx context.Context) (*Ledger, error) {
	l := &Ledger{s: s}

	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM profiles WHERE id = 1").Scan(&data)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// First run.
	case err != nil:
		return nil, fmt.Errorf("load profile: %w", err)
	default:
		var p profile.UserProfile
		if jsonErr := json.Unmarshal([]byte(data), &p); jsonErr == nil && p.Validate() == nil {
			l.prof = &p
		}
		// Corrupt rows fall through to first-run defaults.
	}

	history, err := s.loadHistory(ctx)
	if err != nil {
		return nil, err
	}
	l.history = history

	return l, nil
}

// loadHistory reads all sessions in append order, skipping rows whose
// payload no longer parses.
func (s *Store) loadHistory(ctx context.Context) ([]coach.SessionRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT data FROM sessions ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()

	var out []coach.SessionRecord
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		var rec coach.SessionRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			continue
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Profile returns the loaded profile and whether one existed.
func (l *Ledger) Profile() (profile.UserProfile, bool) {
	if l.prof == nil {
		return profile.UserProfile{}, false
	}
	return l.prof.Clone(), true
}

// History returns the loaded session history, oldest first.
func (l *Ledger) History() []coach.SessionRecord {
	out := make([]coach.SessionRecord, len(l.history))
	copy(out, l.history)
	return out
}

// SaveProfile upserts the single profile row.
func (l *Ledger) SaveProfile(ctx context.Context, p profile.UserProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	_, err = l.s.db.ExecContext(ctx, `
		INSERT INTO profiles (id, data, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	cp := p.Clone()
	l.prof = &cp
	return nil
}

// AppendSession appends one completed session. The insert is a single
// statement, so a crash can never leave a half-written entry.
func (l *Ledger) AppendSession(ctx context.Context, rec coach.SessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	_, err = l.s.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, date, topic, data) VALUES (?, ?, ?, ?)`,
		rec.ID, rec.Date, rec.Topic, string(data),
	)
	if err != nil {
		return fmt.Errorf("append session: %w", err)
	}

	l.history = append(l.history, rec)
	return nil
}
