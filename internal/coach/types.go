package coach

import (
	"time"

	"github.com/abhisek/podium/internal/analysis"
)

// SessionRecord is one completed practice session as persisted in
// history. JSON field names are the on-disk format.
type SessionRecord struct {
	ID              string                   `json:"id"`
	Date            string                   `json:"date"` // RFC 3339
	Topic           string                   `json:"topic"`
	DurationSeconds int                      `json:"durationSeconds"`
	Analysis        analysis.SessionAnalysis `json:"analysis"`
}

// NewSessionRecord stamps a completed session with an ID and timestamp.
func NewSessionRecord(id, topic string, duration time.Duration, report analysis.SessionAnalysis, at time.Time) SessionRecord {
	return SessionRecord{
		ID:              id,
		Date:            at.UTC().Format(time.RFC3339),
		Topic:           topic,
		DurationSeconds: int(duration / time.Second),
		Analysis:        report,
	}
}
