// Package coach owns the practice-session lifecycle: one session at a
// time moves from topic generation through recording and analysis to a
// completed history entry. All progression state (level, streak,
// history, watchlist) lives here; screens only render it.
package coach

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/podium/internal/analysis"
	"github.com/abhisek/podium/internal/profile"
)

// State is the current phase of the practice lifecycle.
type State int

const (
	// StateIdle means no session is in flight.
	StateIdle State = iota
	// StateAwaitingTopic means a session started and the topic is being
	// generated.
	StateAwaitingTopic
	// StateRecording means the user is on camera.
	StateRecording
	// StateAnalyzing means the recording was submitted and the report is
	// pending.
	StateAnalyzing
	// StateCompleted means the report arrived and progression advanced.
	StateCompleted
	// StateFailed means analysis failed; nothing was recorded in history.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingTopic:
		return "awaiting_topic"
	case StateRecording:
		return "recording"
	case StateAnalyzing:
		return "analyzing"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// ErrStaleAttempt marks a result that arrived for an abandoned or
// superseded session. Callers discard these silently.
var ErrStaleAttempt = errors.New("coach: result belongs to a stale attempt")

// ErrNotOnboarded is returned when practice starts before a profile
// exists.
var ErrNotOnboarded = errors.New("coach: onboarding not completed")

// InvalidTransitionError reports an operation called in the wrong state.
type InvalidTransitionError struct {
	Op    string
	State State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("coach: cannot %s in state %s", e.Op, e.State)
}

// Persister durably stores the profile and session history. The coach
// treats persistence failures after a completed analysis as warnings:
// the in-memory session still counts, and the warning surfaces in the
// UI instead of discarding the user's work.
type Persister interface {
	SaveProfile(ctx context.Context, p profile.UserProfile) error
	AppendSession(ctx context.Context, rec SessionRecord) error
}

// Coach is the session orchestrator. Safe for concurrent use; async
// topic generation and analysis complete on other goroutines.
type Coach struct {
	mu      sync.Mutex
	persist Persister

	prof      profile.UserProfile
	onboarded bool
	history   []SessionRecord

	state        State
	attemptID    string
	topic        string
	takeDuration time.Duration
	report       *analysis.SessionAnalysis
	failure      error

	persistWarn error

	now   func() time.Time
	newID func() string
}

// New creates a Coach from previously loaded state. A zero-value
// profile with onboarded=false starts the onboarding flow.
func New(persist Persister, p profile.UserProfile, history []SessionRecord, onboarded bool) *Coach {
	return &Coach{
		persist:   persist,
		prof:      p,
		onboarded: onboarded,
		history:   history,
		state:     StateIdle,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// Onboarded reports whether a profile exists.
func (c *Coach) Onboarded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onboarded
}

// CompleteOnboarding validates and stores the initial profile. New
// profiles start at level 1 with a zero streak.
func (c *Coach) CompleteOnboarding(ctx context.Context, p profile.UserProfile) error {
	if p.Level == 0 {
		p.Level = 1
	}
	if err := p.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.persist.SaveProfile(ctx, p); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	c.prof = p
	c.onboarded = true
	return nil
}

// Profile returns a snapshot of the current profile.
func (c *Coach) Profile() profile.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.prof.Clone()
}

// History returns a copy of the session history, oldest first.
func (c *Coach) History() []SessionRecord {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]SessionRecord, len(c.history))
	copy(out, c.history)
	return out
}

// Day is the current protocol day, which doubles as the difficulty
// level for topic generation.
func (c *Coach) Day() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.prof.Level < 1 {
		return 1
	}
	return c.prof.Level
}

// Watchlist returns the comma-joined recent weakness labels.
func (c *Coach) Watchlist() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WatchlistFrom(c.history)
}

// State returns the current lifecycle state.
func (c *Coach) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Topic returns the active session's topic, if one is set.
func (c *Coach) Topic() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.topic
}

// Report returns the completed session's report, nil outside
// StateCompleted.
func (c *Coach) Report() *analysis.SessionAnalysis {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.report
}

// Failure returns the analysis error, nil outside StateFailed.
func (c *Coach) Failure() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failure
}

// PersistWarning returns the most recent non-fatal durability failure,
// or nil. Reading does not clear it; the next successful persist does.
func (c *Coach) PersistWarning() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persistWarn
}

// BeginPractice starts a new session and returns its attempt ID. Every
// async result must carry this ID back so late arrivals from an
// abandoned session can be discarded.
func (c *Coach) BeginPractice() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.onboarded {
		return "", ErrNotOnboarded
	}
	if c.state != StateIdle {
		return "", &InvalidTransitionError{Op: "begin practice", State: c.state}
	}

	c.attemptID = c.newID()
	c.topic = ""
	c.report = nil
	c.failure = nil
	c.state = StateAwaitingTopic
	return c.attemptID, nil
}

// TopicReady moves the session to recording once the topic arrives.
func (c *Coach) TopicReady(attemptID, topic string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if attemptID != c.attemptID {
		return ErrStaleAttempt
	}
	if c.state != StateAwaitingTopic {
		return &InvalidTransitionError{Op: "set topic", State: c.state}
	}

	c.topic = topic
	c.state = StateRecording
	return nil
}

// CaptureComplete marks the recording finished and analysis submitted.
// The take duration is kept for the eventual history record.
func (c *Coach) CaptureComplete(attemptID string, duration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if attemptID != c.attemptID {
		return ErrStaleAttempt
	}
	if c.state != StateRecording {
		return &InvalidTransitionError{Op: "complete capture", State: c.state}
	}

	c.takeDuration = duration
	c.state = StateAnalyzing
	return nil
}

// AnalysisSucceeded finalizes the session: the record joins history and
// level and streak each advance by one. Persistence failures do not
// undo the completion; they are kept as a warning.
func (c *Coach) AnalysisSucceeded(ctx context.Context, attemptID string, report analysis.SessionAnalysis) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if attemptID != c.attemptID {
		return ErrStaleAttempt
	}
	if c.state != StateAnalyzing {
		return &InvalidTransitionError{Op: "finish analysis", State: c.state}
	}

	rec := NewSessionRecord(attemptID, c.topic, c.takeDuration, report, c.now())
	c.history = append(c.history, rec)
	c.prof.Level++
	c.prof.Streak++
	c.report = &report
	c.state = StateCompleted

	var warn error
	if err := c.persist.AppendSession(ctx, rec); err != nil {
		warn = errors.Join(warn, fmt.Errorf("append session: %w", err))
	}
	if err := c.persist.SaveProfile(ctx, c.prof); err != nil {
		warn = errors.Join(warn, fmt.Errorf("save profile: %w", err))
	}
	c.persistWarn = warn
	return nil
}

// AnalysisFailed moves the session to the failed state. History, level,
// and streak are untouched: a failed analysis leaves no trace beyond
// the error shown to the user.
func (c *Coach) AnalysisFailed(attemptID string, cause error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if attemptID != c.attemptID {
		return ErrStaleAttempt
	}
	if c.state != StateAnalyzing {
		return &InvalidTransitionError{Op: "fail analysis", State: c.state}
	}

	c.failure = cause
	c.state = StateFailed
	return nil
}

// Acknowledge dismisses a completed or failed session and returns to
// idle.
func (c *Coach) Acknowledge() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateCompleted && c.state != StateFailed {
		return &InvalidTransitionError{Op: "acknowledge", State: c.state}
	}

	c.reset()
	return nil
}

// Abandon cancels whatever session is in flight. Any result still
// pending for the old attempt ID will be rejected as stale.
func (c *Coach) Abandon() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

func (c *Coach) reset() {
	c.attemptID = ""
	c.topic = ""
	c.takeDuration = 0
	c.report = nil
	c.failure = nil
	c.state = StateIdle
}
