package practice

import (
	"time"

	"github.com/abhisek/podium/internal/analysis"
	"github.com/abhisek/podium/internal/capture"
)

// topicReadyMsg is sent when the daily topic has been generated.
type topicReadyMsg struct {
	AttemptID string
	Topic     string
}

// recordStartedMsg reports the recorder starting, or failing to.
type recordStartedMsg struct {
	AttemptID string
	Err       error
}

// recordDoneMsg carries the finished take.
type recordDoneMsg struct {
	AttemptID string
	Artifact  *capture.Artifact
	Err       error
}

// analysisDoneMsg carries the coaching report or the failure.
type analysisDoneMsg struct {
	AttemptID string
	Report    *analysis.SessionAnalysis
	Err       error
}

// timerTickMsg updates the elapsed recording clock.
type timerTickMsg time.Time

// spinnerTickMsg animates the waiting spinner.
type spinnerTickMsg time.Time
