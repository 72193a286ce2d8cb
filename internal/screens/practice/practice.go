// Package practice runs one session end to end: topic reveal, camera
// recording, and the wait for analysis. The orchestrator owns all state
// transitions; this screen just drives it and renders.
package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/podium/internal/analysis"
	"github.com/abhisek/podium/internal/capture"
	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/router"
	"github.com/abhisek/podium/internal/screen"
	"github.com/abhisek/podium/internal/screens/report"
	"github.com/abhisek/podium/internal/topicgen"
	"github.com/abhisek/podium/internal/ui/layout"
	"github.com/abhisek/podium/internal/ui/theme"
)

const (
	timerInterval   = time.Second
	spinnerInterval = 120 * time.Millisecond
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// PracticeScreen drives one practice session.
type PracticeScreen struct {
	orchestrator *coach.Coach
	topics       topicgen.Generator
	analyzer     analysis.Analyzer
	recorder     capture.Recorder

	attemptID string
	topic     string
	recording bool
	elapsed   time.Duration
	artifact  *capture.Artifact
	errMsg    string
	canRetry  bool
	spinner   int
}

var _ screen.Screen = (*PracticeScreen)(nil)
var _ screen.KeyHintProvider = (*PracticeScreen)(nil)
var _ screen.BackGuard = (*PracticeScreen)(nil)

// New creates a PracticeScreen with injected dependencies.
func New(orchestrator *coach.Coach, topics topicgen.Generator, analyzer analysis.Analyzer, recorder capture.Recorder) *PracticeScreen {
	return &PracticeScreen{
		orchestrator: orchestrator,
		topics:       topics,
		analyzer:     analyzer,
		recorder:     recorder,
	}
}

func (s *PracticeScreen) Init() tea.Cmd {
	attemptID, err := s.orchestrator.BeginPractice()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.attemptID = attemptID
	return tea.Batch(s.generateTopic(attemptID), s.spinnerTick())
}

func (s *PracticeScreen) Title() string {
	return "Daily Protocol"
}

func (s *PracticeScreen) KeyHints() []layout.KeyHint {
	switch s.orchestrator.State() {
	case coach.StateRecording:
		if s.recording {
			return []layout.KeyHint{
				{Key: "Enter", Description: "Finish take"},
				{Key: "Esc", Description: "Abandon"},
			}
		}
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start camera"},
			{Key: "Esc", Description: "Abandon"},
		}
	case coach.StateFailed:
		hints := []layout.KeyHint{{Key: "Esc", Description: "Back"}}
		if s.canRetry {
			hints = append([]layout.KeyHint{{Key: "R", Description: "Retry analysis"}}, hints...)
		}
		return hints
	default:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Abandon"},
		}
	}
}

// ConfirmBack abandons the in-flight session before the router pops.
func (s *PracticeScreen) ConfirmBack() bool {
	if s.recording {
		// Stop the camera; the artifact is discarded with the attempt.
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.recorder.Stop(stopCtx)
		s.recording = false
	}
	s.orchestrator.Abandon()
	return true
}

func (s *PracticeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case topicReadyMsg:
		return s.handleTopicReady(msg)
	case recordStartedMsg:
		return s.handleRecordStarted(msg)
	case recordDoneMsg:
		return s.handleRecordDone(msg)
	case analysisDoneMsg:
		return s.handleAnalysisDone(msg)
	case timerTickMsg:
		if s.recording {
			s.elapsed += timerInterval
			return s, s.timerTick()
		}
		return s, nil
	case spinnerTickMsg:
		st := s.orchestrator.State()
		if st == coach.StateAwaitingTopic || st == coach.StateAnalyzing {
			s.spinner++
			return s, s.spinnerTick()
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *PracticeScreen) handleTopicReady(msg topicReadyMsg) (screen.Screen, tea.Cmd) {
	if err := s.orchestrator.TopicReady(msg.AttemptID, msg.Topic); err != nil {
		if errors.Is(err, coach.ErrStaleAttempt) {
			return s, nil
		}
		s.errMsg = err.Error()
		return s, nil
	}
	s.topic = msg.Topic
	return s, nil
}

func (s *PracticeScreen) handleRecordStarted(msg recordStartedMsg) (screen.Screen, tea.Cmd) {
	if msg.AttemptID != s.attemptID {
		return s, nil
	}
	if msg.Err != nil {
		if errors.Is(msg.Err, capture.ErrPermissionDenied) {
			s.errMsg = "Camera or microphone access was denied. Grant device access and try again."
		} else {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}
	s.recording = true
	s.elapsed = 0
	return s, s.timerTick()
}

func (s *PracticeScreen) handleRecordDone(msg recordDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.AttemptID != s.attemptID {
		return s, nil
	}
	s.recording = false
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if err := s.orchestrator.CaptureComplete(msg.AttemptID, msg.Artifact.Duration); err != nil {
		if !errors.Is(err, coach.ErrStaleAttempt) {
			s.errMsg = err.Error()
		}
		return s, nil
	}
	s.artifact = msg.Artifact
	return s, tea.Batch(s.analyze(msg.AttemptID, msg.Artifact), s.spinnerTick())
}

func (s *PracticeScreen) handleAnalysisDone(msg analysisDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if err := s.orchestrator.AnalysisFailed(msg.AttemptID, msg.Err); err != nil {
			// Stale result; nothing to show.
			return s, nil
		}
		s.canRetry = s.artifact != nil
		return s, nil
	}

	if err := s.orchestrator.AnalysisSucceeded(context.Background(), msg.AttemptID, *msg.Report); err != nil {
		// Stale result; nothing to show.
		return s, nil
	}

	history := s.orchestrator.History()
	rec := history[len(history)-1]
	next := report.New(s.orchestrator, rec)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (s *PracticeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.orchestrator.State() {
	case coach.StateRecording:
		if msg.String() != "enter" {
			return s, nil
		}
		if !s.recording {
			return s, s.startRecording(s.attemptID)
		}
		return s, s.stopRecording(s.attemptID)

	case coach.StateFailed:
		if msg.String() == "r" && s.canRetry {
			return s, s.retryAnalysis()
		}
	}
	return s, nil
}

// retryAnalysis resubmits the kept recording under a fresh attempt.
func (s *PracticeScreen) retryAnalysis() tea.Cmd {
	topic := s.orchestrator.Topic()
	if err := s.orchestrator.Acknowledge(); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	attemptID, err := s.orchestrator.BeginPractice()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := s.orchestrator.TopicReady(attemptID, topic); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	if err := s.orchestrator.CaptureComplete(attemptID, s.artifact.Duration); err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.attemptID = attemptID
	s.errMsg = ""
	return tea.Batch(s.analyze(attemptID, s.artifact), s.spinnerTick())
}

func (s *PracticeScreen) generateTopic(attemptID string) tea.Cmd {
	orchestrator := s.orchestrator
	topics := s.topics
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		topic := topics.DailyTopic(ctx, orchestrator.Profile(), orchestrator.Day())
		return topicReadyMsg{AttemptID: attemptID, Topic: topic}
	}
}

func (s *PracticeScreen) startRecording(attemptID string) tea.Cmd {
	recorder := s.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return recordStartedMsg{AttemptID: attemptID, Err: recorder.Start(ctx)}
	}
}

func (s *PracticeScreen) stopRecording(attemptID string) tea.Cmd {
	recorder := s.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		art, err := recorder.Stop(ctx)
		return recordDoneMsg{AttemptID: attemptID, Artifact: art, Err: err}
	}
}

func (s *PracticeScreen) analyze(attemptID string, art *capture.Artifact) tea.Cmd {
	orchestrator := s.orchestrator
	analyzer := s.analyzer
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		rpt, err := analyzer.Analyze(ctx, analysis.AnalyzeInput{
			Recording: art,
			Profile:   orchestrator.Profile(),
			Topic:     orchestrator.Topic(),
			Watchlist: orchestrator.Watchlist(),
		})
		return analysisDoneMsg{AttemptID: attemptID, Report: rpt, Err: err}
	}
}

func (s *PracticeScreen) timerTick() tea.Cmd {
	return tea.Tick(timerInterval, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func (s *PracticeScreen) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *PracticeScreen) View(width, height int) string {
	if s.errMsg != "" && s.orchestrator.State() != coach.StateFailed {
		return s.centered(width, height,
			theme.Bad.Render("Something went wrong")+"\n\n"+
				theme.Body.Render(s.errMsg)+"\n\n"+
				theme.Hint.Render("Esc to go back"))
	}

	switch s.orchestrator.State() {
	case coach.StateAwaitingTopic:
		return s.centered(width, height,
			s.spinnerFrame()+" "+theme.Body.Render("Selecting today's challenge..."))

	case coach.StateRecording:
		return s.viewRecording(width, height)

	case coach.StateAnalyzing:
		return s.centered(width, height,
			s.spinnerFrame()+" "+theme.Body.Render("The coach is reviewing your take...")+"\n\n"+
				theme.Hint.Render("This can take a minute for longer speeches."))

	case coach.StateFailed:
		return s.viewFailed(width, height)

	default:
		return s.centered(width, height, theme.Hint.Render("Preparing session..."))
	}
}

func (s *PracticeScreen) viewRecording(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Daily Protocol · Day %d", s.orchestrator.Day())))
	b.WriteString("\n\n")
	b.WriteString(theme.Card.Width(width - 8).Render(
		theme.Selected.Render("Your topic") + "\n\n" + theme.Body.Render(s.topic)))
	b.WriteString("\n\n")

	if s.recording {
		mins := int(s.elapsed.Minutes())
		secs := int(s.elapsed.Seconds()) % 60
		b.WriteString(theme.Bad.Render("● REC") +
			theme.Body.Render(fmt.Sprintf("  %02d:%02d", mins, secs)))
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Speak to the camera. Enter finishes the take."))
	} else {
		b.WriteString(theme.Hint.Render("Take a breath. Enter starts the camera."))
	}

	return s.centered(width, height, b.String())
}

func (s *PracticeScreen) viewFailed(width, height int) string {
	cause := "analysis failed"
	if err := s.orchestrator.Failure(); err != nil {
		cause = err.Error()
	}

	var b strings.Builder
	b.WriteString(theme.Bad.Render("Analysis failed. This session was not counted."))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(cause))
	b.WriteString("\n\n")
	if s.canRetry {
		b.WriteString(theme.Hint.Render("R resubmits your recording. Esc returns to the dashboard."))
	} else {
		b.WriteString(theme.Hint.Render("Esc returns to the dashboard."))
	}
	return s.centered(width, height, b.String())
}

func (s *PracticeScreen) spinnerFrame() string {
	return theme.Selected.Render(spinnerFrames[s.spinner%len(spinnerFrames)])
}

func (s *PracticeScreen) centered(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
