package practice

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/podium/internal/analysis"
	"github.com/abhisek/podium/internal/capture"
	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/profile"
	"github.com/abhisek/podium/internal/router"
	"github.com/abhisek/podium/internal/screen"
)

// stubTopics implements topicgen.Generator.
type stubTopics struct {
	topic string
}

func (s *stubTopics) DailyTopic(_ context.Context, _ profile.UserProfile, _ int) string {
	return s.topic
}

// stubAnalyzer implements analysis.Analyzer.
type stubAnalyzer struct {
	report *analysis.SessionAnalysis
	err    error
	calls  int
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ analysis.AnalyzeInput) (*analysis.SessionAnalysis, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.report, nil
}

// memPersister implements coach.Persister.
type memPersister struct {
	profiles int
	sessions int
}

func (m *memPersister) SaveProfile(_ context.Context, _ profile.UserProfile) error {
	m.profiles++
	return nil
}

func (m *memPersister) AppendSession(_ context.Context, _ coach.SessionRecord) error {
	m.sessions++
	return nil
}

func sampleReport() *analysis.SessionAnalysis {
	return &analysis.SessionAnalysis{
		Transcript:        "hello",
		RefinedTranscript: "Hello.",
		Metrics: analysis.Metrics{
			ClarityScore:    85,
			EyeContactScore: 70,
		},
		Enhancements: analysis.Enhancements{
			TopAreas: []analysis.FocusArea{{Area: "Pacing", Action: "Slow down."}},
			Exercise: "Read aloud for two minutes.",
		},
	}
}

func testPracticeScreen(az *stubAnalyzer) (*PracticeScreen, *coach.Coach, *capture.MockRecorder) {
	prof := profile.UserProfile{
		Name:             "Ada",
		PrimaryGoal:      "Command authority",
		PreferredPersona: "Authoritative Leader",
		Level:            1,
	}
	orchestrator := coach.New(&memPersister{}, prof, nil, true)
	rec := capture.NewMockRecorder()
	s := New(orchestrator, &stubTopics{topic: "Explain your favorite tool."}, az, rec)
	return s, orchestrator, rec
}

// drive runs the full message sequence up to a submitted recording.
func driveToAnalyzing(t *testing.T, s *PracticeScreen, rec *capture.MockRecorder) tea.Cmd {
	t.Helper()

	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected Init to return a command")
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(topicReadyMsg{AttemptID: s.attemptID, Topic: "Explain your favorite tool."})
	scr, _ = scr.Update(recordStartedMsg{AttemptID: s.attemptID})
	_, cmd := scr.Update(recordDoneMsg{AttemptID: s.attemptID, Artifact: rec.Result})
	return cmd
}

func TestPracticeScreen_Title(t *testing.T) {
	s, _, _ := testPracticeScreen(&stubAnalyzer{report: sampleReport()})
	if s.Title() != "Daily Protocol" {
		t.Errorf("Title = %q, want %q", s.Title(), "Daily Protocol")
	}
}

func TestPracticeScreen_InitStartsSession(t *testing.T) {
	s, orchestrator, _ := testPracticeScreen(&stubAnalyzer{report: sampleReport()})

	if cmd := s.Init(); cmd == nil {
		t.Fatal("expected Init to return a command")
	}
	if s.attemptID == "" {
		t.Error("expected an attempt ID after Init")
	}
	if got := orchestrator.State(); got != coach.StateAwaitingTopic {
		t.Errorf("state = %v, want %v", got, coach.StateAwaitingTopic)
	}
}

func TestPracticeScreen_TopicAdvancesToRecording(t *testing.T) {
	s, orchestrator, _ := testPracticeScreen(&stubAnalyzer{report: sampleReport()})
	s.Init()

	var scr screen.Screen = s
	scr, _ = scr.Update(topicReadyMsg{AttemptID: s.attemptID, Topic: "Explain your favorite tool."})
	ps := scr.(*PracticeScreen)

	if ps.topic != "Explain your favorite tool." {
		t.Errorf("topic = %q", ps.topic)
	}
	if got := orchestrator.State(); got != coach.StateRecording {
		t.Errorf("state = %v, want %v", got, coach.StateRecording)
	}
}

func TestPracticeScreen_EnterStartsAndStopsCamera(t *testing.T) {
	s, _, _ := testPracticeScreen(&stubAnalyzer{report: sampleReport()})
	s.Init()

	var scr screen.Screen = s
	scr, _ = scr.Update(topicReadyMsg{AttemptID: s.attemptID, Topic: "t"})

	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a start-recording command")
	}

	scr, _ = scr.Update(recordStartedMsg{AttemptID: s.attemptID})
	ps := scr.(*PracticeScreen)
	if !ps.recording {
		t.Error("expected recording flag after start")
	}

	_, cmd = ps.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a stop-recording command")
	}
}

func TestPracticeScreen_SuccessReplacesWithReport(t *testing.T) {
	az := &stubAnalyzer{report: sampleReport()}
	s, orchestrator, rec := testPracticeScreen(az)

	driveToAnalyzing(t, s, rec)
	if got := orchestrator.State(); got != coach.StateAnalyzing {
		t.Fatalf("state = %v, want %v", got, coach.StateAnalyzing)
	}

	_, cmd := s.Update(analysisDoneMsg{AttemptID: s.attemptID, Report: sampleReport()})
	if cmd == nil {
		t.Fatal("expected a command after successful analysis")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Error("expected a ReplaceScreenMsg to the report screen")
	}

	if got := len(orchestrator.History()); got != 1 {
		t.Errorf("history length = %d, want 1", got)
	}
	if got := orchestrator.Profile().Level; got != 2 {
		t.Errorf("level = %d, want 2", got)
	}
}

func TestPracticeScreen_FailureKeepsRecordingForRetry(t *testing.T) {
	s, orchestrator, rec := testPracticeScreen(&stubAnalyzer{report: sampleReport()})

	driveToAnalyzing(t, s, rec)

	var scr screen.Screen = s
	scr, _ = scr.Update(analysisDoneMsg{AttemptID: s.attemptID, Err: errors.New("provider unavailable")})
	ps := scr.(*PracticeScreen)

	if got := orchestrator.State(); got != coach.StateFailed {
		t.Errorf("state = %v, want %v", got, coach.StateFailed)
	}
	if !ps.canRetry {
		t.Error("expected retry to be offered when the recording survives")
	}
	if got := len(orchestrator.History()); got != 0 {
		t.Errorf("history length = %d, want 0 after failure", got)
	}
}

func TestPracticeScreen_RetryResubmitsSameRecording(t *testing.T) {
	az := &stubAnalyzer{err: errors.New("provider unavailable")}
	s, orchestrator, rec := testPracticeScreen(az)

	driveToAnalyzing(t, s, rec)
	s.Update(analysisDoneMsg{AttemptID: s.attemptID, Err: az.err})

	az.err = nil
	az.report = sampleReport()

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected a retry command")
	}
	if got := orchestrator.State(); got != coach.StateAnalyzing {
		t.Errorf("state = %v, want %v after retry", got, coach.StateAnalyzing)
	}
}

func TestPracticeScreen_StaleResultDiscarded(t *testing.T) {
	s, orchestrator, rec := testPracticeScreen(&stubAnalyzer{report: sampleReport()})

	driveToAnalyzing(t, s, rec)
	stale := s.attemptID
	s.ConfirmBack()

	s.Update(analysisDoneMsg{AttemptID: stale, Report: sampleReport()})

	if got := orchestrator.State(); got != coach.StateIdle {
		t.Errorf("state = %v, want %v after abandon", got, coach.StateIdle)
	}
	if got := len(orchestrator.History()); got != 0 {
		t.Errorf("history length = %d, want 0 for stale result", got)
	}
}

func TestPracticeScreen_ConfirmBackStopsRecorder(t *testing.T) {
	s, orchestrator, rec := testPracticeScreen(&stubAnalyzer{report: sampleReport()})
	s.Init()

	var scr screen.Screen = s
	scr, _ = scr.Update(topicReadyMsg{AttemptID: s.attemptID, Topic: "t"})
	scr, _ = scr.Update(recordStartedMsg{AttemptID: s.attemptID})
	ps := scr.(*PracticeScreen)

	if !ps.ConfirmBack() {
		t.Error("expected ConfirmBack to allow the pop")
	}
	if !rec.Stopped {
		t.Error("expected the recorder to be stopped")
	}
	if got := orchestrator.State(); got != coach.StateIdle {
		t.Errorf("state = %v, want %v", got, coach.StateIdle)
	}
}

func TestPracticeScreen_PermissionDeniedMessage(t *testing.T) {
	s, _, _ := testPracticeScreen(&stubAnalyzer{report: sampleReport()})
	s.Init()

	var scr screen.Screen = s
	scr, _ = scr.Update(topicReadyMsg{AttemptID: s.attemptID, Topic: "t"})
	scr, _ = scr.Update(recordStartedMsg{AttemptID: s.attemptID, Err: capture.ErrPermissionDenied})
	ps := scr.(*PracticeScreen)

	if ps.errMsg == "" {
		t.Error("expected an error message for denied device access")
	}
	if ps.recording {
		t.Error("recording must not start after a permission error")
	}
}

func TestPracticeScreen_View(t *testing.T) {
	s, _, _ := testPracticeScreen(&stubAnalyzer{report: sampleReport()})
	s.Init()

	if view := s.View(80, 24); view == "" {
		t.Error("expected non-empty view while awaiting topic")
	}

	var scr screen.Screen = s
	scr, _ = scr.Update(topicReadyMsg{AttemptID: s.attemptID, Topic: "t"})
	if view := scr.View(80, 24); view == "" {
		t.Error("expected non-empty recording view")
	}
}
