package coach

import (
	"fmt"
	"testing"

	"github.com/abhisek/podium/internal/analysis"
)

func recordWithAreas(areas ...string) SessionRecord {
	var fas []analysis.FocusArea
	for _, a := range areas {
		fas = append(fas, analysis.FocusArea{Area: a, Action: "fix it"})
	}
	return SessionRecord{
		Topic:    "t",
		Analysis: analysis.SessionAnalysis{Enhancements: analysis.Enhancements{TopAreas: fas}},
	}
}

func TestWatchlistFrom_Empty(t *testing.T) {
	if got := WatchlistFrom(nil); got != "" {
		t.Fatalf("expected empty watchlist, got %q", got)
	}
}

func TestWatchlistFrom_JoinsInOrder(t *testing.T) {
	history := []SessionRecord{
		recordWithAreas("Pacing", "Filler Words"),
		recordWithAreas("Eye Contact"),
	}
	want := "Pacing, Filler Words, Eye Contact"
	if got := WatchlistFrom(history); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWatchlistFrom_PreservesDuplicates(t *testing.T) {
	history := []SessionRecord{
		recordWithAreas("Pacing"),
		recordWithAreas("Pacing"),
		recordWithAreas("Posture", "Pacing"),
	}
	want := "Pacing, Pacing, Posture, Pacing"
	if got := WatchlistFrom(history); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWatchlistFrom_WindowsLastSeven(t *testing.T) {
	var history []SessionRecord
	for i := 1; i <= 10; i++ {
		history = append(history, recordWithAreas(fmt.Sprintf("Area%d", i)))
	}

	want := "Area4, Area5, Area6, Area7, Area8, Area9, Area10"
	if got := WatchlistFrom(history); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestWatchlistFrom_SessionWithNoAreas(t *testing.T) {
	history := []SessionRecord{
		recordWithAreas("Pacing"),
		recordWithAreas(),
		recordWithAreas("Posture"),
	}
	want := "Pacing, Posture"
	if got := WatchlistFrom(history); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
