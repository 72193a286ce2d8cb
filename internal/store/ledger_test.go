package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/abhisek/podium/internal/analysis"
	"github.com/abhisek/podium/internal/coach"
	"github.com/abhisek/podium/internal/profile"
)

func testProfile() profile.UserProfile {
	return profile.UserProfile{
		Name:             "Ada",
		PrimaryGoal:      "Command authority",
		PreferredPersona: "Authoritative Leader",
		Level:            1,
	}
}

func testSession(id, topic string) coach.SessionRecord {
	return coach.NewSessionRecord(id, topic, 45*time.Second, analysis.SessionAnalysis{
		Transcript: "hello",
		Enhancements: analysis.Enhancements{
			TopAreas: []analysis.FocusArea{{Area: "Pacing", Action: "Slow down."}},
		},
	}, time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC))
}

func TestLoad_FirstRun(t *testing.T) {
	s := openTestStore(t)

	l, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, ok := l.Profile(); ok {
		t.Fatal("expected no profile on first run")
	}
	if len(l.History()) != 0 {
		t.Fatal("expected empty history on first run")
	}
}

func TestSaveProfileRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := l.SaveProfile(ctx, testProfile()); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	l2, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := l2.Profile()
	if !ok {
		t.Fatal("expected profile after save")
	}
	if p.Name != "Ada" || p.PreferredPersona != "Authoritative Leader" {
		t.Fatalf("unexpected profile: %+v", p)
	}
}

func TestSaveProfile_UpdatesInPlace(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l, _ := s.Load(ctx)
	if err := l.SaveProfile(ctx, testProfile()); err != nil {
		t.Fatal(err)
	}

	p := testProfile()
	p.Level = 5
	p.Streak = 4
	if err := l.SaveProfile(ctx, p); err != nil {
		t.Fatal(err)
	}

	// Still a single row.
	var count int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM profiles").Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("profile rows = %d, want 1", count)
	}

	l2, _ := s.Load(ctx)
	got, _ := l2.Profile()
	if got.Level != 5 || got.Streak != 4 {
		t.Fatalf("level=%d streak=%d, want 5 and 4", got.Level, got.Streak)
	}
}

func TestSaveProfile_RejectsInvalid(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l, _ := s.Load(ctx)
	if err := l.SaveProfile(ctx, profile.UserProfile{Name: ""}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestAppendSession_OrderPreserved(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l, _ := s.Load(ctx)
	for i := 1; i <= 5; i++ {
		rec := testSession(fmt.Sprintf("id-%d", i), fmt.Sprintf("topic %d", i))
		if err := l.AppendSession(ctx, rec); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	l2, _ := s.Load(ctx)
	history := l2.History()
	if len(history) != 5 {
		t.Fatalf("history length = %d, want 5", len(history))
	}
	for i, rec := range history {
		want := fmt.Sprintf("topic %d", i+1)
		if rec.Topic != want {
			t.Errorf("history[%d].Topic = %q, want %q", i, rec.Topic, want)
		}
	}
}

func TestAppendSession_DuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l, _ := s.Load(ctx)
	if err := l.AppendSession(ctx, testSession("dup", "first")); err != nil {
		t.Fatal(err)
	}
	if err := l.AppendSession(ctx, testSession("dup", "second")); err == nil {
		t.Fatal("expected unique constraint error")
	}
}

func TestLoad_CorruptProfileFallsBackToFirstRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.DB().Exec(
		"INSERT INTO profiles (id, data, updated_at) VALUES (1, ?, ?)",
		"{not json", time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		t.Fatal(err)
	}

	l, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load must not fail on corrupt profile: %v", err)
	}
	if _, ok := l.Profile(); ok {
		t.Fatal("corrupt profile must read as first run")
	}

	// The write handle still works, replacing the corrupt row.
	if err := l.SaveProfile(ctx, testProfile()); err != nil {
		t.Fatalf("save over corrupt row: %v", err)
	}
	l2, _ := s.Load(ctx)
	if _, ok := l2.Profile(); !ok {
		t.Fatal("expected profile after repair")
	}
}

func TestLoad_CorruptSessionSkipped(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	l, _ := s.Load(ctx)
	if err := l.AppendSession(ctx, testSession("good", "good topic")); err != nil {
		t.Fatal(err)
	}
	_, err := s.DB().Exec(
		"INSERT INTO sessions (session_id, date, topic, data) VALUES (?, ?, ?, ?)",
		"bad", "2026-08-31T00:00:00Z", "bad topic", "{not json",
	)
	if err != nil {
		t.Fatal(err)
	}

	l2, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load must not fail on corrupt session: %v", err)
	}
	history := l2.History()
	if len(history) != 1 || history[0].ID != "good" {
		t.Fatalf("unexpected history: %+v", history)
	}
}
