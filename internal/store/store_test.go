package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/abhisek/podium/internal/llm"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAppendRequestAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	entries := []llm.RequestLogEntry{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "topic-gen", InputTokens: 120, OutputTokens: 24, LatencyMs: 800, Success: true, RequestBody: `{"q":1}`, ResponseBody: `{"a":1}`},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "session-analysis", InputTokens: 9000, OutputTokens: 2100, LatencyMs: 14000, Success: true},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "session-analysis", Success: false, ErrorMessage: "rate limited"},
	}
	for _, e := range entries {
		if err := s.AppendRequest(ctx, e); err != nil {
			t.Fatalf("append request: %v", err)
		}
	}

	rows, err := s.RecentRequests(ctx, 10)
	if err != nil {
		t.Fatalf("recent requests: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	// Newest first.
	if rows[0].Purpose != "session-analysis" || rows[0].Success {
		t.Errorf("unexpected newest row: %+v", rows[0])
	}

	reqBody, respBody, err := s.RequestBodies(ctx, rows[2].ID)
	if err != nil {
		t.Fatalf("request bodies: %v", err)
	}
	if reqBody != `{"q":1}` || respBody != `{"a":1}` {
		t.Errorf("bodies = %q / %q", reqBody, respBody)
	}
}

func TestUsageAggregation(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.AppendRequest(ctx, llm.RequestLogEntry{
			Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "topic-gen",
			InputTokens: 100, OutputTokens: 20, Success: true,
		}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.AppendRequest(ctx, llm.RequestLogEntry{
		Provider: "gemini", Model: "gemini-2.5-pro", Purpose: "session-analysis",
		InputTokens: 5000, OutputTokens: 1500, Success: true,
	}); err != nil {
		t.Fatal(err)
	}

	byPurpose, err := s.UsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("got %d purpose rows, want 2", len(byPurpose))
	}
	if byPurpose[0].Key != "topic-gen" || byPurpose[0].Requests != 3 || byPurpose[0].InputTokens != 300 {
		t.Errorf("unexpected top purpose row: %+v", byPurpose[0])
	}

	byModel, err := s.UsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 {
		t.Fatalf("got %d model rows, want 2", len(byModel))
	}
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.AppendRequest(ctx, llm.RequestLogEntry{Provider: "mock", Model: "mock", Purpose: "t", Success: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	rows, err := s.RecentRequests(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty log after reset, got %d rows", len(rows))
	}
}
