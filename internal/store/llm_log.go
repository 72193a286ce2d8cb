package store

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/podium/internal/llm"
)

// Store implements llm.RequestLog.
var _ llm.RequestLog = (*Store)(nil)

// AppendRequest records one LLM call. Called from the logging
// middleware on every request, success or failure.
func (s *Store) AppendRequest(ctx context.Context, entry llm.RequestLogEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO llm_requests
			(created_at, provider, model, purpose, input_tokens, output_tokens,
			 latency_ms, success, error_message, request_body, response_body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		entry.Provider, entry.Model, entry.Purpose,
		entry.InputTokens, entry.OutputTokens,
		entry.LatencyMs, entry.Success, entry.ErrorMessage,
		entry.RequestBody, entry.ResponseBody,
	)
	if err != nil {
		return fmt.Errorf("append llm request: %w", err)
	}
	return nil
}

// RequestRow is one logged LLM call, without the large bodies.
type RequestRow struct {
	ID           int64
	CreatedAt    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int
	Success      bool
	ErrorMessage string
}

// RecentRequests returns the newest requests first, up to limit.
func (s *Store) RecentRequests(ctx context.Context, limit int) ([]RequestRow, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, provider, model, purpose, input_tokens,
		       output_tokens, latency_ms, success, error_message
		FROM llm_requests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query requests: %w", err)
	}
	defer rows.Close()

	var out []RequestRow
	for rows.Next() {
		var r RequestRow
		if err := rows.Scan(
			&r.ID, &r.CreatedAt, &r.Provider, &r.Model, &r.Purpose,
			&r.InputTokens, &r.OutputTokens, &r.LatencyMs, &r.Success, &r.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// RequestBodies returns the stored request and response payloads for
// one logged call.
func (s *Store) RequestBodies(ctx context.Context, id int64) (reqBody, respBody string, err error) {
	err = s.db.QueryRowContext(ctx,
		"SELECT request_body, response_body FROM llm_requests WHERE id = ?", id,
	).Scan(&reqBody, &respBody)
	if err != nil {
		return "", "", fmt.Errorf("load request %d: %w", id, err)
	}
	return reqBody, respBody, nil
}

// UsageRow aggregates token usage under one key (a purpose or a model).
type UsageRow struct {
	Key          string
	Requests     int
	InputTokens  int64
	OutputTokens int64
}

// UsageByPurpose aggregates usage per request purpose.
func (s *Store) UsageByPurpose(ctx context.Context) ([]UsageRow, error) {
	return s.usageBy(ctx, "purpose")
}

// UsageByModel aggregates usage per model.
func (s *Store) UsageByModel(ctx context.Context) ([]UsageRow, error) {
	return s.usageBy(ctx, "model")
}

func (s *Store) usageBy(ctx context.Context, column string) ([]UsageRow, error) {
	// column is one of two fixed identifiers, never user input.
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT %s, COUNT(*), COALESCE(SUM(input_tokens), 0), COALESCE(SUM(output_tokens), 0)
		FROM llm_requests GROUP BY %s ORDER BY COUNT(*) DESC`, column, column))
	if err != nil {
		return nil, fmt.Errorf("aggregate usage: %w", err)
	}
	defer rows.Close()

	var out []UsageRow
	for rows.Next() {
		var r UsageRow
		if err := rows.Scan(&r.Key, &r.Requests, &r.InputTokens, &r.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan usage: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
