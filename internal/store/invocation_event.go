package store

import (
	"context"
	"fmt"
	"time"
)

func (r *eventRepo) AppendInvocation(ctx context.Context, data InvocationEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	attempts := data.Attempts
	if attempts == "" {
		attempts = "[]"
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO invocation_events (
		sequence, created_at, feature, configured, provider, status,
		fallback_used, message, latency_ms, attempts
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, time.Now().UTC().UnixMilli(), data.Feature, data.Configured, data.Provider, data.Status,
		data.FallbackUsed, data.Message, data.LatencyMs, attempts,
	)
	if err != nil {
		return fmt.Errorf("save invocation event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryInvocations(ctx context.Context, opts QueryOpts) ([]InvocationEvent, error) {
	where, args := buildWhere(opts, "feature", opts.Feature)
	query := `SELECT id, sequence, created_at, feature, configured, provider, status,
		fallback_used, message, latency_ms, attempts FROM invocation_events` + where + " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invocations: %w", err)
	}
	defer rows.Close()

	var events []InvocationEvent
	for rows.Next() {
		var e InvocationEvent
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Sequence, &createdAt, &e.Feature, &e.Configured, &e.Provider, &e.Status,
			&e.FallbackUsed, &e.Message, &e.LatencyMs, &e.Attempts); err != nil {
			return nil, fmt.Errorf("scan invocation: %w", err)
		}
		e.Timestamp = time.UnixMilli(createdAt).UTC()
		events = append(events, e)
	}
	return events, rows.Err()
}
