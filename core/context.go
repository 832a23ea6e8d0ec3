package core

import "context"

// Context keys for scoring options
type contextKey string

const runIDKey contextKey = "runID"

// withRunID attaches the run store ID of the current scoring run.
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// runIDFromContext returns the run ID, if the run is being recorded.
func runIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(runIDKey).(int64)
	return id, ok && id > 0
}
