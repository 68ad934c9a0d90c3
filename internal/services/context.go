package services

import "context"

type contextKey string

const (
	runIDKey   contextKey = "run_id"
	rootDirKey contextKey = "root_dir"
)

// WithRunID annotates context with the journal run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the journal run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRootDir annotates context with the directory a run operates on.
func WithRootDir(ctx context.Context, dir string) context.Context {
	if dir == "" {
		return ctx
	}
	return context.WithValue(ctx, rootDirKey, dir)
}

// RootDirFromContext extracts the run's directory if present.
func RootDirFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(rootDirKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
