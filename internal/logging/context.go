package logging

import (
	"context"
	"log/slog"

	"romclerk/internal/services"
)

// ContextFields extracts the run-scoped annotations carried by ctx as
// structured attributes.
func ContextFields(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	var fields []slog.Attr
	if id, ok := services.RunIDFromContext(ctx); ok {
		fields = append(fields, String(FieldRunID, id))
	}
	if dir, ok := services.RootDirFromContext(ctx); ok {
		fields = append(fields, String(FieldRootDir, dir))
	}
	return fields
}

// WithContext folds the context annotations into logger so every subsequent
// line carries them. An unannotated context returns logger unchanged.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	fields := ContextFields(ctx)
	if len(fields) == 0 {
		return logger
	}
	return logger.With(attrsToArgs(fields)...)
}
