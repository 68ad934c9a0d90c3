package logging_test

import (
	"context"
	"testing"

	"romclerk/internal/logging"
	"romclerk/internal/services"
)

func TestContextFields(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-7")
	ctx = services.WithRootDir(ctx, "/roms")

	fields := logging.ContextFields(ctx)
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Key != logging.FieldRunID || fields[0].Value.String() != "run-7" {
		t.Fatalf("unexpected run id field: %v", fields[0])
	}
	if fields[1].Key != logging.FieldRootDir || fields[1].Value.String() != "/roms" {
		t.Fatalf("unexpected root dir field: %v", fields[1])
	}
}

func TestContextFieldsEmpty(t *testing.T) {
	if fields := logging.ContextFields(context.Background()); len(fields) != 0 {
		t.Fatalf("expected no fields, got %v", fields)
	}
	if fields := logging.ContextFields(nil); fields != nil {
		t.Fatalf("expected nil for nil context, got %v", fields)
	}
}

func TestWithContextAugmentsLogger(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-7")
	if logger := logging.WithContext(ctx, nil); logger == nil {
		t.Fatal("expected a usable logger")
	}
	if logger := logging.WithContext(context.Background(), logging.NewNop()); logger == nil {
		t.Fatal("expected the base logger back")
	}
}
