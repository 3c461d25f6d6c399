package services_test

import (
	"context"
	"testing"

	"scrobblegraph/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "run-123")
	ctx = services.WithRow(ctx, 42)

	if id, ok := services.RunIDFromContext(ctx); !ok || id != "run-123" {
		t.Fatalf("unexpected run id: %v %v", id, ok)
	}
	if row, ok := services.RowFromContext(ctx); !ok || row != 42 {
		t.Fatalf("unexpected row: %v %v", row, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithRunID(ctx, "")
	ctx = services.WithRow(ctx, 0)
	if _, ok := services.RunIDFromContext(ctx); ok {
		t.Fatal("expected no run id value")
	}
	if _, ok := services.RowFromContext(ctx); ok {
		t.Fatal("expected no row value")
	}
}
