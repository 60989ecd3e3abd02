package postgres

import (
	"database/sql"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches ErrNoRows", func(t *testing.T) {
		if !isNotFound(sql.ErrNoRows) {
			t.Fatalf("expected true for sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(sql.ErrConnDone) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestStringSliceToAny(t *testing.T) {
	got := stringSliceToAny([]string{"mrr-gk-01", "mrr-fwd-04"})
	if len(got) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got))
	}
	if got[0] != "mrr-gk-01" || got[1] != "mrr-fwd-04" {
		t.Fatalf("unexpected items: %v", got)
	}
}
