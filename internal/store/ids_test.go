package store

import (
	"context"
	"strings"
	"testing"
)

func TestNewRandomID_Shape(t *testing.T) {
	for _, prefix := range []string{todoIDPrefix, expenseIDPrefix} {
		id, err := newRandomID(prefix)
		if err != nil {
			t.Fatalf("newRandomID: %v", err)
		}
		suffix, ok := strings.CutPrefix(id, prefix+"-")
		if !ok {
			t.Fatalf("expected %s prefix, got %q", prefix, id)
		}
		if got, want := len(suffix), 8; got != want {
			t.Fatalf("expected suffix len %d, got %d (%q)", want, got, suffix)
		}
		if suffix != strings.ToLower(suffix) {
			t.Fatalf("expected lowercase suffix, got %q", suffix)
		}
	}
}

func TestIsTodoID(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"todo-3f9a1c2e", true},
		{"todo-x", true},
		{"todo-", false},
		{"todo", false},
		{"exp-3f9a1c2e", false},
		{"todos", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsTodoID(tt.in); got != tt.want {
			t.Fatalf("IsTodoID(%q)=%v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewID_UniqueAcrossInserts(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		id, err := s.newID(ctx, todosTable, todoIDPrefix)
		if err != nil {
			t.Fatalf("newID: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}
