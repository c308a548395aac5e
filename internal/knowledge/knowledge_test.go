package knowledge

import (
	"context"
	"strings"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(Options{Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddAndTopKRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.Add(ctx, "find what process is using port 8080", "ss -tlnp 'sport = :8080'"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if err := s.Add(ctx, "check disk usage", "df -h"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	got, err := s.TopK(ctx, "find what process is using port 8080", 1)
	if err != nil {
		t.Fatalf("TopK() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d examples, want 1", len(got))
	}
	if got[0].Goal != "find what process is using port 8080" {
		t.Fatalf("TopK() top result = %q, want the exact-match goal", got[0].Goal)
	}
}

func TestTopKRespectsK(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	for _, goal := range []string{"a", "b", "c"} {
		if err := s.Add(ctx, goal, goal+"-cmd"); err != nil {
			t.Fatalf("Add(%q) error = %v", goal, err)
		}
	}
	got, err := s.TopK(ctx, "a", 2)
	if err != nil {
		t.Fatalf("TopK() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d examples, want 2", len(got))
	}
}

func TestSearchDegradesOnNilStore(t *testing.T) {
	got := Search(context.Background(), nil, "anything", 3)
	if got != "No examples found." {
		t.Fatalf("Search(nil store) = %q, want degrade message", got)
	}
}

func TestSearchDegradesOnZeroK(t *testing.T) {
	s := openTestStore(t)
	got := Search(context.Background(), s, "anything", 0)
	if got != "No examples found." {
		t.Fatalf("Search(k=0) = %q, want degrade message", got)
	}
}

func TestSearchFormatsBlocks(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	if err := s.Add(ctx, "list files", "ls -la"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	got := Search(ctx, s, "list files", 1)
	if !strings.Contains(got, "User Goal: list files") || !strings.Contains(got, "Reference Command: ls -la") {
		t.Fatalf("Search() = %q, missing expected block content", got)
	}
}

func TestFallbackEmbedderIsDeterministic(t *testing.T) {
	e := FallbackEmbedder{}
	v1, err := e.Embed(context.Background(), "disk usage")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	v2, err := e.Embed(context.Background(), "disk usage")
	if err != nil {
		t.Fatalf("Embed() error = %v", err)
	}
	if len(v1) != len(v2) {
		t.Fatalf("Embed() lengths differ: %d vs %d", len(v1), len(v2))
	}
	for i := range v1 {
		if v1[i] != v2[i] {
			t.Fatalf("Embed() not deterministic at index %d: %v vs %v", i, v1[i], v2[i])
		}
	}
}
