package chunking

import (
	"strings"
	"testing"
)

func TestSplitShortTextIsSingleChunk(t *testing.T) {
	s := NewSplitter(500, 50)
	chunks := s.Split("short paragraph")
	if len(chunks) != 1 || chunks[0] != "short paragraph" {
		t.Fatalf("unexpected chunks %v", chunks)
	}
}

func TestSplitOverlapCarriesTailForward(t *testing.T) {
	s := NewSplitter(10, 4)
	chunks := s.Split("abcdefghijklmnop")
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %v", chunks)
	}
	if chunks[0] != "abcdefghij" || chunks[1] != "ghijklmnop" {
		t.Fatalf("unexpected chunks %v", chunks)
	}
}

func TestSplitEmptyText(t *testing.T) {
	if chunks := NewSplitter(500, 50).Split(""); chunks != nil {
		t.Fatalf("expected nil, got %v", chunks)
	}
}

func TestSplitDefaultsApplied(t *testing.T) {
	s := NewSplitter(0, -1)
	if s.ChunkSize != 500 || s.Overlap != 0 {
		t.Fatalf("unexpected defaults %+v", s)
	}
	text := strings.Repeat("a", 1200)
	chunks := s.Split(text)
	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks for 1200 runes, got %d", len(chunks))
	}
}

func TestSplitOversizedOverlapReduced(t *testing.T) {
	s := NewSplitter(100, 100)
	if s.Overlap != 25 {
		t.Fatalf("unexpected overlap %d", s.Overlap)
	}
}
