package ui

import (
	"strings"
	"testing"
)

func TestTruncateEnd(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"blank", "  ", 10, ""},
		{"fits", "cozy", 10, "cozy"},
		{"exact", "cozy", 4, "cozy"},
		{"cut", "serendipity", 6, "seren…"},
		{"one", "cozy", 1, "…"},
		{"no limit", "cozy", 0, "cozy"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncateEnd(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncateEnd(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("äb", 4); got != "äb  " {
		t.Fatalf("padRight = %q, want %q", got, "äb  ")
	}
	if got := padRight("long", 2); got != "long" {
		t.Fatalf("padRight = %q, want %q", got, "long")
	}
}

func TestClamp(t *testing.T) {
	cases := []struct{ i, n, want int }{
		{-1, 3, 0},
		{0, 0, 0},
		{5, 3, 2},
		{1, 3, 1},
	}
	for _, tc := range cases {
		if got := clamp(tc.i, tc.n); got != tc.want {
			t.Fatalf("clamp(%d, %d) = %d, want %d", tc.i, tc.n, got, tc.want)
		}
	}
}

func TestTernary(t *testing.T) {
	if ternary(true, "a", "b") != "a" || ternary(false, "a", "b") != "b" {
		t.Fatal("ternary picked the wrong branch")
	}
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}
