package ui

import "strings"

func ternary(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}

// truncateEnd shortens value to limit runes, ending in an ellipsis.
func truncateEnd(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// padRight pads value with spaces to width runes.
func padRight(value string, width int) string {
	n := len([]rune(value))
	if n >= width {
		return value
	}
	return value + strings.Repeat(" ", width-n)
}

// clamp limits i to [0, n-1], or 0 when n is 0.
func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
