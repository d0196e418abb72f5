package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the width below which the date column is hidden.
	LayoutCompactWidth = 80

	// LayoutTypesWidth is the minimum width to show the word class column.
	LayoutTypesWidth = 56

	// NameColumnWidth is the fixed width of the name column.
	NameColumnWidth = 24
)

// Toast display limits.
const (
	// ToastLifetime is how long a notification stays on screen.
	ToastLifetime = 4 * time.Second

	// ToastLimit is the number of notifications shown at once.
	ToastLimit = 3

	// ToastBuffer is the notifier's queue depth before messages are dropped.
	ToastBuffer = 32
)
