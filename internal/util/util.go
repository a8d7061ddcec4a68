// Package util holds small formatting helpers for terminal output.
package util

import (
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// FormatDuration formats a duration for people, e.g. "45s", "5m10s", "1h30m" or "12h".
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}

	return fmt.Sprintf("%dh%dm", h, m)
}

// FormatPrice renders a price with two decimals.
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}

// Truncate shortens s to at most limit runes, marking the cut with "...".
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	if limit <= 3 {
		return string([]rune(s)[:limit])
	}

	return string([]rune(s)[:limit-3]) + "..."
}
