package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{name: "under one minute", duration: 45 * time.Second, expected: "45s"},
		{name: "rounded second to minute", duration: 59*time.Second + 500*time.Millisecond, expected: "1m0s"},
		{name: "minutes and seconds", duration: 2*time.Minute + 30*time.Second, expected: "2m30s"},
		{name: "hours and minutes", duration: time.Hour + 30*time.Minute, expected: "1h30m"},
		{name: "whole hours", duration: 12 * time.Hour, expected: "12h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, FormatDuration(tt.duration))
		})
	}
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1.50", FormatPrice(1.5))
	assert.Equal(t, "0.01", FormatPrice(0.01))
	assert.Equal(t, "1000.00", FormatPrice(1000))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{name: "short enough", input: "Blue pen", limit: 10, expected: "Blue pen"},
		{name: "exact length", input: "Blue pen", limit: 8, expected: "Blue pen"},
		{name: "cut with marker", input: "A very long description", limit: 10, expected: "A very ..."},
		{name: "multibyte runes", input: "Καφές και τσάι", limit: 6, expected: "Καφ..."},
		{name: "tiny limit", input: "abcdef", limit: 2, expected: "ab"},
		{name: "zero limit", input: "abc", limit: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Truncate(tt.input, tt.limit))
		})
	}
}
