package main

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		maxLen int
		want   string
	}{
		{"short unchanged", "Intro", 10, "Intro"},
		{"exact length unchanged", "12345", 5, "12345"},
		{"long ascii", "a long video title here", 10, "a long ..."},
		{"multibyte unchanged", "日本語タイトル", 10, "日本語タイトル"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.in, tt.maxLen); got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
			}
		})
	}
}

func TestTruncate_MultibyteStaysValidUTF8(t *testing.T) {
	title := strings.Repeat("日本語タイトル", 4)

	got := truncate(title, 10)

	if !utf8.ValidString(got) {
		t.Errorf("truncate() = %q, not valid UTF-8", got)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate() = %q, want ... suffix", got)
	}
	if n := utf8.RuneCountInString(got); n != 10 {
		t.Errorf("truncate() rune count = %d, want 10", n)
	}
}
