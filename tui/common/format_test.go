package common

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestIsLongContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"short", "hello", false},
		{"exactly at char limit", strings.Repeat("a", 300), false},
		{"over char limit", strings.Repeat("a", 301), true},
		{"exactly at line limit", strings.Repeat("x\n", 7) + "x", false},
		{"over line limit", strings.Repeat("x\n", 8) + "x", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLongContent(tt.content); got != tt.want {
				t.Errorf("IsLongContent = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPreview_TruncatesLinesBeforeChars(t *testing.T) {
	content := strings.Repeat("line\n", 9) + "line"
	got := Preview(content)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if n := strings.Count(got, "\n"); n != 7 {
		t.Errorf("expected 8 lines in preview, got %d newlines", n)
	}
}

func TestPreview_TruncatesChars(t *testing.T) {
	content := strings.Repeat("a", 400)
	got := Preview(content)
	if len(got) != 303 {
		t.Errorf("expected 300 chars + ellipsis, got len %d", len(got))
	}
}

func TestPreview_CutsOnRuneBoundary(t *testing.T) {
	// Byte 300 lands mid-rune: "é" is 2 bytes, so 299 a's + é straddles
	// the limit.
	content := strings.Repeat("a", 299) + "é" + strings.Repeat("b", 100)
	got := Preview(content)
	if !utf8.ValidString(got) {
		t.Fatalf("preview emitted invalid UTF-8: %q", got[290:])
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis, got %q", got)
	}
	if strings.ContainsRune(got, 'b') {
		t.Fatalf("content past the limit must be cut, got %q", got)
	}
}

func TestPreview_ShortPassesThrough(t *testing.T) {
	if got := Preview("hello"); got != "hello" {
		t.Errorf("got %q", got)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := TruncateLine("short", 10); got != "short" {
		t.Errorf("short line changed: %q", got)
	}
	got := TruncateLine(strings.Repeat("a", 20), 10)
	if !strings.HasSuffix(got, "…") {
		t.Errorf("expected ellipsis, got %q", got)
	}
}

func TestFormatTime(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"zero", time.Time{}, ""},
		{"just now", now.Add(-10 * time.Second), "just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-49 * time.Hour), "2d ago"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.t); got != tt.want {
				t.Errorf("FormatTime = %q, want %q", got, tt.want)
			}
		})
	}
	old := FormatTime(now.Add(-30 * 24 * time.Hour))
	if !strings.Contains(old, ",") {
		t.Errorf("expected absolute date, got %q", old)
	}
}

func TestPageIndicator(t *testing.T) {
	if got := PageIndicator(1, 0); got != "" {
		t.Errorf("expected empty before totals known, got %q", got)
	}
	if got := PageIndicator(2, 5); got != "page 2 of 5" {
		t.Errorf("got %q", got)
	}
}
