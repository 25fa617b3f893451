package i18n

import (
	"context"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		key      string
		expected string
	}{
		{
			name:     "english message",
			locale:   "en",
			key:      "error.not_found",
			expected: "The requested resource was not found",
		},
		{
			name:     "thai message",
			locale:   "th",
			key:      "status.paid",
			expected: "ชำระแล้ว",
		},
		{
			name:     "unknown locale falls back to english",
			locale:   "de",
			key:      "status.draft",
			expected: "Draft",
		},
		{
			name:     "unknown key comes back verbatim",
			locale:   "en",
			key:      "error.never_written",
			expected: "error.never_written",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Lookup(tc.locale, tc.key)
			if result != tc.expected {
				t.Errorf("Lookup(%q, %q) = %q, want %q", tc.locale, tc.key, result, tc.expected)
			}
		})
	}
}

func TestLocaleContext(t *testing.T) {
	ctx := context.Background()
	if got := FromContext(ctx); got != DefaultLocale {
		t.Errorf("FromContext(empty) = %q, want %q", got, DefaultLocale)
	}

	ctx = WithLocale(ctx, "th")
	if got := FromContext(ctx); got != "th" {
		t.Errorf("FromContext = %q, want %q", got, "th")
	}
}

func TestSupported(t *testing.T) {
	if !Supported("en") || !Supported("th") {
		t.Error("en and th should be supported")
	}
	if Supported("de") {
		t.Error("de should not be supported")
	}
}
