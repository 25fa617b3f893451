package domain_test

import (
	"testing"
	"time"

	"github.com/pwsupply/erp-api/internal/domain"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestNextInvoiceSequence(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		expected int
	}{
		{
			name:     "follows the latest number",
			latest:   "INVNo25001PW 17/08/2025",
			expected: 2,
		},
		{
			name:     "three digit run",
			latest:   "INVNo25042NR 01/02/2025",
			expected: 43,
		},
		{
			name:     "rolls past 999 without wrapping",
			latest:   "INVNo25999PW 17/08/2025",
			expected: 1000,
		},
		{
			name:     "empty latest restarts at 1",
			latest:   "",
			expected: 1,
		},
		{
			name:     "number too short restarts at 1",
			latest:   "INVNo25",
			expected: 1,
		},
		{
			name:     "non-numeric run restarts at 1",
			latest:   "INVNo25abcPW 17/08/2025",
			expected: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := domain.NextInvoiceSequence(tc.latest)
			if result != tc.expected {
				t.Errorf("NextInvoiceSequence(%q) = %d, want %d", tc.latest, result, tc.expected)
			}
		})
	}
}

func TestNextQuotationSequence(t *testing.T) {
	tests := []struct {
		name     string
		latest   string
		expected int
	}{
		{
			name:     "follows the latest number",
			latest:   "No25007PR 03/01/2025",
			expected: 8,
		},
		{
			name:     "empty latest restarts at 1",
			latest:   "",
			expected: 1,
		},
		{
			name:     "invoice number at the quotation offset restarts at 1",
			latest:   "INVNo25001PW 17/08/2025",
			expected: 1,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := domain.NextQuotationSequence(tc.latest)
			if result != tc.expected {
				t.Errorf("NextQuotationSequence(%q) = %d, want %d", tc.latest, result, tc.expected)
			}
		})
	}
}

func TestFormatDocumentNumbers(t *testing.T) {
	tests := []struct {
		name     string
		format   func() string
		expected string
	}{
		{
			name: "invoice carries prefix, year, padded sequence, initial, tier and date",
			format: func() string {
				return domain.FormatInvoiceNumber(date(2025, 8, 17), 1, "P", domain.PriceTierWholesale)
			},
			expected: "INVNo25001PW 17/08/2025",
		},
		{
			name: "quotation uses the short prefix",
			format: func() string {
				return domain.FormatQuotationNumber(date(2025, 1, 3), 7, "P", domain.PriceTierRetail)
			},
			expected: "No25007PR 03/01/2025",
		},
		{
			name: "sequence grows past three digits unpadded",
			format: func() string {
				return domain.FormatInvoiceNumber(date(2025, 12, 31), 1000, "N", domain.PriceTierSpecial)
			},
			expected: "INVNo251000NS 31/12/2025",
		},
		{
			name: "missing responsible person leaves the initial out",
			format: func() string {
				return domain.FormatInvoiceNumber(date(2026, 2, 1), 5, "", domain.PriceTierRetail)
			},
			expected: "INVNo26005R 01/02/2026",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.format()
			if result != tc.expected {
				t.Errorf("got %q, want %q", result, tc.expected)
			}
		})
	}
}

// The formatter and the parser have to agree on where the sequence sits,
// or generated numbers would restart the sequence they just advanced.
func TestSequenceRoundTrip(t *testing.T) {
	issue := date(2025, 6, 15)

	invoice := domain.FormatInvoiceNumber(issue, 41, "P", domain.PriceTierWholesale)
	if got := domain.NextInvoiceSequence(invoice); got != 42 {
		t.Errorf("NextInvoiceSequence(%q) = %d, want 42", invoice, got)
	}

	quotation := domain.FormatQuotationNumber(issue, 41, "P", domain.PriceTierWholesale)
	if got := domain.NextQuotationSequence(quotation); got != 42 {
		t.Errorf("NextQuotationSequence(%q) = %d, want 42", quotation, got)
	}
}
