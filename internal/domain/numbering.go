package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Document number layout, inherited from the paper forms:
//
//	INVNo25001PW 17/08/2025
//	^prefix ^seq ^initial+tier
//
// Invoices use prefix "INVNo" with the 3-digit running number at offset 7;
// quotations use prefix "No" with the running number at offset 4. The two
// characters after the sequence are the responsible person's initial and
// the price-tier letter, followed by the issue date.
const (
	InvoiceNumberPrefix   = "INVNo"
	QuotationNumberPrefix = "No"

	invoiceSequenceOffset   = 7
	quotationSequenceOffset = 4

	sequenceDigits = 3
)

// NextSequenceFromNumber parses the 3-digit running number at the given
// offset of the most recent document number and returns it incremented.
// Any parse failure (number too short, non-numeric run, schema drift)
// yields 1, restarting the sequence rather than failing the caller.
func NextSequenceFromNumber(latest string, offset int) int {
	if len(latest) < offset+sequenceDigits {
		return 1
	}
	run := latest[offset : offset+sequenceDigits]
	n, err := strconv.Atoi(run)
	if err != nil || n < 0 {
		return 1
	}
	return n + 1
}

// NextInvoiceSequence returns the sequence that follows the given invoice number
func NextInvoiceSequence(latest string) int {
	return NextSequenceFromNumber(latest, invoiceSequenceOffset)
}

// NextQuotationSequence returns the sequence that follows the given quotation number
func NextQuotationSequence(latest string) int {
	return NextSequenceFromNumber(latest, quotationSequenceOffset)
}

// YearPrefix returns the two-digit year used in document numbers, e.g. "25"
func YearPrefix(t time.Time) string {
	return fmt.Sprintf("%02d", t.Year()%100)
}

// FormatDocumentNumber assembles a full document number:
// prefix + YY + zero-padded sequence + initial + tier + " " + DD/MM/YYYY.
func FormatDocumentNumber(prefix string, issueDate time.Time, seq int, initial string, tier PriceTier) string {
	return fmt.Sprintf("%s%s%0*d%s%s %s",
		prefix,
		YearPrefix(issueDate),
		sequenceDigits, seq,
		initial,
		string(tier),
		issueDate.Format("02/01/2006"),
	)
}

// FormatInvoiceNumber assembles a full invoice number for the given issue date
func FormatInvoiceNumber(issueDate time.Time, seq int, initial string, tier PriceTier) string {
	return FormatDocumentNumber(InvoiceNumberPrefix, issueDate, seq, initial, tier)
}

// FormatQuotationNumber assembles a full quotation number for the given issue date
func FormatQuotationNumber(issueDate time.Time, seq int, initial string, tier PriceTier) string {
	return FormatDocumentNumber(QuotationNumberPrefix, issueDate, seq, initial, tier)
}
