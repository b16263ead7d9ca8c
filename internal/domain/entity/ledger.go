package entity

import "strings"

// LedgerRow is one line of the client's historical billing/payment statement.
// Rows are created only through bulk import (full replace), never edited.
type LedgerRow struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"` // YYYY-MM-DD after import normalization
	Particulars   string  `json:"particulars"`
	VoucherType   string  `json:"vch_type"`
	VoucherNumber string  `json:"vch_no"`
	Debit         float64 `json:"debit"`
	Credit        float64 `json:"credit"`
	Description   string  `json:"description"`
}

// Ledger row kinds derived from the particulars convention.
const (
	LedgerKindPayment  = "Payment"
	LedgerKindPurchase = "Purchase"
)

const paymentSuffix = "(payment)"

// Kind classifies the row from its particulars text. Bank payment lines
// follow the "<bank name> (Payment)" convention; everything else is a
// purchase line. Recomputed on read, never stored.
func (r *LedgerRow) Kind() string {
	if strings.HasSuffix(strings.ToLower(strings.TrimSpace(r.Particulars)), paymentSuffix) {
		return LedgerKindPayment
	}
	return LedgerKindPurchase
}

// BankName returns the bank prefix of a payment row's particulars,
// or "" for non-payment rows.
func (r *LedgerRow) BankName() string {
	p := strings.TrimSpace(r.Particulars)
	if !strings.HasSuffix(strings.ToLower(p), paymentSuffix) {
		return ""
	}
	return strings.TrimSpace(p[:len(p)-len(paymentSuffix)])
}
