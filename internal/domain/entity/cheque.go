package entity

import "time"

// Cheque statuses as tracked against the bank
const (
	ChequeStatusPending = "Pending"
	ChequeStatusCleared = "Cleared"
	ChequeStatusBounced = "Bounced"
)

// ChequeEntry records one cheque received from a party, optionally
// linked to a stored image of the cheque leaf.
type ChequeEntry struct {
	ID           int64     `json:"id"`
	Date         string    `json:"date"`
	PartyName    string    `json:"party_name"`
	ChequeNumber string    `json:"cheque_number"`
	BankName     string    `json:"bank_name"`
	Amount       float64   `json:"amount"`
	Status       string    `json:"status"`
	FilePath     string    `json:"file_path,omitempty"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidChequeStatus reports whether s is a tracked cheque status.
func ValidChequeStatus(s string) bool {
	switch s {
	case ChequeStatusPending, ChequeStatusCleared, ChequeStatusBounced:
		return true
	}
	return false
}
