package entity

import "time"

// SupplierPayment records one payment made to a material supplier
type SupplierPayment struct {
	ID           int64     `json:"id"`
	Date         string    `json:"date"`
	SupplierName string    `json:"supplier_name"`
	Amount       float64   `json:"amount"`
	PaymentMode  string    `json:"payment_mode"`
	Notes        string    `json:"notes"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}
