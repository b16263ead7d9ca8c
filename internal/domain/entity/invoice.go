package entity

import "time"

// InvoiceLineItem is one delivery priced for a monthly invoice
type InvoiceLineItem struct {
	ID            int64   `json:"id"`
	Date          string  `json:"date"`
	ChallanNumber string  `json:"challan_number"`
	VehicleNumber string  `json:"vehicle_number"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	Rate          float64 `json:"rate"`
	Amount        float64 `json:"amount"`
	// RateMissing marks a line priced with no configured rate.
	// Such lines carry amount 0 and must be visually flagged.
	RateMissing bool `json:"rate_missing,omitempty"`
}

// GroupedInvoiceRow aggregates line items sharing (vehicle, description).
// Quantity and amount are summed; the rate comes from any member, since the
// compiler does not reconcile differing rates within a group.
type GroupedInvoiceRow struct {
	VehicleNumber string  `json:"vehicle_number"`
	Description   string  `json:"description"`
	Quantity      float64 `json:"quantity"`
	Rate          float64 `json:"rate"`
	Amount        float64 `json:"amount"`
}

// CompiledInvoice is the computed monthly invoice document
type CompiledInvoice struct {
	Month    string              `json:"month"` // YYYY-MM
	Category string              `json:"category"`
	Items    []InvoiceLineItem   `json:"items"`
	Rows     []GroupedInvoiceRow `json:"rows"`

	// Subtotal and tax components are kept unrounded internally;
	// the rounded fields are the display values.
	Subtotal float64 `json:"subtotal"`
	CGSTRate float64 `json:"cgst_rate"`
	SGSTRate float64 `json:"sgst_rate"`
	CGST     float64 `json:"cgst"`
	SGST     float64 `json:"sgst"`

	RoundedSubtotal int64 `json:"rounded_subtotal"`
	RoundedCGST     int64 `json:"rounded_cgst"`
	RoundedSGST     int64 `json:"rounded_sgst"`
	RoundOff        int64 `json:"round_off"` // currently always 0
	GrandTotal      int64 `json:"grand_total"`

	TotalInWords string `json:"total_in_words"`

	// FlaggedItems lists line items priced with no configured rate.
	FlaggedItems []InvoiceLineItem `json:"flagged_items,omitempty"`
}

// GeneratedInvoice is the persisted metadata for a rendered invoice artifact
type GeneratedInvoice struct {
	ID          int64     `json:"id"`
	Month       string    `json:"month"`
	Category    string    `json:"category"`
	TotalAmount float64   `json:"total_amount"`
	FilePath    string    `json:"file_path"`
	CreatedAt   time.Time `json:"created_at"`
}
