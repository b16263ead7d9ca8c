package entity

import "time"

// DeliveryRecord represents one material delivery tied to a challan number
type DeliveryRecord struct {
	ID            int64     `json:"id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	ChallanNumber string    `json:"challan_number"`
	Material      string    `json:"material"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	VehicleNumber string    `json:"vehicle_number"`
	SiteName      string    `json:"site_name"`
	Phase         string    `json:"phase"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
}

// Category returns the billing category for the record's material.
// Derived from the static material table, never stored per record.
func (r *DeliveryRecord) Category() string {
	return MaterialCategories[r.Material]
}

// Month returns the YYYY-MM prefix of the record date.
func (r *DeliveryRecord) Month() string {
	if len(r.Date) < 7 {
		return r.Date
	}
	return r.Date[:7]
}
