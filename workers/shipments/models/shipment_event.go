package models

import "time"

// ShipmentEvent represents shipment_events table. Fingerprint is stable for
// the same carrier activity so refreshes never store it twice.
type ShipmentEvent struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	ShipmentID  uint   `gorm:"not null;uniqueIndex:idx_shipment_event"`
	Fingerprint string `gorm:"size:36;not null;uniqueIndex:idx_shipment_event"`
	Description string `gorm:"size:256"`
	OccurredAt  time.Time
	City        string `gorm:"size:100"`
	Province    string `gorm:"size:50"`
	PostalCode  string `gorm:"size:20"`
	CountryCode string `gorm:"size:2"`
}
