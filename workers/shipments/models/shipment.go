package models

import "time"

type Shipment struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"`
	Label          string `gorm:"not null"`
	TrackingNumber string `gorm:"size:100;not null;unique"`
	TrackingURL    string `gorm:"size:256"`
	Origin         string `gorm:"size:256"`
	Destination    string `gorm:"size:256"`
	LastLocation   string `gorm:"size:256"`
	LastEvent      string `gorm:"size:256"`
	LastEventAt    *time.Time
	DeliveredAt    *time.Time
	LastCheckedAt  *time.Time

	// Foreign keys
	StatusID  *uint
	Status    *ShipmentStatus `gorm:"foreignKey:StatusID;references:ID"`
	CarrierID *uint
	Carrier   *ShipmentCarrier `gorm:"foreignKey:CarrierID;references:ID"`

	Events []ShipmentEvent `gorm:"foreignKey:ShipmentID"`
}
