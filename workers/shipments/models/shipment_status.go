package models

// Status keys seeded in shipment_statuses.
const (
	StatusUnchecked      = "unchecked"
	StatusPending        = "pending"
	StatusInTransit      = "in_transit"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
	StatusUnsupported    = "unsupported"
)

// ShipmentStatus represents shipment_statuses table
type ShipmentStatus struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	Key     string `gorm:"size:50;not null;unique"`
	Label   string `gorm:"size:50;not null;unique"`
	IsFinal bool   `gorm:"not null"`
}

// DefaultStatuses is the seed data for shipment_statuses.
func DefaultStatuses() []ShipmentStatus {
	return []ShipmentStatus{
		{Key: StatusUnchecked, Label: "Unchecked"},
		{Key: StatusPending, Label: "Pending"},
		{Key: StatusInTransit, Label: "In Transit"},
		{Key: StatusOutForDelivery, Label: "Out for Delivery"},
		{Key: StatusDelivered, Label: "Delivered", IsFinal: true},
		{Key: StatusUnsupported, Label: "Unsupported", IsFinal: true},
	}
}
