package processors

import (
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/workers/shipments/models"
	"strings"
	"time"
)

type CarrierTrackingResults struct {
	TrackingNumber string
	TrackingURL    string
	Origin         string
	Destination    string
	LastLocation   string
	LastCheckedAt  *time.Time
	DeliveredAt    *time.Time
	Status         string
	Events         []shipping.ShipmentEvent
}

var pendingDescriptions = []string{"billing information received", "order processed"}

// StatusFromEvents derives a shipment status key from the latest event.
func StatusFromEvents(events []shipping.ShipmentEvent) string {
	if len(events) == 0 {
		return models.StatusPending
	}
	last := events[len(events)-1]
	description := strings.ToLower(strings.TrimSpace(last.Description))

	switch {
	case last.IsDelivered():
		return models.StatusDelivered
	case strings.Contains(description, "out for delivery"):
		return models.StatusOutForDelivery
	}
	for _, p := range pendingDescriptions {
		if strings.Contains(description, p) {
			return models.StatusPending
		}
	}
	return models.StatusInTransit
}

// DescribeLocation renders a location as "City, Province, CC", skipping blanks.
func DescribeLocation(location *shipping.Location) string {
	if location == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, p := range []string{location.City, location.Province, location.Country()} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
