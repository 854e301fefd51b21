package shipping

import (
	"strings"
	"time"
)

// ShipmentEvent is a single tracking activity. Time is in UTC because the
// carrier reports no zone information. Location is nil when unknown.
type ShipmentEvent struct {
	Description string
	Time        time.Time
	Location    *Location
}

// IsDelivered reports whether the event is the carrier's "delivered" activity.
func (e ShipmentEvent) IsDelivered() bool {
	return strings.EqualFold(strings.TrimSpace(e.Description), "delivered")
}

// TrackingResult events are sorted by time, oldest first.
type TrackingResult struct {
	TrackingNumber string
	Origin         *Location
	Destination    *Location
	Events         []ShipmentEvent
}

// LatestEvent returns the most recent event, if any.
func (r TrackingResult) LatestEvent() (ShipmentEvent, bool) {
	if len(r.Events) == 0 {
		return ShipmentEvent{}, false
	}
	return r.Events[len(r.Events)-1], true
}
