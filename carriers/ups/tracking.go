package ups

import (
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/xmltree"
	"context"
	"fmt"
	"github.com/antchfx/xmlquery"
	"sort"
	"strconv"
	"strings"
	"time"
)

type TrackOptions struct {
	Environment Environment
}

// FindTrackingInfo returns the reconciled activity history of a package.
func (c *Client) FindTrackingInfo(ctx context.Context, trackingNumber string, opts TrackOptions) (result *shipping.TrackingResult, err error) {
	start := time.Now()
	defer func() { c.observe(ActionTrack, start, err) }()

	resp, err := c.commit(ctx, ActionTrack, BuildTrackRequest(trackingNumber), opts.Environment)
	if err != nil {
		return nil, err
	}
	return ParseTrackResponse(resp)
}

// BuildTrackRequest asks for full activity detail (RequestOption 1).
func BuildTrackRequest(trackingNumber string) *xmlquery.Node {
	return xmltree.Element("TrackRequest",
		xmltree.Element("Request",
			xmltree.Text("RequestAction", "Track"),
			xmltree.Text("RequestOption", "1"),
		),
		xmltree.Text("TrackingNumber", strings.TrimSpace(trackingNumber)),
	)
}

// Activity is a raw tracking activity before reconciliation.
type Activity struct {
	Description string
	Date        string
	Time        string
	Location    *shipping.Location
}

func ParseTrackResponse(resp any) (*shipping.TrackingResult, error) {
	root, err := normalize(resp, "TrackResponse")
	if err != nil {
		return nil, err
	}

	shipments := root.List("Shipment")
	if len(shipments) == 0 {
		return nil, shipping.Missing("TrackResponse/Shipment")
	}
	shipment := shipments[0]
	packages := shipment.List("Package")
	if len(packages) == 0 {
		return nil, shipping.Missing("TrackResponse/Shipment/Package")
	}
	pkg := packages[0]

	trackingNumber := shipment.String("ShipmentIdentificationNumber")
	if trackingNumber == "" {
		trackingNumber = pkg.String("TrackingNumber")
	}

	origin := locationFromAddress(shipment.Map("Shipper", "Address"))
	destination := locationFromAddress(shipment.Map("ShipTo", "Address"))

	entries := pkg.List("Activity")
	activities := make([]Activity, 0, len(entries))
	for i, a := range entries {
		if len(a) == 0 {
			return nil, shipping.Missing(fmt.Sprintf("TrackResponse/Shipment/Package/Activity[%d]", i))
		}
		activities = append(activities, Activity{
			Description: a.String("Status", "StatusType", "Description"),
			Date:        a.String("Date"),
			Time:        a.String("Time"),
			Location:    locationFromAddress(a.Map("ActivityLocation", "Address")),
		})
	}

	events, err := ReconcileEvents(activities, origin, destination)
	if err != nil {
		return nil, err
	}

	return &shipping.TrackingResult{
		TrackingNumber: trackingNumber,
		Origin:         origin,
		Destination:    destination,
		Events:         events,
	}, nil
}

// ReconcileEvents turns raw activities into a time-ordered event list. The
// earliest event is anchored to origin, either by taking over its location
// when it already happened in origin's country and city, or by a copy placed
// in front of it. A final "delivered" event is moved to destination.
func ReconcileEvents(activities []Activity, origin, destination *shipping.Location) ([]shipping.ShipmentEvent, error) {
	if len(activities) == 0 {
		return []shipping.ShipmentEvent{}, nil
	}

	events := make([]shipping.ShipmentEvent, 0, len(activities)+1)
	for i, a := range activities {
		at, err := ActivityTime(a.Date, a.Time)
		if err != nil {
			return nil, shipping.Unparsable(fmt.Sprintf("Activity[%d]", i), err)
		}
		events = append(events, shipping.ShipmentEvent{Description: a.Description, Time: at, Location: a.Location})
	}

	sort.SliceStable(events, func(i, j int) bool { return events[i].Time.Before(events[j].Time) })

	if origin != nil {
		first := events[0]
		var at shipping.Location
		if first.Location != nil {
			at = *first.Location
		}
		sameCountry := at.Country() == origin.Country()
		sameOrBlankCity := strings.TrimSpace(at.City) == "" || at.City == origin.City

		anchored := shipping.ShipmentEvent{Description: first.Description, Time: first.Time, Location: origin}
		if sameCountry && sameOrBlankCity {
			events[0] = anchored
		} else {
			events = append([]shipping.ShipmentEvent{anchored}, events...)
		}
	}

	if last := len(events) - 1; events[last].IsDelivered() {
		events[last].Location = destination
	}
	return events, nil
}

// ActivityTime composes an activity's YYYYMMDD date and HHMMSS time into a
// UTC timestamp. The carrier gives no zone, so UTC is assumed. A missing date
// or time yields the zero time.
func ActivityTime(date, clock string) (time.Time, error) {
	if strings.TrimSpace(date) == "" || strings.TrimSpace(clock) == "" {
		return time.Time{}, nil
	}
	digits := nonDigits.ReplaceAllString(date, "")
	if len(digits) != 8 {
		return time.Time{}, fmt.Errorf("date %q is not YYYYMMDD", date)
	}
	year, _ := strconv.Atoi(digits[0:4])
	month, _ := strconv.Atoi(digits[4:6])
	day, _ := strconv.Atoi(digits[6:8])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("date %q is out of range", date)
	}

	hms := nonDigits.ReplaceAllString(clock, "")
	if len(hms) < 4 || len(hms) > 6 || len(hms)%2 != 0 {
		return time.Time{}, fmt.Errorf("time %q is not HHMMSS", clock)
	}
	var parts [3]int
	for i := 0; 2*i < len(hms); i++ {
		parts[i], _ = strconv.Atoi(hms[2*i : 2*i+2])
	}
	if parts[0] > 23 || parts[1] > 59 || parts[2] > 59 {
		return time.Time{}, fmt.Errorf("time %q is out of range", clock)
	}

	return time.Date(year, time.Month(month), day, parts[0], parts[1], parts[2], 0, time.UTC), nil
}
