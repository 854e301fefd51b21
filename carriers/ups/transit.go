package ups

import (
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/xmltree"
	"context"
	"fmt"
	"github.com/antchfx/xmlquery"
	"strconv"
	"strings"
	"time"
)

// TimeInTransitOptions fields left nil or false are omitted from the request.
type TimeInTransitOptions struct {
	Environment Environment
	// WeightInPounds is the total shipment weight.
	WeightInPounds *float64
	PackageCount   *int
	// MonetaryValue is the declared value of the shipment.
	MonetaryValue *shipping.Money
	DocumentsOnly bool
	// MaxCandidates bounds the candidate lists returned for an ambiguous
	// origin or destination (1 to 50).
	MaxCandidates *int
}

// FindTimeInTransit estimates delivery dates for each service between two
// locations, for a package picked up on pickupDate.
func (c *Client) FindTimeInTransit(ctx context.Context, origin, destination shipping.Location, pickupDate time.Time, opts TimeInTransitOptions) (result *shipping.TimeInTransitResult, err error) {
	start := time.Now()
	defer func() { c.observe(ActionTimeInTransit, start, err) }()

	resp, err := c.commit(ctx, ActionTimeInTransit, BuildTimeInTransitRequest(origin, destination, pickupDate, opts), opts.Environment)
	if err != nil {
		return nil, err
	}
	return ParseTimeInTransitResponse(resp)
}

func BuildTimeInTransitRequest(origin, destination shipping.Location, pickupDate time.Time, opts TimeInTransitOptions) *xmlquery.Node {
	root := xmltree.Element("TimeInTransitRequest",
		xmltree.Element("Request",
			xmltree.Text("RequestAction", "TimeInTransit"),
		),
		xmltree.Element("TransitFrom", addressArtifact(origin)),
		xmltree.Element("TransitTo", addressArtifact(destination)),
		xmltree.Text("PickupDate", pickupDate.Format("20060102")),
	)

	if opts.WeightInPounds != nil {
		xmltree.Append(root, xmltree.Element("ShipmentWeight",
			xmltree.Element("UnitOfMeasurement", xmltree.Text("Code", "LBS")),
			xmltree.Text("Weight", strconv.FormatFloat(*opts.WeightInPounds, 'f', -1, 64)),
		))
	}
	if opts.PackageCount != nil {
		xmltree.Append(root, xmltree.Text("TotalPackagesInShipment", strconv.Itoa(*opts.PackageCount)))
	}
	if opts.MonetaryValue != nil {
		xmltree.Append(root, xmltree.Element("InvoiceLineTotal",
			xmltree.Text("CurrencyCode", opts.MonetaryValue.Currency),
			xmltree.Text("MonetaryValue", opts.MonetaryValue.Decimal()),
		))
	}
	if opts.DocumentsOnly {
		xmltree.Append(root, xmltree.Element("DocumentsOnlyIndicator"))
	}
	if opts.MaxCandidates != nil {
		xmltree.Append(root, xmltree.Text("MaximumListSize", strconv.Itoa(*opts.MaxCandidates)))
	}
	return root
}

func ParseTimeInTransitResponse(resp any) (*shipping.TimeInTransitResult, error) {
	root, err := normalize(resp, "TimeInTransitResponse")
	if err != nil {
		return nil, err
	}

	transit := root.Map("TransitResponse")
	if transit == nil {
		return nil, shipping.Missing("TimeInTransitResponse/TransitResponse")
	}

	result := &shipping.TimeInTransitResult{
		Disclaimer:            transit.String("Disclaimer"),
		Services:              []shipping.TimeInTransitService{},
		OriginCandidates:      []shipping.AddressCandidate{},
		DestinationCandidates: []shipping.AddressCandidate{},
	}

	for i, summary := range transit.List("ServiceSummary") {
		service, err := parseServiceSummary(summary)
		if err != nil {
			return nil, shipping.Unparsable(fmt.Sprintf("TransitResponse/ServiceSummary[%d]", i), err)
		}
		result.Services = append(result.Services, service)
	}

	if result.OriginCandidates, err = candidateList(transit.Map("TransitFromList"), "TransitResponse/TransitFromList"); err != nil {
		return nil, err
	}
	if result.DestinationCandidates, err = candidateList(transit.Map("TransitToList"), "TransitResponse/TransitToList"); err != nil {
		return nil, err
	}
	return result, nil
}

func parseServiceSummary(summary xmltree.Map) (shipping.TimeInTransitService, error) {
	arrival := summary.Map("EstimatedArrival")
	if arrival == nil {
		return shipping.TimeInTransitService{}, fmt.Errorf("EstimatedArrival missing")
	}
	deliveryAt, err := arrivalTime(arrival.String("Date"), arrival.String("Time"))
	if err != nil {
		return shipping.TimeInTransitService{}, err
	}

	days := 0
	if s := arrival.String("BusinessTransitDays"); s != "" {
		if days, err = strconv.Atoi(s); err != nil {
			return shipping.TimeInTransitService{}, fmt.Errorf("BusinessTransitDays %q: %w", s, err)
		}
	}

	return shipping.TimeInTransitService{
		ServiceCode:   summary.String("Service", "Code"),
		ServiceName:   summary.String("Service", "Description"),
		DeliveryAt:    deliveryAt,
		BusinessDays:  days,
		Guaranteed:    IsGuaranteed(summary.String("Guaranteed", "Code")),
		GuaranteeNote: summary.String("Guaranteed", "Description"),
	}, nil
}

// IsGuaranteed reads the Guaranteed code. The developer guide documents "1"
// and "0" while the interface examples use "Y" and "N"; both forms are read.
func IsGuaranteed(code string) bool {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "1", "Y":
		return true
	}
	return false
}

var arrivalDateLayouts = []string{"2006-01-02", "20060102"}
var arrivalTimeLayouts = []string{"15:04:05", "150405", "15:04", "1504"}

// arrivalTime joins the estimated arrival date and time without any zone
// correction. A missing time means midnight.
func arrivalTime(date, clock string) (time.Time, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	var day time.Time
	var err error
	for _, layout := range arrivalDateLayouts {
		if day, err = time.Parse(layout, date); err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("arrival date %q: %w", date, err)
	}
	if clock == "" {
		return day, nil
	}
	for _, layout := range arrivalTimeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, clock); err == nil {
			return day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute + time.Duration(t.Second())*time.Second), nil
		}
	}
	return time.Time{}, fmt.Errorf("arrival time %q: %w", clock, err)
}

func candidateList(list xmltree.Map, path string) ([]shipping.AddressCandidate, error) {
	candidates := []shipping.AddressCandidate{}
	if list == nil {
		return candidates, nil
	}
	for i, c := range list.List("Candidate") {
		artifact := c.Map("AddressArtifactFormat")
		if artifact == nil {
			return nil, shipping.Missing(fmt.Sprintf("%s/Candidate[%d]/AddressArtifactFormat", path, i))
		}
		candidates = append(candidates, candidateFromArtifact(artifact))
	}
	return candidates, nil
}
