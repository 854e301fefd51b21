package ups

import (
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/xmltree"
	"context"
	"fmt"
	"github.com/antchfx/xmlquery"
	"strconv"
	"time"
)

type PickupType string

const (
	PickupDaily                PickupType = "01"
	PickupCustomerCounter      PickupType = "03"
	PickupOneTime              PickupType = "06"
	PickupOnCallAir            PickupType = "07"
	PickupSuggestedRetailRates PickupType = "11"
	PickupLetterCenter         PickupType = "19"
	PickupAirServiceCenter     PickupType = "20"
)

const packagingTypeCustomer = "02"

// minimumMeasure keeps zero or negative sizes off the wire.
const minimumMeasure = 0.1

// imperialOrigins are the origin countries quoted in inches and pounds.
var imperialOrigins = map[string]bool{"US": true, "LR": true, "MM": true}

type RateOptions struct {
	Environment Environment
	PickupType  PickupType
	// Shipper is the account holder when it differs from the pickup origin.
	Shipper            *shipping.Location
	OriginAccount      string
	DestinationAccount string
}

// FindRates quotes every service available between origin and destination.
func (c *Client) FindRates(ctx context.Context, origin, destination shipping.Location, packages []shipping.Package, opts RateOptions) (rates []shipping.RateEstimate, err error) {
	start := time.Now()
	defer func() { c.observe(ActionRates, start, err) }()

	if opts.OriginAccount == "" {
		opts.OriginAccount = c.opts.OriginAccount
	}
	if opts.DestinationAccount == "" {
		opts.DestinationAccount = c.opts.DestinationAccount
	}

	resp, err := c.commit(ctx, ActionRates, BuildRateRequest(origin, destination, packages, opts), opts.Environment)
	if err != nil {
		return nil, err
	}
	return ParseRateResponse(resp, origin, destination, packages)
}

// BuildRateRequest builds a "Shop" rating request, quoting all services.
func BuildRateRequest(origin, destination shipping.Location, packages []shipping.Package, opts RateOptions) *xmlquery.Node {
	pickup := opts.PickupType
	if pickup == "" {
		pickup = PickupDaily
	}
	acc := accounts{origin: opts.OriginAccount, destination: opts.DestinationAccount}

	shipper := origin
	if opts.Shipper != nil {
		shipper = *opts.Shipper
	}

	shipment := xmltree.Element("Shipment",
		locationNode("Shipper", shipper, acc),
		locationNode("ShipTo", destination, acc),
		xmltree.When(opts.Shipper != nil && *opts.Shipper != origin, locationNode("ShipFrom", origin, acc)),
	)

	imperial := imperialOrigins[origin.Country()]
	for _, p := range packages {
		xmltree.Append(shipment, packageNode(p, imperial))
	}

	return xmltree.Element("RatingServiceSelectionRequest",
		xmltree.Element("Request",
			xmltree.Text("RequestAction", "Rate"),
			xmltree.Text("RequestOption", "Shop"),
		),
		xmltree.Element("PickupType",
			xmltree.Text("Code", string(pickup)),
		),
		shipment,
	)
}

func packageNode(p shipping.Package, imperial bool) *xmlquery.Node {
	lengthUnit, weightUnit := "CM", "KGS"
	weight := p.Kilograms()
	if imperial {
		lengthUnit, weightUnit = "IN", "LBS"
		weight = p.Pounds()
	}

	dimensions := xmltree.Element("Dimensions",
		xmltree.Element("UnitOfMeasurement", xmltree.Text("Code", lengthUnit)),
	)
	for _, axis := range []shipping.Axis{shipping.Length, shipping.Width, shipping.Height} {
		v := p.Centimetres(axis)
		if imperial {
			v = p.Inches(axis)
		}
		xmltree.Append(dimensions, xmltree.Text(axis.String(), formatMeasure(v)))
	}

	return xmltree.Element("Package",
		xmltree.Element("PackagingType", xmltree.Text("Code", packagingTypeCustomer)),
		dimensions,
		xmltree.Element("PackageWeight",
			xmltree.Element("UnitOfMeasurement", xmltree.Text("Code", weightUnit)),
			xmltree.Text("Weight", formatMeasure(weight)),
		),
	)
}

// formatMeasure rounds to three decimals and floors at minimumMeasure.
func formatMeasure(v float64) string {
	v = shipping.RoundTo(v, 3)
	if v < minimumMeasure {
		v = minimumMeasure
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ParseRateResponse returns one estimate per RatedShipment, in response order.
func ParseRateResponse(resp any, origin, destination shipping.Location, packages []shipping.Package) ([]shipping.RateEstimate, error) {
	root, err := normalize(resp, "RatingServiceSelectionResponse")
	if err != nil {
		return nil, err
	}

	rated := root.List("RatedShipment")
	rates := make([]shipping.RateEstimate, 0, len(rated))
	for i, rs := range rated {
		path := fmt.Sprintf("RatedShipment[%d]", i)
		code := rs.String("Service", "Code")
		if code == "" {
			return nil, shipping.Missing(path + "/Service/Code")
		}
		price, err := shipping.ParseMoney(rs.String("TotalCharges", "MonetaryValue"), rs.String("TotalCharges", "CurrencyCode"))
		if err != nil {
			return nil, shipping.Unparsable(path+"/TotalCharges/MonetaryValue", err)
		}
		name, _ := ServiceName(origin.Country(), code)

		rates = append(rates, shipping.RateEstimate{
			Origin:      origin,
			Destination: destination,
			Carrier:     Name,
			ServiceName: name,
			ServiceCode: code,
			TotalPrice:  price.Cents,
			Currency:    price.Currency,
			Packages:    packages,
		})
	}
	return rates, nil
}
