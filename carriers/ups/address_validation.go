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

// AddressValidationDisclaimer must be shown near address validation input and
// results.
const AddressValidationDisclaimer = "NOTICE: UPS assumes no liability for the information provided by the address validation functionality.  The address validation functionality does not support the identification or verification of occupants at an address."

type AddressValidationOptions struct {
	Environment Environment
}

// ValidateAddress checks a city, state and postal code combination. State on
// its own is rejected by the carrier. Results come back best match first, at
// most ten, and an empty list when nothing matches.
func (c *Client) ValidateAddress(ctx context.Context, location shipping.Location, opts AddressValidationOptions) (addresses []shipping.ValidatedAddress, err error) {
	start := time.Now()
	defer func() { c.observe(ActionAddressValidation, start, err) }()

	resp, err := c.commit(ctx, ActionAddressValidation, BuildAddressValidationRequest(location), opts.Environment)
	if err != nil {
		return nil, err
	}
	return ParseAddressValidationResponse(resp)
}

func BuildAddressValidationRequest(location shipping.Location) *xmlquery.Node {
	return xmltree.Element("AddressValidationRequest",
		xmltree.Element("Request",
			xmltree.Text("RequestAction", "AV"),
		),
		xmltree.Element("Address",
			xmltree.TextIf("City", location.City),
			xmltree.TextIf("StateProvinceCode", location.Province),
			xmltree.TextIf("PostalCode", location.PostalCode),
		),
	)
}

// ParseAddressValidationResponse keeps the carrier's ordering.
func ParseAddressValidationResponse(resp any) ([]shipping.ValidatedAddress, error) {
	root, err := normalize(resp, "AddressValidationResponse")
	if err != nil {
		return nil, err
	}

	results := root.List("AddressValidationResult")
	addresses := make([]shipping.ValidatedAddress, 0, len(results))
	for i, r := range results {
		path := fmt.Sprintf("AddressValidationResult[%d]", i)

		rank, err := strconv.Atoi(r.String("Rank"))
		if err != nil {
			return nil, shipping.Unparsable(path+"/Rank", err)
		}
		quality, err := strconv.ParseFloat(r.String("Quality"), 64)
		if err != nil {
			return nil, shipping.Unparsable(path+"/Quality", err)
		}
		address := r.Map("Address")
		if address == nil {
			return nil, shipping.Missing(path + "/Address")
		}

		addresses = append(addresses, shipping.ValidatedAddress{
			Rank:              rank,
			Quality:           quality,
			City:              address.String("City"),
			StateProvinceCode: address.String("StateProvinceCode"),
			PostalCodeLow:     r.String("PostalCodeLowEnd"),
			PostalCodeHigh:    r.String("PostalCodeHighEnd"),
		})
	}
	return addresses, nil
}
