package ups

import (
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/xmltree"
	"github.com/antchfx/xmlquery"
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`[^\d]`)

type accounts struct {
	origin      string
	destination string
}

// locationNode renders a Shipper, ShipTo or ShipFrom element.
func locationNode(name string, location shipping.Location, acc accounts) *xmlquery.Node {
	var account *xmlquery.Node
	switch {
	case name == "Shipper" && acc.origin != "":
		account = xmltree.Text("ShipperNumber", acc.origin)
	case name == "ShipTo" && acc.destination != "":
		account = xmltree.Text("ShipperAssignedIdentificationNumber", acc.destination)
	}

	return xmltree.Element(name,
		xmltree.TextIf("PhoneNumber", nonDigits.ReplaceAllString(location.Phone, "")),
		xmltree.TextIf("FaxNumber", nonDigits.ReplaceAllString(location.Fax, "")),
		account,
		xmltree.Element("Address",
			xmltree.TextIf("AddressLine1", location.Address1),
			xmltree.TextIf("AddressLine2", location.Address2),
			xmltree.TextIf("AddressLine3", location.Address3),
			xmltree.TextIf("City", location.City),
			xmltree.TextIf("StateProvinceCode", location.Province),
			xmltree.TextIf("PostalCode", location.PostalCode),
			xmltree.TextIf("CountryCode", location.Country()),
			// Unknown addresses are quoted as residential.
			xmltree.When(!location.IsCommercial(), xmltree.Text("ResidentialAddressIndicator", "true")),
		),
	)
}

// addressArtifact renders the AddressArtifactFormat used by time in transit.
func addressArtifact(location shipping.Location) *xmlquery.Node {
	return xmltree.Element("AddressArtifactFormat",
		xmltree.TextIf("PoliticalDivision2", location.City),
		xmltree.TextIf("PoliticalDivision1", location.Province),
		xmltree.Text("CountryCode", location.Country()),
		xmltree.TextIf("PostcodePrimaryLow", location.PostalCode),
		xmltree.When(location.IsResidential(), xmltree.Element("ResidentialAddressIndicator")),
	)
}

func candidateFromArtifact(artifact xmltree.Map) shipping.AddressCandidate {
	return shipping.AddressCandidate{
		PoliticalDivision1:   artifact.String("PoliticalDivision1"),
		PoliticalDivision2:   artifact.String("PoliticalDivision2"),
		PoliticalDivision3:   artifact.String("PoliticalDivision3"),
		PostcodePrimaryLow:   artifact.String("PostcodePrimaryLow"),
		PostcodePrimaryHigh:  artifact.String("PostcodePrimaryHigh"),
		PostcodeExtendedLow:  artifact.String("PostcodeExtendedLow"),
		PostcodeExtendedHigh: artifact.String("PostcodeExtendedHigh"),
		Country:              artifact.String("Country"),
		CountryCode:          strings.TrimSpace(artifact.String("CountryCode")),
	}
}
