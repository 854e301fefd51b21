package shipping

import "strings"

type AddressType string

const (
	AddressTypeUnknown     AddressType = ""
	AddressTypeCommercial  AddressType = "commercial"
	AddressTypeResidential AddressType = "residential"
)

// Location is an immutable postal location. CountryCode is the ISO alpha-2 code.
type Location struct {
	Address1    string
	Address2    string
	Address3    string
	City        string
	Province    string
	PostalCode  string
	CountryCode string
	AddressType AddressType
	Phone       string
	Fax         string
}

func (l Location) IsCommercial() bool {
	return l.AddressType == AddressTypeCommercial
}

func (l Location) IsResidential() bool {
	return l.AddressType == AddressTypeResidential
}

// Country returns the upper-cased country code.
func (l Location) Country() string {
	return strings.ToUpper(strings.TrimSpace(l.CountryCode))
}

// State is the boundary name for Province used by US-centric callers.
func (l Location) State() string {
	return l.Province
}

// Zip is the boundary name for PostalCode used by US-centric callers.
func (l Location) Zip() string {
	return l.PostalCode
}
