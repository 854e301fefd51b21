package shipping

import "time"

type TimeInTransitService struct {
	ServiceCode   string
	ServiceName   string
	DeliveryAt    time.Time
	BusinessDays  int
	Guaranteed    bool
	GuaranteeNote string
}

// AddressCandidate is a carrier suggestion for an ambiguous origin or
// destination. PoliticalDivision1 is the state or province, 2 the city and 3
// the town or urbanization.
type AddressCandidate struct {
	PoliticalDivision1   string
	PoliticalDivision2   string
	PoliticalDivision3   string
	PostcodePrimaryLow   string
	PostcodePrimaryHigh  string
	PostcodeExtendedLow  string
	PostcodeExtendedHigh string
	Country              string
	CountryCode          string
}

func (c AddressCandidate) State() string { return c.PoliticalDivision1 }
func (c AddressCandidate) City() string  { return c.PoliticalDivision2 }
func (c AddressCandidate) Town() string  { return c.PoliticalDivision3 }

// TimeInTransitResult candidate lists are only populated when the carrier
// could not resolve the supplied origin or destination.
type TimeInTransitResult struct {
	Disclaimer            string
	Services              []TimeInTransitService
	OriginCandidates      []AddressCandidate
	DestinationCandidates []AddressCandidate
}
