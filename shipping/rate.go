package shipping

// RateEstimate is one quoted service for a shipment. ServiceName is empty when
// the carrier returned a code with no known name.
type RateEstimate struct {
	Origin      Location
	Destination Location
	Carrier     string
	ServiceName string
	ServiceCode string
	TotalPrice  int64
	Currency    string
	Packages    []Package
}

func (r RateEstimate) Price() Money {
	return Money{Cents: r.TotalPrice, Currency: r.Currency}
}
