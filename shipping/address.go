package shipping

// ValidatedAddress is one address validation match. Rank 1 is the carrier's
// best match and Quality is its confidence between 0 and 1.
type ValidatedAddress struct {
	Rank              int
	Quality           float64
	City              string
	StateProvinceCode string
	PostalCodeLow     string
	PostalCodeHigh    string
}
