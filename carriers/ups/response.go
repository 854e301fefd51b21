package ups

import (
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/xmltree"
	"strings"
)

// Status is the outcome block every response carries under Response.
type Status struct {
	Success  bool
	Code     string
	Severity string
	Message  string
}

// ResponseStatus reads the status block of a response root. Success requires
// ResponseStatusCode to be exactly "1".
func ResponseStatus(root xmltree.Map) Status {
	if root.String("Response", "ResponseStatusCode") == "1" {
		return Status{Success: true, Message: root.String("Response", "ResponseStatusDescription")}
	}

	errs := root.List("Response", "Error")
	if len(errs) == 0 {
		return Status{Message: "no successful response status"}
	}
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if d := e.String("ErrorDescription"); d != "" {
			messages = append(messages, d)
		}
	}
	return Status{
		Code:     errs[0].String("ErrorCode"),
		Severity: errs[0].String("ErrorSeverity"),
		Message:  strings.Join(messages, "; "),
	}
}

// normalize coerces a response into its map view, selects the named root and
// turns a failure status into a *shipping.ResponseError.
func normalize(resp any, rootName string) (xmltree.Map, error) {
	doc, err := xmltree.Coerce(resp)
	if err != nil {
		return nil, shipping.Unparsable(rootName, err)
	}
	root := doc.Map(rootName)
	if root == nil {
		return nil, shipping.Missing(rootName)
	}
	if st := ResponseStatus(root); !st.Success {
		return nil, &shipping.ResponseError{Code: st.Code, Severity: st.Severity, Message: st.Message}
	}
	return root, nil
}

func locationFromAddress(address xmltree.Map) *shipping.Location {
	if address == nil {
		return nil
	}
	return &shipping.Location{
		CountryCode: address.String("CountryCode"),
		PostalCode:  address.String("PostalCode"),
		Province:    address.String("StateProvinceCode"),
		City:        address.String("City"),
		Address1:    address.String("AddressLine1"),
		Address2:    address.String("AddressLine2"),
		Address3:    address.String("AddressLine3"),
	}
}
