package shipping

import (
	"errors"
	"fmt"
)

var (
	ErrCarrierFailure    = errors.New("carrier reported failure")
	ErrMalformedResponse = errors.New("malformed carrier response")
)

// ResponseError is returned when the carrier answers with a failure status.
type ResponseError struct {
	Code     string
	Severity string
	Message  string
}

func (e *ResponseError) Error() string {
	if e.Code == "" {
		return "carrier error: " + e.Message
	}
	return fmt.Sprintf("carrier error %s: %s", e.Code, e.Message)
}

func (e *ResponseError) Is(target error) bool {
	return target == ErrCarrierFailure
}

// MalformedResponseError is returned when a node the schema requires is
// missing or cannot be parsed.
type MalformedResponseError struct {
	Path   string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed carrier response at %s: %s", e.Path, e.Reason)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func Missing(path string) error {
	return &MalformedResponseError{Path: path, Reason: "missing"}
}

func Unparsable(path string, err error) error {
	return &MalformedResponseError{Path: path, Reason: err.Error()}
}
