// Package ups translates shipping domain values to and from the UPS XML
// OnLine Tools: rating, tracking, time in transit and address validation.
package ups

import (
	"carrier-gateway-service/metrics"
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/xmltree"
	"context"
	"errors"
	"fmt"
	"github.com/antchfx/xmlquery"
	"go.uber.org/zap"
	"time"
)

const Name = "UPS"

const (
	TestDomain = "wwwcie.ups.com"
	LiveDomain = "www.ups.com"
)

type Action string

const (
	ActionRates             Action = "rates"
	ActionTrack             Action = "track"
	ActionTimeInTransit     Action = "time_in_transit"
	ActionAddressValidation Action = "address_validation"
)

var resources = map[Action]string{
	ActionRates:             "/ups.app/xml/Rate",
	ActionTrack:             "/ups.app/xml/Track",
	ActionTimeInTransit:     "/ups.app/xml/TimeInTransit",
	ActionAddressValidation: "/ups.app/xml/AV",
}

// Endpoint returns the URL an action is posted to.
func Endpoint(action Action, test bool) string {
	domain := LiveDomain
	if test {
		domain = TestDomain
	}
	return "https://" + domain + resources[action]
}

// Environment picks the test or live endpoints for a single call. The zero
// value defers to the client's configured default.
type Environment int

const (
	EnvironmentDefault Environment = iota
	EnvironmentLive
	EnvironmentTest
)

func (e Environment) String() string {
	switch e {
	case EnvironmentLive:
		return "live"
	case EnvironmentTest:
		return "test"
	}
	return "default"
}

var ErrMissingCredentials = errors.New("ups: license key, user id and password are required")

// Transport posts an XML body to a carrier endpoint and returns the raw reply.
type Transport interface {
	Post(ctx context.Context, endpoint string, body []byte) ([]byte, error)
}

// Options is the immutable client configuration.
type Options struct {
	LicenseKey         string
	UserID             string
	Password           string
	Test               bool
	OriginAccount      string
	DestinationAccount string
}

type Client struct {
	opts      Options
	transport Transport
	logger    *zap.Logger
}

func NewClient(opts Options, transport Transport, logger *zap.Logger) (*Client, error) {
	if opts.LicenseKey == "" || opts.UserID == "" || opts.Password == "" {
		return nil, ErrMissingCredentials
	}
	if transport == nil {
		return nil, errors.New("ups: transport is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{opts: opts, transport: transport, logger: logger}, nil
}

// BuildAccessRequest renders the credential block that precedes every request.
func BuildAccessRequest(opts Options) *xmlquery.Node {
	return xmltree.Element("AccessRequest",
		xmltree.Text("AccessLicenseNumber", opts.LicenseKey),
		xmltree.Text("UserId", opts.UserID),
		xmltree.Text("Password", opts.Password),
	)
}

func (c *Client) isTest(env Environment) bool {
	switch env {
	case EnvironmentTest:
		return true
	case EnvironmentLive:
		return false
	}
	return c.opts.Test
}

func (c *Client) commit(ctx context.Context, action Action, request *xmlquery.Node, env Environment) ([]byte, error) {
	test := c.isTest(env)
	body := xmltree.Render(BuildAccessRequest(c.opts), request)

	c.logger.Debug("Sending carrier request",
		zap.String("action", string(action)),
		zap.Bool("test", test),
	)

	resp, err := c.transport.Post(ctx, Endpoint(action, test), body)
	if err != nil {
		return nil, fmt.Errorf("ups %s: %w", action, err)
	}
	return resp, nil
}

// observe records the outcome of an operation once it has been parsed.
func (c *Client) observe(action Action, start time.Time, err error) {
	outcome := outcomeOf(err)
	metrics.CarrierRequestsTotal.WithLabelValues(Name, string(action), outcome).Inc()
	metrics.CarrierRequestDuration.WithLabelValues(Name, string(action)).Observe(time.Since(start).Seconds())

	var re *shipping.ResponseError
	switch {
	case err == nil:
		return
	case errors.As(err, &re):
		c.logger.Warn("Carrier reported failure",
			zap.String("action", string(action)),
			zap.String("code", re.Code),
			zap.String("message", re.Message),
		)
	default:
		c.logger.Error("Carrier request failed",
			zap.String("action", string(action)),
			zap.String("outcome", outcome),
			zap.Error(err),
		)
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, shipping.ErrCarrierFailure):
		return "carrier_error"
	case errors.Is(err, shipping.ErrMalformedResponse):
		return "malformed"
	}
	return "transport_error"
}
