package ups

import (
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/xmltree"
	"context"
	"github.com/antchfx/xmlquery"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

var (
	beverlyHills = shipping.Location{
		Address1:    "455 N. Rexford Dr.",
		Address2:    "3rd Floor",
		City:        "Beverly Hills",
		Province:    "CA",
		PostalCode:  "90210",
		CountryCode: "US",
		Phone:       "1-310-285-1013",
		Fax:         "1-310-275-8159",
	}
	ottawa = shipping.Location{
		Address1:    "110 Laurier Avenue West",
		City:        "Ottawa",
		Province:    "ON",
		PostalCode:  "K1P 1J1",
		CountryCode: "CA",
		AddressType: shipping.AddressTypeCommercial,
	}
	london = shipping.Location{
		Address1:    "170 Westminster Bridge Rd.",
		City:        "London",
		PostalCode:  "SE1 7RW",
		CountryCode: "GB",
	}
	realHome = shipping.Location{
		Address1:    "2500 Oak Mills Road",
		City:        "Beverly Hills",
		Province:    "CA",
		PostalCode:  "90210",
		CountryCode: "us",
		AddressType: shipping.AddressTypeResidential,
	}
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

// render serializes a request tree and parses it back into its map view.
func render(t *testing.T, n *xmlquery.Node) xmltree.Map {
	t.Helper()
	m, err := xmltree.Parse(xmltree.Render(n))
	require.NoError(t, err)
	return m
}

type call struct {
	endpoint string
	body     []byte
}

type stubTransport struct {
	mu       sync.Mutex
	response []byte
	err      error
	calls    []call
}

func (s *stubTransport) Post(_ context.Context, endpoint string, body []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call{endpoint: endpoint, body: body})
	return s.response, s.err
}

func (s *stubTransport) lastCall(t *testing.T) call {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.calls)
	return s.calls[len(s.calls)-1]
}

func newTestClient(t *testing.T, transport Transport, opts ...func(*Options)) *Client {
	t.Helper()
	o := Options{LicenseKey: "key", UserID: "login", Password: "password", Test: true}
	for _, fn := range opts {
		fn(&o)
	}
	c, err := NewClient(o, transport, zap.NewNop())
	require.NoError(t, err)
	return c
}
