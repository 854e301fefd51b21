// Package transport posts carrier XML over HTTP through a colly collector
// guarded by a circuit breaker. Every exchange is handed to a Recorder.
package transport

import (
	"bytes"
	"carrier-gateway-service/metrics"
	"context"
	"errors"
	"fmt"
	"github.com/gocolly/colly/v2"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"net/http"
	"time"
)

var ErrCircuitOpen = errors.New("transport: circuit breaker is open")

const (
	defaultTimeout          = 20 * time.Second
	defaultFailureThreshold = 5
	defaultOpenTimeout      = 30 * time.Second
	userAgent               = "carrier-gateway-service"
)

// StatusError is returned for a non-2xx reply.
type StatusError struct {
	Endpoint   string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

// Exchange is one request/response pair as sent over the wire.
type Exchange struct {
	TransactionID string
	Endpoint      string
	Request       []byte
	Response      []byte
	StatusCode    int
	Duration      time.Duration
	Err           error
}

type Recorder interface {
	Record(ctx context.Context, exchange Exchange) error
}

type Options struct {
	// Name labels the breaker in logs and metrics.
	Name    string
	Timeout time.Duration
	// FailureThreshold is the number of consecutive failures that opens the
	// breaker. OpenTimeout is how long it stays open.
	FailureThreshold uint32
	OpenTimeout      time.Duration
	Recorder         Recorder
}

type HTTPTransport struct {
	name      string
	collector *colly.Collector
	breaker   *gobreaker.CircuitBreaker
	recorder  Recorder
	logger    *zap.Logger
}

func New(opts Options, logger *zap.Logger) *HTTPTransport {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Name == "" {
		opts.Name = "carrier"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.FailureThreshold == 0 {
		opts.FailureThreshold = defaultFailureThreshold
	}
	if opts.OpenTimeout <= 0 {
		opts.OpenTimeout = defaultOpenTimeout
	}

	collector := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
		colly.UserAgent(userAgent),
	)
	collector.SetRequestTimeout(opts.Timeout)

	threshold := opts.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    opts.Name,
		Timeout: opts.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			metrics.BreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
	metrics.BreakerState.WithLabelValues(opts.Name).Set(float64(gobreaker.StateClosed))

	return &HTTPTransport{
		name:      opts.Name,
		collector: collector,
		breaker:   breaker,
		recorder:  opts.Recorder,
		logger:    logger,
	}
}

// Post sends body to endpoint and returns the reply body.
func (t *HTTPTransport) Post(ctx context.Context, endpoint string, body []byte) ([]byte, error) {
	ex := Exchange{
		TransactionID: uuid.NewString(),
		Endpoint:      endpoint,
		Request:       body,
	}
	start := time.Now()

	out, err := t.breaker.Execute(func() (interface{}, error) {
		return t.send(ctx, &ex)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		err = fmt.Errorf("%w: %s", ErrCircuitOpen, t.name)
	}

	ex.Duration = time.Since(start)
	ex.Err = err
	t.record(ctx, ex)

	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (t *HTTPTransport) send(ctx context.Context, ex *Exchange) ([]byte, error) {
	c := t.collector.Clone()
	c.Context = ctx

	var resp *colly.Response
	c.OnResponse(func(r *colly.Response) {
		resp = r
	})

	hdr := http.Header{}
	hdr.Set("Content-Type", "application/xml")
	hdr.Set("X-Transaction-Id", ex.TransactionID)

	t.logger.Debug("Posting carrier request",
		zap.String("endpoint", ex.Endpoint),
		zap.String("transId", ex.TransactionID),
		zap.Int("bytes", len(ex.Request)),
	)

	if err := c.Request(http.MethodPost, ex.Endpoint, bytes.NewReader(ex.Request), nil, hdr); err != nil {
		return nil, fmt.Errorf("post %s: %w", ex.Endpoint, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("post %s: no response", ex.Endpoint)
	}

	ex.StatusCode = resp.StatusCode
	ex.Response = resp.Body
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Endpoint: ex.Endpoint, StatusCode: resp.StatusCode}
	}
	return resp.Body, nil
}

func (t *HTTPTransport) record(ctx context.Context, ex Exchange) {
	if t.recorder == nil {
		return
	}
	if err := t.recorder.Record(ctx, ex); err != nil {
		t.logger.Error("Failed to record carrier exchange",
			zap.String("transId", ex.TransactionID),
			zap.Error(err),
		)
	}
}

// State reports the breaker state.
func (t *HTTPTransport) State() gobreaker.State {
	return t.breaker.State()
}
