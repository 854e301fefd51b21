package ups

import (
	upsapi "carrier-gateway-service/carriers/ups"
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/workers/shipments/processors"
	"context"
	"fmt"
	"go.uber.org/zap"
	"net/url"
	"time"
)

const trackingURL = "https://www.ups.com/track?loc=en_US&requester=ST/trackdetails&tracknum="

// Tracker is the part of the UPS client the processor needs.
type Tracker interface {
	FindTrackingInfo(ctx context.Context, trackingNumber string, opts upsapi.TrackOptions) (*shipping.TrackingResult, error)
}

type TrackingProcessor struct {
	tracker Tracker
	opts    upsapi.TrackOptions
	logger  *zap.Logger
}

func NewTrackingProcessor(tracker Tracker, opts upsapi.TrackOptions, logger *zap.Logger) *TrackingProcessor {
	return &TrackingProcessor{tracker: tracker, opts: opts, logger: logger}
}

func (p *TrackingProcessor) Process(ctx context.Context, trackingNumber string) (*processors.CarrierTrackingResults, error) {
	info, err := p.tracker.FindTrackingInfo(ctx, trackingNumber, p.opts)
	if err != nil {
		return nil, fmt.Errorf("track %s: %w", trackingNumber, err)
	}
	now := time.Now()

	results := &processors.CarrierTrackingResults{
		TrackingNumber: trackingNumber,
		TrackingURL:    trackingURL + url.QueryEscape(trackingNumber),
		Origin:         processors.DescribeLocation(info.Origin),
		Destination:    processors.DescribeLocation(info.Destination),
		LastCheckedAt:  &now,
		Status:         processors.StatusFromEvents(info.Events),
		Events:         info.Events,
	}

	if latest, ok := info.LatestEvent(); ok {
		results.LastLocation = processors.DescribeLocation(latest.Location)
		if latest.IsDelivered() && !latest.Time.IsZero() {
			at := latest.Time
			results.DeliveredAt = &at
		}
	}

	p.logger.Debug("Tracking retrieved",
		zap.String("tracking_number", trackingNumber),
		zap.Int("events", len(info.Events)),
		zap.String("status", results.Status),
	)
	return results, nil
}
