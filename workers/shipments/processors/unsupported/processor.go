package unsupported

import (
	"carrier-gateway-service/workers/shipments/models"
	"carrier-gateway-service/workers/shipments/processors"
	"context"
	"go.uber.org/zap"
	"time"
)

// TrackingProcessor answers for carriers without an integration.
type TrackingProcessor struct {
	carrier string
	logger  *zap.Logger
}

func NewTrackingProcessor(carrier string, logger *zap.Logger) *TrackingProcessor {
	return &TrackingProcessor{carrier: carrier, logger: logger}
}

func (p *TrackingProcessor) Process(_ context.Context, trackingNumber string) (*processors.CarrierTrackingResults, error) {
	p.logger.Info("Carrier has no tracking integration",
		zap.String("carrier_key", p.carrier),
		zap.String("tracking_number", trackingNumber),
	)
	now := time.Now()

	return &processors.CarrierTrackingResults{
		TrackingNumber: trackingNumber,
		LastCheckedAt:  &now,
		Status:         models.StatusUnsupported,
	}, nil
}
