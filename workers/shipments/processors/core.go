package processors

import "context"

type CarrierTrackingProcessor interface {
	Process(ctx context.Context, trackingNumber string) (*CarrierTrackingResults, error)
}
