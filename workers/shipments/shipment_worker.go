package shipments

import (
	"carrier-gateway-service/metrics"
	"carrier-gateway-service/shipping"
	"carrier-gateway-service/workers/shipments/models"
	"carrier-gateway-service/workers/shipments/processors"
	"context"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"strings"
	"time"
)

func (w *Worker) processShipment(ctx context.Context, sh models.Shipment) {
	carrierKey := ""
	if sh.Carrier != nil {
		carrierKey = sh.Carrier.Key
	}

	result, err := w.getProcessor(carrierKey).Process(ctx, sh.TrackingNumber)
	if err != nil {
		metrics.ShipmentsProcessedTotal.WithLabelValues("failed").Inc()
		w.logger.Error("Failed to process shipment",
			zap.String("tracking_number", sh.TrackingNumber),
			zap.String("carrier_key", carrierKey),
			zap.Error(err),
		)
		return
	}

	status, err := w.store.GetStatus(ctx, result.Status)
	if err != nil {
		metrics.ShipmentsProcessedTotal.WithLabelValues("failed").Inc()
		w.logger.Error("Failed to get shipment status",
			zap.String("tracking_number", result.TrackingNumber),
			zap.String("status_key", result.Status),
			zap.Error(err),
		)
		return
	}

	updateShipmentFromResult(&sh, result, &status)

	if err := w.store.SaveShipment(ctx, &sh); err != nil {
		metrics.ShipmentsProcessedTotal.WithLabelValues("failed").Inc()
		w.logger.Error("Failed to save shipment",
			zap.String("tracking_number", sh.TrackingNumber),
			zap.Error(err),
		)
		return
	}

	stored := w.storeEvents(ctx, sh, result.Events)
	metrics.ShipmentsProcessedTotal.WithLabelValues("updated").Inc()

	w.logger.Info("Shipment successfully processed",
		zap.String("tracking_number", sh.TrackingNumber),
		zap.String("status", status.Key),
		zap.Int64("new_events", stored),
	)
}

func updateShipmentFromResult(sh *models.Shipment, result *processors.CarrierTrackingResults, status *models.ShipmentStatus) {
	sh.Status = status
	sh.StatusID = &status.ID

	if result.TrackingURL != "" {
		sh.TrackingURL = result.TrackingURL
	}
	if result.Origin != "" {
		sh.Origin = result.Origin
	}
	if result.Destination != "" {
		sh.Destination = result.Destination
	}
	if result.LastLocation != "" {
		sh.LastLocation = result.LastLocation
	}

	if n := len(result.Events); n > 0 {
		last := result.Events[n-1]
		sh.LastEvent = last.Description
		if !last.Time.IsZero() {
			utc := last.Time.UTC()
			sh.LastEventAt = &utc
		}
	}

	if result.LastCheckedAt != nil {
		utc := result.LastCheckedAt.UTC()
		sh.LastCheckedAt = &utc
	}

	if result.DeliveredAt != nil {
		utc := result.DeliveredAt.UTC()
		sh.DeliveredAt = &utc
	}
}

// storeEvents persists the events not stored by an earlier refresh.
func (w *Worker) storeEvents(ctx context.Context, sh models.Shipment, events []shipping.ShipmentEvent) int64 {
	fresh := make([]models.ShipmentEvent, 0, len(events))
	for _, e := range events {
		record := eventModel(sh.ID, e)
		if w.events != nil {
			isNew, err := w.events.MarkNew(ctx, sh.ID, record.Fingerprint)
			if err != nil {
				w.logger.Warn("Event dedup unavailable",
					zap.String("tracking_number", sh.TrackingNumber),
					zap.Error(err),
				)
			} else if !isNew {
				continue
			}
		}
		fresh = append(fresh, record)
	}

	stored, err := w.store.AddEvents(ctx, fresh)
	if err != nil {
		w.logger.Error("Failed to store shipment events",
			zap.String("tracking_number", sh.TrackingNumber),
			zap.Error(err),
		)
		w.forget(ctx, sh.ID, fresh)
		return 0
	}
	metrics.ShipmentEventsStoredTotal.Add(float64(stored))
	return stored
}

func (w *Worker) forget(ctx context.Context, shipmentID uint, events []models.ShipmentEvent) {
	if w.events == nil {
		return
	}
	for _, e := range events {
		if err := w.events.Forget(ctx, shipmentID, e.Fingerprint); err != nil {
			w.logger.Warn("Failed to clear event dedup mark", zap.Error(err))
			return
		}
	}
}

func eventModel(shipmentID uint, e shipping.ShipmentEvent) models.ShipmentEvent {
	record := models.ShipmentEvent{
		ShipmentID:  shipmentID,
		Fingerprint: Fingerprint(e),
		Description: e.Description,
		OccurredAt:  e.Time.UTC(),
	}
	if e.Location != nil {
		record.City = e.Location.City
		record.Province = e.Location.Province
		record.PostalCode = e.Location.PostalCode
		record.CountryCode = e.Location.Country()
	}
	return record
}

// Fingerprint identifies an event by what happened, when and where.
func Fingerprint(e shipping.ShipmentEvent) string {
	parts := []string{strings.TrimSpace(e.Description), e.Time.UTC().Format(time.RFC3339)}
	if e.Location != nil {
		parts = append(parts, e.Location.Address1, e.Location.City, e.Location.PostalCode, e.Location.Country())
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "|"))).String()
}
