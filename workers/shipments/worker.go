package shipments

import (
	"carrier-gateway-service/metrics"
	"carrier-gateway-service/workers/shipments/models"
	"carrier-gateway-service/workers/shipments/processors"
	"context"
	"go.uber.org/zap"
	"sync"
	"sync/atomic"
	"time"
)

// Store is the persistence the worker needs.
type Store interface {
	GetOpenShipments(ctx context.Context) ([]models.Shipment, error)
	GetStatus(ctx context.Context, key string) (models.ShipmentStatus, error)
	SaveShipment(ctx context.Context, shipment *models.Shipment) error
	AddEvents(ctx context.Context, events []models.ShipmentEvent) (int64, error)
}

// EventSet remembers which events were already stored.
type EventSet interface {
	MarkNew(ctx context.Context, shipmentID uint, fingerprint string) (bool, error)
	Forget(ctx context.Context, shipmentID uint, fingerprint string) error
}

// ProcessorFactory builds the tracking processor for a carrier key.
type ProcessorFactory func(carrierKey string) processors.CarrierTrackingProcessor

type Worker struct {
	logger       *zap.Logger
	store        Store
	events       EventSet
	newProcessor ProcessorFactory
	schedule     string
	processors   map[string]processors.CarrierTrackingProcessor
	mu           sync.Mutex
	busy         atomic.Bool
	now          func() time.Time
}

// NewWorker builds the tracking refresh worker. events may be nil, in which
// case only the database constraint prevents duplicate events.
func NewWorker(logger *zap.Logger, store Store, events EventSet, newProcessor ProcessorFactory, schedule string) *Worker {
	return &Worker{
		logger:       logger,
		store:        store,
		events:       events,
		newProcessor: newProcessor,
		schedule:     schedule,
		processors:   make(map[string]processors.CarrierTrackingProcessor),
		now:          time.Now,
	}
}

func (w *Worker) Name() string {
	return "shipments"
}

func (w *Worker) Schedule() string {
	return w.schedule
}

func (w *Worker) Ready(time.Time) bool {
	return !w.busy.Load()
}

func (w *Worker) Execute(ctx context.Context) {
	if !w.busy.CompareAndSwap(false, true) {
		return
	}
	defer w.busy.Store(false)

	w.logger.Info("Starting shipment processing.")

	shipments, err := w.store.GetOpenShipments(ctx)
	if err != nil {
		w.logger.Error("Failed to load open shipments", zap.Error(err))
		return
	}

	if len(shipments) == 0 {
		w.logger.Info("No active shipments found. Shipment work completed")
		return
	}

	shipmentsToProcess := w.getShipmentsToProcess(shipments)
	skipped := len(shipments) - len(shipmentsToProcess)
	metrics.ShipmentsProcessedTotal.WithLabelValues("skipped").Add(float64(skipped))

	if len(shipmentsToProcess) == 0 {
		w.logger.Info("No shipments are ready to be processed. Shipment work completed")
		return
	}

	var wg sync.WaitGroup
	for _, shipment := range shipmentsToProcess {
		wg.Add(1)
		go func(sh models.Shipment) {
			defer wg.Done()
			w.processShipment(ctx, sh)
		}(shipment)
	}

	wg.Wait()
	w.logger.Info("Shipment work completed",
		zap.Int("processed", len(shipmentsToProcess)),
		zap.Int("skipped", skipped),
	)
}

func (w *Worker) getShipmentsToProcess(ss []models.Shipment) (ret []models.Shipment) {
	for _, s := range ss {
		if w.shouldCheck(s) {
			ret = append(ret, s)
		}
	}
	return
}

func (w *Worker) shouldCheck(shipment models.Shipment) bool {
	const (
		day          = 24 * time.Hour
		regularDelay = 2 * time.Hour
		recheckDelay = 15 * time.Minute
	)

	if shipment.Status != nil && shipment.Status.IsFinal {
		return false
	}

	if shipment.Status == nil || shipment.Status.Key == models.StatusUnchecked || shipment.LastCheckedAt == nil {
		return true
	}

	timeSinceLastCheck := w.now().Sub(*shipment.LastCheckedAt)

	switch {
	case timeSinceLastCheck > day:
		return true
	case shipment.Status.Key == models.StatusOutForDelivery:
		return timeSinceLastCheck > recheckDelay
	}
	return timeSinceLastCheck > regularDelay
}

func (w *Worker) getProcessor(carrier string) processors.CarrierTrackingProcessor {
	w.mu.Lock()
	defer w.mu.Unlock()

	if processor, exists := w.processors[carrier]; exists {
		return processor
	}

	processor := w.newProcessor(carrier)
	w.processors[carrier] = processor
	return processor
}
