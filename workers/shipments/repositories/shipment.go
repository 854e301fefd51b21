package repositories

import (
	"carrier-gateway-service/workers/shipments/models"
	"context"
	"gorm.io/gorm/clause"
)

// AddEvents inserts events, ignoring ones already stored for the shipment,
// and returns how many rows were written.
func (r *Repository) AddEvents(ctx context.Context, events []models.ShipmentEvent) (int64, error) {
	if len(events) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shipment_id"}, {Name: "fingerprint"}},
			DoNothing: true,
		}).
		Create(&events)
	return result.RowsAffected, result.Error
}
