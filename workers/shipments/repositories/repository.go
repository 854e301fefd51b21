package repositories

import (
	"carrier-gateway-service/workers/shipments/models"
	"context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the shipment tables and seeds statuses and carriers.
func (r *Repository) Migrate(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	if err := db.AutoMigrate(
		&models.ShipmentStatus{},
		&models.ShipmentCarrier{},
		&models.Shipment{},
		&models.ShipmentEvent{},
	); err != nil {
		return err
	}

	statuses := models.DefaultStatuses()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&statuses).Error; err != nil {
		return err
	}
	carriers := []models.ShipmentCarrier{{Key: models.CarrierUPS, Label: "UPS"}}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&carriers).Error
}

// GetOpenShipments returns shipments whose status is not final, including
// ones that have no status yet.
func (r *Repository) GetOpenShipments(ctx context.Context) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.WithContext(ctx).
		Joins("Status").
		Preload("Carrier").
		Where("\"Status\".is_final = ? OR \"Status\".id IS NULL", false).
		Find(&shipments).Error
	return shipments, err
}

func (r *Repository) GetStatus(ctx context.Context, key string) (models.ShipmentStatus, error) {
	var status models.ShipmentStatus
	err := r.db.WithContext(ctx).Where("key = ?", key).First(&status).Error
	return status, err
}

// SaveShipment updates the shipment row only; events are stored through
// AddEvents.
func (r *Repository) SaveShipment(ctx context.Context, shipment *models.Shipment) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(shipment).Error
}
