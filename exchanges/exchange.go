// Package exchanges persists the raw XML exchanged with carriers.
package exchanges

import (
	"carrier-gateway-service/transport"
	"context"
	"gorm.io/gorm"
	"time"
)

// maxErrorLength bounds the stored error text to the column size.
const maxErrorLength = 512

// CarrierExchange represents carrier_exchanges table
type CarrierExchange struct {
	ID            uint   `gorm:"primaryKey;autoIncrement"`
	TransactionID string `gorm:"size:36;not null;uniqueIndex"`
	Endpoint      string `gorm:"size:256;not null"`
	StatusCode    int
	DurationMs    int64
	Request       string `gorm:"type:text"`
	Response      string `gorm:"type:text"`
	Error         string `gorm:"size:512"`
	CreatedAt     time.Time
}

func FromExchange(ex transport.Exchange) CarrierExchange {
	record := CarrierExchange{
		TransactionID: ex.TransactionID,
		Endpoint:      ex.Endpoint,
		StatusCode:    ex.StatusCode,
		DurationMs:    ex.Duration.Milliseconds(),
		Request:       string(ex.Request),
		Response:      string(ex.Response),
	}
	if ex.Err != nil {
		record.Error = ex.Err.Error()
		if len(record.Error) > maxErrorLength {
			record.Error = record.Error[:maxErrorLength]
		}
	}
	return record
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record implements transport.Recorder.
func (r *Repository) Record(ctx context.Context, ex transport.Exchange) error {
	record := FromExchange(ex)
	return r.db.WithContext(ctx).Create(&record).Error
}

// Prune deletes exchanges older than the cutoff and returns how many were removed.
func (r *Repository) Prune(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", before).Delete(&CarrierExchange{})
	return result.RowsAffected, result.Error
}
