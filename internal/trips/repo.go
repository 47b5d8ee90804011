package trips

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// Repository captures delivery trip persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, trip *models.DeliveryTrip) (*models.DeliveryTrip, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryTrip, error)
	CountForDistributorOnDate(ctx context.Context, distributorID uuid.UUID, date time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a trips repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, trip *models.DeliveryTrip) (*models.DeliveryTrip, error) {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return nil, err
	}
	return trip, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.DeliveryTrip, error) {
	var trip models.DeliveryTrip
	err := r.db.WithContext(ctx).
		Preload("Orders").
		First(&trip, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// CountForDistributorOnDate counts non-canceled trips planned for the given
// calendar day.
func (r *repository) CountForDistributorOnDate(ctx context.Context, distributorID uuid.UUID, date time.Time) (int64, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.DeliveryTrip{}).
		Where("distributor_id = ?", distributorID).
		Where("planned_start_time >= ? AND planned_start_time < ?", dayStart, dayEnd).
		Where("status <> ?", enums.TripStatusCanceled).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
