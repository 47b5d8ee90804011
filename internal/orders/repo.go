package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListUnscheduled returns schedulable orders created after the cutoff that do
// not yet have a scheduling draft. Oldest first so the backfill drains in
// arrival order.
func (r *repository) ListUnscheduled(ctx context.Context, since time.Time, limit int) ([]models.Order, error) {
	var out []models.Order
	query := r.db.WithContext(ctx).
		Preload("Items.Product").
		Joins("LEFT JOIN scheduling_drafts sd ON sd.order_id = orders.id").
		Where("orders.status = ?", enums.OrderStatusConfirmed).
		Where("orders.assigned_distributor_id IS NULL").
		Where("orders.created_at >= ?", since).
		Where("sd.id IS NULL").
		Order("orders.created_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *repository) ApplyScheduling(ctx context.Context, update SchedulingUpdate) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", update.OrderID).
		Updates(map[string]any{
			"assigned_distributor_id": update.DistributorID,
			"delivery_date":           update.DeliveryDate,
			"priority":                update.Priority,
			"status":                  enums.OrderStatusScheduled,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ResetToManual hands the order back to a human scheduler and clears any
// previous assignment.
func (r *repository) ResetToManual(ctx context.Context, orderID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"assigned_distributor_id": nil,
			"status":                  enums.OrderStatusManualSchedule,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
