package distributors

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// ZoneAll is the sentinel zone affiliation meaning the distributor serves
// every zone.
const ZoneAll = "all"

// CandidateRow is a distributor joined with their trip count for one day.
type CandidateRow struct {
	models.User `gorm:"embedded"`
	TripsOnDate int `gorm:"column:trips_on_date"`
}

// Repository captures distributor persistence for candidate selection and
// workload accounting.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListEligible(ctx context.Context, zone string, date time.Time, maxDaily int) ([]CandidateRow, error)
	CountStoreDeliveries(ctx context.Context, storeID uuid.UUID, distributorIDs []uuid.UUID) (map[uuid.UUID]int, error)
	AdjustWorkload(ctx context.Context, id uuid.UUID, delta int) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a distributors repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Where("role = ?", enums.UserRoleDistributor).
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListEligible returns active distributors whose zone affiliation covers the
// requested zone and who still have trip capacity on the target date. Rows
// come back in a stable order so score ties keep query order downstream.
func (r *repository) ListEligible(ctx context.Context, zone string, date time.Time, maxDaily int) ([]CandidateRow, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	tripCount := r.db.
		Model(&models.DeliveryTrip{}).
		Select("COUNT(*)").
		Where("delivery_trips.distributor_id = users.id").
		Where("delivery_trips.planned_start_time >= ? AND delivery_trips.planned_start_time < ?", dayStart, dayEnd).
		Where("delivery_trips.status <> ?", enums.TripStatusCanceled)

	var rows []CandidateRow
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("users.*, (?) AS trips_on_date", tripCount).
		Where("users.role = ?", enums.UserRoleDistributor).
		Where("users.status = ?", enums.DistributorStatusActive).
		Where("users.delivery_zone IS NULL OR users.delivery_zone = ? OR users.delivery_zone = ?", zone, ZoneAll).
		Where("(?) < ?", tripCount, maxDaily).
		Order("users.created_at ASC, users.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountStoreDeliveries returns how many delivered orders each distributor has
// completed for the given store.
func (r *repository) CountStoreDeliveries(ctx context.Context, storeID uuid.UUID, distributorIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	counts := make(map[uuid.UUID]int, len(distributorIDs))
	if len(distributorIDs) == 0 {
		return counts, nil
	}

	type row struct {
		DistributorID uuid.UUID `gorm:"column:assigned_distributor_id"`
		Count         int       `gorm:"column:count"`
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("assigned_distributor_id, COUNT(*) AS count").
		Where("store_id = ?", storeID).
		Where("assigned_distributor_id IN ?", distributorIDs).
		Where("status = ?", enums.OrderStatusDelivered).
		Group("assigned_distributor_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.DistributorID] = r.Count
	}
	return counts, nil
}

// AdjustWorkload applies a workload delta in a single SQL statement so
// concurrent approvals against the same distributor cannot lose updates.
func (r *repository) AdjustWorkload(ctx context.Context, id uuid.UUID, delta int) error {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Where("role = ?", enums.UserRoleDistributor).
		UpdateColumn("current_workload", gorm.Expr("current_workload + ?", delta))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
