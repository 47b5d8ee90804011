package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// DeliveryTrip is an operational delivery run created when a scheduling draft
// is approved. A trip groups one or more orders for a distributor.
type DeliveryTrip struct {
	ID               uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DistributorID    uuid.UUID        `gorm:"column:distributor_id;type:uuid;not null"`
	Status           enums.TripStatus `gorm:"column:status;type:trip_status;not null;default:'planned'"`
	PlannedStartTime time.Time        `gorm:"column:planned_start_time;not null"`
	StartedAt        *time.Time       `gorm:"column:started_at"`
	CompletedAt      *time.Time       `gorm:"column:completed_at"`
	TotalOrders      int              `gorm:"column:total_orders;not null;default:0"`
	TotalAmount      decimal.Decimal  `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	Notes            *string          `gorm:"column:notes"`
	Orders           []TripOrder      `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE"`
	CreatedBy        *uuid.UUID       `gorm:"column:created_by;type:uuid"`
	CreatedAt        time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TripOrder links an order into a trip with its stop position.
type TripOrder struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TripID       uuid.UUID  `gorm:"column:trip_id;type:uuid;not null"`
	OrderID      uuid.UUID  `gorm:"column:order_id;type:uuid;not null;uniqueIndex:idx_trip_orders_order"`
	StopSequence int        `gorm:"column:stop_sequence;not null;default:1"`
	DeliveredAt  *time.Time `gorm:"column:delivered_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
}
