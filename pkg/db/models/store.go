package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovenlane/bakeops-backend/pkg/types"
)

// Store represents a bakery outlet orders are delivered to.
type Store struct {
	ID       uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name     string                `gorm:"column:name;not null"`
	Phone    *string               `gorm:"column:phone"`
	Email    *string               `gorm:"column:email"`
	Address  string                `gorm:"column:address;not null"`
	City     *string               `gorm:"column:city"`
	Location *types.GeographyPoint `gorm:"column:location;type:geography(Point,4326)"`
	// PreferredDeliveryTime is a coarse window label such as "09:00-12:00".
	PreferredDeliveryTime *string    `gorm:"column:preferred_delivery_time"`
	AssignedDistributorID *uuid.UUID `gorm:"column:assigned_distributor_id;type:uuid"`
	IsActive              bool       `gorm:"column:is_active;not null;default:true"`
	CreatedAt             time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
