package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// User represents the canonical identity entity. Distributors are users with
// Role == enums.UserRoleDistributor; the delivery fields below are only
// meaningful for that role.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string         `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FirstName    string         `gorm:"column:first_name;not null"`
	LastName     string         `gorm:"column:last_name;not null"`
	Phone        *string        `gorm:"column:phone"`
	Role         enums.UserRole `gorm:"column:role;type:user_role;not null;default:'store_staff'"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`

	Status     enums.DistributorStatus `gorm:"column:status;type:distributor_status;not null;default:'active'"`
	WorkStatus enums.WorkStatus        `gorm:"column:work_status;type:work_status;not null;default:'available'"`
	// CurrentWorkload counts active deliveries. Only mutated through atomic
	// SQL increments inside the approval transaction.
	CurrentWorkload      int              `gorm:"column:current_workload;not null;default:0"`
	PerformanceRating    float64          `gorm:"column:performance_rating;not null;default:0"`
	DeliveryZone         *string          `gorm:"column:delivery_zone"`
	VehicleType          *string          `gorm:"column:vehicle_type"`
	VehicleCapacity      *decimal.Decimal `gorm:"column:vehicle_capacity;type:numeric(12,2)"`
	TotalDeliveries      int              `gorm:"column:total_deliveries;not null;default:0"`
	SuccessfulDeliveries int              `gorm:"column:successful_deliveries;not null;default:0"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// FullName joins the name parts for display in reasoning and API payloads.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
