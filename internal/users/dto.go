package users

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID      `json:"id"`
	Email       string         `json:"email"`
	FirstName   string         `json:"first_name"`
	LastName    string         `json:"last_name"`
	Phone       *string        `json:"phone,omitempty"`
	Role        enums.UserRole `json:"role"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// DistributorDTO extends the user shape with the delivery fields that only
// apply to distributor accounts.
type DistributorDTO struct {
	UserDTO
	Status               enums.DistributorStatus `json:"status"`
	WorkStatus           enums.WorkStatus        `json:"work_status"`
	CurrentWorkload      int                     `json:"current_workload"`
	PerformanceRating    float64                 `json:"performance_rating"`
	DeliveryZone         *string                 `json:"delivery_zone,omitempty"`
	VehicleType          *string                 `json:"vehicle_type,omitempty"`
	VehicleCapacity      *decimal.Decimal        `json:"vehicle_capacity,omitempty"`
	TotalDeliveries      int                     `json:"total_deliveries"`
	SuccessfulDeliveries int                     `json:"successful_deliveries"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Phone        *string
	Role         enums.UserRole
	DeliveryZone *string
	VehicleType  *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Phone:       u.Phone,
		Role:        u.Role,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// DistributorFromModel maps a distributor user onto the extended DTO.
func DistributorFromModel(u *models.User) *DistributorDTO {
	if u == nil {
		return nil
	}

	return &DistributorDTO{
		UserDTO:              *FromModel(u),
		Status:               u.Status,
		WorkStatus:           u.WorkStatus,
		CurrentWorkload:      u.CurrentWorkload,
		PerformanceRating:    u.PerformanceRating,
		DeliveryZone:         u.DeliveryZone,
		VehicleType:          u.VehicleType,
		VehicleCapacity:      u.VehicleCapacity,
		TotalDeliveries:      u.TotalDeliveries,
		SuccessfulDeliveries: u.SuccessfulDeliveries,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if !role.IsValid() {
		role = enums.UserRoleStoreStaff
	}

	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Phone:        c.Phone,
		Role:         role,
		DeliveryZone: c.DeliveryZone,
		VehicleType:  c.VehicleType,
	}
}
