package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a bakery catalog item. Logistics only reads the weight and
// handling metadata; pricing and presentation belong to the dashboard.
type Product struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name         string          `gorm:"column:name;not null"`
	SKU          *string         `gorm:"column:sku;uniqueIndex"`
	Category     string          `gorm:"column:category;not null"`
	UnitPrice    decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	UnitWeightKG float64         `gorm:"column:unit_weight_kg;not null;default:0"`
	// RequiresSpecialHandling flags fragile or refrigerated goods.
	RequiresSpecialHandling bool      `gorm:"column:requires_special_handling;not null;default:false"`
	IsActive                bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt               time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
