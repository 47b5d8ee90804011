package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// Order is a bakery delivery order. The scheduling engine reads it to derive
// logistics requirements and writes the assignment fields on draft approval.
type Order struct {
	ID                    uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber           int64               `gorm:"column:order_number;not null;uniqueIndex"`
	StoreID               uuid.UUID           `gorm:"column:store_id;type:uuid;not null"`
	TotalAmount           decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null"`
	OrderDate             time.Time           `gorm:"column:order_date;not null"`
	DeliveryDate          *time.Time          `gorm:"column:delivery_date"`
	Priority              enums.OrderPriority `gorm:"column:priority;type:order_priority;not null;default:'normal'"`
	Status                enums.OrderStatus   `gorm:"column:status;type:order_status;not null;default:'draft'"`
	AssignedDistributorID *uuid.UUID          `gorm:"column:assigned_distributor_id;type:uuid"`
	Notes                 *string             `gorm:"column:notes"`
	Items                 []OrderLineItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt             time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderLineItem captures the snapshot of each product within an order.
type OrderLineItem struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;not null"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;not null"`
	Product   *Product        `gorm:"foreignKey:ProductID"`
	Name      string          `gorm:"column:name;not null"`
	Qty       int             `gorm:"column:qty;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
	Total     decimal.Decimal `gorm:"column:total;type:numeric(12,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
