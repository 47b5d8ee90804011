package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovenlane/bakeops-backend/pkg/enums"
	"github.com/ovenlane/bakeops-backend/pkg/types"
)

// SchedulingDraft is a reviewable distributor assignment suggestion for one
// order. The unique index on order_id enforces at most one draft per order;
// rejected drafts are kept as an audit trail and a new attempt requires the
// order to be reset first.
type SchedulingDraft struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;not null;uniqueIndex:idx_scheduling_drafts_order"`

	SuggestedDistributorID   uuid.UUID           `gorm:"column:suggested_distributor_id;type:uuid;not null"`
	SuggestedDistributorName string              `gorm:"column:suggested_distributor_name;not null"`
	ConfidenceScore          float64             `gorm:"column:confidence_score;type:numeric(5,2);not null"`
	SuggestedDeliveryDate    time.Time           `gorm:"column:suggested_delivery_date;not null"`
	SuggestedPriority        enums.OrderPriority `gorm:"column:suggested_priority;type:order_priority;not null;default:'normal'"`

	Reasoning              types.AssignmentReasoning     `gorm:"column:reasoning;type:jsonb;serializer:json"`
	AlternativeSuggestions []types.AlternativeSuggestion `gorm:"column:alternative_suggestions;type:jsonb;serializer:json"`
	RouteOptimization      types.RouteEstimate           `gorm:"column:route_optimization;type:jsonb;serializer:json"`
	EstimatedDeliveryTime  string                        `gorm:"column:estimated_delivery_time;not null"`
	EstimatedDuration      int                           `gorm:"column:estimated_duration;not null;default:0"`

	Status                enums.DraftStatus         `gorm:"column:status;type:draft_status;not null;default:'pending_review'"`
	AdminNotes            *string                   `gorm:"column:admin_notes"`
	Modifications         *types.DraftModifications `gorm:"column:modifications;type:jsonb;serializer:json"`
	ApprovedDistributorID *uuid.UUID                `gorm:"column:approved_distributor_id;type:uuid"`
	ApprovedDeliveryDate  *time.Time                `gorm:"column:approved_delivery_date"`
	ApprovedPriority      *enums.OrderPriority      `gorm:"column:approved_priority;type:order_priority"`
	ReviewedBy            *uuid.UUID                `gorm:"column:reviewed_by;type:uuid"`
	ReviewedAt            *time.Time                `gorm:"column:reviewed_at"`

	CreatedBy *uuid.UUID `gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
