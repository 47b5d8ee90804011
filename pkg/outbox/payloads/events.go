package payloads

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// DraftCreatedEvent signals that the engine produced a new assignment
// suggestion awaiting review.
type DraftCreatedEvent struct {
	DraftID                uuid.UUID `json:"draft_id"`
	OrderID                uuid.UUID `json:"order_id"`
	SuggestedDistributorID uuid.UUID `json:"suggested_distributor_id"`
	ConfidenceScore        float64   `json:"confidence_score"`
	SuggestedDeliveryDate  time.Time `json:"suggested_delivery_date"`
}

// DraftApprovedEvent is emitted when a reviewer commits a draft, with or
// without modifications.
type DraftApprovedEvent struct {
	DraftID               uuid.UUID           `json:"draft_id"`
	OrderID               uuid.UUID           `json:"order_id"`
	Status                enums.DraftStatus   `json:"status"`
	ApprovedDistributorID uuid.UUID           `json:"approved_distributor_id"`
	ApprovedDeliveryDate  time.Time           `json:"approved_delivery_date"`
	ApprovedPriority      enums.OrderPriority `json:"approved_priority"`
	TripID                *uuid.UUID          `json:"trip_id,omitempty"`
	ReviewedBy            uuid.UUID           `json:"reviewed_by"`
}

// DraftRejectedEvent carries the reviewer's rejection and whether the order
// was handed back for manual scheduling.
type DraftRejectedEvent struct {
	DraftID          uuid.UUID `json:"draft_id"`
	OrderID          uuid.UUID `json:"order_id"`
	Reason           string    `json:"reason"`
	ReassignToManual bool      `json:"reassign_to_manual"`
	ReviewedBy       uuid.UUID `json:"reviewed_by"`
}

// TripCreatedEvent signals a new delivery trip spun up on approval.
type TripCreatedEvent struct {
	TripID           uuid.UUID   `json:"trip_id"`
	DistributorID    uuid.UUID   `json:"distributor_id"`
	OrderIDs         []uuid.UUID `json:"order_ids"`
	PlannedStartTime time.Time   `json:"planned_start_time"`
}

// OrderAssignedEvent mirrors the assignment fields written onto the order.
type OrderAssignedEvent struct {
	OrderID       uuid.UUID           `json:"order_id"`
	DistributorID uuid.UUID           `json:"distributor_id"`
	DeliveryDate  time.Time           `json:"delivery_date"`
	Priority      enums.OrderPriority `json:"priority"`
}
