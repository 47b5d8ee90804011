package scheduling

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
	"github.com/ovenlane/bakeops-backend/pkg/types"
)

// DraftFilters narrows the reviewer's draft listing.
type DraftFilters struct {
	Status *enums.DraftStatus
}

// DraftSummary exposes the fields shown in the review queue list.
type DraftSummary struct {
	ID                       uuid.UUID           `json:"id"`
	OrderID                  uuid.UUID           `json:"order_id"`
	SuggestedDistributorID   uuid.UUID           `json:"suggested_distributor_id"`
	SuggestedDistributorName string              `json:"suggested_distributor_name"`
	ConfidenceScore          float64             `json:"confidence_score"`
	SuggestedDeliveryDate    time.Time           `json:"suggested_delivery_date"`
	SuggestedPriority        enums.OrderPriority `json:"suggested_priority"`
	Status                   enums.DraftStatus   `json:"status"`
	CreatedAt                time.Time           `json:"created_at"`
}

// DraftList wraps the paginated drafts plus the next page cursor.
type DraftList struct {
	Drafts     []DraftSummary `json:"drafts"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// DraftDetail is the full draft returned to a reviewer, reasoning and
// alternatives included.
type DraftDetail struct {
	DraftSummary
	Reasoning              types.AssignmentReasoning     `json:"reasoning"`
	AlternativeSuggestions []types.AlternativeSuggestion `json:"alternative_suggestions"`
	RouteOptimization      types.RouteEstimate           `json:"route_optimization"`
	EstimatedDeliveryTime  string                        `json:"estimated_delivery_time"`
	EstimatedDuration      int                           `json:"estimated_duration"`
	AdminNotes             *string                       `json:"admin_notes,omitempty"`
	Modifications          *types.DraftModifications     `json:"modifications,omitempty"`
	ApprovedDistributorID  *uuid.UUID                    `json:"approved_distributor_id,omitempty"`
	ApprovedDeliveryDate   *time.Time                    `json:"approved_delivery_date,omitempty"`
	ApprovedPriority       *enums.OrderPriority          `json:"approved_priority,omitempty"`
	ReviewedBy             *uuid.UUID                    `json:"reviewed_by,omitempty"`
	ReviewedAt             *time.Time                    `json:"reviewed_at,omitempty"`
}

// ApproveParams carries the reviewer's approval input.
type ApproveParams struct {
	Modifications *types.DraftModifications
	AdminNotes    *string
	CreateTrip    bool
}

// RejectParams carries the reviewer's rejection input.
type RejectParams struct {
	Reason           string
	ReassignToManual bool
}

// ApprovalResult reports what the atomic approval committed.
type ApprovalResult struct {
	Draft  *models.SchedulingDraft `json:"draft"`
	TripID *uuid.UUID              `json:"trip_id,omitempty"`
}

// DistributorAccuracy reports how often a distributor's suggestions were
// accepted unchanged.
type DistributorAccuracy struct {
	DistributorID   uuid.UUID `json:"distributor_id"`
	DistributorName string    `json:"distributor_name"`
	Suggested       int       `json:"suggested"`
	ApprovedAsIs    int       `json:"approved_as_is"`
	AccuracyPercent float64   `json:"accuracy_percent"`
}

// Stats aggregates review outcomes for the dashboard.
type Stats struct {
	TotalDrafts       int                   `json:"total_drafts"`
	PendingReview     int                   `json:"pending_review"`
	Approved          int                   `json:"approved"`
	Modified          int                   `json:"modified"`
	Rejected          int                   `json:"rejected"`
	ApprovalRate      float64               `json:"approval_rate"`
	AverageConfidence float64               `json:"average_confidence"`
	PerDistributor    []DistributorAccuracy `json:"per_distributor"`
}

func summaryFromModel(d models.SchedulingDraft) DraftSummary {
	return DraftSummary{
		ID:                       d.ID,
		OrderID:                  d.OrderID,
		SuggestedDistributorID:   d.SuggestedDistributorID,
		SuggestedDistributorName: d.SuggestedDistributorName,
		ConfidenceScore:          d.ConfidenceScore,
		SuggestedDeliveryDate:    d.SuggestedDeliveryDate,
		SuggestedPriority:        d.SuggestedPriority,
		Status:                   d.Status,
		CreatedAt:                d.CreatedAt,
	}
}

// DetailFromModel maps a draft row onto the reviewer detail DTO.
func DetailFromModel(d *models.SchedulingDraft) *DraftDetail {
	if d == nil {
		return nil
	}
	return &DraftDetail{
		DraftSummary:           summaryFromModel(*d),
		Reasoning:              d.Reasoning,
		AlternativeSuggestions: d.AlternativeSuggestions,
		RouteOptimization:      d.RouteOptimization,
		EstimatedDeliveryTime:  d.EstimatedDeliveryTime,
		EstimatedDuration:      d.EstimatedDuration,
		AdminNotes:             d.AdminNotes,
		Modifications:          d.Modifications,
		ApprovedDistributorID:  d.ApprovedDistributorID,
		ApprovedDeliveryDate:   d.ApprovedDeliveryDate,
		ApprovedPriority:       d.ApprovedPriority,
		ReviewedBy:             d.ReviewedBy,
		ReviewedAt:             d.ReviewedAt,
	}
}
