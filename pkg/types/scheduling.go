package types

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// FactorScores carries the six weighted sub-scores behind a confidence score.
// Values are on a 0-100 scale before weighting.
type FactorScores struct {
	Location      float64 `json:"location"`
	Availability  float64 `json:"availability"`
	Performance   float64 `json:"performance"`
	Experience    float64 `json:"experience"`
	CapacityFit   float64 `json:"capacity_fit"`
	PriorityMatch float64 `json:"priority_match"`
}

// AssignmentReasoning explains a suggestion with named fields instead of a
// free-form JSON blob, so consumers never need runtime shape inspection.
type AssignmentReasoning struct {
	ZoneMatch         bool                  `json:"zone_match"`
	PreferredForStore bool                  `json:"preferred_for_store"`
	DistanceKM        *float64              `json:"distance_km,omitempty"`
	StoreDeliveries   int                   `json:"store_deliveries"`
	WorkloadPercent   float64               `json:"workload_percent"`
	Complexity        enums.ComplexityLevel `json:"complexity"`
	Scores            FactorScores          `json:"scores"`
	Factors           []string              `json:"factors"`
}

// AlternativeSuggestion is a ranked runner-up distributor for a draft.
type AlternativeSuggestion struct {
	DistributorID   uuid.UUID           `json:"distributor_id"`
	DistributorName string              `json:"distributor_name"`
	ConfidenceScore float64             `json:"confidence_score"`
	Reasoning       AssignmentReasoning `json:"reasoning"`
}

// RouteEstimate is the coarse logistics placeholder attached to a draft.
// It is not a routing computation; a real routing collaborator can replace
// the values without changing the shape.
type RouteEstimate struct {
	EstimatedDistance string `json:"estimated_distance"`
	EstimatedTime     string `json:"estimated_time"`
	RouteLabel        string `json:"route_label"`
}

// DraftModifications carries the reviewer's optional overrides. A nil field
// means "keep the suggested value".
type DraftModifications struct {
	DistributorID *uuid.UUID           `json:"distributor_id,omitempty"`
	DeliveryDate  *time.Time           `json:"delivery_date,omitempty"`
	Priority      *enums.OrderPriority `json:"priority,omitempty"`
}

// IsEmpty reports whether no override was supplied.
func (m DraftModifications) IsEmpty() bool {
	return m.DistributorID == nil && m.DeliveryDate == nil && m.Priority == nil
}

// TripTotals summarizes the monetary and count totals a trip was planned with.
type TripTotals struct {
	Orders int             `json:"orders"`
	Amount decimal.Decimal `json:"amount"`
}
