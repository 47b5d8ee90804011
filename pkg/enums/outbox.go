package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregateOrder           OutboxAggregateType = "order"
	AggregateSchedulingDraft OutboxAggregateType = "scheduling_draft"
	AggregateDeliveryTrip    OutboxAggregateType = "delivery_trip"
	AggregateDistributor     OutboxAggregateType = "distributor"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregateOrder,
	AggregateSchedulingDraft,
	AggregateDeliveryTrip,
	AggregateDistributor,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid outbox aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventDraftCreated  OutboxEventType = "scheduling.draft_created"
	EventDraftApproved OutboxEventType = "scheduling.draft_approved"
	EventDraftRejected OutboxEventType = "scheduling.draft_rejected"
	EventTripCreated   OutboxEventType = "delivery.trip_created"
	EventOrderAssigned OutboxEventType = "orders.distributor_assigned"
)

var validOutboxEventTypes = []OutboxEventType{
	EventDraftCreated,
	EventDraftApproved,
	EventDraftRejected,
	EventTripCreated,
	EventOrderAssigned,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid outbox event type %q", value)
}

// OutboxStatus tracks delivery state for an outbox row.
type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusPublished OutboxStatus = "published"
	OutboxStatusFailed    OutboxStatus = "failed"
)

// IsValid reports whether the value is a known OutboxStatus.
func (s OutboxStatus) IsValid() bool {
	return s == OutboxStatusPending || s == OutboxStatusPublished || s == OutboxStatusFailed
}
