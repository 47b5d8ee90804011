package enums

import "fmt"

// OrderStatus tracks the lifecycle of a bakery order.
type OrderStatus string

const (
	OrderStatusDraft          OrderStatus = "draft"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusScheduled      OrderStatus = "scheduled"
	OrderStatusManualSchedule OrderStatus = "manual_schedule"
	OrderStatusInDelivery     OrderStatus = "in_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCanceled       OrderStatus = "canceled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusDraft,
	OrderStatusConfirmed,
	OrderStatusScheduled,
	OrderStatusManualSchedule,
	OrderStatusInDelivery,
	OrderStatusDelivered,
	OrderStatusCanceled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

// IsSchedulable reports whether an order in this status may receive a
// scheduling draft.
func (o OrderStatus) IsSchedulable() bool {
	return o == OrderStatusDraft || o == OrderStatusConfirmed || o == OrderStatusManualSchedule
}
