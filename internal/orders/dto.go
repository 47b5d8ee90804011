package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// SchedulingUpdate carries the assignment fields written onto an order when a
// scheduling draft is approved.
type SchedulingUpdate struct {
	OrderID       uuid.UUID
	DistributorID uuid.UUID
	DeliveryDate  time.Time
	Priority      enums.OrderPriority
}
