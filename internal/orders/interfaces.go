package orders

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
)

// Repository captures the order persistence surface the scheduling engine
// needs. WithTx rebinds the repository to a transaction handle.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListUnscheduled(ctx context.Context, since time.Time, limit int) ([]models.Order, error)
	ApplyScheduling(ctx context.Context, update SchedulingUpdate) error
	ResetToManual(ctx context.Context, orderID uuid.UUID) error
}
