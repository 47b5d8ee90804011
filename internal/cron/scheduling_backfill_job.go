package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	pkgerrors "github.com/ovenlane/bakeops-backend/pkg/errors"
	"github.com/ovenlane/bakeops-backend/pkg/logger"
)

const (
	defaultBackfillLookback = 7 * 24 * time.Hour
	defaultBackfillBatch    = 100
)

// SchedulingBackfillJobParams configure the draft backfill sweep.
type SchedulingBackfillJobParams struct {
	Logger    *logger.Logger
	Orders    unscheduledOrderReader
	Drafts    draftCreator
	Lookback  time.Duration
	BatchSize int
}

type unscheduledOrderReader interface {
	ListUnscheduled(ctx context.Context, since time.Time, limit int) ([]models.Order, error)
}

type draftCreator interface {
	CreateDraft(ctx context.Context, orderID uuid.UUID, createdBy *uuid.UUID) (*models.SchedulingDraft, error)
}

// NewSchedulingBackfillJob builds the cron job that sweeps confirmed orders
// without a draft and runs each through the scheduling pipeline.
func NewSchedulingBackfillJob(params SchedulingBackfillJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders reader required")
	}
	if params.Drafts == nil {
		return nil, fmt.Errorf("draft creator required")
	}
	lookback := params.Lookback
	if lookback <= 0 {
		lookback = defaultBackfillLookback
	}
	batchSize := params.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBackfillBatch
	}
	return &schedulingBackfillJob{
		logg:      params.Logger,
		orders:    params.Orders,
		drafts:    params.Drafts,
		lookback:  lookback,
		batchSize: batchSize,
		now:       time.Now,
	}, nil
}

type schedulingBackfillJob struct {
	logg      *logger.Logger
	orders    unscheduledOrderReader
	drafts    draftCreator
	lookback  time.Duration
	batchSize int
	now       func() time.Time
}

func (j *schedulingBackfillJob) Name() string { return "scheduling-backfill" }

func (j *schedulingBackfillJob) Run(ctx context.Context) error {
	since := j.now().UTC().Add(-j.lookback)
	pending, err := j.orders.ListUnscheduled(ctx, since, j.batchSize)
	if err != nil {
		return fmt.Errorf("list unscheduled orders: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	created := 0
	skipped := 0
	var errs []error
	for _, order := range pending {
		_, err := j.drafts.CreateDraft(ctx, order.ID, nil)
		if err != nil {
			if isExpectedBackfillSkip(err) {
				skipped++
				logCtx := j.logg.WithFields(ctx, map[string]any{
					"order_id": order.ID.String(),
					"reason":   err.Error(),
				})
				j.logg.Warn(logCtx, "skipping order during backfill")
				continue
			}
			errs = append(errs, fmt.Errorf("order %s: %w", order.ID, err))
			continue
		}
		created++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"candidates":     len(pending),
		"drafts_created": created,
		"skipped":        skipped,
		"failed":         len(errs),
	})
	j.logg.Info(logCtx, "scheduling backfill complete")
	return multierr.Combine(errs...)
}

// isExpectedBackfillSkip reports conditions that are normal during a sweep:
// a draft raced in since the listing, the order moved state, or no
// distributor currently has capacity for the zone.
func isExpectedBackfillSkip(err error) bool {
	coded := pkgerrors.As(err)
	if coded == nil {
		return false
	}
	switch coded.Code() {
	case pkgerrors.CodeConflict, pkgerrors.CodeStateConflict, pkgerrors.CodeNoCapacity:
		return true
	}
	return false
}
