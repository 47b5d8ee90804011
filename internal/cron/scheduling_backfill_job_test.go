package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	pkgerrors "github.com/ovenlane/bakeops-backend/pkg/errors"
	"github.com/ovenlane/bakeops-backend/pkg/logger"
)

type fakeUnscheduledReader struct {
	orders    []models.Order
	err       error
	lastSince time.Time
	lastLimit int
}

func (f *fakeUnscheduledReader) ListUnscheduled(_ context.Context, since time.Time, limit int) ([]models.Order, error) {
	f.lastSince = since
	f.lastLimit = limit
	return f.orders, f.err
}

type fakeDraftCreator struct {
	errsByOrder map[uuid.UUID]error
	created     []uuid.UUID
}

func (f *fakeDraftCreator) CreateDraft(_ context.Context, orderID uuid.UUID, _ *uuid.UUID) (*models.SchedulingDraft, error) {
	if err, ok := f.errsByOrder[orderID]; ok {
		return nil, err
	}
	f.created = append(f.created, orderID)
	return &models.SchedulingDraft{ID: uuid.New(), OrderID: orderID}, nil
}

func newBackfillJob(t *testing.T, reader *fakeUnscheduledReader, creator *fakeDraftCreator) *schedulingBackfillJob {
	t.Helper()
	job, err := NewSchedulingBackfillJob(SchedulingBackfillJobParams{
		Logger:    logger.New(logger.Options{ServiceName: "cron-test"}),
		Orders:    reader,
		Drafts:    creator,
		Lookback:  48 * time.Hour,
		BatchSize: 10,
	})
	if err != nil {
		t.Fatalf("build backfill job: %v", err)
	}
	return job.(*schedulingBackfillJob)
}

func TestSchedulingBackfillCreatesDrafts(t *testing.T) {
	now := time.Date(2026, 3, 10, 6, 0, 0, 0, time.UTC)
	orders := []models.Order{
		{ID: uuid.New()},
		{ID: uuid.New()},
	}
	reader := &fakeUnscheduledReader{orders: orders}
	creator := &fakeDraftCreator{}
	job := newBackfillJob(t, reader, creator)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(creator.created) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(creator.created))
	}
	if !reader.lastSince.Equal(now.Add(-48 * time.Hour)) {
		t.Fatalf("unexpected lookback cutoff %v", reader.lastSince)
	}
	if reader.lastLimit != 10 {
		t.Fatalf("unexpected batch size %d", reader.lastLimit)
	}
}

func TestSchedulingBackfillSkipsExpectedConditions(t *testing.T) {
	racedOrder := uuid.New()
	noCapacityOrder := uuid.New()
	goodOrder := uuid.New()
	reader := &fakeUnscheduledReader{orders: []models.Order{
		{ID: racedOrder},
		{ID: noCapacityOrder},
		{ID: goodOrder},
	}}
	creator := &fakeDraftCreator{errsByOrder: map[uuid.UUID]error{
		racedOrder:      pkgerrors.New(pkgerrors.CodeConflict, "draft already exists"),
		noCapacityOrder: pkgerrors.New(pkgerrors.CodeNoCapacity, "no eligible distributor"),
	}}
	job := newBackfillJob(t, reader, creator)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("expected skips to be silent, got %v", err)
	}
	if len(creator.created) != 1 || creator.created[0] != goodOrder {
		t.Fatalf("expected only the clean order drafted, got %v", creator.created)
	}
}

func TestSchedulingBackfillReportsUnexpectedFailures(t *testing.T) {
	brokenOrder := uuid.New()
	goodOrder := uuid.New()
	reader := &fakeUnscheduledReader{orders: []models.Order{
		{ID: brokenOrder},
		{ID: goodOrder},
	}}
	creator := &fakeDraftCreator{errsByOrder: map[uuid.UUID]error{
		brokenOrder: errors.New("db connection reset"),
	}}
	job := newBackfillJob(t, reader, creator)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatalf("expected error for unexpected failure")
	}
	if len(creator.created) != 1 {
		t.Fatalf("failure must not stop the sweep, created %d", len(creator.created))
	}
}

func TestSchedulingBackfillListFailure(t *testing.T) {
	reader := &fakeUnscheduledReader{err: errors.New("timeout")}
	job := newBackfillJob(t, reader, &fakeDraftCreator{})

	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected list failure to surface")
	}
}
