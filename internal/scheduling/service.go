package scheduling

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenlane/bakeops-backend/internal/distributors"
	"github.com/ovenlane/bakeops-backend/internal/orders"
	"github.com/ovenlane/bakeops-backend/internal/trips"
	dbpkg "github.com/ovenlane/bakeops-backend/pkg/db"
	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
	pkgerrors "github.com/ovenlane/bakeops-backend/pkg/errors"
	"github.com/ovenlane/bakeops-backend/pkg/logger"
	"github.com/ovenlane/bakeops-backend/pkg/outbox"
	"github.com/ovenlane/bakeops-backend/pkg/outbox/payloads"
	"github.com/ovenlane/bakeops-backend/pkg/pagination"
	"github.com/ovenlane/bakeops-backend/pkg/types"
)

const maxAlternatives = 2

// Service owns the scheduling draft lifecycle: creation through the scoring
// pipeline, review decisions, and the atomic side effects of approval.
type Service interface {
	CreateDraft(ctx context.Context, orderID uuid.UUID, createdBy *uuid.UUID) (*models.SchedulingDraft, error)
	Approve(ctx context.Context, draftID, reviewedBy uuid.UUID, params ApproveParams) (*ApprovalResult, error)
	Reject(ctx context.Context, draftID, reviewedBy uuid.UUID, params RejectParams) (*models.SchedulingDraft, error)
	GetDraft(ctx context.Context, draftID uuid.UUID) (*DraftDetail, error)
	ListDrafts(ctx context.Context, params pagination.Params, filters DraftFilters) (*DraftList, error)
	Stats(ctx context.Context) (*Stats, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type storeSource interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type eventEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

type service struct {
	tx           txRunner
	drafts       Repository
	orders       orders.Repository
	stores       storeSource
	distributors distributors.Repository
	trips        trips.Repository
	events       eventEmitter
	analyzer     *Analyzer
	pool         *PoolProvider
	scorer       *Scorer
	estimator    *Estimator
	logg         *logger.Logger
	clock        func() time.Time
}

// ServiceParams bundles the dependencies needed to build the scheduling
// service.
type ServiceParams struct {
	TxRunner     txRunner
	Drafts       Repository
	Orders       orders.Repository
	Stores       storeSource
	Distributors distributors.Repository
	Trips        trips.Repository
	Events       eventEmitter
	Analyzer     *Analyzer
	Pool         *PoolProvider
	Scorer       *Scorer
	Estimator    *Estimator
	Logger       *logger.Logger
	Clock        func() time.Time
}

// NewService constructs the draft lifecycle manager.
func NewService(params ServiceParams) (Service, error) {
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Drafts == nil {
		return nil, fmt.Errorf("drafts repository is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Stores == nil {
		return nil, fmt.Errorf("stores repository is required")
	}
	if params.Distributors == nil {
		return nil, fmt.Errorf("distributors repository is required")
	}
	if params.Trips == nil {
		return nil, fmt.Errorf("trips repository is required")
	}
	if params.Events == nil {
		return nil, fmt.Errorf("event emitter is required")
	}
	if params.Analyzer == nil {
		return nil, fmt.Errorf("requirements analyzer is required")
	}
	if params.Pool == nil {
		return nil, fmt.Errorf("candidate pool provider is required")
	}
	if params.Scorer == nil {
		return nil, fmt.Errorf("scorer is required")
	}
	if params.Estimator == nil {
		return nil, fmt.Errorf("estimator is required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &service{
		tx:           params.TxRunner,
		drafts:       params.Drafts,
		orders:       params.Orders,
		stores:       params.Stores,
		distributors: params.Distributors,
		trips:        params.Trips,
		events:       params.Events,
		analyzer:     params.Analyzer,
		pool:         params.Pool,
		scorer:       params.Scorer,
		estimator:    params.Estimator,
		logg:         params.Logger,
		clock:        clock,
	}, nil
}

// CreateDraft runs the full pipeline for one order and persists a
// pending-review draft. Nothing is written when any stage fails.
func (s *service) CreateDraft(ctx context.Context, orderID uuid.UUID, createdBy *uuid.UUID) (*models.SchedulingDraft, error) {
	ctx = s.logg.WithField(ctx, "order_id", orderID.String())

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load order")
	}
	if !order.Status.IsSchedulable() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "order is not in a schedulable state").
			WithDetails(map[string]any{"status": order.Status})
	}

	if _, err := s.drafts.FindByOrderID(ctx, orderID); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "a scheduling draft already exists for this order")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check existing draft")
	}

	store, err := s.stores.FindByID(ctx, order.StoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load store")
	}

	req := s.analyzer.Analyze(order, store)
	targetDate := s.estimator.SuggestDeliveryDate(order)

	pool, err := s.pool.Eligible(ctx, req.Zone, targetDate, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load candidate pool")
	}
	if len(pool) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNoCapacity, "no eligible distributor for zone").
			WithDetails(map[string]any{
				"zone": req.Zone,
				"date": targetDate.Format("2006-01-02"),
			})
	}

	ranked := s.scorer.Rank(order, store, req, pool)
	primary := ranked[0]

	alternatives := make([]types.AlternativeSuggestion, 0, maxAlternatives)
	for _, cand := range ranked[1:] {
		if len(alternatives) == maxAlternatives {
			break
		}
		alternatives = append(alternatives, types.AlternativeSuggestion{
			DistributorID:   cand.Distributor.ID,
			DistributorName: cand.Distributor.FullName(),
			ConfidenceScore: cand.Confidence,
			Reasoning:       cand.Reasoning,
		})
	}

	route, durationMinutes := s.estimator.EstimateRoute(store, primary)

	draft := &models.SchedulingDraft{
		ID:                       uuid.New(),
		OrderID:                  order.ID,
		SuggestedDistributorID:   primary.Distributor.ID,
		SuggestedDistributorName: primary.Distributor.FullName(),
		ConfidenceScore:          primary.Confidence,
		SuggestedDeliveryDate:    targetDate,
		SuggestedPriority:        order.Priority,
		Reasoning:                primary.Reasoning,
		AlternativeSuggestions:   alternatives,
		RouteOptimization:        route,
		EstimatedDeliveryTime:    s.estimator.DeliverySlot(store),
		EstimatedDuration:        durationMinutes,
		Status:                   enums.DraftStatusPendingReview,
		CreatedBy:                createdBy,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.drafts.WithTx(tx).Create(ctx, draft); err != nil {
			return err
		}
		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventDraftCreated,
			AggregateType: enums.AggregateSchedulingDraft,
			AggregateID:   draft.ID,
			Data: payloads.DraftCreatedEvent{
				DraftID:                draft.ID,
				OrderID:                draft.OrderID,
				SuggestedDistributorID: draft.SuggestedDistributorID,
				ConfidenceScore:        draft.ConfidenceScore,
				SuggestedDeliveryDate:  draft.SuggestedDeliveryDate,
			},
			Version: 1,
		})
	})
	if err != nil {
		if dbpkg.IsUniqueViolation(err, "idx_scheduling_drafts_order") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "a scheduling draft already exists for this order")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist draft")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"draft_id":   draft.ID.String(),
		"confidence": draft.ConfidenceScore,
		"zone":       req.Zone,
	})
	s.logg.Info(logCtx, "scheduling draft created")
	return draft, nil
}

// Approve commits a reviewer decision. The draft update, the order update,
// the workload increment, and the optional trip creation happen in one
// transaction; any failure rolls everything back.
func (s *service) Approve(ctx context.Context, draftID, reviewedBy uuid.UUID, params ApproveParams) (*ApprovalResult, error) {
	ctx = s.logg.WithField(ctx, "draft_id", draftID.String())

	draft, err := s.findDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "draft has already been decided").
			WithDetails(map[string]any{"status": draft.Status})
	}

	finalDistributorID := draft.SuggestedDistributorID
	finalDate := draft.SuggestedDeliveryDate
	finalPriority := draft.SuggestedPriority
	modified := false

	if params.Modifications != nil && !params.Modifications.IsEmpty() {
		mods := params.Modifications
		if mods.Priority != nil {
			if !mods.Priority.IsValid() {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority override")
			}
			finalPriority = *mods.Priority
			modified = true
		}
		if mods.DeliveryDate != nil {
			finalDate = *mods.DeliveryDate
			modified = true
		}
		if mods.DistributorID != nil {
			if _, err := s.distributors.FindByID(ctx, *mods.DistributorID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return nil, pkgerrors.New(pkgerrors.CodeValidation, "distributor override does not exist")
				}
				return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load distributor override")
			}
			finalDistributorID = *mods.DistributorID
			modified = true
		}
	}

	now := s.clock().UTC()
	status := enums.DraftStatusApproved
	if modified {
		status = enums.DraftStatusModified
	}

	var tripID *uuid.UUID
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.orders.WithTx(tx).FindByID(ctx, draft.OrderID)
		if err != nil {
			return err
		}

		draft.Status = status
		draft.AdminNotes = params.AdminNotes
		draft.Modifications = params.Modifications
		draft.ApprovedDistributorID = &finalDistributorID
		draft.ApprovedDeliveryDate = &finalDate
		draft.ApprovedPriority = &finalPriority
		draft.ReviewedBy = &reviewedBy
		draft.ReviewedAt = &now
		if err := s.drafts.WithTx(tx).UpdateDecision(ctx, draft); err != nil {
			return err
		}

		if err := s.orders.WithTx(tx).ApplyScheduling(ctx, orders.SchedulingUpdate{
			OrderID:       draft.OrderID,
			DistributorID: finalDistributorID,
			DeliveryDate:  finalDate,
			Priority:      finalPriority,
		}); err != nil {
			return err
		}

		if err := s.distributors.WithTx(tx).AdjustWorkload(ctx, finalDistributorID, 1); err != nil {
			return err
		}

		if params.CreateTrip {
			trip, err := s.trips.WithTx(tx).Create(ctx, &models.DeliveryTrip{
				ID:               uuid.New(),
				DistributorID:    finalDistributorID,
				Status:           enums.TripStatusPlanned,
				PlannedStartTime: finalDate,
				TotalOrders:      1,
				TotalAmount:      order.TotalAmount,
				Orders: []models.TripOrder{
					{ID: uuid.New(), OrderID: draft.OrderID, StopSequence: 1},
				},
				CreatedBy: &reviewedBy,
			})
			if err != nil {
				return err
			}
			tripID = &trip.ID

			if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
				EventType:     enums.EventTripCreated,
				AggregateType: enums.AggregateDeliveryTrip,
				AggregateID:   trip.ID,
				Data: payloads.TripCreatedEvent{
					TripID:           trip.ID,
					DistributorID:    finalDistributorID,
					OrderIDs:         []uuid.UUID{draft.OrderID},
					PlannedStartTime: trip.PlannedStartTime,
				},
				Version: 1,
			}); err != nil {
				return err
			}
		}

		if err := s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventDraftApproved,
			AggregateType: enums.AggregateSchedulingDraft,
			AggregateID:   draft.ID,
			Data: payloads.DraftApprovedEvent{
				DraftID:               draft.ID,
				OrderID:               draft.OrderID,
				Status:                status,
				ApprovedDistributorID: finalDistributorID,
				ApprovedDeliveryDate:  finalDate,
				ApprovedPriority:      finalPriority,
				TripID:                tripID,
				ReviewedBy:            reviewedBy,
			},
			Version: 1,
		}); err != nil {
			return err
		}

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventOrderAssigned,
			AggregateType: enums.AggregateOrder,
			AggregateID:   draft.OrderID,
			Data: payloads.OrderAssignedEvent{
				OrderID:       draft.OrderID,
				DistributorID: finalDistributorID,
				DeliveryDate:  finalDate,
				Priority:      finalPriority,
			},
			Version: 1,
		})
	})
	if err != nil {
		if errors.Is(err, ErrDraftDecided) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "draft has already been decided")
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "commit approval")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"status":         status,
		"distributor_id": finalDistributorID.String(),
	})
	s.logg.Info(logCtx, "scheduling draft approved")
	return &ApprovalResult{Draft: draft, TripID: tripID}, nil
}

// Reject marks the draft rejected and optionally hands the order back to
// manual scheduling. The reason is required before any state changes.
func (s *service) Reject(ctx context.Context, draftID, reviewedBy uuid.UUID, params RejectParams) (*models.SchedulingDraft, error) {
	ctx = s.logg.WithField(ctx, "draft_id", draftID.String())

	reason := strings.TrimSpace(params.Reason)
	if reason == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rejection reason is required")
	}

	draft, err := s.findDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.Status.IsTerminal() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "draft has already been decided").
			WithDetails(map[string]any{"status": draft.Status})
	}

	now := s.clock().UTC()
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		draft.Status = enums.DraftStatusRejected
		draft.AdminNotes = &reason
		draft.ReviewedBy = &reviewedBy
		draft.ReviewedAt = &now
		if err := s.drafts.WithTx(tx).UpdateDecision(ctx, draft); err != nil {
			return err
		}

		if params.ReassignToManual {
			if err := s.orders.WithTx(tx).ResetToManual(ctx, draft.OrderID); err != nil {
				return err
			}
		}

		return s.events.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventDraftRejected,
			AggregateType: enums.AggregateSchedulingDraft,
			AggregateID:   draft.ID,
			Data: payloads.DraftRejectedEvent{
				DraftID:          draft.ID,
				OrderID:          draft.OrderID,
				Reason:           reason,
				ReassignToManual: params.ReassignToManual,
				ReviewedBy:       reviewedBy,
			},
			Version: 1,
		})
	})
	if err != nil {
		if errors.Is(err, ErrDraftDecided) {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "draft has already been decided")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "commit rejection")
	}

	s.logg.Info(ctx, "scheduling draft rejected")
	return draft, nil
}

func (s *service) GetDraft(ctx context.Context, draftID uuid.UUID) (*DraftDetail, error) {
	draft, err := s.findDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	return DetailFromModel(draft), nil
}

func (s *service) ListDrafts(ctx context.Context, params pagination.Params, filters DraftFilters) (*DraftList, error) {
	list, err := s.drafts.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list drafts")
	}
	return list, nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats, err := s.drafts.Stats(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "aggregate draft stats")
	}
	return stats, nil
}

func (s *service) findDraft(ctx context.Context, draftID uuid.UUID) (*models.SchedulingDraft, error) {
	draft, err := s.drafts.FindByID(ctx, draftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "scheduling draft not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load draft")
	}
	return draft, nil
}
