package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ovenlane/bakeops-backend/api/middleware"
	"github.com/ovenlane/bakeops-backend/internal/scheduling"
	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
	"github.com/ovenlane/bakeops-backend/pkg/pagination"
)

type stubSchedulingService struct {
	createFn  func(ctx context.Context, orderID uuid.UUID, createdBy *uuid.UUID) (*models.SchedulingDraft, error)
	approveFn func(ctx context.Context, draftID, reviewedBy uuid.UUID, params scheduling.ApproveParams) (*scheduling.ApprovalResult, error)
	rejectFn  func(ctx context.Context, draftID, reviewedBy uuid.UUID, params scheduling.RejectParams) (*models.SchedulingDraft, error)
	getFn     func(ctx context.Context, draftID uuid.UUID) (*scheduling.DraftDetail, error)
	listFn    func(ctx context.Context, params pagination.Params, filters scheduling.DraftFilters) (*scheduling.DraftList, error)
	statsFn   func(ctx context.Context) (*scheduling.Stats, error)
}

func (s stubSchedulingService) CreateDraft(ctx context.Context, orderID uuid.UUID, createdBy *uuid.UUID) (*models.SchedulingDraft, error) {
	if s.createFn != nil {
		return s.createFn(ctx, orderID, createdBy)
	}
	return &models.SchedulingDraft{}, nil
}

func (s stubSchedulingService) Approve(ctx context.Context, draftID, reviewedBy uuid.UUID, params scheduling.ApproveParams) (*scheduling.ApprovalResult, error) {
	if s.approveFn != nil {
		return s.approveFn(ctx, draftID, reviewedBy, params)
	}
	return &scheduling.ApprovalResult{}, nil
}

func (s stubSchedulingService) Reject(ctx context.Context, draftID, reviewedBy uuid.UUID, params scheduling.RejectParams) (*models.SchedulingDraft, error) {
	if s.rejectFn != nil {
		return s.rejectFn(ctx, draftID, reviewedBy, params)
	}
	return &models.SchedulingDraft{}, nil
}

func (s stubSchedulingService) GetDraft(ctx context.Context, draftID uuid.UUID) (*scheduling.DraftDetail, error) {
	if s.getFn != nil {
		return s.getFn(ctx, draftID)
	}
	return &scheduling.DraftDetail{}, nil
}

func (s stubSchedulingService) ListDrafts(ctx context.Context, params pagination.Params, filters scheduling.DraftFilters) (*scheduling.DraftList, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params, filters)
	}
	return &scheduling.DraftList{}, nil
}

func (s stubSchedulingService) Stats(ctx context.Context) (*scheduling.Stats, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return &scheduling.Stats{}, nil
}

func withDraftID(req *http.Request, draftID uuid.UUID) *http.Request {
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("draftId", draftID.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
}

func withReviewer(req *http.Request, reviewerID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), reviewerID.String()))
}

func decodeEnvelope(t *testing.T, resp *httptest.ResponseRecorder, dest any) {
	t.Helper()
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func errorCodeFrom(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	envelope := struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return envelope.Error.Code
}

func TestSchedulingDraftsList(t *testing.T) {
	draftID := uuid.New()
	svc := stubSchedulingService{
		listFn: func(ctx context.Context, params pagination.Params, filters scheduling.DraftFilters) (*scheduling.DraftList, error) {
			if params.Limit != 5 {
				t.Fatalf("unexpected limit %d", params.Limit)
			}
			if filters.Status == nil || *filters.Status != enums.DraftStatusPendingReview {
				t.Fatalf("expected pending_review filter, got %v", filters.Status)
			}
			return &scheduling.DraftList{
				Drafts: []scheduling.DraftSummary{{ID: draftID, Status: enums.DraftStatusPendingReview}},
			}, nil
		},
	}

	handler := SchedulingDrafts(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/?limit=5&status=pending_review", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var list scheduling.DraftList
	decodeEnvelope(t, resp, &list)
	if len(list.Drafts) != 1 || list.Drafts[0].ID != draftID {
		t.Fatalf("unexpected payload %v", list)
	}
}

func TestSchedulingDraftsRejectsUnknownStatus(t *testing.T) {
	handler := SchedulingDrafts(stubSchedulingService{}, nil)
	req := httptest.NewRequest(http.MethodGet, "/?status=bogus", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if code := errorCodeFrom(t, resp); code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %s", code)
	}
}

func TestSchedulingDraftDetail(t *testing.T) {
	draftID := uuid.New()
	svc := stubSchedulingService{
		getFn: func(ctx context.Context, id uuid.UUID) (*scheduling.DraftDetail, error) {
			if id != draftID {
				t.Fatalf("unexpected id %s", id)
			}
			detail := &scheduling.DraftDetail{}
			detail.ID = draftID
			detail.ConfidenceScore = 82.5
			return detail, nil
		},
	}

	handler := SchedulingDraftDetail(svc, nil)
	req := withDraftID(httptest.NewRequest(http.MethodGet, "/", nil), draftID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var detail scheduling.DraftDetail
	decodeEnvelope(t, resp, &detail)
	if detail.ID != draftID || detail.ConfidenceScore != 82.5 {
		t.Fatalf("unexpected payload %+v", detail)
	}
}

func TestSchedulingDraftDetailRejectsBadID(t *testing.T) {
	handler := SchedulingDraftDetail(stubSchedulingService{}, nil)

	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("draftId", "not-a-uuid")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSchedulingApproveDraftPassesOverrides(t *testing.T) {
	draftID := uuid.New()
	reviewerID := uuid.New()
	overrideID := uuid.New()
	tripID := uuid.New()

	svc := stubSchedulingService{
		approveFn: func(ctx context.Context, id, reviewedBy uuid.UUID, params scheduling.ApproveParams) (*scheduling.ApprovalResult, error) {
			if id != draftID || reviewedBy != reviewerID {
				t.Fatalf("unexpected ids %s %s", id, reviewedBy)
			}
			if !params.CreateTrip {
				t.Fatal("expected create_trip to propagate")
			}
			if params.Modifications == nil || params.Modifications.DistributorID == nil || *params.Modifications.DistributorID != overrideID {
				t.Fatalf("expected distributor override, got %+v", params.Modifications)
			}
			return &scheduling.ApprovalResult{
				Draft:  &models.SchedulingDraft{ID: draftID, Status: enums.DraftStatusModified},
				TripID: &tripID,
			}, nil
		},
	}

	body := `{"modifications":{"distributor_id":"` + overrideID.String() + `"},"create_trip":true}`
	handler := SchedulingApproveDraft(svc, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req = withReviewer(withDraftID(req, draftID), reviewerID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var result scheduling.ApprovalResult
	decodeEnvelope(t, resp, &result)
	if result.TripID == nil || *result.TripID != tripID {
		t.Fatalf("unexpected trip id %v", result.TripID)
	}
}

func TestSchedulingApproveDraftRequiresAuth(t *testing.T) {
	handler := SchedulingApproveDraft(stubSchedulingService{}, nil)
	req := withDraftID(httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`)), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestSchedulingRejectDraftRequiresReason(t *testing.T) {
	handler := SchedulingRejectDraft(stubSchedulingService{}, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reassign_to_manual":true}`))
	req = withReviewer(withDraftID(req, uuid.New()), uuid.New())
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if code := errorCodeFrom(t, resp); code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %s", code)
	}
}

func TestSchedulingRejectDraftPropagatesReassignment(t *testing.T) {
	draftID := uuid.New()
	reviewerID := uuid.New()
	svc := stubSchedulingService{
		rejectFn: func(ctx context.Context, id, reviewedBy uuid.UUID, params scheduling.RejectParams) (*models.SchedulingDraft, error) {
			if params.Reason != "wrong zone" || !params.ReassignToManual {
				t.Fatalf("unexpected params %+v", params)
			}
			return &models.SchedulingDraft{ID: draftID, Status: enums.DraftStatusRejected}, nil
		},
	}

	handler := SchedulingRejectDraft(svc, nil)
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"reason":"wrong zone","reassign_to_manual":true}`))
	req = withReviewer(withDraftID(req, draftID), reviewerID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var draft models.SchedulingDraft
	decodeEnvelope(t, resp, &draft)
	if draft.Status != enums.DraftStatusRejected {
		t.Fatalf("unexpected status %s", draft.Status)
	}
}

func TestSchedulingScheduleOrderCreated(t *testing.T) {
	orderID := uuid.New()
	reviewerID := uuid.New()
	svc := stubSchedulingService{
		createFn: func(ctx context.Context, id uuid.UUID, createdBy *uuid.UUID) (*models.SchedulingDraft, error) {
			if id != orderID {
				t.Fatalf("unexpected order id %s", id)
			}
			if createdBy == nil || *createdBy != reviewerID {
				t.Fatalf("expected creator %s, got %v", reviewerID, createdBy)
			}
			return &models.SchedulingDraft{
				ID:        uuid.New(),
				OrderID:   orderID,
				Status:    enums.DraftStatusPendingReview,
				CreatedAt: time.Now().UTC(),
			}, nil
		},
	}

	handler := SchedulingScheduleOrder(svc, nil)
	ctx := chi.NewRouteContext()
	ctx.URLParams.Add("orderId", orderID.String())
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, ctx))
	req = withReviewer(req, reviewerID)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	var draft models.SchedulingDraft
	decodeEnvelope(t, resp, &draft)
	if draft.OrderID != orderID {
		t.Fatalf("unexpected payload %+v", draft)
	}
}

func TestSchedulingStatsPayload(t *testing.T) {
	svc := stubSchedulingService{
		statsFn: func(ctx context.Context) (*scheduling.Stats, error) {
			return &scheduling.Stats{TotalDrafts: 12, Approved: 7, ApprovalRate: 87.5}, nil
		},
	}

	handler := SchedulingStats(svc, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var stats scheduling.Stats
	decodeEnvelope(t, resp, &stats)
	if stats.TotalDrafts != 12 || stats.ApprovalRate != 87.5 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
