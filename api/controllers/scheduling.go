package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ovenlane/bakeops-backend/api/middleware"
	"github.com/ovenlane/bakeops-backend/api/responses"
	"github.com/ovenlane/bakeops-backend/api/validators"
	"github.com/ovenlane/bakeops-backend/internal/scheduling"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
	pkgerrors "github.com/ovenlane/bakeops-backend/pkg/errors"
	"github.com/ovenlane/bakeops-backend/pkg/logger"
	"github.com/ovenlane/bakeops-backend/pkg/pagination"
	"github.com/ovenlane/bakeops-backend/pkg/types"
)

// maxAdminNoteLen caps reviewer-provided free text before it reaches storage.
const maxAdminNoteLen = 2000

type approveDraftRequest struct {
	Modifications *types.DraftModifications `json:"modifications,omitempty"`
	AdminNotes    *string                   `json:"admin_notes,omitempty"`
	CreateTrip    bool                      `json:"create_trip"`
}

type rejectDraftRequest struct {
	Reason           string `json:"reason" validate:"required"`
	ReassignToManual bool   `json:"reassign_to_manual"`
}

// SchedulingDrafts returns the paginated review queue, optionally filtered by
// draft status.
func SchedulingDrafts(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := scheduling.DraftFilters{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseDraftStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}

		params := pagination.Params{
			Limit:  limit,
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
		}

		list, err := svc.ListDrafts(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// SchedulingDraftDetail returns one draft with its reasoning, alternatives,
// and route estimate.
func SchedulingDraftDetail(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		draftID, err := parseDraftID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		detail, err := svc.GetDraft(r.Context(), draftID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, detail)
	}
}

// SchedulingApproveDraft commits a reviewer decision, with optional overrides
// and trip creation.
func SchedulingApproveDraft(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		draftID, err := parseDraftID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reviewerID, err := reviewerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body approveDraftRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if body.AdminNotes != nil {
			notes := validators.SanitizeString(*body.AdminNotes, maxAdminNoteLen)
			body.AdminNotes = &notes
		}

		result, err := svc.Approve(r.Context(), draftID, reviewerID, scheduling.ApproveParams{
			Modifications: body.Modifications,
			AdminNotes:    body.AdminNotes,
			CreateTrip:    body.CreateTrip,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// SchedulingRejectDraft records a rejection and optionally routes the order
// back to manual scheduling.
func SchedulingRejectDraft(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		draftID, err := parseDraftID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		reviewerID, err := reviewerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body rejectDraftRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.Reject(r.Context(), draftID, reviewerID, scheduling.RejectParams{
			Reason:           validators.SanitizeString(body.Reason, maxAdminNoteLen),
			ReassignToManual: body.ReassignToManual,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}

// SchedulingScheduleOrder runs the assignment engine against a single order
// and persists the resulting draft.
func SchedulingScheduleOrder(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		rawOrderID := strings.TrimSpace(chi.URLParam(r, "orderId"))
		if rawOrderID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "order id is required"))
			return
		}
		orderID, err := uuid.Parse(rawOrderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order id"))
			return
		}

		reviewerID, err := reviewerFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		draft, err := svc.CreateDraft(r.Context(), orderID, &reviewerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, draft)
	}
}

// SchedulingStats reports aggregate draft outcomes and per-distributor
// suggestion accuracy.
func SchedulingStats(svc scheduling.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scheduling service unavailable"))
			return
		}

		stats, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}

func parseDraftID(r *http.Request) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, "draftId"))
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "draft id is required")
	}
	draftID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid draft id")
	}
	return draftID, nil
}

func reviewerFromContext(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	reviewerID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid authenticated user")
	}
	return reviewerID, nil
}
