package scheduling

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
	"github.com/ovenlane/bakeops-backend/pkg/pagination"
)

// ErrDraftDecided reports that a decision write found the draft no longer
// pending. A concurrent reviewer decided it first.
var ErrDraftDecided = errors.New("scheduling draft already decided")

// Repository captures scheduling draft persistence.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, draft *models.SchedulingDraft) (*models.SchedulingDraft, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.SchedulingDraft, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.SchedulingDraft, error)
	UpdateDecision(ctx context.Context, draft *models.SchedulingDraft) error
	List(ctx context.Context, params pagination.Params, filters DraftFilters) (*DraftList, error)
	Stats(ctx context.Context) (*Stats, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a drafts repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, draft *models.SchedulingDraft) (*models.SchedulingDraft, error) {
	if err := r.db.WithContext(ctx).Create(draft).Error; err != nil {
		return nil, err
	}
	return draft, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.SchedulingDraft, error) {
	var draft models.SchedulingDraft
	if err := r.db.WithContext(ctx).First(&draft, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

func (r *repository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*models.SchedulingDraft, error) {
	var draft models.SchedulingDraft
	if err := r.db.WithContext(ctx).First(&draft, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	return &draft, nil
}

// UpdateDecision writes the review outcome onto a draft. The statement is
// guarded on the draft still being pending, so two reviewers deciding the
// same draft cannot overwrite each other; the loser gets ErrDraftDecided.
func (r *repository) UpdateDecision(ctx context.Context, draft *models.SchedulingDraft) error {
	result := r.db.WithContext(ctx).
		Model(draft).
		Where("status = ?", enums.DraftStatusPendingReview).
		Select(
			"status",
			"admin_notes",
			"modifications",
			"approved_distributor_id",
			"approved_delivery_date",
			"approved_priority",
			"reviewed_by",
			"reviewed_at",
		).
		Updates(draft)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDraftDecided
	}
	return nil
}

// List returns a cursor-paginated page of drafts, newest first.
func (r *repository) List(ctx context.Context, params pagination.Params, filters DraftFilters) (*DraftList, error) {
	normalizedLimit := pagination.NormalizeLimit(params.Limit)
	limitWithBuffer := pagination.LimitWithBuffer(params.Limit)
	decodedCursor, err := pagination.ParseCursor(strings.TrimSpace(params.Cursor))
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Model(&models.SchedulingDraft{})
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if decodedCursor != nil {
		query = query.Where(
			"(created_at < ?) OR (created_at = ? AND id < ?)",
			decodedCursor.CreatedAt, decodedCursor.CreatedAt, decodedCursor.ID,
		)
	}

	var rows []models.SchedulingDraft
	err = query.
		Order("created_at DESC, id DESC").
		Limit(limitWithBuffer).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	nextCursor := ""
	if len(rows) > normalizedLimit {
		rows = rows[:normalizedLimit]
		last := rows[len(rows)-1]
		nextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	drafts := make([]DraftSummary, 0, len(rows))
	for _, row := range rows {
		drafts = append(drafts, summaryFromModel(row))
	}
	return &DraftList{Drafts: drafts, NextCursor: nextCursor}, nil
}

// Stats aggregates draft outcomes with SQL so the dashboard query stays one
// round trip per aggregate.
func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	type statusRow struct {
		Status enums.DraftStatus `gorm:"column:status"`
		Count  int               `gorm:"column:count"`
	}
	var statusRows []statusRow
	err := r.db.WithContext(ctx).
		Model(&models.SchedulingDraft{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Find(&statusRows).Error
	if err != nil {
		return nil, err
	}

	stats := Stats{}
	for _, row := range statusRows {
		stats.TotalDrafts += row.Count
		switch row.Status {
		case enums.DraftStatusPendingReview:
			stats.PendingReview = row.Count
		case enums.DraftStatusApproved:
			stats.Approved = row.Count
		case enums.DraftStatusModified:
			stats.Modified = row.Count
		case enums.DraftStatusRejected:
			stats.Rejected = row.Count
		}
	}
	decided := stats.Approved + stats.Modified + stats.Rejected
	if decided > 0 {
		stats.ApprovalRate = 100 * float64(stats.Approved+stats.Modified) / float64(decided)
	}

	var avg *float64
	err = r.db.WithContext(ctx).
		Model(&models.SchedulingDraft{}).
		Select("AVG(confidence_score)").
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	if avg != nil {
		stats.AverageConfidence = *avg
	}

	type accuracyRow struct {
		DistributorID   uuid.UUID `gorm:"column:suggested_distributor_id"`
		DistributorName string    `gorm:"column:suggested_distributor_name"`
		Suggested       int       `gorm:"column:suggested"`
		ApprovedAsIs    int       `gorm:"column:approved_as_is"`
	}
	var accuracyRows []accuracyRow
	err = r.db.WithContext(ctx).
		Model(&models.SchedulingDraft{}).
		Select(strings.Join([]string{
			"suggested_distributor_id",
			"suggested_distributor_name",
			"COUNT(*) AS suggested",
			"SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END) AS approved_as_is",
		}, ", ")).
		Group("suggested_distributor_id, suggested_distributor_name").
		Order("suggested DESC").
		Find(&accuracyRows).Error
	if err != nil {
		return nil, err
	}

	stats.PerDistributor = make([]DistributorAccuracy, 0, len(accuracyRows))
	for _, row := range accuracyRows {
		accuracy := 0.0
		if row.Suggested > 0 {
			accuracy = 100 * float64(row.ApprovedAsIs) / float64(row.Suggested)
		}
		stats.PerDistributor = append(stats.PerDistributor, DistributorAccuracy{
			DistributorID:   row.DistributorID,
			DistributorName: row.DistributorName,
			Suggested:       row.Suggested,
			ApprovedAsIs:    row.ApprovedAsIs,
			AccuracyPercent: accuracy,
		})
	}
	return &stats, nil
}
