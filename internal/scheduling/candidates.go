package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ovenlane/bakeops-backend/internal/distributors"
	"github.com/ovenlane/bakeops-backend/pkg/db/models"
)

// defaultSuccessRate is assumed for distributors with no delivery history.
const defaultSuccessRate = 0.85

// distributorZoneAll mirrors the repository sentinel for "serves every zone".
const distributorZoneAll = distributors.ZoneAll

// Candidate is a distributor eligible for one assignment, enriched with the
// derived fields the scoring engine consumes.
type Candidate struct {
	Distributor     models.User
	TripsToday      int
	SuccessRate     float64
	WorkloadPercent float64
	StoreDeliveries int
}

type candidateSource interface {
	ListEligible(ctx context.Context, zone string, date time.Time, maxDaily int) ([]distributors.CandidateRow, error)
	CountStoreDeliveries(ctx context.Context, storeID uuid.UUID, distributorIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

// PoolProvider queries the eligible distributor pool for a zone and date.
type PoolProvider struct {
	source   candidateSource
	maxDaily int
}

// NewPoolProvider builds a pool provider with the configured per-day trip
// capacity.
func NewPoolProvider(source candidateSource, maxDaily int) *PoolProvider {
	if maxDaily <= 0 {
		maxDaily = 5
	}
	return &PoolProvider{source: source, maxDaily: maxDaily}
}

// MaxDailyCapacity exposes the configured capacity for availability scoring.
func (p *PoolProvider) MaxDailyCapacity() int {
	return p.maxDaily
}

// Eligible returns the candidate pool for the zone/date, preserving the
// repository's stable ordering. An empty result is not an error here; the
// draft lifecycle decides how to surface it.
func (p *PoolProvider) Eligible(ctx context.Context, zone string, date time.Time, storeID uuid.UUID) ([]Candidate, error) {
	rows, err := p.source.ListEligible(ctx, zone, date, p.maxDaily)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.User.ID)
	}
	storeCounts, err := p.source.CountStoreDeliveries(ctx, storeID, ids)
	if err != nil {
		return nil, err
	}

	out := make([]Candidate, 0, len(rows))
	for _, row := range rows {
		successRate := defaultSuccessRate
		if row.User.TotalDeliveries > 0 {
			successRate = float64(row.User.SuccessfulDeliveries) / float64(row.User.TotalDeliveries)
		}
		out = append(out, Candidate{
			Distributor:     row.User,
			TripsToday:      row.TripsOnDate,
			SuccessRate:     successRate,
			WorkloadPercent: 100 * float64(row.TripsOnDate) / float64(p.maxDaily),
			StoreDeliveries: storeCounts[row.User.ID],
		})
	}
	return out, nil
}
