package scheduling

import (
	"fmt"
	"time"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/types"
)

// RouteEstimator produces the coarse route placeholder attached to a draft.
// A real routing engine can be swapped in behind this interface.
type RouteEstimator interface {
	Estimate(store *models.Store, cand ScoredCandidate) (types.RouteEstimate, int)
}

// Estimator derives the suggested delivery date/slot and route estimate.
type Estimator struct {
	routes      RouteEstimator
	defaultSlot string
	now         func() time.Time
}

// NewEstimator builds a logistics estimator. A nil route estimator falls back
// to the built-in placeholder and a nil clock to time.Now.
func NewEstimator(routes RouteEstimator, defaultSlot string, now func() time.Time) *Estimator {
	if routes == nil {
		routes = placeholderRoutes{}
	}
	if defaultSlot == "" {
		defaultSlot = "09:00-12:00"
	}
	if now == nil {
		now = time.Now
	}
	return &Estimator{routes: routes, defaultSlot: defaultSlot, now: now}
}

// SuggestDeliveryDate returns the order's requested date, pushed out one day
// when it coincides with the order's creation date so the bakery has
// processing lead time. Orders without a requested date get tomorrow.
func (e *Estimator) SuggestDeliveryDate(order *models.Order) time.Time {
	if order.DeliveryDate == nil {
		return startOfDay(e.now()).AddDate(0, 0, 1)
	}
	requested := startOfDay(*order.DeliveryDate)
	if requested.Equal(startOfDay(order.CreatedAt)) {
		return requested.AddDate(0, 0, 1)
	}
	return requested
}

// DeliverySlot returns the slot label stored on the draft. Stores with a
// preferred window keep it; everyone else gets the configured default.
func (e *Estimator) DeliverySlot(store *models.Store) string {
	if store != nil && store.PreferredDeliveryTime != nil && *store.PreferredDeliveryTime != "" {
		return *store.PreferredDeliveryTime
	}
	return e.defaultSlot
}

// EstimateRoute delegates to the configured route estimator. The int is the
// estimated duration in minutes.
func (e *Estimator) EstimateRoute(store *models.Store, cand ScoredCandidate) (types.RouteEstimate, int) {
	return e.routes.Estimate(store, cand)
}

// placeholderRoutes fills the route fields from the zone distance heuristic.
// It is not a routing computation.
type placeholderRoutes struct{}

func (placeholderRoutes) Estimate(store *models.Store, cand ScoredCandidate) (types.RouteEstimate, int) {
	distance := "unknown"
	minutes := 45
	if cand.Reasoning.DistanceKM != nil {
		km := *cand.Reasoning.DistanceKM
		distance = fmt.Sprintf("%.1f km", km)
		// Rough urban average of 30 km/h plus a fixed stop allowance.
		minutes = int(km*2) + 15
	}

	label := "direct route"
	if store != nil && store.City != nil && *store.City != "" {
		label = fmt.Sprintf("via %s center", *store.City)
	}
	return types.RouteEstimate{
		EstimatedDistance: distance,
		EstimatedTime:     fmt.Sprintf("%d min", minutes),
		RouteLabel:        label,
	}, minutes
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
