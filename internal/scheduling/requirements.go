package scheduling

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

// Requirements is the logistics profile derived from an order before any
// candidate scoring happens.
type Requirements struct {
	Zone            string
	TotalWeightKG   float64
	SpecialHandling bool
	ItemCount       int
	ComplexityScore int
	ComplexityLevel enums.ComplexityLevel
}

// Complexity thresholds. Each factor contributes a fixed increment once its
// threshold is crossed; the sum buckets into low/medium/high.
var (
	complexityValueHigh = decimal.NewFromInt(500)
	complexityValueMid  = decimal.NewFromInt(200)
)

const (
	complexityHighFloor   = 60
	complexityMediumFloor = 30
)

// Analyzer turns an order plus its store into Requirements.
type Analyzer struct {
	zones ZoneResolver
	now   func() time.Time
}

// NewAnalyzer builds a requirements analyzer. A nil clock defaults to
// time.Now.
func NewAnalyzer(zones ZoneResolver, now func() time.Time) *Analyzer {
	if now == nil {
		now = time.Now
	}
	return &Analyzer{zones: zones, now: now}
}

// Analyze derives the logistics requirements for the order. The store must be
// the one the order references.
func (a *Analyzer) Analyze(order *models.Order, store *models.Store) Requirements {
	req := Requirements{
		Zone:      a.zones.Resolve(store),
		ItemCount: len(order.Items),
	}

	for _, item := range order.Items {
		if item.Product == nil {
			continue
		}
		req.TotalWeightKG += item.Product.UnitWeightKG * float64(item.Qty)
		if item.Product.RequiresSpecialHandling {
			req.SpecialHandling = true
		}
	}

	req.ComplexityScore = a.complexityScore(order, req)
	switch {
	case req.ComplexityScore >= complexityHighFloor:
		req.ComplexityLevel = enums.ComplexityHigh
	case req.ComplexityScore >= complexityMediumFloor:
		req.ComplexityLevel = enums.ComplexityMedium
	default:
		req.ComplexityLevel = enums.ComplexityLow
	}
	return req
}

func (a *Analyzer) complexityScore(order *models.Order, req Requirements) int {
	score := 0

	switch {
	case order.TotalAmount.GreaterThan(complexityValueHigh):
		score += 30
	case order.TotalAmount.GreaterThan(complexityValueMid):
		score += 15
	}

	switch {
	case req.ItemCount > 10:
		score += 20
	case req.ItemCount > 5:
		score += 10
	}

	if req.SpecialHandling {
		score += 25
	}

	switch {
	case req.TotalWeightKG > 50:
		score += 20
	case req.TotalWeightKG > 20:
		score += 10
	}

	if order.DeliveryDate != nil {
		daysUntilDue := order.DeliveryDate.Sub(a.now()).Hours() / 24
		switch {
		case daysUntilDue <= 1:
			score += 30
		case daysUntilDue <= 2:
			score += 15
		}
	}

	return score
}
