package scheduling

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testOrder(total int64, items []models.OrderLineItem, deliveryDate *time.Time) *models.Order {
	return &models.Order{
		TotalAmount:  decimal.NewFromInt(total),
		DeliveryDate: deliveryDate,
		Items:        items,
		Priority:     enums.OrderPriorityNormal,
		Status:       enums.OrderStatusConfirmed,
	}
}

func lineItems(count int, weightKG float64, special bool) []models.OrderLineItem {
	items := make([]models.OrderLineItem, 0, count)
	for i := 0; i < count; i++ {
		requiresSpecial := special && i == 0
		items = append(items, models.OrderLineItem{
			Qty: 1,
			Product: &models.Product{
				UnitWeightKG:            weightKG,
				RequiresSpecialHandling: requiresSpecial,
			},
		})
	}
	return items
}

func TestAnalyzeHighComplexityOrder(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	tomorrow := now.AddDate(0, 0, 1)

	// 600 value (+30), 12 items (+20), special handling (+25), due in one
	// day (+30) crosses the high threshold.
	order := testOrder(600, lineItems(12, 0.5, true), &tomorrow)
	analyzer := NewAnalyzer(NewZoneResolver(nil), fixedClock(now))

	req := analyzer.Analyze(order, &models.Store{Address: "Calle Mayor 1"})
	if req.ComplexityLevel != enums.ComplexityHigh {
		t.Fatalf("expected high complexity, got %s (score %d)", req.ComplexityLevel, req.ComplexityScore)
	}
	if req.ComplexityScore < 105 {
		t.Fatalf("expected score 105, got %d", req.ComplexityScore)
	}
	if !req.SpecialHandling {
		t.Fatalf("expected special handling flag")
	}
}

func TestAnalyzeComplexityBuckets(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	analyzer := NewAnalyzer(NewZoneResolver(nil), fixedClock(now))
	store := &models.Store{Address: "Calle Mayor 1"}

	cases := []struct {
		name     string
		order    *models.Order
		expected enums.ComplexityLevel
	}{
		{
			name:     "small order stays low",
			order:    testOrder(100, lineItems(2, 0.5, false), nil),
			expected: enums.ComplexityLow,
		},
		{
			// 300 value (+15), 7 items (+10), 28kg (+10) lands at 35.
			name:     "mid value with volume and weight is medium",
			order:    testOrder(300, lineItems(7, 4, false), nil),
			expected: enums.ComplexityMedium,
		},
		{
			// 300 value (+15), 4 items, 4kg stays under the medium floor.
			name:     "mid value alone stays low",
			order:    testOrder(300, lineItems(4, 1, false), nil),
			expected: enums.ComplexityLow,
		},
		{
			name:     "heavy special order is high",
			order:    testOrder(600, lineItems(6, 10, true), nil),
			expected: enums.ComplexityHigh,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := analyzer.Analyze(tc.order, store)
			if req.ComplexityLevel != tc.expected {
				t.Fatalf("expected %s, got %s (score %d)", tc.expected, req.ComplexityLevel, req.ComplexityScore)
			}
		})
	}
}

func TestAnalyzeTotalWeight(t *testing.T) {
	analyzer := NewAnalyzer(NewZoneResolver(nil), fixedClock(time.Now()))

	order := testOrder(50, []models.OrderLineItem{
		{Qty: 4, Product: &models.Product{UnitWeightKG: 2.5}},
		{Qty: 2, Product: &models.Product{UnitWeightKG: 1.0}},
		{Qty: 3, Product: nil},
	}, nil)

	req := analyzer.Analyze(order, &models.Store{Address: "x"})
	if req.TotalWeightKG != 12 {
		t.Fatalf("expected 12kg, got %v", req.TotalWeightKG)
	}
	if req.ItemCount != 3 {
		t.Fatalf("expected 3 items, got %d", req.ItemCount)
	}
}
