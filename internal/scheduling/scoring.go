package scheduling

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/enums"
	"github.com/ovenlane/bakeops-backend/pkg/types"
)

// Factor weights. They must sum to 1.0 so the confidence score stays on the
// 0-100 scale of the sub-scores.
const (
	weightLocation      = 0.25
	weightAvailability  = 0.20
	weightPerformance   = 0.20
	weightExperience    = 0.15
	weightCapacityFit   = 0.15
	weightPriorityMatch = 0.05
)

const earthRadiusKM = 6371.0

// ScoredCandidate pairs a candidate with its confidence score and reasoning.
type ScoredCandidate struct {
	Candidate
	Confidence float64
	Reasoning  types.AssignmentReasoning
}

// Scorer computes confidence scores. It is a pure function of its inputs so
// the same order and candidate always produce the same score.
type Scorer struct {
	rules    []ZoneRule
	maxDaily int
}

// NewScorer builds a scorer over the zone rule table used for distance
// banding.
func NewScorer(rules []ZoneRule, maxDaily int) *Scorer {
	if len(rules) == 0 {
		rules = DefaultZoneRules()
	}
	if maxDaily <= 0 {
		maxDaily = 5
	}
	return &Scorer{rules: rules, maxDaily: maxDaily}
}

// Rank scores every candidate and orders them best first. Ties keep the
// input order so results stay deterministic for equal scores.
func (s *Scorer) Rank(order *models.Order, store *models.Store, req Requirements, pool []Candidate) []ScoredCandidate {
	out := make([]ScoredCandidate, 0, len(pool))
	for _, cand := range pool {
		out = append(out, s.Score(order, store, req, cand))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Confidence > out[j].Confidence
	})
	return out
}

// Score computes the weighted confidence score and reasoning for one
// candidate.
func (s *Scorer) Score(order *models.Order, store *models.Store, req Requirements, cand Candidate) ScoredCandidate {
	zoneMatch := candidateServesZone(cand.Distributor, req.Zone)
	preferred := store.AssignedDistributorID != nil && *store.AssignedDistributorID == cand.Distributor.ID
	distanceKM := s.candidateDistanceKM(store, cand.Distributor)

	scores := types.FactorScores{
		Location:      locationScore(zoneMatch, preferred, distanceKM),
		Availability:  availabilityScore(cand.TripsToday, s.maxDaily),
		Performance:   performanceScore(cand.Distributor.PerformanceRating, cand.SuccessRate),
		Experience:    experienceScore(cand.StoreDeliveries, cand.Distributor.TotalDeliveries),
		CapacityFit:   capacityFitScore(order.TotalAmount, cand.Distributor.VehicleCapacity),
		PriorityMatch: priorityMatchScore(order.Priority, cand.Distributor.PerformanceRating),
	}

	confidence := scores.Location*weightLocation +
		scores.Availability*weightAvailability +
		scores.Performance*weightPerformance +
		scores.Experience*weightExperience +
		scores.CapacityFit*weightCapacityFit +
		scores.PriorityMatch*weightPriorityMatch
	confidence = math.Round(confidence)
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	return ScoredCandidate{
		Candidate:  cand,
		Confidence: confidence,
		Reasoning: types.AssignmentReasoning{
			ZoneMatch:         zoneMatch,
			PreferredForStore: preferred,
			DistanceKM:        distanceKM,
			StoreDeliveries:   cand.StoreDeliveries,
			WorkloadPercent:   cand.WorkloadPercent,
			Complexity:        req.ComplexityLevel,
			Scores:            scores,
			Factors:           reasoningFactors(scores, zoneMatch, preferred),
		},
	}
}

func candidateServesZone(dist models.User, zone string) bool {
	if dist.DeliveryZone == nil {
		return false
	}
	return *dist.DeliveryZone == zone || *dist.DeliveryZone == distributorZoneAll
}

// candidateDistanceKM approximates the distributor's position by the
// centroid of their affiliated zone. Unknown coordinates on either side
// yield nil and skip the distance band.
func (s *Scorer) candidateDistanceKM(store *models.Store, dist models.User) *float64 {
	if store.Location == nil || dist.DeliveryZone == nil {
		return nil
	}
	centroid := ZoneCentroid(s.rules, *dist.DeliveryZone)
	if centroid == nil {
		return nil
	}
	d := haversineKM(store.Location.Lat, store.Location.Lng, centroid.Lat, centroid.Lng)
	return &d
}

func locationScore(zoneMatch, preferred bool, distanceKM *float64) float64 {
	score := 50.0
	if zoneMatch {
		score += 30
	}
	if preferred {
		score += 20
	}
	if distanceKM != nil {
		switch {
		case *distanceKM < 5:
			score += 15
		case *distanceKM < 10:
			score += 10
		case *distanceKM < 20:
			score += 5
		}
	}
	if score > 100 {
		score = 100
	}
	return score
}

func availabilityScore(tripsToday, maxDaily int) float64 {
	if tripsToday >= maxDaily {
		return 0
	}
	return 100 * (1 - float64(tripsToday)/float64(maxDaily))
}

func performanceScore(rating, successRate float64) float64 {
	return 0.6*rating + 0.4*(successRate*100)
}

func experienceScore(storeDeliveries, totalDeliveries int) float64 {
	score := 50.0

	storeBonus := float64(storeDeliveries) * 3
	if storeBonus > 30 {
		storeBonus = 30
	}
	score += storeBonus

	switch {
	case totalDeliveries >= 100:
		score += 20
	case totalDeliveries >= 50:
		score += 15
	case totalDeliveries >= 20:
		score += 10
	case totalDeliveries >= 5:
		score += 5
	}

	if score > 100 {
		score = 100
	}
	return score
}

func capacityFitScore(orderValue decimal.Decimal, capacity *decimal.Decimal) float64 {
	if capacity == nil || capacity.IsZero() {
		return 70
	}
	ratio, _ := orderValue.Div(*capacity).Float64()
	switch {
	case ratio < 0.4:
		return 100
	case ratio < 0.6:
		return 85
	case ratio < 0.8:
		return 60
	default:
		return 40
	}
}

func priorityMatchScore(priority enums.OrderPriority, rating float64) float64 {
	if priority == enums.OrderPriorityUrgent && rating > 90 {
		return 100
	}
	if priority == enums.OrderPriorityHigh && rating > 85 {
		return 100
	}
	return 80
}

// reasoningFactors emits the fixed-order factor labels whose thresholds the
// candidate crossed. No free text generation; the same scores always yield
// the same factors.
func reasoningFactors(scores types.FactorScores, zoneMatch, preferred bool) []string {
	factors := make([]string, 0, 6)
	if scores.Location > 80 {
		factors = append(factors, "optimal delivery location")
	}
	if zoneMatch {
		factors = append(factors, "serves the delivery zone")
	}
	if preferred {
		factors = append(factors, "store's preferred distributor")
	}
	if scores.Availability >= 80 {
		factors = append(factors, "high availability today")
	}
	if scores.Performance > 90 {
		factors = append(factors, "excellent delivery track record")
	}
	if scores.Experience > 70 {
		factors = append(factors, "experienced with this store")
	}
	if scores.CapacityFit >= 100 {
		factors = append(factors, "ample vehicle capacity")
	}
	return factors
}

func haversineKM(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
