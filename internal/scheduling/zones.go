package scheduling

import (
	"strings"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
)

// ZoneGeneral is the fallback bucket for stores no rule matches.
const ZoneGeneral = "general"

// ZoneResolver derives the coarse delivery zone for a store. The default
// implementation is a keyword/bounding-box heuristic; a geocoding service can
// replace it without touching the scoring engine.
type ZoneResolver interface {
	Resolve(store *models.Store) string
}

// ZoneRule describes one zone: its city keywords and an optional lat/lng
// bounding box with a centroid used for distance banding.
type ZoneRule struct {
	Name     string
	Keywords []string
	LatMin   float64
	LatMax   float64
	LngMin   float64
	LngMax   float64
	Centroid *Coordinates
}

// Coordinates is a bare lat/lng pair.
type Coordinates struct {
	Lat float64
	Lng float64
}

type keywordZoneResolver struct {
	rules []ZoneRule
}

// NewZoneResolver builds the default resolver over the provided rule table.
func NewZoneResolver(rules []ZoneRule) ZoneResolver {
	if len(rules) == 0 {
		rules = DefaultZoneRules()
	}
	return &keywordZoneResolver{rules: rules}
}

// DefaultZoneRules covers the metro areas the bakery currently delivers to.
func DefaultZoneRules() []ZoneRule {
	return []ZoneRule{
		{
			Name:     "madrid",
			Keywords: []string{"madrid", "alcobendas", "getafe", "leganes"},
			LatMin:   40.2, LatMax: 40.7, LngMin: -3.95, LngMax: -3.4,
			Centroid: &Coordinates{Lat: 40.4168, Lng: -3.7038},
		},
		{
			Name:     "barcelona",
			Keywords: []string{"barcelona", "badalona", "hospitalet"},
			LatMin:   41.2, LatMax: 41.6, LngMin: 1.9, LngMax: 2.4,
			Centroid: &Coordinates{Lat: 41.3874, Lng: 2.1686},
		},
		{
			Name:     "valencia",
			Keywords: []string{"valencia", "torrent", "paterna"},
			LatMin:   39.3, LatMax: 39.7, LngMin: -0.6, LngMax: -0.2,
			Centroid: &Coordinates{Lat: 39.4699, Lng: -0.3763},
		},
		{
			Name:     "sevilla",
			Keywords: []string{"sevilla", "seville", "dos hermanas"},
			LatMin:   37.2, LatMax: 37.6, LngMin: -6.2, LngMax: -5.7,
			Centroid: &Coordinates{Lat: 37.3891, Lng: -5.9845},
		},
	}
}

// Resolve walks the derivation chain: explicit city, address keywords,
// coordinate bounding boxes, then the general fallback.
func (r *keywordZoneResolver) Resolve(store *models.Store) string {
	if store == nil {
		return ZoneGeneral
	}

	if store.City != nil {
		city := strings.ToLower(strings.TrimSpace(*store.City))
		for _, rule := range r.rules {
			for _, keyword := range rule.Keywords {
				if city == keyword {
					return rule.Name
				}
			}
		}
	}

	address := strings.ToLower(store.Address)
	for _, rule := range r.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(address, keyword) {
				return rule.Name
			}
		}
	}

	if store.Location != nil {
		for _, rule := range r.rules {
			if store.Location.Lat >= rule.LatMin && store.Location.Lat <= rule.LatMax &&
				store.Location.Lng >= rule.LngMin && store.Location.Lng <= rule.LngMax {
				return rule.Name
			}
		}
	}

	return ZoneGeneral
}

// ZoneCentroid returns the centroid for a zone name, if the rule defines one.
func ZoneCentroid(rules []ZoneRule, zone string) *Coordinates {
	for _, rule := range rules {
		if rule.Name == zone {
			return rule.Centroid
		}
	}
	return nil
}
