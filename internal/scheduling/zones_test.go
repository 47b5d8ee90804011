package scheduling

import (
	"testing"

	"github.com/ovenlane/bakeops-backend/pkg/db/models"
	"github.com/ovenlane/bakeops-backend/pkg/types"
)

func TestZoneResolverExplicitCity(t *testing.T) {
	resolver := NewZoneResolver(nil)
	city := "Madrid"
	zone := resolver.Resolve(&models.Store{
		City:    &city,
		Address: "somewhere in barcelona", // city wins over the address text
	})
	if zone != "madrid" {
		t.Fatalf("expected madrid, got %q", zone)
	}
}

func TestZoneResolverAddressKeyword(t *testing.T) {
	resolver := NewZoneResolver(nil)
	zone := resolver.Resolve(&models.Store{
		Address: "Carrer de Mallorca 401, Barcelona",
	})
	if zone != "barcelona" {
		t.Fatalf("expected barcelona, got %q", zone)
	}
}

func TestZoneResolverCoordinateRange(t *testing.T) {
	resolver := NewZoneResolver(nil)
	zone := resolver.Resolve(&models.Store{
		Address:  "Poligono Industrial 7",
		Location: &types.GeographyPoint{Lat: 39.47, Lng: -0.38},
	})
	if zone != "valencia" {
		t.Fatalf("expected valencia, got %q", zone)
	}
}

func TestZoneResolverFallsBackToGeneral(t *testing.T) {
	resolver := NewZoneResolver(nil)
	zone := resolver.Resolve(&models.Store{Address: "Rural route 9"})
	if zone != ZoneGeneral {
		t.Fatalf("expected %q, got %q", ZoneGeneral, zone)
	}
	if got := resolver.Resolve(nil); got != ZoneGeneral {
		t.Fatalf("expected %q for nil store, got %q", ZoneGeneral, got)
	}
}
