package tests

import (
	"testing"

	"courier/internal/domain"
	"courier/internal/service"
)

// ──────────────────────────────────────────────
// 1. COMMISSION PRICING
// ──────────────────────────────────────────────

func TestCommissionFor_DistrictTiers(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.NewDefaultZoneMap(), service.DefaultPricingConfig())

	testCases := []struct {
		name      string
		district  string
		oversized bool
		want      int
	}{
		{"base tier district", "Miraflores (Lima)", false, 10},
		{"unknown district falls back to base", "Narnia", false, 10},
		{"mid tier district", "Comas (Lima)", false, 13},
		{"mid tier in Callao", "Oquendo (Callao)", false, 13},
		{"high tier district", "Carabayllo (Lima)", false, 15},
		{"high tier in Callao", "Ventanilla (Callao)", false, 15},
		{"base tier oversized", "Miraflores (Lima)", true, 15},
		{"mid tier oversized", "Villa El Salvador (Lima)", true, 18},
		{"high tier oversized", "Puente Piedra (Lima)", true, 20},
		{"name without city suffix is unknown", "Carabayllo", false, 10},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := pricing.CommissionFor(tc.district, tc.oversized)
			if got != tc.want {
				t.Errorf("CommissionFor(%q, %v) = %d, want %d", tc.district, tc.oversized, got, tc.want)
			}
		})
	}
}

func TestBreakdown_SplitsTotal(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.NewDefaultZoneMap(), service.DefaultPricingConfig())

	b := pricing.Breakdown(50, 20)
	if b.TotalCharged != 50 {
		t.Errorf("expected total 50, got %d", b.TotalCharged)
	}
	if b.Commission != 20 {
		t.Errorf("expected commission 20, got %d", b.Commission)
	}
	if b.ProviderPayout != 30 {
		t.Errorf("expected payout 30, got %d", b.ProviderPayout)
	}
}

func TestBreakdown_NegativePayoutNotClamped(t *testing.T) {
	t.Parallel()

	pricing := service.NewPricingService(service.NewDefaultZoneMap(), service.DefaultPricingConfig())

	// Commission larger than the collected amount: the payout goes
	// negative and stays negative.
	b := pricing.Breakdown(5, 15)
	if b.ProviderPayout != -10 {
		t.Errorf("expected payout -10, got %d", b.ProviderPayout)
	}
}

func TestRoundAmount_HalfAwayFromZero(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   float64
		want int
	}{
		{10.4, 10},
		{10.5, 11},
		{10.6, 11},
		{0, 0},
		{12.49, 12},
	}

	for _, tc := range testCases {
		if got := service.RoundAmount(tc.in); got != tc.want {
			t.Errorf("RoundAmount(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

// ──────────────────────────────────────────────
// 2. ZONE GROUP ROUTING
// ──────────────────────────────────────────────

func TestZoneMap_GroupLookup(t *testing.T) {
	t.Parallel()

	zones := service.NewDefaultZoneMap()

	testCases := []struct {
		district string
		want     domain.ZoneGroup
	}{
		{"Comas (Lima)", domain.ZoneGroupNOR},
		{"Ventanilla (Callao)", domain.ZoneGroupNOR},
		{"Chorrillos (Lima)", domain.ZoneGroupSUR},
		{"La Molina (Lima)", domain.ZoneGroupEST},
		{"Callao (Callao)", domain.ZoneGroupOES},
		{"Miraflores (Lima)", domain.ZoneGroupNone},
	}

	for _, tc := range testCases {
		if got := zones.Group(tc.district); got != tc.want {
			t.Errorf("Group(%q) = %q, want %q", tc.district, got, tc.want)
		}
	}
}

func TestZoneMap_SanJuanDeLuriganchoKeepsFirstGroup(t *testing.T) {
	t.Parallel()

	zones := service.NewDefaultZoneMap()

	// The district appears in both EST and SJL; declaration order
	// wins, so the dedicated SJL group is never reachable through it.
	if got := zones.Group("San Juan de Lurigancho (Lima)"); got != domain.ZoneGroupEST {
		t.Errorf("expected EST, got %q", got)
	}
}
