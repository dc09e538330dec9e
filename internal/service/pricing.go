package service

import (
	"math"

	"courier/internal/domain"
)

// PricingConfig contains the commission rates in whole currency units.
type PricingConfig struct {
	BaseCommission     int // districts outside both tier lists
	MidCommission      int // mid-tier districts
	HighCommission     int // distant, high-tier districts
	OversizedSurcharge int // added when the package is flagged oversized
}

// DefaultPricingConfig returns the production commission rates.
func DefaultPricingConfig() PricingConfig {
	return PricingConfig{
		BaseCommission:     10,
		MidCommission:      13,
		HighCommission:     15,
		OversizedSurcharge: 5,
	}
}

// PricingService computes commissions and payment breakdowns.
// Commissions are always whole currency units; rounding happens here,
// at computation time, never downstream.
type PricingService struct {
	zones  *ZoneMap
	config PricingConfig
}

// NewPricingService creates a new PricingService.
func NewPricingService(zones *ZoneMap, config PricingConfig) *PricingService {
	return &PricingService{zones: zones, config: config}
}

// CommissionFor returns the commission for a delivery to the given
// district: the district tier's base rate plus the oversized surcharge
// when the package is flagged oversized.
func (s *PricingService) CommissionFor(district string, oversized bool) int {
	commission := s.config.BaseCommission

	switch s.zones.Tier(district) {
	case domain.TierHigh:
		commission = s.config.HighCommission
	case domain.TierMid:
		commission = s.config.MidCommission
	}

	if oversized {
		commission += s.config.OversizedSurcharge
	}

	return commission
}

// PaymentBreakdown is the amount split for a charged order.
type PaymentBreakdown struct {
	ProviderPayout int
	Commission     int
	TotalCharged   int
}

// Breakdown computes the split of the total charged to the recipient.
// The provider payout is total minus commission and is NOT floored at
// zero: a negative payout is a data-quality condition the caller must
// surface, not a value to clamp here.
func (s *PricingService) Breakdown(totalCharged, commission float64) PaymentBreakdown {
	total := RoundAmount(totalCharged)
	comm := RoundAmount(commission)

	return PaymentBreakdown{
		ProviderPayout: total - comm,
		Commission:     comm,
		TotalCharged:   total,
	}
}

// RoundAmount rounds a currency amount to whole units, half away from
// zero. Amounts in this system are non-negative in practice, where
// this matches round-half-up.
func RoundAmount(v float64) int {
	return int(math.Round(v))
}
