package tests

import (
	"testing"
	"time"

	"courier/internal/domain"
	"courier/internal/service"
)

// ──────────────────────────────────────────────
// 1. STATUS DERIVATION
// ──────────────────────────────────────────────

func TestClassifyOrder_Precedence(t *testing.T) {
	t.Parallel()

	now := time.Now()

	testCases := []struct {
		name  string
		order domain.Order
		want  domain.OrderStatus
	}{
		{
			name:  "no dates, pending legs",
			order: domain.Order{},
			want:  domain.OrderStatusPending,
		},
		{
			name: "delivery date set",
			order: domain.Order{
				Dates: domain.OrderDates{Delivery: now},
			},
			want: domain.OrderStatusDelivered,
		},
		{
			name: "cancellation date set",
			order: domain.Order{
				Dates: domain.OrderDates{Cancellation: now},
			},
			want: domain.OrderStatusCancelled,
		},
		{
			name: "delivery wins over cancellation",
			order: domain.Order{
				Dates: domain.OrderDates{Delivery: now, Cancellation: now},
			},
			want: domain.OrderStatusDelivered,
		},
		{
			name: "pickup completed means in progress",
			order: domain.Order{
				Pickup: domain.Assignment{State: domain.AssignmentStateCompleted},
			},
			want: domain.OrderStatusInProgress,
		},
		{
			name: "delivery en route means in progress",
			order: domain.Order{
				Delivery: domain.Assignment{State: domain.AssignmentStateEnRoute},
			},
			want: domain.OrderStatusInProgress,
		},
		{
			name: "assigned but not moving is still pending",
			order: domain.Order{
				Pickup:   domain.Assignment{State: domain.AssignmentStateAssigned},
				Delivery: domain.Assignment{State: domain.AssignmentStateAssigned},
			},
			want: domain.OrderStatusPending,
		},
		{
			name: "dates beat assignment states",
			order: domain.Order{
				Dates:  domain.OrderDates{Cancellation: now},
				Pickup: domain.Assignment{State: domain.AssignmentStateCompleted},
			},
			want: domain.OrderStatusCancelled,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := service.ClassifyOrder(&tc.order); got != tc.want {
				t.Errorf("ClassifyOrder() = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestClassifyOrder_Idempotent(t *testing.T) {
	t.Parallel()

	order := domain.Order{
		Dates:  domain.OrderDates{Delivery: time.Now()},
		Pickup: domain.Assignment{State: domain.AssignmentStateCompleted},
	}

	first := service.ClassifyOrder(&order)
	second := service.ClassifyOrder(&order)
	if first != second {
		t.Errorf("classification changed between reads: %s then %s", first, second)
	}
}

// ──────────────────────────────────────────────
// 2. CLOSURE ELIGIBILITY
// ──────────────────────────────────────────────

func TestIsEligibleForClosure(t *testing.T) {
	t.Parallel()

	now := time.Now()

	testCases := []struct {
		name  string
		order domain.Order
		want  bool
	}{
		{"pending order", domain.Order{}, false},
		{"delivered open order", domain.Order{Dates: domain.OrderDates{Delivery: now}}, true},
		{"cancelled open order", domain.Order{Dates: domain.OrderDates{Cancellation: now}}, true},
		{"delivered but already closed", domain.Order{
			Closed: true,
			Dates:  domain.OrderDates{Delivery: now},
		}, false},
		{"in progress order", domain.Order{
			Pickup: domain.Assignment{State: domain.AssignmentStateCompleted},
		}, false},
		{"delivered weeks ago is still eligible", domain.Order{
			Dates: domain.OrderDates{Delivery: now.AddDate(0, 0, -30)},
		}, true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := service.IsEligibleForClosure(&tc.order); got != tc.want {
				t.Errorf("IsEligibleForClosure() = %v, want %v", got, tc.want)
			}
		})
	}
}

// ──────────────────────────────────────────────
// 3. DATA QUALITY FLAGS
// ──────────────────────────────────────────────

func TestDataQualityFlags(t *testing.T) {
	t.Parallel()

	now := time.Now()

	clean := domain.Order{
		Payment: domain.Payment{Charged: true, Amount: 30, Commission: 20, Total: 50},
	}
	if flags := service.DataQualityFlags(&clean); len(flags) != 0 {
		t.Errorf("expected no flags, got %v", flags)
	}

	negative := domain.Order{
		Payment: domain.Payment{Charged: true, Amount: -10, Commission: 15, Total: 5},
	}
	if flags := service.DataQualityFlags(&negative); len(flags) != 1 {
		t.Errorf("expected negative payout flag, got %v", flags)
	}

	bothDates := domain.Order{
		Dates: domain.OrderDates{Delivery: now, Cancellation: now},
	}
	if flags := service.DataQualityFlags(&bothDates); len(flags) != 1 {
		t.Errorf("expected both-dates flag, got %v", flags)
	}

	// Volume over threshold without the oversized flag.
	bigUnflagged := domain.Order{
		Package: domain.Package{Dimensions: domain.Dimensions{
			Height: 40, Width: 40, Length: 40, Volume: 64000,
		}},
	}
	if flags := service.DataQualityFlags(&bigUnflagged); len(flags) != 1 {
		t.Errorf("expected volume mismatch flag, got %v", flags)
	}

	// Flagged oversized but volume within threshold.
	smallFlagged := domain.Order{
		Package: domain.Package{
			Oversized:  true,
			Dimensions: domain.Dimensions{Height: 10, Width: 10, Length: 10, Volume: 1000},
		},
	}
	if flags := service.DataQualityFlags(&smallFlagged); len(flags) != 1 {
		t.Errorf("expected oversized mismatch flag, got %v", flags)
	}

	// Oversized flag without measurements is fine: the surcharge is
	// independent of the recorded volume.
	flaggedNoVolume := domain.Order{
		Package: domain.Package{Oversized: true},
	}
	if flags := service.DataQualityFlags(&flaggedNoVolume); len(flags) != 0 {
		t.Errorf("expected no flags without volume, got %v", flags)
	}
}
