package service

import (
	"fmt"

	"courier/internal/domain"
)

// oversizedThresholdCm3 is the volume above which a package is
// expected to be flagged oversized (30x30x30 cm).
const oversizedThresholdCm3 = 30 * 30 * 30

// ClassifyOrder derives the lifecycle status of an order from its
// dates and assignment legs. The rules are evaluated top-down, first
// match wins:
//
//  1. delivery date present            -> DELIVERED
//  2. cancellation date present        -> CANCELLED
//  3. pickup leg completed OR delivery
//     leg en route                     -> IN_PROGRESS
//  4. otherwise                        -> PENDING
//
// Delivery takes precedence over cancellation when both dates are
// somehow present; that combination is reported by DataQualityFlags,
// not rejected here. Status is re-derived on every read and never
// stored, so it cannot drift from the underlying dates.
func ClassifyOrder(o *domain.Order) domain.OrderStatus {
	switch {
	case !o.Dates.Delivery.IsZero():
		return domain.OrderStatusDelivered
	case !o.Dates.Cancellation.IsZero():
		return domain.OrderStatusCancelled
	case o.Pickup.State == domain.AssignmentStateCompleted ||
		o.Delivery.State == domain.AssignmentStateEnRoute:
		return domain.OrderStatusInProgress
	default:
		return domain.OrderStatusPending
	}
}

// IsEligibleForClosure reports whether an order is finished (delivered
// or cancelled) but not yet closed by the reconciler.
func IsEligibleForClosure(o *domain.Order) bool {
	if o.Closed {
		return false
	}
	status := ClassifyOrder(o)
	return status == domain.OrderStatusDelivered || status == domain.OrderStatusCancelled
}

// DataQualityFlags reports inconsistent but tolerated conditions on a
// stored order. Such orders are persisted as-is; downstream reporting
// flags them instead of the engine rejecting them.
func DataQualityFlags(o *domain.Order) []string {
	var flags []string

	if o.Payment.Charged && o.Payment.Amount < 0 {
		flags = append(flags, fmt.Sprintf("negative provider payout: %d", o.Payment.Amount))
	}

	if !o.Dates.Delivery.IsZero() && !o.Dates.Cancellation.IsZero() {
		flags = append(flags, "both delivery and cancellation dates set")
	}

	if v := o.Package.Dimensions.Volume; v > 0 {
		if o.Package.Oversized && v <= oversizedThresholdCm3 {
			flags = append(flags, "flagged oversized but volume within threshold")
		}
		if !o.Package.Oversized && v > oversizedThresholdCm3 {
			flags = append(flags, "volume exceeds threshold but not flagged oversized")
		}
	}

	return flags
}
