package domain

import "time"

// OrderStatus represents the derived lifecycle status of an order.
// It is computed from the order's dates and assignment legs on every
// read and is never stored as its own field.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusInProgress OrderStatus = "IN_PROGRESS"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// PaymentMethod represents how the recipient pays for a charged order.
type PaymentMethod string

const (
	PaymentMethodYape         PaymentMethod = "YAPE"
	PaymentMethodPlin         PaymentMethod = "PLIN"
	PaymentMethodCash         PaymentMethod = "CASH"
	PaymentMethodPaymentLink  PaymentMethod = "PAYMENT_LINK"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodAskCustomer  PaymentMethod = "ASK_CUSTOMER"
)

// PaymentStatus represents the collection state of an order's payment.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// CommissionSource records how the stored commission was determined.
// There is no separate override field: once a manual amount is applied
// it replaces the computed value, and only an explicit clear returns
// the order to automatic computation.
type CommissionSource string

const (
	CommissionSourceAuto   CommissionSource = "AUTO"
	CommissionSourceManual CommissionSource = "MANUAL"
)

// AssignmentState represents the state of one leg (pickup or delivery)
// of an order.
type AssignmentState string

const (
	AssignmentStatePending   AssignmentState = "PENDING"
	AssignmentStateAssigned  AssignmentState = "ASSIGNED"
	AssignmentStateEnRoute   AssignmentState = "EN_ROUTE"
	AssignmentStateCompleted AssignmentState = "COMPLETED"
)

// Leg identifies which assignment leg of an order an operation targets.
type Leg string

const (
	LegPickup   Leg = "pickup"
	LegDelivery Leg = "delivery"
)

// Coordinates is a resolved latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Address is a free-text address or map link plus its district and
// resolved coordinates.
type Address struct {
	Link        string      `json:"link"`
	District    string      `json:"district"`
	Coordinates Coordinates `json:"coordinates"`
}

// Party is one side of a delivery: the provider (sender) or the
// recipient.
type Party struct {
	UID     string  `json:"uid,omitempty"`
	Name    string  `json:"name"`
	Email   string  `json:"email,omitempty"`
	Phone   string  `json:"phone"`
	Address Address `json:"address"`
}

// Dimensions holds the optional package measurements in centimeters.
// Zero means the dimension was not provided. Volume is derived from
// the three measurements when all are present.
type Dimensions struct {
	Height float64 `json:"height,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Length float64 `json:"length,omitempty"`
	Volume float64 `json:"volume,omitempty"`
}

// PackagePhotos references the evidence photos attached to an order.
type PackagePhotos struct {
	PickupURL       string `json:"pickup_url,omitempty"`
	DeliveryURL     string `json:"delivery_url,omitempty"`
	PaymentProofURL string `json:"payment_proof_url,omitempty"`
}

// Package describes what is being shipped.
//
// Oversized is an explicit operator judgment; it is deliberately not
// derived from the computed volume. A mismatch between the two is
// reported downstream as a data-quality flag, never corrected.
type Package struct {
	Detail       string        `json:"detail"`
	Observations string        `json:"observations,omitempty"`
	Dimensions   Dimensions    `json:"dimensions"`
	Oversized    bool          `json:"oversized"`
	Photos       PackagePhotos `json:"photos"`
}

// Payment is the financial breakdown of an order. Amount is what gets
// remitted to the provider, Total what the recipient is charged, and
// Total = Amount + Commission by construction. Whole currency units.
type Payment struct {
	Charged          bool             `json:"charged"`
	Method           PaymentMethod    `json:"method"`
	Amount           int              `json:"amount"`
	Commission       int              `json:"commission"`
	CommissionSource CommissionSource `json:"commission_source"`
	Total            int              `json:"total"`
	Status           PaymentStatus    `json:"status"`
	WalletUsed       string           `json:"wallet_used,omitempty"`
}

// Assignment is the pickup-leg or delivery-leg state of an order. The
// two legs are independent: an order can have its pickup completed
// while the delivery leg is still unassigned.
type Assignment struct {
	State         AssignmentState `json:"state"`
	RouteID       string          `json:"route_id,omitempty"`
	RouteName     string          `json:"route_name,omitempty"`
	DriverUID     string          `json:"driver_uid,omitempty"`
	DriverName    string          `json:"driver_name,omitempty"`
	AssignedAt    time.Time       `json:"assigned_at,omitzero"`
	PendingReason string          `json:"pending_reason,omitempty"`
}

// Visibility controls which roles can see the order. UI collaborator
// concern, persisted with the order but not consulted by the engine.
type Visibility struct {
	PickupDriver   bool `json:"pickup_driver"`
	DeliveryDriver bool `json:"delivery_driver"`
	Admin          bool `json:"admin"`
}

// OrderDates holds the lifecycle timestamps. Created is always set;
// the rest are zero until their event happens.
type OrderDates struct {
	Created           time.Time `json:"created"`
	ScheduledDelivery time.Time `json:"scheduled_delivery"`
	Pickup            time.Time `json:"pickup,omitzero"`
	Delivery          time.Time `json:"delivery,omitzero"`
	Cancellation      time.Time `json:"cancellation,omitzero"`
}

// Order is a single delivery request from a provider to a recipient.
//
// Closed and ClosedAt form the operational cycle state: they are
// mutated only by the closure reconciler's close/reopen transitions,
// never by order creation or edit. Version is a write-only counter;
// it is persisted and incremented on update but never checked.
type Order struct {
	ID         string        `json:"id"`
	Provider   Party         `json:"provider"`
	Recipient  Party         `json:"recipient"`
	Package    Package       `json:"package"`
	Payment    Payment       `json:"payment"`
	Pickup     Assignment    `json:"pickup"`
	Delivery   Assignment    `json:"delivery"`
	Visibility Visibility    `json:"visibility"`
	Closed     bool          `json:"closed"`
	ClosedAt   time.Time     `json:"closed_at,omitzero"`
	Dates      OrderDates    `json:"dates"`
	UpdatedAt  time.Time     `json:"updated_at"`
	Version    int           `json:"version"`
}
