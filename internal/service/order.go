package service

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"time"
	"unicode"

	"courier/internal/domain"
	redisx "courier/internal/redis"
	"courier/internal/repository"
)

const (
	// placeholderPhone replaces any phone number that does not
	// normalize to a valid local number. Order creation never fails on
	// a bad phone number.
	placeholderPhone = "900000009"

	// countryCallingCode is stripped from the front of phone numbers
	// before local-number validation.
	countryCallingCode = "51"

	// Route-name placeholders for legs whose district belongs to no
	// zone group and therefore needs manual assignment.
	routePlaceholderPickup   = "Asignar Recojo"
	routePlaceholderDelivery = "Asignar Entrega"

	// pendingManualReason populates the "why still pending" field of an
	// unrouted assignment leg.
	pendingManualReason = "Pendiente de asignación manual"
)

var (
	reNonPrintable = regexp.MustCompile(`[^\x20-\x7E]`)
	rePhoneStrip   = regexp.MustCompile(`[\s+-]`)
	reLocalPhone   = regexp.MustCompile(`^\d{9}$`)
	reNamePunct    = regexp.MustCompile(`[.,]`)
	reNameSpecial  = regexp.MustCompile(`[^\p{L}\s]`)
)

// OrderConfig contains the operational rules applied at order build
// time.
type OrderConfig struct {
	// CutoffHour is the hour of day (0-23) at and after which a
	// same-day delivery request is pushed to the next calendar day.
	CutoffHour int
}

// DefaultOrderConfig returns the production order configuration.
func DefaultOrderConfig() OrderConfig {
	return OrderConfig{CutoffHour: 14}
}

// OrderService assembles, edits and queries orders. It owns all order
// mutations except the closed flag, which only the closure service
// touches.
type OrderService struct {
	orderRepo           repository.OrderRepository
	userRepo            repository.UserRepository
	geocoder            GeocoderInterface
	pricing             *PricingService
	zones               *ZoneMap
	notificationService *NotificationService
	cache               redisx.CacheStoreInterface
	config              OrderConfig

	// Now returns the current time. Overridable in tests for the
	// cutoff-hour rule.
	Now func() time.Time
}

// NewOrderService creates a new OrderService.
func NewOrderService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	geocoder GeocoderInterface,
	pricing *PricingService,
	zones *ZoneMap,
	notificationService *NotificationService,
	cache redisx.CacheStoreInterface,
	config OrderConfig,
) *OrderService {
	return &OrderService{
		orderRepo:           orderRepo,
		userRepo:            userRepo,
		geocoder:            geocoder,
		pricing:             pricing,
		zones:               zones,
		notificationService: notificationService,
		cache:               cache,
		config:              config,
		Now:                 time.Now,
	}
}

// PartyInput is the raw form input for one side of a delivery.
type PartyInput struct {
	UID      string
	Name     string
	Email    string
	Phone    string
	District string
	Address  string
}

// CreateOrderRequest contains the raw form input for building an
// order.
type CreateOrderRequest struct {
	Provider  PartyInput
	Recipient PartyInput

	Detail       string
	Observations string
	Height       float64
	Width        float64
	Length       float64
	Oversized    bool

	Charged          bool
	PaymentMethod    string
	AmountToCollect  float64
	ManualCommission *float64

	ScheduledDelivery time.Time
}

// AssignmentInput carries explicit replacement values for one
// assignment leg on an order edit. Empty fields keep the stored value.
type AssignmentInput struct {
	State         string
	RouteID       string
	RouteName     string
	DriverUID     string
	DriverName    string
	AssignedAt    time.Time
	PendingReason string
}

// UpdateOrderRequest contains the form input for editing an order. It
// reuses the creation rules; fields absent from the payload keep their
// stored values, and the closed flag is never touched here.
type UpdateOrderRequest struct {
	Provider  PartyInput
	Recipient PartyInput

	Detail       string
	Observations string
	Height       float64
	Width        float64
	Length       float64
	Oversized    bool

	Charged          bool
	PaymentMethod    string
	AmountToCollect  float64
	ManualCommission *float64

	// ClearManualCommission returns a manually priced order to
	// automatic computation. Without it, a stored manual commission
	// survives edits that carry no new manual amount.
	ClearManualCommission bool

	PaymentStatus string
	WalletUsed    string

	ScheduledDelivery time.Time

	Pickup   *AssignmentInput
	Delivery *AssignmentInput

	Photos *domain.PackagePhotos
}

// CreateOrder validates the form input, assembles a complete order and
// persists it. The order starts pending, not closed, with both
// assignment legs pending.
func (s *OrderService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*domain.Order, error) {
	if err := validateOrderInput(orderInput(req)); err != nil {
		return nil, err
	}

	now := s.Now()
	scheduled := s.applyCutoff(now, req.ScheduledDelivery)

	providerCoords := s.geocoder.Resolve(ctx, req.Provider.Address)
	recipientCoords := s.geocoder.Resolve(ctx, req.Recipient.Address)

	commission, source, err := s.resolveCommission(req.ManualCommission, req.Recipient.District, req.Oversized)
	if err != nil {
		return nil, err
	}

	method := domain.PaymentMethodAskCustomer
	totalCharged := 0.0
	if req.Charged {
		method, _ = ValidatePaymentMethod(req.PaymentMethod)
		totalCharged = req.AmountToCollect
	}
	breakdown := s.pricing.Breakdown(totalCharged, float64(commission))

	order := &domain.Order{
		ID: newOrderID(now),
		Provider: domain.Party{
			UID:   req.Provider.UID,
			Name:  strings.ToUpper(CleanName(req.Provider.Name)),
			Email: req.Provider.Email,
			Phone: NormalizePhone(req.Provider.Phone),
			Address: domain.Address{
				Link:        req.Provider.Address,
				District:    req.Provider.District,
				Coordinates: providerCoords,
			},
		},
		Recipient: domain.Party{
			Name:  TitleCaseName(CleanName(req.Recipient.Name)),
			Phone: NormalizePhone(req.Recipient.Phone),
			Address: domain.Address{
				Link:        req.Recipient.Address,
				District:    req.Recipient.District,
				Coordinates: recipientCoords,
			},
		},
		Package: domain.Package{
			Detail:       TitleCaseName(req.Detail),
			Observations: req.Observations,
			Dimensions:   buildDimensions(req.Height, req.Width, req.Length),
			Oversized:    req.Oversized,
		},
		Payment: domain.Payment{
			Charged:          req.Charged,
			Method:           method,
			Amount:           breakdown.ProviderPayout,
			Commission:       breakdown.Commission,
			CommissionSource: source,
			Total:            breakdown.TotalCharged,
			Status:           domain.PaymentStatusPending,
		},
		Pickup:   s.defaultAssignment(req.Provider.District, domain.LegPickup),
		Delivery: s.defaultAssignment(req.Recipient.District, domain.LegDelivery),
		Visibility: domain.Visibility{
			PickupDriver:   false,
			DeliveryDriver: false,
			Admin:          true,
		},
		Dates: domain.OrderDates{
			Created:           now,
			ScheduledDelivery: scheduled,
		},
		UpdatedAt: now,
		Version:   1,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	if flags := DataQualityFlags(order); len(flags) > 0 {
		log.Printf("order %s created with data quality flags: %v", order.ID, flags)
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyOrderCreated(ctx, order)
	}
	s.invalidateCaches(ctx, order.ID)

	return order, nil
}

// UpdateOrder re-validates and re-derives an existing order from the
// edit payload. Creation date, closure state and assignment legs are
// preserved unless the payload explicitly replaces them.
func (s *OrderService) UpdateOrder(ctx context.Context, id string, req UpdateOrderRequest) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidOrderID
	}

	existing, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := validateOrderInput(orderInput{
		Provider: req.Provider, Recipient: req.Recipient,
		Detail: req.Detail, Charged: req.Charged,
		PaymentMethod: req.PaymentMethod, AmountToCollect: req.AmountToCollect,
		ScheduledDelivery: req.ScheduledDelivery,
	}); err != nil {
		return nil, err
	}

	now := s.Now()

	providerCoords := s.geocoder.Resolve(ctx, req.Provider.Address)
	recipientCoords := s.geocoder.Resolve(ctx, req.Recipient.Address)

	commission, source, err := s.resolveUpdatedCommission(existing, &req)
	if err != nil {
		return nil, err
	}

	method := domain.PaymentMethodAskCustomer
	totalCharged := 0.0
	if req.Charged {
		method, _ = ValidatePaymentMethod(req.PaymentMethod)
		totalCharged = req.AmountToCollect
	}
	breakdown := s.pricing.Breakdown(totalCharged, float64(commission))

	paymentStatus := existing.Payment.Status
	if req.PaymentStatus != "" {
		paymentStatus, err = ValidatePaymentStatus(req.PaymentStatus)
		if err != nil {
			return nil, err
		}
	}

	updated := *existing

	updated.Provider = domain.Party{
		UID:   firstNonEmpty(req.Provider.UID, existing.Provider.UID),
		Name:  strings.ToUpper(CleanName(req.Provider.Name)),
		Email: req.Provider.Email,
		Phone: NormalizePhone(req.Provider.Phone),
		Address: domain.Address{
			Link:        req.Provider.Address,
			District:    req.Provider.District,
			Coordinates: providerCoords,
		},
	}
	updated.Recipient = domain.Party{
		Name:  TitleCaseName(CleanName(req.Recipient.Name)),
		Phone: NormalizePhone(req.Recipient.Phone),
		Address: domain.Address{
			Link:        req.Recipient.Address,
			District:    req.Recipient.District,
			Coordinates: recipientCoords,
		},
	}

	updated.Package.Detail = TitleCaseName(req.Detail)
	updated.Package.Observations = req.Observations
	updated.Package.Dimensions = buildDimensions(req.Height, req.Width, req.Length)
	updated.Package.Oversized = req.Oversized
	if req.Photos != nil {
		updated.Package.Photos = *req.Photos
	}

	updated.Payment = domain.Payment{
		Charged:          req.Charged,
		Method:           method,
		Amount:           breakdown.ProviderPayout,
		Commission:       breakdown.Commission,
		CommissionSource: source,
		Total:            breakdown.TotalCharged,
		Status:           paymentStatus,
		WalletUsed:       firstNonEmpty(req.WalletUsed, existing.Payment.WalletUsed),
	}

	updated.Pickup, err = s.mergeAssignment(existing.Pickup, req.Pickup, req.Provider.District, domain.LegPickup)
	if err != nil {
		return nil, err
	}
	updated.Delivery, err = s.mergeAssignment(existing.Delivery, req.Delivery, req.Recipient.District, domain.LegDelivery)
	if err != nil {
		return nil, err
	}

	updated.Dates.ScheduledDelivery = req.ScheduledDelivery
	updated.UpdatedAt = now
	updated.Version = existing.Version + 1

	if err := s.orderRepo.Update(ctx, &updated); err != nil {
		return nil, err
	}

	if flags := DataQualityFlags(&updated); len(flags) > 0 {
		log.Printf("order %s updated with data quality flags: %v", updated.ID, flags)
	}
	s.invalidateCaches(ctx, updated.ID)

	return &updated, nil
}

// AssignDriver assigns a driver profile to one leg of an order.
func (s *OrderService) AssignDriver(ctx context.Context, orderID, driverUID string, leg domain.Leg) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	if driverUID == "" {
		return nil, ErrInvalidUserID
	}
	if leg != domain.LegPickup && leg != domain.LegDelivery {
		return nil, ErrInvalidLeg
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	driver, err := s.userRepo.GetByUID(ctx, driverUID)
	if err != nil {
		return nil, err
	}
	if driver.Role != domain.RoleDriver {
		return nil, ErrNotADriver
	}

	now := s.Now()

	assignment := &order.Pickup
	if leg == domain.LegDelivery {
		assignment = &order.Delivery
	}

	assignment.State = domain.AssignmentStateAssigned
	assignment.DriverUID = driver.UID
	assignment.DriverName = driver.FullName()
	assignment.AssignedAt = now
	assignment.PendingReason = ""
	if driver.Route != domain.ZoneGroupNone {
		assignment.RouteName = string(driver.Route)
	}

	if leg == domain.LegPickup {
		order.Visibility.PickupDriver = true
	} else {
		order.Visibility.DeliveryDriver = true
	}

	order.UpdatedAt = now
	order.Version++

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyDriverAssigned(ctx, order, leg, driver.UID)
	}
	s.invalidateCaches(ctx, order.ID)

	return order, nil
}

// MarkDelivered records the actual delivery date. The classifier
// derives DELIVERED from this date on every subsequent read.
func (s *OrderService) MarkDelivered(ctx context.Context, orderID string, at time.Time) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Dates.Delivery.IsZero() {
		return nil, ErrOrderAlreadyDelivered
	}

	now := s.Now()
	if at.IsZero() {
		at = now
	}

	order.Dates.Delivery = at
	order.Delivery.State = domain.AssignmentStateCompleted
	order.UpdatedAt = now
	order.Version++

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if flags := DataQualityFlags(order); len(flags) > 0 {
		log.Printf("order %s delivered with data quality flags: %v", order.ID, flags)
	}
	if s.notificationService != nil {
		_ = s.notificationService.NotifyOrderDelivered(ctx, order)
	}
	s.invalidateCaches(ctx, order.ID)

	return order, nil
}

// MarkCancelled records the cancellation date.
func (s *OrderService) MarkCancelled(ctx context.Context, orderID, reason string, at time.Time) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Dates.Cancellation.IsZero() {
		return nil, ErrOrderAlreadyCancelled
	}

	now := s.Now()
	if at.IsZero() {
		at = now
	}

	order.Dates.Cancellation = at
	order.UpdatedAt = now
	order.Version++

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	if s.notificationService != nil {
		_ = s.notificationService.NotifyOrderCancelled(ctx, order, reason)
	}
	s.invalidateCaches(ctx, order.ID)

	return order, nil
}

// GetOrder retrieves a single order, consulting the cache first.
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}

	if s.cache != nil {
		if cached, err := s.cache.GetOrder(ctx, orderID); err == nil && cached != nil {
			return cached, nil
		}
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.SetOrder(ctx, order)
	}

	return order, nil
}

// ListFilter narrows an order listing. The zero value lists all
// active (non-closed) orders.
type ListFilter struct {
	IncludeClosed bool
	Status        domain.OrderStatus
	District      string
	DriverUID     string
	Search        string
}

// ListOrders retrieves orders newest first, applying the filter.
// Closed orders never appear unless IncludeClosed is set.
func (s *OrderService) ListOrders(ctx context.Context, filter ListFilter) ([]*domain.Order, error) {
	orders, err := s.orderRepo.List(ctx, filter.IncludeClosed)
	if err != nil {
		return nil, err
	}

	filtered := orders[:0]
	for _, o := range orders {
		if filter.Status != "" && ClassifyOrder(o) != filter.Status {
			continue
		}
		if filter.District != "" &&
			o.Provider.Address.District != filter.District &&
			o.Recipient.Address.District != filter.District {
			continue
		}
		if filter.DriverUID != "" &&
			o.Pickup.DriverUID != filter.DriverUID &&
			o.Delivery.DriverUID != filter.DriverUID {
			continue
		}
		if filter.Search != "" && !matchesSearch(o, filter.Search) {
			continue
		}
		filtered = append(filtered, o)
	}

	return filtered, nil
}

// Stats computes the dashboard rollup over active orders.
func (s *OrderService) Stats(ctx context.Context) (*redisx.OrderStats, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetStats(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	orders, err := s.orderRepo.List(ctx, false)
	if err != nil {
		return nil, err
	}

	stats := &redisx.OrderStats{Total: len(orders)}
	for _, o := range orders {
		switch ClassifyOrder(o) {
		case domain.OrderStatusPending:
			stats.Pending++
		case domain.OrderStatusInProgress:
			stats.InProgress++
		case domain.OrderStatusDelivered:
			stats.Delivered++
		case domain.OrderStatusCancelled:
			stats.Cancelled++
		}
		stats.TotalAmount += o.Payment.Total
	}

	if s.cache != nil {
		_ = s.cache.SetStats(ctx, stats)
	}

	return stats, nil
}

// orderInput is the common validated subset of create and update
// payloads.
type orderInput struct {
	Provider  PartyInput
	Recipient PartyInput

	Detail       string
	Observations string
	Height       float64
	Width        float64
	Length       float64
	Oversized    bool

	Charged          bool
	PaymentMethod    string
	AmountToCollect  float64
	ManualCommission *float64

	ScheduledDelivery time.Time
}

// validateOrderInput enforces the boundary validation rules. It is
// applied once, at build/edit time; reads assume a validated order.
func validateOrderInput(in orderInput) error {
	required := []struct {
		field string
		value string
	}{
		{"provider_name", in.Provider.Name},
		{"provider_phone", in.Provider.Phone},
		{"provider_district", in.Provider.District},
		{"provider_address", in.Provider.Address},
		{"recipient_name", in.Recipient.Name},
		{"recipient_phone", in.Recipient.Phone},
		{"recipient_district", in.Recipient.District},
		{"recipient_address", in.Recipient.Address},
		{"detail", in.Detail},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return newValidationError(r.field, "required")
		}
	}

	if in.ScheduledDelivery.IsZero() {
		return newValidationError("scheduled_delivery", "required")
	}

	if in.Charged {
		if in.AmountToCollect <= 0 {
			return newValidationError("amount_to_collect", "must be a positive amount")
		}
		if _, err := ValidatePaymentMethod(in.PaymentMethod); err != nil {
			return newValidationError("payment_method", "must be one of the enumerated methods")
		}
	}

	return nil
}

// ValidatePaymentMethod validates a payment method string.
func ValidatePaymentMethod(method string) (domain.PaymentMethod, error) {
	switch domain.PaymentMethod(method) {
	case domain.PaymentMethodYape, domain.PaymentMethodPlin,
		domain.PaymentMethodCash, domain.PaymentMethodPaymentLink,
		domain.PaymentMethodBankTransfer, domain.PaymentMethodAskCustomer:
		return domain.PaymentMethod(method), nil
	default:
		return "", ErrInvalidPaymentMethod
	}
}

// ValidatePaymentStatus validates a payment status string.
func ValidatePaymentStatus(status string) (domain.PaymentStatus, error) {
	switch domain.PaymentStatus(status) {
	case domain.PaymentStatusPending, domain.PaymentStatusPaid:
		return domain.PaymentStatus(status), nil
	default:
		return "", newValidationError("payment_status", "must be PENDING or PAID")
	}
}

// resolveCommission picks the manual override when present, otherwise
// computes the commission from district and package size. The stored
// record keeps the final amount plus its source, never both values.
func (s *OrderService) resolveCommission(manual *float64, district string, oversized bool) (int, domain.CommissionSource, error) {
	if manual != nil {
		if *manual < 0 {
			return 0, "", newValidationError("manual_commission", "must not be negative")
		}
		return RoundAmount(*manual), domain.CommissionSourceManual, nil
	}
	return s.pricing.CommissionFor(district, oversized), domain.CommissionSourceAuto, nil
}

// resolveUpdatedCommission applies the edit rules: a new manual amount
// wins; absent that, a stored manual commission survives unless the
// edit explicitly clears it back to automatic.
func (s *OrderService) resolveUpdatedCommission(existing *domain.Order, req *UpdateOrderRequest) (int, domain.CommissionSource, error) {
	if req.ManualCommission != nil {
		return s.resolveCommission(req.ManualCommission, req.Recipient.District, req.Oversized)
	}

	if !req.ClearManualCommission && existing.Payment.CommissionSource == domain.CommissionSourceManual {
		return existing.Payment.Commission, domain.CommissionSourceManual, nil
	}

	return s.pricing.CommissionFor(req.Recipient.District, req.Oversized), domain.CommissionSourceAuto, nil
}

// defaultAssignment builds the initial assignment leg for a district:
// routed to its zone group, or parked behind a manual-assignment
// placeholder when the district belongs to no group.
func (s *OrderService) defaultAssignment(district string, leg domain.Leg) domain.Assignment {
	placeholder := routePlaceholderPickup
	if leg == domain.LegDelivery {
		placeholder = routePlaceholderDelivery
	}

	assignment := domain.Assignment{State: domain.AssignmentStatePending}
	if group := s.zones.Group(district); group != domain.ZoneGroupNone {
		assignment.RouteName = string(group)
	} else {
		assignment.RouteName = placeholder
		assignment.PendingReason = pendingManualReason
	}
	return assignment
}

// mergeAssignment resolves one leg on an edit: explicit input replaces
// the stored leg field by field; with no input, an untouched pending
// leg is re-routed from the (possibly changed) district and anything
// already assigned is preserved as-is.
func (s *OrderService) mergeAssignment(existing domain.Assignment, in *AssignmentInput, district string, leg domain.Leg) (domain.Assignment, error) {
	if in == nil {
		if existing.DriverUID == "" && existing.State == domain.AssignmentStatePending {
			return s.defaultAssignment(district, leg), nil
		}
		return existing, nil
	}

	merged := existing
	if in.State != "" {
		state, err := parseAssignmentState(in.State)
		if err != nil {
			return domain.Assignment{}, err
		}
		merged.State = state
	}
	if in.RouteID != "" {
		merged.RouteID = in.RouteID
	}
	if in.RouteName != "" {
		merged.RouteName = in.RouteName
	}
	if in.DriverUID != "" {
		merged.DriverUID = in.DriverUID
	}
	if in.DriverName != "" {
		merged.DriverName = in.DriverName
	}
	if !in.AssignedAt.IsZero() {
		merged.AssignedAt = in.AssignedAt
	}
	if in.PendingReason != "" {
		merged.PendingReason = in.PendingReason
	}
	return merged, nil
}

// parseAssignmentState validates an assignment state string.
func parseAssignmentState(state string) (domain.AssignmentState, error) {
	switch domain.AssignmentState(state) {
	case domain.AssignmentStatePending, domain.AssignmentStateAssigned,
		domain.AssignmentStateEnRoute, domain.AssignmentStateCompleted:
		return domain.AssignmentState(state), nil
	default:
		return "", newValidationError("assignment_state", "unknown state "+state)
	}
}

// applyCutoff pushes a same-day (or overdue) delivery request to the
// next calendar day when the order is created at or after the cutoff
// hour. Orders created earlier keep their requested date.
func (s *OrderService) applyCutoff(now, requested time.Time) time.Time {
	if now.Hour() < s.config.CutoffHour {
		return requested
	}

	if !startOfDay(requested).After(startOfDay(now)) {
		return requested.AddDate(0, 0, 1)
	}
	return requested
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// newOrderID generates the order document ID: creation timestamp plus
// a 6-digit random suffix, DD-MM-YYYY-HHMMSS-RRRRRR. Sortable by
// creation time within a day and legible on a packing label.
func newOrderID(t time.Time) string {
	return fmt.Sprintf("%s-%d", t.Format("02-01-2006-150405"), rand.Intn(900000)+100000)
}

// NormalizePhone strips non-printable characters, whitespace, hyphens,
// a leading plus and the country calling code, then requires a 9-digit
// local number. Anything else becomes the sentinel placeholder: a bad
// phone number must never block order creation.
func NormalizePhone(phone string) string {
	cleaned := reNonPrintable.ReplaceAllString(phone, "")
	cleaned = rePhoneStrip.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimPrefix(cleaned, countryCallingCode)

	if reLocalPhone.MatchString(cleaned) {
		return cleaned
	}
	return placeholderPhone
}

// CleanName strips everything but letters and whitespace.
func CleanName(name string) string {
	return strings.TrimSpace(reNameSpecial.ReplaceAllString(name, ""))
}

// TitleCaseName strips punctuation and upper-cases the first letter of
// each word.
func TitleCaseName(name string) string {
	name = reNamePunct.ReplaceAllString(name, "")
	words := strings.Fields(name)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// buildDimensions derives the volume when all three measurements are
// present and positive; otherwise the volume stays unset.
func buildDimensions(height, width, length float64) domain.Dimensions {
	d := domain.Dimensions{Height: height, Width: width, Length: length}
	if height > 0 && width > 0 && length > 0 {
		d.Volume = height * width * length
	}
	return d
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// matchesSearch reports whether the search term appears in the order's
// ID, party names or districts.
func matchesSearch(o *domain.Order, term string) bool {
	term = strings.ToLower(term)
	for _, candidate := range []string{
		o.ID,
		o.Provider.Name,
		o.Recipient.Name,
		o.Provider.Address.District,
		o.Recipient.Address.District,
	} {
		if strings.Contains(strings.ToLower(candidate), term) {
			return true
		}
	}
	return false
}

// invalidateCaches drops the cached order document and stats rollup
// after any mutation.
func (s *OrderService) invalidateCaches(ctx context.Context, orderID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateOrder(ctx, orderID)
	_ = s.cache.InvalidateStats(ctx)
}
