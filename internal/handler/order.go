package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"courier/internal/domain"
	"courier/internal/service"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PartyPayload is the HTTP representation of one side of a delivery.
type PartyPayload struct {
	UID      string `json:"uid,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone"`
	District string `json:"district"`
	Address  string `json:"address"`
}

// AssignmentPayload carries explicit replacement values for one
// assignment leg on an order edit.
type AssignmentPayload struct {
	State         string    `json:"state,omitempty"`
	RouteID       string    `json:"route_id,omitempty"`
	RouteName     string    `json:"route_name,omitempty"`
	DriverUID     string    `json:"driver_uid,omitempty"`
	DriverName    string    `json:"driver_name,omitempty"`
	AssignedAt    time.Time `json:"assigned_at,omitempty"`
	PendingReason string    `json:"pending_reason,omitempty"`
}

// CreateOrderPayload is the HTTP request body for creating an order.
type CreateOrderPayload struct {
	Provider  PartyPayload `json:"provider"`
	Recipient PartyPayload `json:"recipient"`

	Detail       string  `json:"detail"`
	Observations string  `json:"observations,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Length       float64 `json:"length,omitempty"`
	Oversized    bool    `json:"oversized,omitempty"`

	Charged          bool     `json:"charged"`
	PaymentMethod    string   `json:"payment_method,omitempty"`
	AmountToCollect  float64  `json:"amount_to_collect,omitempty"`
	ManualCommission *float64 `json:"manual_commission,omitempty"`

	ScheduledDelivery time.Time `json:"scheduled_delivery"`
}

// UpdateOrderPayload is the HTTP request body for editing an order.
type UpdateOrderPayload struct {
	CreateOrderPayload

	ClearManualCommission bool   `json:"clear_manual_commission,omitempty"`
	PaymentStatus         string `json:"payment_status,omitempty"`
	WalletUsed            string `json:"wallet_used,omitempty"`

	Pickup   *AssignmentPayload    `json:"pickup,omitempty"`
	Delivery *AssignmentPayload    `json:"delivery,omitempty"`
	Photos   *domain.PackagePhotos `json:"photos,omitempty"`
}

// AssignDriverPayload is the HTTP request body for assigning a driver
// to an order leg.
type AssignDriverPayload struct {
	DriverUID string `json:"driver_uid"`
	Leg       string `json:"leg"`
}

// DeliverOrderPayload is the HTTP request body for marking an order
// delivered. An absent date defaults to now.
type DeliverOrderPayload struct {
	DeliveredAt time.Time `json:"delivered_at,omitzero"`
}

// CancelOrderPayload is the HTTP request body for cancelling an order.
type CancelOrderPayload struct {
	Reason      string    `json:"reason,omitempty"`
	CancelledAt time.Time `json:"cancelled_at,omitzero"`
}

// OrderResponse is the full order document plus its derived status.
type OrderResponse struct {
	*domain.Order
	Status domain.OrderStatus `json:"status"`
}

func newOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{Order: order, Status: service.ClassifyOrder(order)}
}

// OrderSummary is the trimmed listing row for the dashboard table.
type OrderSummary struct {
	ID                string             `json:"id"`
	Status            domain.OrderStatus `json:"status"`
	ProviderName      string             `json:"provider_name"`
	RecipientName     string             `json:"recipient_name"`
	ProviderDistrict  string             `json:"provider_district"`
	RecipientDistrict string             `json:"recipient_district"`
	PickupRoute       string             `json:"pickup_route"`
	DeliveryRoute     string             `json:"delivery_route"`
	Charged           bool               `json:"charged"`
	Amount            int                `json:"amount"`
	Commission        int                `json:"commission"`
	Total             int                `json:"total"`
	Closed            bool               `json:"closed"`
	ScheduledDelivery time.Time          `json:"scheduled_delivery,omitzero"`
	CreatedAt         time.Time          `json:"created_at"`
}

func newOrderSummary(order *domain.Order) OrderSummary {
	return OrderSummary{
		ID:                order.ID,
		Status:            service.ClassifyOrder(order),
		ProviderName:      order.Provider.Name,
		RecipientName:     order.Recipient.Name,
		ProviderDistrict:  order.Provider.Address.District,
		RecipientDistrict: order.Recipient.Address.District,
		PickupRoute:       order.Pickup.RouteName,
		DeliveryRoute:     order.Delivery.RouteName,
		Charged:           order.Payment.Charged,
		Amount:            order.Payment.Amount,
		Commission:        order.Payment.Commission,
		Total:             order.Payment.Total,
		Closed:            order.Closed,
		ScheduledDelivery: order.Dates.ScheduledDelivery,
		CreatedAt:         order.Dates.Created,
	}
}

// CreateOrder handles POST /v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), service.CreateOrderRequest{
		Provider:          partyInput(req.Provider),
		Recipient:         partyInput(req.Recipient),
		Detail:            req.Detail,
		Observations:      req.Observations,
		Height:            req.Height,
		Width:             req.Width,
		Length:            req.Length,
		Oversized:         req.Oversized,
		Charged:           req.Charged,
		PaymentMethod:     req.PaymentMethod,
		AmountToCollect:   req.AmountToCollect,
		ManualCommission:  req.ManualCommission,
		ScheduledDelivery: req.ScheduledDelivery,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newOrderResponse(order))
}

// UpdateOrder handles PUT /v1/orders/:id
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req UpdateOrderPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), c.Param("id"), service.UpdateOrderRequest{
		Provider:              partyInput(req.Provider),
		Recipient:             partyInput(req.Recipient),
		Detail:                req.Detail,
		Observations:          req.Observations,
		Height:                req.Height,
		Width:                 req.Width,
		Length:                req.Length,
		Oversized:             req.Oversized,
		Charged:               req.Charged,
		PaymentMethod:         req.PaymentMethod,
		AmountToCollect:       req.AmountToCollect,
		ManualCommission:      req.ManualCommission,
		ClearManualCommission: req.ClearManualCommission,
		PaymentStatus:         req.PaymentStatus,
		WalletUsed:            req.WalletUsed,
		ScheduledDelivery:     req.ScheduledDelivery,
		Pickup:                assignmentInput(req.Pickup),
		Delivery:              assignmentInput(req.Delivery),
		Photos:                req.Photos,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newOrderResponse(order))
}

// GetOrder handles GET /v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newOrderResponse(order))
}

// ListOrders handles GET /v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := service.ListFilter{
		IncludeClosed: c.Query("include_closed") == "true",
		Status:        domain.OrderStatus(c.Query("status")),
		District:      c.Query("district"),
		DriverUID:     c.Query("driver"),
		Search:        c.Query("q"),
	}

	orders, err := h.orderService.ListOrders(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, newOrderSummary(o))
	}

	respondJSON(c, http.StatusOK, summaries)
}

// GetStats handles GET /v1/orders/stats
func (h *OrderHandler) GetStats(c *gin.Context) {
	stats, err := h.orderService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, stats)
}

// AssignDriver handles POST /v1/orders/:id/assign
func (h *OrderHandler) AssignDriver(c *gin.Context) {
	var req AssignDriverPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.AssignDriver(c.Request.Context(), c.Param("id"), req.DriverUID, domain.Leg(req.Leg))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newOrderResponse(order))
}

// DeliverOrder handles POST /v1/orders/:id/deliver
func (h *OrderHandler) DeliverOrder(c *gin.Context) {
	var req DeliverOrderPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	order, err := h.orderService.MarkDelivered(c.Request.Context(), c.Param("id"), req.DeliveredAt)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newOrderResponse(order))
}

// CancelOrder handles POST /v1/orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var req CancelOrderPayload
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
			return
		}
	}

	order, err := h.orderService.MarkCancelled(c.Request.Context(), c.Param("id"), req.Reason, req.CancelledAt)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newOrderResponse(order))
}

func partyInput(p PartyPayload) service.PartyInput {
	return service.PartyInput{
		UID:      p.UID,
		Name:     p.Name,
		Email:    p.Email,
		Phone:    p.Phone,
		District: p.District,
		Address:  p.Address,
	}
}

func assignmentInput(p *AssignmentPayload) *service.AssignmentInput {
	if p == nil {
		return nil
	}
	return &service.AssignmentInput{
		State:         p.State,
		RouteID:       p.RouteID,
		RouteName:     p.RouteName,
		DriverUID:     p.DriverUID,
		DriverName:    p.DriverName,
		AssignedAt:    p.AssignedAt,
		PendingReason: p.PendingReason,
	}
}
