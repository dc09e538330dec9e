package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"courier/internal/domain"
)

// NotificationType represents the type of notification.
type NotificationType string

const (
	NotificationOrderCreated   NotificationType = "ORDER_CREATED"
	NotificationOrderUpdated   NotificationType = "ORDER_UPDATED"
	NotificationDriverAssigned NotificationType = "DRIVER_ASSIGNED"
	NotificationOrderDelivered NotificationType = "ORDER_DELIVERED"
	NotificationOrderCancelled NotificationType = "ORDER_CANCELLED"
	NotificationOrdersClosed   NotificationType = "ORDERS_CLOSED"
	NotificationOrdersReopened NotificationType = "ORDERS_REOPENED"
)

// Notification represents a notification to be sent.
type Notification struct {
	ID          string
	Type        NotificationType
	RecipientID string // user UID, empty for admin broadcasts
	Title       string
	Message     string
	Data        map[string]interface{}
	CreatedAt   time.Time
}

// NotificationService handles notification delivery.
type NotificationService struct {
	// In a real system, this would have:
	// - Push notification client (FCM)
	// - WhatsApp/SMS client for provider updates
	// - WebSocket connections for the dashboard
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// send delivers a notification. Current implementation logs it; the
// delivery channels are external collaborators.
func (s *NotificationService) send(n *Notification) error {
	n.ID = uuid.New().String()
	n.CreatedAt = time.Now()
	log.Printf("[NOTIFICATION] type=%s recipient=%s title=%q message=%q",
		n.Type, n.RecipientID, n.Title, n.Message)
	return nil
}

// NotifyOrderCreated notifies the provider that their order entered
// the system.
func (s *NotificationService) NotifyOrderCreated(ctx context.Context, order *domain.Order) error {
	return s.send(&Notification{
		Type:        NotificationOrderCreated,
		RecipientID: order.Provider.UID,
		Title:       "Pedido registrado",
		Message:     fmt.Sprintf("Order %s created for %s", order.ID, order.Recipient.Name),
		Data: map[string]interface{}{
			"order_id":           order.ID,
			"scheduled_delivery": order.Dates.ScheduledDelivery,
		},
	})
}

// NotifyDriverAssigned notifies a driver of a new leg assignment.
func (s *NotificationService) NotifyDriverAssigned(ctx context.Context, order *domain.Order, leg domain.Leg, driverUID string) error {
	return s.send(&Notification{
		Type:        NotificationDriverAssigned,
		RecipientID: driverUID,
		Title:       "Nueva asignación",
		Message:     fmt.Sprintf("Order %s assigned to you (%s leg)", order.ID, leg),
		Data: map[string]interface{}{
			"order_id": order.ID,
			"leg":      string(leg),
		},
	})
}

// NotifyOrderDelivered notifies the provider their order was delivered.
func (s *NotificationService) NotifyOrderDelivered(ctx context.Context, order *domain.Order) error {
	return s.send(&Notification{
		Type:        NotificationOrderDelivered,
		RecipientID: order.Provider.UID,
		Title:       "Pedido entregado",
		Message:     fmt.Sprintf("Order %s delivered to %s", order.ID, order.Recipient.Name),
		Data:        map[string]interface{}{"order_id": order.ID},
	})
}

// NotifyOrderCancelled notifies the provider their order was cancelled.
func (s *NotificationService) NotifyOrderCancelled(ctx context.Context, order *domain.Order, reason string) error {
	return s.send(&Notification{
		Type:        NotificationOrderCancelled,
		RecipientID: order.Provider.UID,
		Title:       "Pedido anulado",
		Message:     fmt.Sprintf("Order %s cancelled: %s", order.ID, reason),
		Data:        map[string]interface{}{"order_id": order.ID, "reason": reason},
	})
}

// NotifyOrdersClosed records a closure batch for the admin audit trail.
func (s *NotificationService) NotifyOrdersClosed(ctx context.Context, count, totalAmount int) error {
	return s.send(&Notification{
		Type:    NotificationOrdersClosed,
		Title:   "Cierre de operaciones",
		Message: fmt.Sprintf("%d orders closed, total S/ %d", count, totalAmount),
		Data: map[string]interface{}{
			"count":        count,
			"total_amount": totalAmount,
		},
	})
}

// NotifyOrdersReopened records a reopen batch for the admin audit trail.
func (s *NotificationService) NotifyOrdersReopened(ctx context.Context, count int) error {
	return s.send(&Notification{
		Type:    NotificationOrdersReopened,
		Title:   "Reapertura de pedidos",
		Message: fmt.Sprintf("%d orders reopened", count),
		Data:    map[string]interface{}{"count": count},
	})
}
