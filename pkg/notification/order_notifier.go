package notification

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"little-lemon/entities"
	"little-lemon/pkg/user"
)

const (
	RoutingKeyOrderPlaced  = "order.placed"
	RoutingKeyOrderUpdated = "order.updated"
)

type (
	// EventPublisher is satisfied by messaging.Publisher.
	EventPublisher interface {
		Publish(ctx context.Context, routingKey string, message any) error
	}

	MailSender func(toEmail string, subject string, body string) error

	OrderEvent struct {
		OrderID        string           `json:"order_id"`
		UserID         string           `json:"user_id"`
		DeliveryCrewID *string          `json:"delivery_crew_id,omitempty"`
		Status         string           `json:"status"`
		Total          string           `json:"total"`
		Date           string           `json:"date"`
		Items          []OrderEventItem `json:"items,omitempty"`
		OccurredAt     time.Time        `json:"occurred_at"`
	}

	OrderEventItem struct {
		MenuItemID string `json:"menuitem_id"`
		Quantity   int    `json:"quantity"`
		UnitPrice  string `json:"unit_price"`
		Price      string `json:"price"`
	}

	// OrderNotifier fans committed order changes out to the message broker
	// and, for new orders, mails a receipt. Both happen off the request
	// goroutine and failures are only logged.
	OrderNotifier struct {
		publisher      EventPublisher
		sendMail       MailSender
		userRepository user.UserRepository
		dispatch       func(func())
	}
)

// NewOrderNotifier accepts a nil publisher or mailer; the matching channel
// is then skipped.
func NewOrderNotifier(publisher EventPublisher, sendMail MailSender, userRepository user.UserRepository) *OrderNotifier {
	return &OrderNotifier{
		publisher:      publisher,
		sendMail:       sendMail,
		userRepository: userRepository,
		dispatch:       func(fn func()) { go fn() },
	}
}

func (n *OrderNotifier) OrderPlaced(ctx context.Context, order *entities.Order, items []*entities.OrderItem) {
	event := newOrderEvent(order, items)
	ctx = context.WithoutCancel(ctx)

	n.dispatch(func() {
		n.publish(ctx, RoutingKeyOrderPlaced, event)
		n.mailReceipt(ctx, event)
	})
}

func (n *OrderNotifier) OrderUpdated(ctx context.Context, order *entities.Order) {
	event := newOrderEvent(order, nil)
	ctx = context.WithoutCancel(ctx)

	n.dispatch(func() {
		n.publish(ctx, RoutingKeyOrderUpdated, event)
	})
}

func (n *OrderNotifier) publish(ctx context.Context, routingKey string, event OrderEvent) {
	if n.publisher == nil {
		return
	}
	if err := n.publisher.Publish(ctx, routingKey, event); err != nil {
		log.Errorf("failed to publish %s for order %s: %v", routingKey, event.OrderID, err)
	}
}

func (n *OrderNotifier) mailReceipt(ctx context.Context, event OrderEvent) {
	if n.sendMail == nil || n.userRepository == nil {
		return
	}

	u, err := n.userRepository.GetUserByID(ctx, event.UserID)
	if err != nil {
		log.Errorf("failed to load user %s for receipt: %v", event.UserID, err)
		return
	}
	if u.Email == "" {
		return
	}

	subject := fmt.Sprintf("Little Lemon order %s", event.OrderID)
	if err := n.sendMail(u.Email, subject, receiptBody(u.Username, event)); err != nil {
		log.Warnf("failed to send receipt for order %s: %v", event.OrderID, err)
	}
}

func receiptBody(username string, event OrderEvent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>Hi %s, thanks for your order.</p><table>", username)
	for _, item := range event.Items {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d x %s</td><td>%s</td></tr>",
			item.MenuItemID, item.Quantity, item.UnitPrice, item.Price)
	}
	fmt.Fprintf(&b, "</table><p>Total: %s</p>", event.Total)
	return b.String()
}

func newOrderEvent(order *entities.Order, items []*entities.OrderItem) OrderEvent {
	event := OrderEvent{
		OrderID:    order.ID.String(),
		UserID:     order.UserID.String(),
		Status:     order.Status,
		Total:      order.Total.StringFixed(2),
		Date:       order.Date.Format(time.DateOnly),
		OccurredAt: time.Now().UTC(),
	}
	if order.DeliveryCrewID != nil {
		crew := order.DeliveryCrewID.String()
		event.DeliveryCrewID = &crew
	}
	for _, item := range items {
		event.Items = append(event.Items, OrderEventItem{
			MenuItemID: item.MenuItemID.String(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.StringFixed(2),
			Price:      item.Price.StringFixed(2),
		})
	}
	return event
}
