package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"little-lemon/domain"
	"little-lemon/entities"
	"little-lemon/internal/utils"
	"little-lemon/pkg/access"
)

var orderingFields = map[string]string{
	"id":     "id",
	"total":  "total",
	"date":   "date",
	"status": "status",
}

type (
	OrderService interface {
		Checkout(ctx context.Context, p access.Principal) (domain.OrderDetailResponse, error)
		GetOrders(ctx context.Context, p access.Principal, filter domain.OrderFilter) ([]domain.OrderResponse, int64, error)
		GetOrder(ctx context.Context, p access.Principal, id string) (domain.OrderDetailResponse, error)
		UpdateOrder(ctx context.Context, p access.Principal, id string, req domain.UpdateOrderRequest) (domain.OrderResponse, error)
		DeleteOrder(ctx context.Context, p access.Principal, id string) error
	}

	// Notifier is told about committed changes. It must not block.
	Notifier interface {
		OrderPlaced(ctx context.Context, order *entities.Order, items []*entities.OrderItem)
		OrderUpdated(ctx context.Context, order *entities.Order)
	}

	orderService struct {
		orderRepository OrderRepository
		notifier        Notifier
		now             func() time.Time
	}
)

func NewOrderService(orderRepository OrderRepository, notifier Notifier) OrderService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &orderService{
		orderRepository: orderRepository,
		notifier:        notifier,
		now:             time.Now,
	}
}

// Checkout converts the caller's cart into an order. The order row, its
// items and the removal of the cart entries commit together or not at all.
// Checkout is not idempotent: a retried call after a commit places a
// second order from whatever the cart holds by then.
func (s *orderService) Checkout(ctx context.Context, p access.Principal) (domain.OrderDetailResponse, error) {
	if err := access.Authorize(p, access.OpPlaceOrder); err != nil {
		return domain.OrderDetailResponse{}, err
	}

	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return domain.OrderDetailResponse{}, domain.ErrParseUUID
	}

	var (
		order *entities.Order
		items []*entities.OrderItem
	)
	err = s.orderRepository.WithinTransaction(ctx, func(repo OrderRepository) error {
		entries, err := repo.LockCartEntries(ctx, userID.String())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return domain.ErrEmptyCart
		}

		order = &entities.Order{
			ID:     uuid.New(),
			UserID: userID,
			Status: entities.OrderStatusPlaced,
			Total:  CartTotal(entries),
			Date:   dateOf(s.now()),
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrOrderCreation, err)
		}

		items = make([]*entities.OrderItem, 0, len(entries))
		ids := make([]uuid.UUID, 0, len(entries))
		for _, entry := range entries {
			if entry.Quantity <= 0 {
				return fmt.Errorf("%w: non-positive quantity for menu item %s", domain.ErrOrderCreation, entry.MenuItemID)
			}
			exists, err := repo.MenuItemExists(ctx, entry.MenuItemID.String())
			if err != nil {
				return err
			}
			if !exists {
				return domain.ErrOrderItemInvalid
			}
			items = append(items, &entities.OrderItem{
				ID:         uuid.New(),
				OrderID:    order.ID,
				MenuItemID: entry.MenuItemID,
				Quantity:   entry.Quantity,
				UnitPrice:  entry.UnitPrice,
				Price:      entry.Price,
			})
			ids = append(ids, entry.ID)
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrOrderCreation, err)
		}

		deleted, err := repo.DeleteCartEntries(ctx, userID.String(), ids)
		if err != nil {
			return err
		}
		if deleted != int64(len(ids)) {
			return domain.ErrCheckoutConflict
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyCart) {
			log.Errorf("checkout rolled back for user %s: %v", userID, err)
		}
		return domain.OrderDetailResponse{}, err
	}

	s.notifier.OrderPlaced(ctx, order, items)
	return ToOrderDetailResponse(order, items), nil
}

func (s *orderService) GetOrders(ctx context.Context, p access.Principal, filter domain.OrderFilter) ([]domain.OrderResponse, int64, error) {
	if err := access.Authorize(p, access.OpListOrders); err != nil {
		return nil, 0, err
	}

	q := OrderQuery{
		IDPrefix: filter.IDPrefix,
		Page:     utils.Page{PerPage: filter.PerPage, Number: filter.Page},
	}
	switch access.OrderListScope(p) {
	case access.ScopeAssigned:
		q.DeliveryCrewID = p.UserID
	case access.ScopeOwn:
		q.UserID = p.UserID
	default:
		return nil, 0, domain.ErrForbidden
	}

	if filter.ToPrice != "" {
		toPrice, err := decimal.NewFromString(filter.ToPrice)
		if err != nil {
			return nil, 0, domain.NewFieldError("to_price", "A valid number is required.")
		}
		q.ToPrice = &toPrice
	}

	status, err := ParseStatusFilter(filter.Status)
	if err != nil {
		return nil, 0, err
	}
	q.Status = status

	q.Ordering, err = utils.ParseOrdering(filter.Ordering, orderingFields)
	if err != nil {
		return nil, 0, err
	}

	orders, count, err := s.orderRepository.GetOrders(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.OrderResponse, 0, len(orders))
	for _, o := range orders {
		result = append(result, ToOrderResponse(o))
	}
	return result, count, nil
}

// GetOrder is open to every authenticated user regardless of ownership.
func (s *orderService) GetOrder(ctx context.Context, p access.Principal, id string) (domain.OrderDetailResponse, error) {
	if err := access.Authorize(p, access.OpReadOrder); err != nil {
		return domain.OrderDetailResponse{}, err
	}

	if _, err := uuid.Parse(id); err != nil {
		return domain.OrderDetailResponse{}, domain.ErrOrderNotFound
	}
	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.OrderDetailResponse{}, domain.ErrOrderNotFound
		}
		return domain.OrderDetailResponse{}, err
	}
	return ToOrderDetailResponse(order, order.OrderItems), nil
}

func (s *orderService) UpdateOrder(ctx context.Context, p access.Principal, id string, req domain.UpdateOrderRequest) (domain.OrderResponse, error) {
	if err := access.Authorize(p, access.OpUpdateOrder); err != nil {
		return domain.OrderResponse{}, err
	}
	if req.DeliveryCrewID == nil && req.Status == nil {
		return domain.OrderResponse{}, domain.ErrEmptyOrderUpdate
	}
	if req.DeliveryCrewID != nil && !p.IsManager() {
		return domain.OrderResponse{}, domain.ErrForbidden
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.OrderResponse{}, domain.ErrOrderNotFound
	}

	var order *entities.Order
	err := s.orderRepository.WithinTransaction(ctx, func(repo OrderRepository) error {
		var err error
		order, err = repo.LockOrder(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrOrderNotFound
			}
			return err
		}

		if req.DeliveryCrewID != nil {
			crewID, err := uuid.Parse(*req.DeliveryCrewID)
			if err != nil {
				return domain.ErrCrewNotInRole
			}
			isCrew, err := repo.UserHasRole(ctx, crewID.String(), domain.RoleDeliveryCrew)
			if err != nil {
				return err
			}
			if !isCrew {
				return domain.ErrCrewNotInRole
			}
			if order.Status == entities.OrderStatusDelivered {
				return domain.ErrInvalidTransition
			}
			order.DeliveryCrewID = &crewID
		}

		if req.Status != nil {
			if !p.IsManager() && !assignedTo(order, p.UserID) {
				return domain.ErrForbidden
			}
			if err := CanTransition(order, *req.Status); err != nil {
				return err
			}
			order.Status = *req.Status
		}

		order.UpdatedAt = s.now()
		return repo.UpdateOrder(ctx, order)
	})
	if err != nil {
		return domain.OrderResponse{}, err
	}

	s.notifier.OrderUpdated(ctx, order)
	return ToOrderResponse(order), nil
}

func (s *orderService) DeleteOrder(ctx context.Context, p access.Principal, id string) error {
	if err := access.Authorize(p, access.OpDeleteOrder); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrOrderNotFound
	}

	return s.orderRepository.WithinTransaction(ctx, func(repo OrderRepository) error {
		deleted, err := repo.DeleteOrder(ctx, id)
		if err != nil {
			return err
		}
		if deleted == 0 {
			return domain.ErrOrderNotFound
		}
		return nil
	})
}

func assignedTo(order *entities.Order, userID string) bool {
	return order.DeliveryCrewID != nil && order.DeliveryCrewID.String() == userID
}

func CartTotal(entries []*entities.CartEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range entries {
		total = total.Add(entry.Price)
	}
	return total
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ToOrderResponse(order *entities.Order) domain.OrderResponse {
	res := domain.OrderResponse{
		ID:     order.ID.String(),
		UserID: order.UserID.String(),
		Status: order.Status,
		Total:  order.Total.StringFixed(2),
		Date:   order.Date,
	}
	if order.DeliveryCrewID != nil {
		crew := order.DeliveryCrewID.String()
		res.DeliveryCrewID = &crew
	}
	return res
}

func ToOrderDetailResponse(order *entities.Order, items []*entities.OrderItem) domain.OrderDetailResponse {
	res := domain.OrderDetailResponse{
		Order: ToOrderResponse(order),
		Items: make([]domain.OrderItemResponse, 0, len(items)),
	}
	for _, item := range items {
		res.Items = append(res.Items, domain.OrderItemResponse{
			OrderID:    item.OrderID.String(),
			MenuItemID: item.MenuItemID.String(),
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.StringFixed(2),
			Price:      item.Price.StringFixed(2),
		})
	}
	return res
}

type noopNotifier struct{}

func (noopNotifier) OrderPlaced(context.Context, *entities.Order, []*entities.OrderItem) {}

func (noopNotifier) OrderUpdated(context.Context, *entities.Order) {}
