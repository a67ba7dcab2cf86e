package order

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"little-lemon/entities"
	"little-lemon/internal/utils"
)

type (
	OrderQuery struct {
		UserID         string
		DeliveryCrewID string
		ToPrice        *decimal.Decimal
		IDPrefix       string
		Status         string
		Ordering       []string
		Page           utils.Page
	}

	OrderRepository interface {
		// WithinTransaction runs fn against a repository bound to a single
		// read-committed transaction. fn returning an error rolls back.
		WithinTransaction(ctx context.Context, fn func(repo OrderRepository) error) error

		// Checkout
		LockCartEntries(ctx context.Context, userID string) ([]*entities.CartEntry, error)
		MenuItemExists(ctx context.Context, menuItemID string) (bool, error)
		CreateOrder(ctx context.Context, order *entities.Order) error
		CreateOrderItems(ctx context.Context, items []*entities.OrderItem) error
		DeleteCartEntries(ctx context.Context, userID string, ids []uuid.UUID) (int64, error)

		// Orders
		GetOrders(ctx context.Context, q OrderQuery) ([]*entities.Order, int64, error)
		GetOrderByID(ctx context.Context, id string) (*entities.Order, error)
		LockOrder(ctx context.Context, id string) (*entities.Order, error)
		UpdateOrder(ctx context.Context, order *entities.Order) error
		DeleteOrder(ctx context.Context, id string) (int64, error)
		UserHasRole(ctx context.Context, userID, role string) (bool, error)
	}

	orderRepository struct {
		db *gorm.DB
	}
)

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) WithinTransaction(ctx context.Context, fn func(repo OrderRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&orderRepository{db: tx})
	}, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
}

// LockCartEntries takes row locks on the user's cart. A concurrent checkout
// of the same cart blocks here and, once the first one commits, sees the
// deleted rows as gone.
func (r *orderRepository) LockCartEntries(ctx context.Context, userID string) ([]*entities.CartEntry, error) {
	var entries []*entities.CartEntry
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *orderRepository) MenuItemExists(ctx context.Context, menuItemID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.MenuItem{}).
		Where("id = ?", menuItemID).
		Count(&count).Error
	return count > 0, err
}

func (r *orderRepository) CreateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(order).Error
}

func (r *orderRepository) CreateOrderItems(ctx context.Context, items []*entities.OrderItem) error {
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *orderRepository) DeleteCartEntries(ctx context.Context, userID string, ids []uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND id IN ?", userID, ids).
		Delete(&entities.CartEntry{})
	return res.RowsAffected, res.Error
}

func (r *orderRepository) GetOrders(ctx context.Context, q OrderQuery) ([]*entities.Order, int64, error) {
	var orders []*entities.Order
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.Order{})

	if q.UserID != "" {
		query = query.Where("user_id = ?", q.UserID)
	}
	if q.DeliveryCrewID != "" {
		query = query.Where("delivery_crew_id = ?", q.DeliveryCrewID)
	}
	if q.ToPrice != nil {
		query = query.Where("total <= ?", *q.ToPrice)
	}
	if q.IDPrefix != "" {
		query = query.Where("CAST(id AS TEXT) ILIKE ?", utils.EscapeLike(q.IDPrefix)+"%")
	}
	if q.Status != "" {
		query = query.Where("status = ?", q.Status)
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	for _, o := range q.Ordering {
		query = query.Order(o)
	}
	if len(q.Ordering) == 0 {
		query = query.Order("created_at ASC")
	}

	if err := query.Scopes(utils.Paginate(q.Page)).Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, count, nil
}

func (r *orderRepository) GetOrderByID(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) LockOrder(ctx context.Context, id string) (*entities.Order, error) {
	var order entities.Order
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) UpdateOrder(ctx context.Context, order *entities.Order) error {
	return r.db.WithContext(ctx).
		Model(order).
		Select("delivery_crew_id", "status", "updated_at").
		Updates(order).Error
}

// DeleteOrder removes the order's items and then the order. Callers run it
// inside WithinTransaction so the pair is atomic.
func (r *orderRepository) DeleteOrder(ctx context.Context, id string) (int64, error) {
	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&entities.OrderItem{}).Error; err != nil {
		return 0, err
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Order{})
	return res.RowsAffected, res.Error
}

func (r *orderRepository) UserHasRole(ctx context.Context, userID, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	return count > 0, err
}
