package order

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"little-lemon/entities"
)

// store is the state behind fakeOrderRepository. Transactions work on a
// copy that replaces the committed store only when fn succeeds.
type store struct {
	cart       []*entities.CartEntry
	menuItems  map[uuid.UUID]bool
	orders     map[uuid.UUID]*entities.Order
	orderItems map[uuid.UUID][]*entities.OrderItem
	roles      map[string]map[string]bool
}

func newStore() *store {
	return &store{
		menuItems:  map[uuid.UUID]bool{},
		orders:     map[uuid.UUID]*entities.Order{},
		orderItems: map[uuid.UUID][]*entities.OrderItem{},
		roles:      map[string]map[string]bool{},
	}
}

func (s *store) clone() *store {
	c := newStore()
	for _, e := range s.cart {
		copied := *e
		c.cart = append(c.cart, &copied)
	}
	for k, v := range s.menuItems {
		c.menuItems[k] = v
	}
	for k, v := range s.orders {
		copied := *v
		c.orders[k] = &copied
	}
	for k, v := range s.orderItems {
		c.orderItems[k] = append([]*entities.OrderItem(nil), v...)
	}
	for k, v := range s.roles {
		c.roles[k] = map[string]bool{}
		for r := range v {
			c.roles[k][r] = true
		}
	}
	return c
}

type fakeOrderRepository struct {
	mu    *sync.Mutex
	state *store

	// tx is set on the repository handed to WithinTransaction callbacks.
	tx *store

	failCreateItems error
}

func newFakeOrderRepository() *fakeOrderRepository {
	return &fakeOrderRepository{mu: &sync.Mutex{}, state: newStore()}
}

func (f *fakeOrderRepository) current() *store {
	if f.tx != nil {
		return f.tx
	}
	return f.state
}

func (f *fakeOrderRepository) WithinTransaction(_ context.Context, fn func(repo OrderRepository) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	work := f.state.clone()
	txRepo := &fakeOrderRepository{mu: f.mu, state: f.state, tx: work, failCreateItems: f.failCreateItems}
	if err := fn(txRepo); err != nil {
		return err
	}
	f.state = work
	return nil
}

func (f *fakeOrderRepository) LockCartEntries(_ context.Context, userID string) ([]*entities.CartEntry, error) {
	var out []*entities.CartEntry
	for _, e := range f.current().cart {
		if e.UserID.String() == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeOrderRepository) MenuItemExists(_ context.Context, menuItemID string) (bool, error) {
	return f.current().menuItems[uuid.MustParse(menuItemID)], nil
}

func (f *fakeOrderRepository) CreateOrder(_ context.Context, order *entities.Order) error {
	copied := *order
	f.current().orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepository) CreateOrderItems(_ context.Context, items []*entities.OrderItem) error {
	if f.failCreateItems != nil {
		return f.failCreateItems
	}
	for _, item := range items {
		f.current().orderItems[item.OrderID] = append(f.current().orderItems[item.OrderID], item)
	}
	return nil
}

func (f *fakeOrderRepository) DeleteCartEntries(_ context.Context, userID string, ids []uuid.UUID) (int64, error) {
	want := map[uuid.UUID]bool{}
	for _, id := range ids {
		want[id] = true
	}
	var kept []*entities.CartEntry
	var n int64
	for _, e := range f.current().cart {
		if e.UserID.String() == userID && want[e.ID] {
			n++
			continue
		}
		kept = append(kept, e)
	}
	f.current().cart = kept
	return n, nil
}

func (f *fakeOrderRepository) GetOrders(_ context.Context, q OrderQuery) ([]*entities.Order, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*entities.Order
	for _, o := range f.state.orders {
		if q.UserID != "" && o.UserID.String() != q.UserID {
			continue
		}
		if q.DeliveryCrewID != "" && (o.DeliveryCrewID == nil || o.DeliveryCrewID.String() != q.DeliveryCrewID) {
			continue
		}
		if q.ToPrice != nil && o.Total.GreaterThan(*q.ToPrice) {
			continue
		}
		if q.IDPrefix != "" && !strings.HasPrefix(o.ID.String(), strings.ToLower(q.IDPrefix)) {
			continue
		}
		if q.Status != "" && o.Status != q.Status {
			continue
		}
		copied := *o
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Total.LessThan(out[j].Total) })
	return out, int64(len(out)), nil
}

func (f *fakeOrderRepository) GetOrderByID(_ context.Context, id string) (*entities.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	o, ok := f.state.orders[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *o
	copied.OrderItems = f.state.orderItems[o.ID]
	return &copied, nil
}

func (f *fakeOrderRepository) LockOrder(_ context.Context, id string) (*entities.Order, error) {
	o, ok := f.current().orders[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepository) UpdateOrder(_ context.Context, order *entities.Order) error {
	if _, ok := f.current().orders[order.ID]; !ok {
		return errors.New("update of missing order")
	}
	copied := *order
	f.current().orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderRepository) DeleteOrder(_ context.Context, id string) (int64, error) {
	oid := uuid.MustParse(id)
	delete(f.current().orderItems, oid)
	if _, ok := f.current().orders[oid]; !ok {
		return 0, nil
	}
	delete(f.current().orders, oid)
	return 1, nil
}

func (f *fakeOrderRepository) UserHasRole(_ context.Context, userID, role string) (bool, error) {
	return f.current().roles[userID][role], nil
}
