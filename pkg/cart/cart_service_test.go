package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"little-lemon/domain"
	"little-lemon/entities"
	"little-lemon/pkg/access"
)

type cartKey struct {
	user, item uuid.UUID
}

type fakeCartRepository struct {
	items   map[uuid.UUID]*entities.MenuItem
	entries map[cartKey]*entities.CartEntry
	order   []cartKey
}

func newFakeCartRepository() *fakeCartRepository {
	return &fakeCartRepository{
		items:   map[uuid.UUID]*entities.MenuItem{},
		entries: map[cartKey]*entities.CartEntry{},
	}
}

func (f *fakeCartRepository) GetMenuItemByID(_ context.Context, id string) (*entities.MenuItem, error) {
	item, ok := f.items[uuid.MustParse(id)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func (f *fakeCartRepository) UpsertCartEntry(_ context.Context, entry *entities.CartEntry) error {
	k := cartKey{entry.UserID, entry.MenuItemID}
	if existing, ok := f.entries[k]; ok {
		existing.Quantity = entry.Quantity
		existing.UnitPrice = entry.UnitPrice
		existing.Price = entry.Price
		return nil
	}
	copied := *entry
	copied.MenuItem = f.items[entry.MenuItemID]
	f.entries[k] = &copied
	f.order = append(f.order, k)
	return nil
}

func (f *fakeCartRepository) GetCartEntry(_ context.Context, userID, menuItemID string) (*entities.CartEntry, error) {
	entry, ok := f.entries[cartKey{uuid.MustParse(userID), uuid.MustParse(menuItemID)}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *entry
	return &copied, nil
}

func (f *fakeCartRepository) GetCartEntries(_ context.Context, userID string) ([]*entities.CartEntry, error) {
	var out []*entities.CartEntry
	for _, k := range f.order {
		if e, ok := f.entries[k]; ok && k.user.String() == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeCartRepository) DeleteCartEntries(_ context.Context, userID string) (int64, error) {
	var n int64
	for k := range f.entries {
		if k.user.String() == userID {
			delete(f.entries, k)
			n++
		}
	}
	return n, nil
}

func qty(i int) *int { return &i }

func setup() (*fakeCartRepository, CartService, *entities.MenuItem, access.Principal) {
	repo := newFakeCartRepository()
	burger := &entities.MenuItem{ID: uuid.New(), Title: "Burger", Price: decimal.RequireFromString("8.00")}
	repo.items[burger.ID] = burger
	return repo, NewCartService(repo), burger, access.NewPrincipal(uuid.NewString(), nil)
}

func TestAddOrUpdate_CreatesEntry(t *testing.T) {
	_, svc, burger, user := setup()

	res, err := svc.AddOrUpdate(context.Background(), user, domain.AddToCartRequest{
		MenuItemID: burger.ID.String(), Quantity: qty(2),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Quantity)
	assert.Equal(t, "8.00", res.UnitPrice)
	assert.Equal(t, "16.00", res.Price)
	assert.Equal(t, "Burger", res.MenuItem.Title)
}

func TestAddOrUpdate_ReSnapshotsPrice(t *testing.T) {
	repo, svc, burger, user := setup()
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, user, domain.AddToCartRequest{MenuItemID: burger.ID.String(), Quantity: qty(2)})
	require.NoError(t, err)

	burger.Price = decimal.RequireFromString("9.00")
	res, err := svc.AddOrUpdate(ctx, user, domain.AddToCartRequest{MenuItemID: burger.ID.String(), Quantity: qty(3)})
	require.NoError(t, err)

	assert.Equal(t, 3, res.Quantity)
	assert.Equal(t, "9.00", res.UnitPrice)
	assert.Equal(t, "27.00", res.Price)
	assert.Len(t, repo.entries, 1)
}

func TestAddOrUpdate_RejectsWithoutMutation(t *testing.T) {
	repo, svc, burger, user := setup()
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, user, domain.AddToCartRequest{MenuItemID: burger.ID.String(), Quantity: qty(1)})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  domain.AddToCartRequest
		want error
	}{
		{"zero quantity", domain.AddToCartRequest{MenuItemID: burger.ID.String(), Quantity: qty(0)}, domain.ErrInvalidCartQuantity},
		{"negative quantity", domain.AddToCartRequest{MenuItemID: burger.ID.String(), Quantity: qty(-3)}, domain.ErrInvalidCartQuantity},
		{"missing quantity", domain.AddToCartRequest{MenuItemID: burger.ID.String()}, domain.ErrInvalidCartQuantity},
		{"unknown menu item", domain.AddToCartRequest{MenuItemID: uuid.NewString(), Quantity: qty(1)}, domain.ErrInvalidCartMenuItem},
		{"malformed menu item", domain.AddToCartRequest{MenuItemID: "42", Quantity: qty(1)}, domain.ErrInvalidCartMenuItem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddOrUpdate(ctx, user, tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, domain.ErrValidation)

			entries, err := svc.List(ctx, user)
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, 1, entries[0].Quantity)
			assert.Equal(t, "8.00", entries[0].Price)
		})
	}
	assert.Len(t, repo.entries, 1)
}

func TestList_OnlyOwnEntries(t *testing.T) {
	_, svc, burger, user := setup()
	other := access.NewPrincipal(uuid.NewString(), nil)
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, user, domain.AddToCartRequest{MenuItemID: burger.ID.String(), Quantity: qty(1)})
	require.NoError(t, err)

	entries, err := svc.List(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClearAll_Idempotent(t *testing.T) {
	_, svc, burger, user := setup()
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, user, domain.AddToCartRequest{MenuItemID: burger.ID.String(), Quantity: qty(1)})
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(ctx, user))
	require.NoError(t, svc.ClearAll(ctx, user))

	entries, err := svc.List(ctx, user)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCart_RequiresAuthentication(t *testing.T) {
	_, svc, burger, _ := setup()
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, access.Anonymous(), domain.AddToCartRequest{MenuItemID: burger.ID.String(), Quantity: qty(1)})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = svc.List(ctx, access.Anonymous())
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestAddOrUpdate_RejectsLinePriceOverflow(t *testing.T) {
	repo, svc, _, user := setup()
	platter := &entities.MenuItem{ID: uuid.New(), Title: "Platter", Price: decimal.RequireFromString("9999.99")}
	repo.items[platter.ID] = platter
	ctx := context.Background()

	_, err := svc.AddOrUpdate(ctx, user, domain.AddToCartRequest{MenuItemID: platter.ID.String(), Quantity: qty(1000000)})
	assert.ErrorIs(t, err, domain.ErrValidation)
	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe.Fields, "quantity")
	assert.Empty(t, repo.entries)

	// 100 x 9999.99 = 999999.00 still fits
	res, err := svc.AddOrUpdate(ctx, user, domain.AddToCartRequest{MenuItemID: platter.ID.String(), Quantity: qty(100)})
	require.NoError(t, err)
	assert.Equal(t, "999999.00", res.Price)
}
