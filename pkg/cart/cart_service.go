package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"little-lemon/domain"
	"little-lemon/entities"
	"little-lemon/pkg/access"
	"little-lemon/pkg/menu"
)

// MaxLinePrice is the largest line price the cart price column can hold.
var MaxLinePrice = decimal.RequireFromString("999999.99")

type (
	CartService interface {
		AddOrUpdate(ctx context.Context, p access.Principal, req domain.AddToCartRequest) (domain.CartEntryResponse, error)
		List(ctx context.Context, p access.Principal) ([]domain.CartEntryResponse, error)
		ClearAll(ctx context.Context, p access.Principal) error
	}

	cartService struct {
		cartRepository CartRepository
	}
)

func NewCartService(cartRepository CartRepository) CartService {
	return &cartService{cartRepository: cartRepository}
}

// AddOrUpdate re-snapshots the unit price from the live menu item on every
// call, so a repeat add picks up the current price.
func (s *cartService) AddOrUpdate(ctx context.Context, p access.Principal, req domain.AddToCartRequest) (domain.CartEntryResponse, error) {
	if err := access.Authorize(p, access.OpMutateCart); err != nil {
		return domain.CartEntryResponse{}, err
	}

	if req.Quantity == nil || *req.Quantity <= 0 {
		return domain.CartEntryResponse{}, domain.ErrInvalidCartQuantity
	}

	userID, err := uuid.Parse(p.UserID)
	if err != nil {
		return domain.CartEntryResponse{}, domain.ErrParseUUID
	}

	menuItemID, err := uuid.Parse(req.MenuItemID)
	if err != nil {
		return domain.CartEntryResponse{}, domain.ErrInvalidCartMenuItem
	}

	item, err := s.cartRepository.GetMenuItemByID(ctx, menuItemID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.CartEntryResponse{}, domain.ErrInvalidCartMenuItem
		}
		return domain.CartEntryResponse{}, err
	}

	linePrice := LinePrice(item.Price, *req.Quantity)
	if linePrice.GreaterThan(MaxLinePrice) {
		return domain.CartEntryResponse{}, domain.NewFieldError("quantity",
			"Ensure the line price is not greater than "+MaxLinePrice.StringFixed(2)+".")
	}

	entry := &entities.CartEntry{
		ID:         uuid.New(),
		UserID:     userID,
		MenuItemID: item.ID,
		Quantity:   *req.Quantity,
		UnitPrice:  item.Price,
		Price:      linePrice,
	}
	if err := s.cartRepository.UpsertCartEntry(ctx, entry); err != nil {
		return domain.CartEntryResponse{}, err
	}

	saved, err := s.cartRepository.GetCartEntry(ctx, userID.String(), item.ID.String())
	if err != nil {
		return domain.CartEntryResponse{}, err
	}
	return ToCartEntryResponse(saved), nil
}

func (s *cartService) List(ctx context.Context, p access.Principal) ([]domain.CartEntryResponse, error) {
	if err := access.Authorize(p, access.OpReadCart); err != nil {
		return nil, err
	}

	entries, err := s.cartRepository.GetCartEntries(ctx, p.UserID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CartEntryResponse, 0, len(entries))
	for _, entry := range entries {
		result = append(result, ToCartEntryResponse(entry))
	}
	return result, nil
}

func (s *cartService) ClearAll(ctx context.Context, p access.Principal) error {
	if err := access.Authorize(p, access.OpMutateCart); err != nil {
		return err
	}
	_, err := s.cartRepository.DeleteCartEntries(ctx, p.UserID)
	return err
}

func LinePrice(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

func ToCartEntryResponse(entry *entities.CartEntry) domain.CartEntryResponse {
	res := domain.CartEntryResponse{
		UserID:    entry.UserID.String(),
		Quantity:  entry.Quantity,
		UnitPrice: entry.UnitPrice.StringFixed(2),
		Price:     entry.Price.StringFixed(2),
	}
	if entry.MenuItem != nil {
		res.MenuItem = menu.ToMenuItemResponse(entry.MenuItem)
	} else {
		res.MenuItem = domain.MenuItemResponse{ID: entry.MenuItemID.String()}
	}
	return res
}
