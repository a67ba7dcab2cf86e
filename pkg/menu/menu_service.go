package menu

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"little-lemon/domain"
	"little-lemon/entities"
	"little-lemon/internal/utils"
	"little-lemon/internal/utils/storage"
	"little-lemon/pkg/access"
)

var (
	TaxRate  = decimal.RequireFromString("1.1")
	MinPrice = decimal.RequireFromString("2.00")
	MaxPrice = decimal.RequireFromString("9999.99")

	orderingFields = map[string]string{
		"title": "title",
		"price": "price",
		"stock": "inventory",
	}
)

type (
	MenuService interface {
		GetCategories(ctx context.Context) ([]domain.CategoryResponse, error)
		AddCategory(ctx context.Context, p access.Principal, req domain.AddCategoryRequest) (domain.CategoryResponse, error)

		GetMenuItems(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItemResponse, int64, error)
		GetMenuItemByID(ctx context.Context, id string) (domain.MenuItemResponse, error)
		AddMenuItem(ctx context.Context, p access.Principal, req domain.MenuItemRequest) (domain.MenuItemResponse, error)
		UpdateMenuItem(ctx context.Context, p access.Principal, id string, req domain.MenuItemRequest) (domain.MenuItemResponse, error)
		PatchMenuItem(ctx context.Context, p access.Principal, id string, req domain.PatchMenuItemRequest) (domain.MenuItemResponse, error)
		DeleteMenuItem(ctx context.Context, p access.Principal, id string) error
		UploadMenuItemImage(ctx context.Context, p access.Principal, id string, req domain.UploadMenuItemImageRequest) (domain.MenuItemResponse, error)
	}

	menuService struct {
		menuRepository MenuRepository
		s3             storage.AwsS3
	}
)

func NewMenuService(menuRepository MenuRepository, s3 storage.AwsS3) MenuService {
	return &menuService{
		menuRepository: menuRepository,
		s3:             s3,
	}
}

func (s *menuService) GetCategories(ctx context.Context) ([]domain.CategoryResponse, error) {
	categories, err := s.menuRepository.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, ToCategoryResponse(c))
	}
	return result, nil
}

func (s *menuService) AddCategory(ctx context.Context, p access.Principal, req domain.AddCategoryRequest) (domain.CategoryResponse, error) {
	if err := access.Authorize(p, access.OpWriteMenu); err != nil {
		return domain.CategoryResponse{}, err
	}

	exists, err := s.menuRepository.CategoryExists(ctx, req.Slug, req.Title)
	if err != nil {
		return domain.CategoryResponse{}, err
	}
	if exists {
		return domain.CategoryResponse{}, domain.ErrCategoryNotUnique
	}

	category := &entities.Category{
		ID:    uuid.New(),
		Slug:  req.Slug,
		Title: req.Title,
	}
	if err := s.menuRepository.CreateCategory(ctx, category); err != nil {
		return domain.CategoryResponse{}, err
	}
	return ToCategoryResponse(category), nil
}

func (s *menuService) GetMenuItems(ctx context.Context, filter domain.MenuItemFilter) ([]domain.MenuItemResponse, int64, error) {
	ordering, err := utils.ParseOrdering(filter.Ordering, orderingFields)
	if err != nil {
		return nil, 0, err
	}

	q := MenuItemQuery{
		CategoryTitle: filter.Category,
		Search:        filter.Search,
		Ordering:      ordering,
		Page:          utils.Page{PerPage: filter.PerPage, Number: filter.Page},
	}
	if filter.ToPrice != "" {
		toPrice, err := decimal.NewFromString(filter.ToPrice)
		if err != nil {
			return nil, 0, domain.NewFieldError("to_price", "A valid number is required.")
		}
		q.ToPrice = &toPrice
	}

	items, count, err := s.menuRepository.GetMenuItems(ctx, q)
	if err != nil {
		return nil, 0, err
	}

	result := make([]domain.MenuItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, ToMenuItemResponse(item))
	}
	return result, count, nil
}

func (s *menuService) GetMenuItemByID(ctx context.Context, id string) (domain.MenuItemResponse, error) {
	item, err := s.getMenuItem(ctx, id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	return ToMenuItemResponse(item), nil
}

func (s *menuService) AddMenuItem(ctx context.Context, p access.Principal, req domain.MenuItemRequest) (domain.MenuItemResponse, error) {
	if err := access.Authorize(p, access.OpWriteMenu); err != nil {
		return domain.MenuItemResponse{}, err
	}

	item := &entities.MenuItem{ID: uuid.New()}
	if err := s.apply(ctx, item, &req.Title, &req.Price, req.Stock, &req.CategoryID); err != nil {
		return domain.MenuItemResponse{}, err
	}

	if err := s.menuRepository.CreateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return ToMenuItemResponse(item), nil
}

func (s *menuService) UpdateMenuItem(ctx context.Context, p access.Principal, id string, req domain.MenuItemRequest) (domain.MenuItemResponse, error) {
	if err := access.Authorize(p, access.OpWriteMenu); err != nil {
		return domain.MenuItemResponse{}, err
	}

	item, err := s.getMenuItem(ctx, id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	if err := s.apply(ctx, item, &req.Title, &req.Price, req.Stock, &req.CategoryID); err != nil {
		return domain.MenuItemResponse{}, err
	}

	if err := s.menuRepository.UpdateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return ToMenuItemResponse(item), nil
}

func (s *menuService) PatchMenuItem(ctx context.Context, p access.Principal, id string, req domain.PatchMenuItemRequest) (domain.MenuItemResponse, error) {
	if err := access.Authorize(p, access.OpWriteMenu); err != nil {
		return domain.MenuItemResponse{}, err
	}

	item, err := s.getMenuItem(ctx, id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}
	if err := s.apply(ctx, item, req.Title, req.Price, req.Stock, req.CategoryID); err != nil {
		return domain.MenuItemResponse{}, err
	}

	if err := s.menuRepository.UpdateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}
	return ToMenuItemResponse(item), nil
}

func (s *menuService) DeleteMenuItem(ctx context.Context, p access.Principal, id string) error {
	if err := access.Authorize(p, access.OpWriteMenu); err != nil {
		return err
	}

	item, err := s.getMenuItem(ctx, id)
	if err != nil {
		return err
	}

	refs, err := s.menuRepository.CountCartReferences(ctx, id)
	if err != nil {
		return err
	}
	if refs > 0 {
		return domain.ErrMenuItemInCart
	}

	if err := s.menuRepository.DeleteMenuItem(ctx, id); err != nil {
		return err
	}

	if item.ImageURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(item.ImageURL); objectKey != "" {
			if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
				log.Warnf("failed to delete image for menu item %s: %v", id, err)
			}
		}
	}
	return nil
}

func (s *menuService) UploadMenuItemImage(ctx context.Context, p access.Principal, id string, req domain.UploadMenuItemImageRequest) (domain.MenuItemResponse, error) {
	if err := access.Authorize(p, access.OpWriteMenu); err != nil {
		return domain.MenuItemResponse{}, err
	}

	item, err := s.getMenuItem(ctx, id)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	url, err := s.s3.UploadFile(ctx, "menu-items", req.Image)
	if err != nil {
		return domain.MenuItemResponse{}, err
	}

	previous := item.ImageURL
	item.ImageURL = url
	if err := s.menuRepository.UpdateMenuItem(ctx, item); err != nil {
		return domain.MenuItemResponse{}, err
	}

	if objectKey := s.s3.GetObjectKeyFromLink(previous); objectKey != "" {
		if err := s.s3.DeleteFile(ctx, objectKey); err != nil {
			log.Warnf("failed to delete previous image for menu item %s: %v", id, err)
		}
	}
	return ToMenuItemResponse(item), nil
}

func (s *menuService) getMenuItem(ctx context.Context, id string) (*entities.MenuItem, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrMenuItemNotFound
	}
	item, err := s.menuRepository.GetMenuItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMenuItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// apply validates and copies the provided fields onto item. Nil fields are
// left untouched.
func (s *menuService) apply(ctx context.Context, item *entities.MenuItem, title, price *string, stock *int, categoryID *string) error {
	fields := map[string]string{}

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			fields["title"] = "This field may not be blank."
		} else {
			taken, err := s.menuRepository.TitleTaken(ctx, t, item.ID.String())
			if err != nil {
				return err
			}
			if taken {
				fields["title"] = domain.MessageMenuItemTitleNotUnique
			}
			item.Title = t
		}
	}

	if price != nil {
		p, err := decimal.NewFromString(*price)
		switch {
		case err != nil:
			fields["price"] = "A valid number is required."
		case p.LessThan(MinPrice):
			fields["price"] = domain.MessageMenuItemPriceTooLow
		case p.GreaterThan(MaxPrice):
			fields["price"] = "Ensure that there are no more than 6 digits in total."
		case !p.Equal(p.Round(2)):
			fields["price"] = "Ensure that there are no more than 2 decimal places."
		default:
			item.Price = p
		}
	}

	if stock != nil {
		if *stock < 0 {
			fields["stock"] = domain.MessageMenuItemStockNegative
		} else {
			item.Inventory = *stock
		}
	}

	if categoryID != nil {
		category, err := s.lookupCategory(ctx, *categoryID)
		if err != nil {
			if !errors.Is(err, domain.ErrCategoryNotFound) {
				return err
			}
			fields["category_id"] = "Invalid category."
		} else {
			item.CategoryID = category.ID
			item.Category = category
		}
	}

	if len(fields) > 0 {
		return &domain.FieldError{Fields: fields}
	}
	return nil
}

func (s *menuService) lookupCategory(ctx context.Context, id string) (*entities.Category, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrCategoryNotFound
	}
	category, err := s.menuRepository.GetCategoryByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCategoryNotFound
		}
		return nil, err
	}
	return category, nil
}

func PriceAfterTax(price decimal.Decimal) decimal.Decimal {
	return price.Mul(TaxRate).Round(2)
}

func ToCategoryResponse(c *entities.Category) domain.CategoryResponse {
	if c == nil {
		return domain.CategoryResponse{}
	}
	return domain.CategoryResponse{
		ID:    c.ID.String(),
		Slug:  c.Slug,
		Title: c.Title,
	}
}

func ToMenuItemResponse(item *entities.MenuItem) domain.MenuItemResponse {
	return domain.MenuItemResponse{
		ID:            item.ID.String(),
		Title:         item.Title,
		Price:         item.Price.StringFixed(2),
		Stock:         item.Inventory,
		PriceAfterTax: PriceAfterTax(item.Price).StringFixed(2),
		ImageURL:      item.ImageURL,
		Category:      ToCategoryResponse(item.Category),
	}
}
