package menu

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"little-lemon/entities"
	"little-lemon/internal/utils"
)

type (
	MenuItemQuery struct {
		CategoryTitle string
		ToPrice       *decimal.Decimal
		Search        string
		Ordering      []string
		Page          utils.Page
	}

	MenuRepository interface {
		// Categories
		CreateCategory(ctx context.Context, category *entities.Category) error
		GetCategories(ctx context.Context) ([]*entities.Category, error)
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
		CategoryExists(ctx context.Context, slug, title string) (bool, error)

		// Menu items
		CreateMenuItem(ctx context.Context, item *entities.MenuItem) error
		GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error)
		GetMenuItems(ctx context.Context, q MenuItemQuery) ([]*entities.MenuItem, int64, error)
		UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error
		DeleteMenuItem(ctx context.Context, id string) error
		TitleTaken(ctx context.Context, title string, excludeID string) (bool, error)
		CountCartReferences(ctx context.Context, menuItemID string) (int64, error)
	}

	menuRepository struct {
		db *gorm.DB
	}
)

func NewMenuRepository(db *gorm.DB) MenuRepository {
	return &menuRepository{db: db}
}

func (r *menuRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *menuRepository) GetCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).Order("title ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *menuRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *menuRepository) CategoryExists(ctx context.Context, slug, title string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Category{}).
		Where("slug = ? OR title = ?", slug, title).
		Count(&count).Error
	return count > 0, err
}

func (r *menuRepository) CreateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuRepository) GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuRepository) GetMenuItems(ctx context.Context, q MenuItemQuery) ([]*entities.MenuItem, int64, error) {
	var items []*entities.MenuItem
	var count int64

	query := r.db.WithContext(ctx).Model(&entities.MenuItem{})

	if q.CategoryTitle != "" {
		query = query.
			Joins("JOIN categories ON categories.id = menu_items.category_id").
			Where("categories.title = ?", q.CategoryTitle)
	}
	if q.ToPrice != nil {
		query = query.Where("menu_items.price <= ?", *q.ToPrice)
	}
	if q.Search != "" {
		query = query.Where("menu_items.title ILIKE ?", utils.EscapeLike(q.Search)+"%")
	}

	if err := query.Count(&count).Error; err != nil {
		return nil, 0, err
	}

	for _, o := range q.Ordering {
		query = query.Order("menu_items." + o)
	}
	if len(q.Ordering) == 0 {
		query = query.Order("menu_items.title ASC")
	}

	if err := query.
		Preload("Category").
		Scopes(utils.Paginate(q.Page)).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, count, nil
}

func (r *menuRepository) UpdateMenuItem(ctx context.Context, item *entities.MenuItem) error {
	return r.db.WithContext(ctx).Omit("Category").Save(item).Error
}

func (r *menuRepository) DeleteMenuItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.MenuItem{}).Error
}

func (r *menuRepository) TitleTaken(ctx context.Context, title string, excludeID string) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&entities.MenuItem{}).Where("title = ?", title)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *menuRepository) CountCartReferences(ctx context.Context, menuItemID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.CartEntry{}).
		Where("menu_item_id = ?", menuItemID).
		Count(&count).Error
	return count, err
}
