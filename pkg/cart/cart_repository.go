package cart

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"little-lemon/entities"
)

type (
	CartRepository interface {
		GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error)
		UpsertCartEntry(ctx context.Context, entry *entities.CartEntry) error
		GetCartEntry(ctx context.Context, userID, menuItemID string) (*entities.CartEntry, error)
		GetCartEntries(ctx context.Context, userID string) ([]*entities.CartEntry, error)
		DeleteCartEntries(ctx context.Context, userID string) (int64, error)
	}

	cartRepository struct {
		db *gorm.DB
	}
)

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) GetMenuItemByID(ctx context.Context, id string) (*entities.MenuItem, error) {
	var item entities.MenuItem
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpsertCartEntry inserts the entry or, when the user already has this menu
// item in the cart, replaces quantity and both price snapshots.
func (r *cartRepository) UpsertCartEntry(ctx context.Context, entry *entities.CartEntry) error {
	return r.db.WithContext(ctx).
		Omit("User", "MenuItem").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "unit_price", "price", "updated_at"}),
		}).
		Create(entry).Error
}

func (r *cartRepository) GetCartEntry(ctx context.Context, userID, menuItemID string) (*entities.CartEntry, error) {
	var entry entities.CartEntry
	if err := r.db.WithContext(ctx).
		Preload("MenuItem.Category").
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *cartRepository) GetCartEntries(ctx context.Context, userID string) ([]*entities.CartEntry, error) {
	var entries []*entities.CartEntry
	if err := r.db.WithContext(ctx).
		Preload("MenuItem.Category").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *cartRepository) DeleteCartEntries(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.CartEntry{})
	return res.RowsAffected, res.Error
}
