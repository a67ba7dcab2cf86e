package migration

import (
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"little-lemon/entities"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";").Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"user role", &entities.UserRole{}},
		{"category", &entities.Category{}},
		{"menu item", &entities.MenuItem{}},
		{"cart", &entities.CartEntry{}},
		{"order", &entities.Order{}},
		{"order item", &entities.OrderItem{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", m.name, err)
		}
	}

	log.Info("Database migration complete")
	return nil
}
