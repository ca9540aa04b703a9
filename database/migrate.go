package database

import (
	"ecoshare/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Category{},
		&models.Item{},
		&models.ItemImage{},
		&models.RecyclingCenter{},
		&models.AcceptedMaterial{},
		&models.TipCategory{},
		&models.RecyclingTip{},
		&models.FavoriteTip{},
	); err != nil {
		return err
	}

	// Composite index backing the default tip ordering
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_recycling_tips_created_at ON recycling_tips(created_at DESC)`).Error; err != nil {
		return err
	}
	// Centers list orders by city then name on every request
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_recycling_centers_city_name ON recycling_centers(city, name)`).Error; err != nil {
		return err
	}

	return nil
}
