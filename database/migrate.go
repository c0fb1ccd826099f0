package database

import (
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models lists every persisted entity in dependency order.
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.DiningArea{},
		&models.RestaurantTable{},
		&models.SpecialEvent{},
		&models.TimeSlot{},
		&models.Reservation{},
		&models.ReservationHistory{},
		&models.WaitlistEntry{},
		&models.MenuCategory{},
		&models.MenuItem{},
		&models.OperatingHours{},
		&models.RestaurantSetting{},
		&models.Payment{},
	}
}

func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		// Cascades and SET NULL rely on foreign keys being enforced.
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return fmt.Errorf("enable sqlite foreign keys: %w", err)
		}
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}

// OpenMemory opens a private in-memory SQLite database, migrated and ready to use.
// Each name gets its own database, so tests running in parallel do not share rows.
func OpenMemory(name string) (*gorm.DB, error) {
	name = strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(name)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
