package database

import (
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

var dinnerStarts = []string{"17:00", "17:30", "18:00", "18:30", "19:00", "19:30", "20:00", "20:30", "21:00"}

// Seed inserts a starter floor plan, weekly time slots, opening hours, menu and settings.
// Each group is only written when its table is empty, so Seed is safe to run on every start.
func Seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			name  string
			model interface{}
			fn    func(*gorm.DB) error
		}{
			{"dining areas", &models.DiningArea{}, seedFloor},
			{"time slots", &models.TimeSlot{}, seedTimeSlots},
			{"operating hours", &models.OperatingHours{}, seedOperatingHours},
			{"menu", &models.MenuCategory{}, seedMenu},
			{"settings", &models.RestaurantSetting{}, seedSettings},
		}

		for _, step := range steps {
			var count int64
			if err := tx.Model(step.model).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}
			if err := step.fn(tx); err != nil {
				return fmt.Errorf("seed %s: %w", step.name, err)
			}
			utils.InfoLogger.Printf("Seeded %s", step.name)
		}
		return nil
	})
}

func seedFloor(tx *gorm.DB) error {
	desc := "Main dining room"
	areas := []models.DiningArea{
		{
			Name:        "Main Hall",
			Description: &desc,
			IsActive:    true,
			Capacity:    40,
			FloorPlan:   &models.FloorPlan{Layout: "grid", Dimensions: models.Dimensions{Width: 20, Height: 12}},
			Tables: []models.RestaurantTable{
				{TableNumber: "M1", Capacity: 2, Status: models.TableAvailable, IsActive: true, Shape: "square"},
				{TableNumber: "M2", Capacity: 2, Status: models.TableAvailable, IsActive: true, Shape: "square"},
				{TableNumber: "M3", Capacity: 4, Status: models.TableAvailable, IsActive: true, Shape: "rectangle"},
				{TableNumber: "M4", Capacity: 4, Status: models.TableAvailable, IsActive: true, Shape: "rectangle",
					Metadata: &models.TableFeatures{IsAccessible: true}},
				{TableNumber: "M5", Capacity: 6, Status: models.TableAvailable, IsActive: true, Shape: "rectangle"},
				{TableNumber: "M6", Capacity: 8, Status: models.TableAvailable, IsActive: true, Shape: "round"},
			},
		},
		{
			Name:     "Terrace",
			IsActive: true,
			Capacity: 16,
			Tables: []models.RestaurantTable{
				{TableNumber: "T1", Capacity: 2, Status: models.TableAvailable, IsActive: true, Shape: "round",
					Metadata: &models.TableFeatures{IsOutdoor: true, HasView: true}},
				{TableNumber: "T2", Capacity: 4, Status: models.TableAvailable, IsActive: true, Shape: "round",
					Metadata: &models.TableFeatures{IsOutdoor: true}},
			},
		},
	}
	return tx.Create(&areas).Error
}

func seedTimeSlots(tx *gorm.DB) error {
	var slots []models.TimeSlot
	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, start := range dinnerStarts {
			t, _ := time.Parse("15:04", start)
			slots = append(slots, models.TimeSlot{
				DayOfWeek:       int(day),
				StartTime:       start,
				EndTime:         t.Add(models.DefaultReservationDuration * time.Minute).Format("15:04"),
				MaxReservations: 10,
				IsActive:        true,
			})
		}
	}
	return tx.Create(&slots).Error
}

func seedOperatingHours(tx *gorm.DB) error {
	lunch, dinner := "lunch", "dinner"
	var hours []models.OperatingHours
	for day := 0; day <= 6; day++ {
		hours = append(hours,
			models.OperatingHours{DayOfWeek: day, OpenTime: "11:30", CloseTime: "14:30", MealPeriod: &lunch},
			models.OperatingHours{DayOfWeek: day, OpenTime: "17:00", CloseTime: "23:00", MealPeriod: &dinner},
		)
	}
	return tx.Create(&hours).Error
}

func seedMenu(tx *gorm.DB) error {
	categories := []models.MenuCategory{
		{Name: "Starters", DisplayOrder: 1, IsActive: true, Items: []models.MenuItem{
			{Name: "Burrata", Price: 14, Type: models.MenuItemStarter, IsVegetarian: true, IsAvailable: true, IsFeatured: true,
				Ingredients: models.StringList{"burrata", "tomato", "basil"}, Allergens: models.StringList{"dairy"}},
			{Name: "Tuna Tartare", Price: 17, Type: models.MenuItemStarter, IsAvailable: true,
				Ingredients: models.StringList{"tuna", "avocado", "sesame"}, Allergens: models.StringList{"fish", "sesame"}},
		}},
		{Name: "Mains", DisplayOrder: 2, IsActive: true, Items: []models.MenuItem{
			{Name: "Ribeye", Price: 42, Type: models.MenuItemMain, IsGlutenFree: true, IsAvailable: true, IsFeatured: true},
			{Name: "Wild Mushroom Risotto", Price: 26, Type: models.MenuItemMain, IsVegetarian: true, IsAvailable: true,
				Allergens: models.StringList{"dairy"}},
		}},
		{Name: "Desserts", DisplayOrder: 3, IsActive: true, Items: []models.MenuItem{
			{Name: "Tiramisu", Price: 11, Type: models.MenuItemDessert, IsVegetarian: true, IsAvailable: true, IsFeatured: true,
				Allergens: models.StringList{"dairy", "egg", "gluten"}},
		}},
		{Name: "Drinks", DisplayOrder: 4, IsActive: true, Items: []models.MenuItem{
			{Name: "House Negroni", Price: 13, Type: models.MenuItemDrink, IsVegan: true, IsAvailable: true},
		}},
	}
	return tx.Create(&categories).Error
}

func seedSettings(tx *gorm.DB) error {
	settings := []models.RestaurantSetting{
		{Category: "general", Name: "restaurant_name", Value: "The Olive Table"},
		{Category: "general", Name: "phone", Value: "+1 555 010 2030"},
		{Category: "reservations", Name: "max_party_size", Value: "12"},
		{Category: "reservations", Name: "default_duration_minutes", Value: "90"},
	}
	return tx.Create(&settings).Error
}
