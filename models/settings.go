package models

import "time"

type OperatingHours struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	DayOfWeek      int       `gorm:"not null;index" json:"dayOfWeek"`
	OpenTime       string    `gorm:"type:varchar(5);not null" json:"openTime"`
	CloseTime      string    `gorm:"type:varchar(5);not null" json:"closeTime"`
	IsClosed       bool      `gorm:"not null;default:false" json:"isClosed"`
	IsSpecialHours bool      `gorm:"not null;default:false" json:"isSpecialHours"`
	SpecialDate    *string   `gorm:"type:varchar(10)" json:"specialDate,omitempty"`
	MealPeriod     *string   `gorm:"type:varchar(20)" json:"mealPeriod,omitempty"`
	CreatedAt      time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time `gorm:"not null" json:"updatedAt"`
}

type RestaurantSetting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_settings_category_name" json:"name"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Category    string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_settings_category_name" json:"category"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}
