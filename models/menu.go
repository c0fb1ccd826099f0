package models

import "time"

type MenuItemType string

const (
	MenuItemStarter MenuItemType = "starter"
	MenuItemMain    MenuItemType = "main"
	MenuItemDessert MenuItemType = "dessert"
	MenuItemDrink   MenuItemType = "drink"
	MenuItemSpecial MenuItemType = "special"
)

type MenuItem struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	CategoryID      uint             `gorm:"not null;index" json:"categoryId"`
	Name            string           `gorm:"type:varchar(255);not null" json:"name"`
	Description     *string          `gorm:"type:text" json:"description,omitempty"`
	Price           float64          `gorm:"type:decimal(10,2);not null" json:"price"`
	Type            MenuItemType     `gorm:"type:varchar(20);not null;check:chk_menu_items_type,type IN ('starter','main','dessert','drink','special')" json:"type"`
	ImageURL        *string          `gorm:"type:varchar(255)" json:"imageUrl,omitempty"`
	Ingredients     StringList       `json:"ingredients"`
	Allergens       StringList       `json:"allergens"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	IsSpicy         bool             `gorm:"not null;default:false" json:"isSpicy"`
	IsVegetarian    bool             `gorm:"not null;default:false" json:"isVegetarian"`
	IsVegan         bool             `gorm:"not null;default:false" json:"isVegan"`
	IsGlutenFree    bool             `gorm:"not null;default:false" json:"isGlutenFree"`
	IsAvailable     bool             `gorm:"not null;default:true" json:"isAvailable"`
	IsFeatured      bool             `gorm:"not null;default:false" json:"isFeatured"`
	PrepTime        *int             `json:"prepTime,omitempty"`
	CreatedAt       time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time        `gorm:"not null" json:"updatedAt"`
}
