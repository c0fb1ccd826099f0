package models

import "time"

type DiningArea struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"type:varchar(100);not null" json:"name"`
	Description *string           `gorm:"type:text" json:"description,omitempty"`
	IsActive    bool              `gorm:"not null;default:true" json:"isActive"`
	Capacity    int               `gorm:"not null" json:"capacity"`
	FloorPlan   *FloorPlan        `json:"floorPlan,omitempty"`
	Tables      []RestaurantTable `gorm:"foreignKey:DiningAreaID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"tables,omitempty"`
	CreatedAt   time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time         `gorm:"not null" json:"updatedAt"`
}
