package models

import "time"

type MenuCategory struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Name         string     `gorm:"type:varchar(100);not null" json:"name"`
	Description  *string    `gorm:"type:text" json:"description,omitempty"`
	DisplayOrder int        `gorm:"not null;default:0" json:"displayOrder"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	ImageURL     *string    `gorm:"type:varchar(255)" json:"imageUrl,omitempty"`
	Items        []MenuItem `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"not null" json:"updatedAt"`
}
