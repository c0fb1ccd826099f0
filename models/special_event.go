package models

import (
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type SpecialEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Slug          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Description   *string   `gorm:"type:text" json:"description,omitempty"`
	StartDate     string    `gorm:"type:varchar(10);not null" json:"startDate"`
	EndDate       string    `gorm:"type:varchar(10);not null" json:"endDate"`
	StartTime     *string   `gorm:"type:varchar(5)" json:"startTime,omitempty"`
	EndTime       *string   `gorm:"type:varchar(5)" json:"endTime,omitempty"`
	Capacity      *int      `json:"capacity,omitempty"`
	IsPublic      bool      `gorm:"not null;default:true" json:"isPublic"`
	IsFullyBooked bool      `gorm:"not null;default:false" json:"isFullyBooked"`
	ImageURL      *string   `gorm:"type:varchar(255)" json:"imageUrl,omitempty"`
	CreatedAt     time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null" json:"updatedAt"`
}

// BeforeCreate derives the slug from the name when none was given.
func (e *SpecialEvent) BeforeCreate(tx *gorm.DB) error {
	if e.Slug == "" {
		e.Slug = slug.Make(e.Name + " " + e.StartDate)
	}
	return nil
}
