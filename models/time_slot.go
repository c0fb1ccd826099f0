package models

import "time"

// TimeSlot is a recurring bookable window; DayOfWeek follows time.Weekday (0 = Sunday).
type TimeSlot struct {
	ID              uint          `gorm:"primaryKey" json:"id"`
	StartTime       string        `gorm:"type:varchar(5);not null" json:"startTime"`
	EndTime         string        `gorm:"type:varchar(5);not null" json:"endTime"`
	DayOfWeek       int           `gorm:"not null;index" json:"dayOfWeek"`
	MaxReservations int           `gorm:"not null" json:"maxReservations"`
	IsActive        bool          `gorm:"not null;default:true" json:"isActive"`
	SpecialEventID  *uint         `json:"specialEventId,omitempty"`
	SpecialEvent    *SpecialEvent `gorm:"foreignKey:SpecialEventID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"specialEvent,omitempty"`
	CreatedAt       time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"not null" json:"updatedAt"`
}
