package models

import "time"

type WaitlistStatus string

const (
	WaitlistWaiting   WaitlistStatus = "waiting"
	WaitlistNotified  WaitlistStatus = "notified"
	WaitlistSeated    WaitlistStatus = "seated"
	WaitlistLeft      WaitlistStatus = "left"
	WaitlistCancelled WaitlistStatus = "cancelled"
)

func (s WaitlistStatus) Valid() bool {
	switch s {
	case WaitlistWaiting, WaitlistNotified, WaitlistSeated, WaitlistLeft, WaitlistCancelled:
		return true
	}
	return false
}

type WaitlistEntry struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Name              string         `gorm:"type:varchar(100);not null" json:"name"`
	Phone             string         `gorm:"type:varchar(20);not null" json:"phone"`
	Email             *string        `gorm:"type:varchar(255)" json:"email,omitempty"`
	PartySize         int            `gorm:"not null" json:"partySize"`
	EstimatedWaitTime *int           `json:"estimatedWaitTime,omitempty"`
	NotificationSent  bool           `gorm:"not null;default:false" json:"notificationSent"`
	Status            WaitlistStatus `gorm:"type:varchar(20);not null;default:'waiting';index" json:"status"`
	Notes             *string        `gorm:"type:text" json:"notes,omitempty"`
	CheckInTime       time.Time      `gorm:"not null" json:"checkInTime"`
	SeatedTime        *time.Time     `json:"seatedTime,omitempty"`
	LeftTime          *time.Time     `json:"leftTime,omitempty"`
	CreatedAt         time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time      `gorm:"not null" json:"updatedAt"`
}

func (WaitlistEntry) TableName() string { return "waitlist" }
