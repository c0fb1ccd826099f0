package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationSeated    ReservationStatus = "seated"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
	ReservationNoShow    ReservationStatus = "no_show"
)

// ReservationStatuses lists every valid status in lifecycle order.
var ReservationStatuses = []ReservationStatus{
	ReservationPending,
	ReservationConfirmed,
	ReservationSeated,
	ReservationCompleted,
	ReservationCancelled,
	ReservationNoShow,
}

func (s ReservationStatus) Valid() bool {
	for _, v := range ReservationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

const DefaultReservationDuration = 90

// Reservation is one guest booking. Date is stored as YYYY-MM-DD and Time as HH:MM.
type Reservation struct {
	ID                uint              `gorm:"primaryKey" json:"id"`
	UserID            *uint             `gorm:"index" json:"userId,omitempty"`
	User              *User             `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Name              string            `gorm:"type:varchar(100);not null" json:"name"`
	Email             string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone             string            `gorm:"type:varchar(20);not null" json:"phone"`
	Date              string            `gorm:"type:varchar(10);not null;index:idx_reservations_slot" json:"date"`
	Time              string            `gorm:"type:varchar(5);not null;index:idx_reservations_slot" json:"time"`
	EndTime           *string           `gorm:"type:varchar(5)" json:"endTime,omitempty"`
	Guests            int               `gorm:"not null;check:chk_reservations_guests,guests >= 1" json:"guests"`
	Status            ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index;check:chk_reservations_status,status IN ('pending','confirmed','seated','completed','cancelled','no_show')" json:"status"`
	SpecialRequests   *string           `gorm:"type:text" json:"specialRequests,omitempty"`
	Occasion          *string           `gorm:"type:varchar(100)" json:"occasion,omitempty"`
	AssignedTableID   *uint             `gorm:"index" json:"assignedTableId,omitempty"`
	AssignedTable     *RestaurantTable  `gorm:"foreignKey:AssignedTableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"table,omitempty"`
	SpecialEventID    *uint             `gorm:"index" json:"specialEventId,omitempty"`
	SpecialEvent      *SpecialEvent     `gorm:"foreignKey:SpecialEventID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"specialEvent,omitempty"`
	EstimatedDuration int               `gorm:"not null;default:90" json:"estimatedDuration"`
	ArrivalTime       *time.Time        `json:"arrivalTime,omitempty"`
	DepartureTime     *time.Time        `json:"departureTime,omitempty"`
	ReminderSent      bool              `gorm:"not null;default:false" json:"reminderSent"`
	ConfirmationCode  string            `gorm:"type:varchar(20);not null;uniqueIndex" json:"confirmationCode"`
	Source            string            `gorm:"type:varchar(50);default:'website'" json:"source"`
	MenuPreferences   *MenuPreferences  `json:"menuPreferences,omitempty"`
	Version           uint              `gorm:"not null;default:1" json:"-"`
	CreatedAt         time.Time         `gorm:"not null" json:"createdAt"`
	UpdatedAt         time.Time         `gorm:"not null" json:"updatedAt"`

	History []ReservationHistory `gorm:"foreignKey:ReservationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"history,omitempty"`
}

// ReservationHistory is the append-only audit trail of status changes.
type ReservationHistory struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	ReservationID   uint              `gorm:"not null;index" json:"reservationId"`
	PreviousStatus  ReservationStatus `gorm:"type:varchar(20);not null" json:"previousStatus"`
	NewStatus       ReservationStatus `gorm:"type:varchar(20);not null" json:"newStatus"`
	ChangedByUserID *uint             `json:"changedByUserId,omitempty"`
	ChangedByUser   *User             `gorm:"foreignKey:ChangedByUserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Reason          *string           `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt       time.Time         `gorm:"not null" json:"createdAt"`
}

func (ReservationHistory) TableName() string { return "reservation_history" }
