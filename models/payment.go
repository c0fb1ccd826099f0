package models

import "time"

// Payment records a charge against a reservation. No gateway is integrated; rows are
// written by back-office tooling only.
type Payment struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	ReservationID   *uint            `gorm:"index" json:"reservationId,omitempty"`
	Reservation     *Reservation     `gorm:"foreignKey:ReservationID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	UserID          *uint            `gorm:"index" json:"userId,omitempty"`
	User            *User            `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Amount          float64          `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency        string           `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	Status          string           `gorm:"type:varchar(20);not null;default:'pending';check:chk_payments_status,status IN ('pending','completed','failed','refunded')" json:"status"`
	PaymentMethod   *string          `gorm:"type:varchar(20)" json:"paymentMethod,omitempty"`
	PaymentIntentID *string          `gorm:"type:varchar(255)" json:"paymentIntentId,omitempty"`
	ReceiptURL      *string          `gorm:"type:varchar(255)" json:"receiptUrl,omitempty"`
	RefundAmount    *float64         `gorm:"type:decimal(10,2)" json:"refundAmount,omitempty"`
	Metadata        *PaymentMetadata `json:"metadata,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}
