package models

import "time"

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleStaff    UserRole = "staff"
	RoleManager  UserRole = "manager"
	RoleAdmin    UserRole = "admin"
)

// IsStaff reports whether the role may use the back-office endpoints.
func (r UserRole) IsStaff() bool {
	return r == RoleStaff || r == RoleManager || r == RoleAdmin
}

type User struct {
	ID                 uint             `gorm:"primaryKey" json:"id"`
	Email              string           `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Username           string           `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Password           string           `gorm:"type:varchar(255);not null" json:"-"`
	FirstName          *string          `gorm:"type:varchar(100)" json:"firstName,omitempty"`
	LastName           *string          `gorm:"type:varchar(100)" json:"lastName,omitempty"`
	PhoneNumber        *string          `gorm:"type:varchar(20)" json:"phoneNumber,omitempty"`
	Role               UserRole         `gorm:"type:varchar(20);not null;default:'customer';check:chk_users_role,role IN ('customer','staff','manager','admin')" json:"role"`
	IsVerified         bool             `gorm:"not null;default:false" json:"isVerified"`
	VerificationToken  *string          `gorm:"type:varchar(255)" json:"-"`
	ResetPasswordToken *string          `gorm:"type:varchar(255)" json:"-"`
	Preferences        *UserPreferences `json:"preferences,omitempty"`
	LastLogin          *time.Time       `json:"lastLogin,omitempty"`
	CreatedAt          time.Time        `gorm:"not null" json:"createdAt"`
	UpdatedAt          time.Time        `gorm:"not null" json:"updatedAt"`
}
