package models

import "time"

type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableReserved    TableStatus = "reserved"
	TableOccupied    TableStatus = "occupied"
	TableMaintenance TableStatus = "maintenance"
)

func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableReserved, TableOccupied, TableMaintenance:
		return true
	}
	return false
}

type RestaurantTable struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	DiningAreaID uint           `gorm:"not null;index" json:"diningAreaId"`
	TableNumber  string         `gorm:"type:varchar(20);not null;uniqueIndex:table_number_unique" json:"tableNumber"`
	Capacity     int            `gorm:"not null" json:"capacity"`
	Status       TableStatus    `gorm:"type:varchar(20);not null;default:'available';check:chk_tables_status,status IN ('available','reserved','occupied','maintenance')" json:"status"`
	IsActive     bool           `gorm:"not null;default:true" json:"isActive"`
	Position     *Position      `json:"position,omitempty"`
	Shape        string         `gorm:"type:varchar(20);default:'rectangle'" json:"shape"`
	Size         *Dimensions    `json:"size,omitempty"`
	Metadata     *TableFeatures `json:"metadata,omitempty"`
	CreatedAt    time.Time      `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updatedAt"`
}
