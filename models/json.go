package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// JSON columns are stored as text so the same schema migrates on MySQL,
// PostgreSQL and SQLite.

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src interface{}, dst interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported JSON column type %T", src)
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}

// StringList is a JSON-encoded list of strings (ingredients, allergens, dietary restrictions).
type StringList []string

func (StringList) GormDataType() string { return "text" }

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return jsonValue([]string(l))
}

func (l *StringList) Scan(src interface{}) error { return jsonScan(src, (*[]string)(l)) }

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type FloorPlan struct {
	Layout     string     `json:"layout"`
	Dimensions Dimensions `json:"dimensions"`
}

func (FloorPlan) GormDataType() string { return "text" }

func (f FloorPlan) Value() (driver.Value, error) { return jsonValue(f) }

func (f *FloorPlan) Scan(src interface{}) error { return jsonScan(src, f) }

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (Position) GormDataType() string { return "text" }

func (p Position) Value() (driver.Value, error) { return jsonValue(p) }

func (p *Position) Scan(src interface{}) error { return jsonScan(src, p) }

func (Dimensions) GormDataType() string { return "text" }

func (d Dimensions) Value() (driver.Value, error) { return jsonValue(d) }

func (d *Dimensions) Scan(src interface{}) error { return jsonScan(src, d) }

// TableFeatures describes accessibility and placement of a table.
type TableFeatures struct {
	IsAccessible bool `json:"isAccessible,omitempty"`
	IsOutdoor    bool `json:"isOutdoor,omitempty"`
	HasView      bool `json:"hasView,omitempty"`
	IsQuiet      bool `json:"isQuiet,omitempty"`
}

func (TableFeatures) GormDataType() string { return "text" }

func (t TableFeatures) Value() (driver.Value, error) { return jsonValue(t) }

func (t *TableFeatures) Scan(src interface{}) error { return jsonScan(src, t) }

type PreOrderItem struct {
	MenuItemID     uint   `json:"menuItemId"`
	Quantity       int    `json:"quantity"`
	SpecialRequest string `json:"specialRequest,omitempty"`
}

type MenuPreferences struct {
	SelectedItems       []uint         `json:"selectedItems,omitempty"`
	DietaryRestrictions []string       `json:"dietaryRestrictions,omitempty"`
	PreOrderItems       []PreOrderItem `json:"preOrderItems,omitempty"`
}

func (MenuPreferences) GormDataType() string { return "text" }

func (m MenuPreferences) Value() (driver.Value, error) { return jsonValue(m) }

func (m *MenuPreferences) Scan(src interface{}) error { return jsonScan(src, m) }

type NotificationPreferences struct {
	Email      bool `json:"email,omitempty"`
	SMS        bool `json:"sms,omitempty"`
	Promotions bool `json:"promotions,omitempty"`
}

type UserPreferences struct {
	DietaryRestrictions     []string                 `json:"dietaryRestrictions,omitempty"`
	FavoriteItems           []uint                   `json:"favoriteItems,omitempty"`
	SeatingPreference       string                   `json:"seatingPreference,omitempty"`
	MarketingConsent        bool                     `json:"marketingConsent,omitempty"`
	NotificationPreferences *NotificationPreferences `json:"notificationPreferences,omitempty"`
}

func (UserPreferences) GormDataType() string { return "text" }

func (u UserPreferences) Value() (driver.Value, error) { return jsonValue(u) }

func (u *UserPreferences) Scan(src interface{}) error { return jsonScan(src, u) }

type NutritionalInfo struct {
	Calories int `json:"calories,omitempty"`
	Protein  int `json:"protein,omitempty"`
	Carbs    int `json:"carbs,omitempty"`
	Fat      int `json:"fat,omitempty"`
	Sodium   int `json:"sodium,omitempty"`
}

func (NutritionalInfo) GormDataType() string { return "text" }

func (n NutritionalInfo) Value() (driver.Value, error) { return jsonValue(n) }

func (n *NutritionalInfo) Scan(src interface{}) error { return jsonScan(src, n) }

type BillingDetails struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type PaymentMetadata struct {
	CardBrand      string          `json:"cardBrand,omitempty"`
	Last4          string          `json:"last4,omitempty"`
	BillingDetails *BillingDetails `json:"billingDetails,omitempty"`
}

func (PaymentMetadata) GormDataType() string { return "text" }

func (p PaymentMetadata) Value() (driver.Value, error) { return jsonValue(p) }

func (p *PaymentMetadata) Scan(src interface{}) error { return jsonScan(src, p) }
