package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/utils"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.UseJSONFieldNames()
}

type envelope struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	Count   *int               `json:"count"`
	Data    json.RawMessage    `json:"data"`
	Errors  []utils.FieldError `json:"errors"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedFloor(t *testing.T, db *gorm.DB) []models.RestaurantTable {
	t.Helper()
	area := models.DiningArea{Name: "Terrace", IsActive: true, Capacity: 20}
	require.NoError(t, db.Create(&area).Error)
	tables := []models.RestaurantTable{
		{DiningAreaID: area.ID, TableNumber: "A1", Capacity: 2, Status: models.TableAvailable, IsActive: true},
		{DiningAreaID: area.ID, TableNumber: "A2", Capacity: 4, Status: models.TableAvailable, IsActive: true},
		{DiningAreaID: area.ID, TableNumber: "A3", Capacity: 6, Status: models.TableAvailable, IsActive: true},
	}
	require.NoError(t, db.Create(&tables).Error)
	return tables
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") != "image/png" && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func decode(t *testing.T, raw json.RawMessage, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, dst))
}
