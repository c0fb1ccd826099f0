package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/services"
	"gorm.io/gorm"
)

func setupWaitlistRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	ctrl := controllers.NewWaitlistController(services.NewWaitlistService(repository.NewWaitlistRepo(db), nil))
	r.POST("/api/waitlist", ctrl.AddToWaitlist)
	r.GET("/api/waitlist", ctrl.CurrentWaitlist)
	r.PATCH("/api/waitlist/:id/status", ctrl.UpdateStatus)
	return r
}

func TestWaitlistFlow(t *testing.T) {
	db := setupTestDB(t)
	r := setupWaitlistRouter(db)

	w, env := doJSON(t, r, http.MethodPost, "/api/waitlist",
		map[string]interface{}{"name": "Walk In", "phone": "555-0111", "partySize": 3}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry models.WaitlistEntry
	decode(t, env.Data, &entry)
	assert.Equal(t, models.WaitlistWaiting, entry.Status)

	w, _ = doJSON(t, r, http.MethodPost, "/api/waitlist", map[string]interface{}{"name": "No Phone", "partySize": 2}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = doJSON(t, r, http.MethodGet, "/api/waitlist", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, *env.Count)

	w, env = doJSON(t, r, http.MethodPatch, "/api/waitlist/1/status", map[string]interface{}{"status": "seated"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, env.Data, &entry)
	assert.Equal(t, models.WaitlistSeated, entry.Status)
	assert.NotNil(t, entry.SeatedTime)

	w, env = doJSON(t, r, http.MethodGet, "/api/waitlist", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, *env.Count)

	w, _ = doJSON(t, r, http.MethodPatch, "/api/waitlist/1/status", map[string]interface{}{"status": "gone"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doJSON(t, r, http.MethodPatch, "/api/waitlist/77/status", map[string]interface{}{"status": "left"}, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
