package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/database"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/realtime"
	"github.com/yeremiapane/restaurant-reservations/repository"
	"github.com/yeremiapane/restaurant-reservations/router"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger("warn")
	utils.UseJSONFieldNames()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type apiResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Count   *int            `json:"count"`
	Data    json.RawMessage `json:"data"`
}

func call(t *testing.T, srv *httptest.Server, method, path string, body interface{}, token string) (int, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out apiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// TestEndToEndIntegration walks the main flow against the full router:
// 1. seeded floor and a staff account, login -> token
// 2. a dashboard listens on /ws
// 3. a guest checks availability and books the first table
// 4. the dashboard hears about the booking
// 5. staff confirm, seat and complete the reservation
// 6. the table is free again and the history holds every step
func TestEndToEndIntegration(t *testing.T) {
	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)
	require.NoError(t, database.Seed(db))

	tokens := utils.NewTokenManager("integration-secret", time.Hour)
	users := services.NewUserService(repository.NewUserRepo(db), tokens)
	_, err = users.EnsureUser(context.Background(), "host@olive.example", "host-password", models.RoleStaff)
	require.NoError(t, err)

	hub := realtime.NewHub()
	srv := httptest.NewServer(router.SetupRouter(db, hub, tokens, router.Options{AllowedOrigins: []string{"*"}}))
	defer srv.Close()

	code, body := call(t, srv, http.MethodPost, "/api/auth/login",
		map[string]string{"email": "host@olive.example", "password": "host-password"}, "")
	require.Equal(t, http.StatusOK, code, body.Message)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &login))
	staffToken := login.Token

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var msg realtime.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, realtime.EventConnected, msg.Type)

	code, body = call(t, srv, http.MethodGet, "/api/tables/available?date=2030-06-01&time=19:00&partySize=4", nil, "")
	require.Equal(t, http.StatusOK, code)
	var tables []models.RestaurantTable
	require.NoError(t, json.Unmarshal(body.Data, &tables))
	require.NotEmpty(t, tables)
	assert.Equal(t, "M3", tables[0].TableNumber)

	code, body = call(t, srv, http.MethodPost, "/api/reservations", map[string]interface{}{
		"name":    "Margaret Hamilton",
		"email":   "margaret@example.com",
		"phone":   "555-0142",
		"date":    "2030-06-01",
		"time":    "19:00",
		"guests":  4,
		"tableId": tables[0].ID,
	}, "")
	require.Equal(t, http.StatusCreated, code, body.Message)
	var res models.Reservation
	require.NoError(t, json.Unmarshal(body.Data, &res))

	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, realtime.EventNewReservation, msg.Type)

	code, body = call(t, srv, http.MethodGet, "/api/tables/available?date=2030-06-01&time=19:00&partySize=4", nil, "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body.Data, &tables))
	for _, tbl := range tables {
		assert.NotEqual(t, "M3", tbl.TableNumber)
	}

	statusPath := "/api/reservations/" + strconv.FormatUint(uint64(res.ID), 10) + "/status"
	for _, status := range []string{"confirmed", "seated", "completed"} {
		code, body = call(t, srv, http.MethodPatch, statusPath, map[string]string{"status": status}, staffToken)
		require.Equal(t, http.StatusOK, code, body.Message)
		require.NoError(t, conn.ReadJSON(&msg))
		assert.Equal(t, realtime.EventReservationStatusUpdated, msg.Type)
	}
	require.NoError(t, json.Unmarshal(body.Data, &res))
	assert.Equal(t, models.ReservationCompleted, res.Status)
	assert.NotNil(t, res.ArrivalTime)
	assert.NotNil(t, res.DepartureTime)

	code, _ = call(t, srv, http.MethodPatch, statusPath, map[string]string{"status": "bogus"}, staffToken)
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = call(t, srv, http.MethodGet, "/api/reservations/"+strconv.FormatUint(uint64(res.ID), 10)+"/history", nil, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 4, *body.Count)

	code, body = call(t, srv, http.MethodGet, "/api/tables/available?date=2030-06-01&time=19:00&partySize=4", nil, "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(body.Data, &tables))
	assert.Equal(t, "M3", tables[0].TableNumber)

	code, _ = call(t, srv, http.MethodPost, "/api/admin/tables",
		map[string]interface{}{"diningAreaId": 1, "tableNumber": "M9", "capacity": 10}, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, body = call(t, srv, http.MethodPost, "/api/admin/tables",
		map[string]interface{}{"diningAreaId": 1, "tableNumber": "M9", "capacity": 10}, staffToken)
	assert.Equal(t, http.StatusCreated, code, body.Message)

	code, body = call(t, srv, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "pong", body.Message)
}
