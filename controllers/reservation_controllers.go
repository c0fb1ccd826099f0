package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type ReservationController struct {
	Reservations *services.ReservationService
}

func NewReservationController(reservations *services.ReservationService) *ReservationController {
	return &ReservationController{Reservations: reservations}
}

// CreateReservation books a table request. A signed-in guest is linked to the reservation.
func (rc *ReservationController) CreateReservation(c *gin.Context) {
	var req services.CreateReservationInput
	if !bindJSON(c, &req) {
		return
	}
	if req.UserID == nil {
		if id, ok := middlewares.CurrentUserID(c); ok {
			req.UserID = &id
		}
	}

	res, err := rc.Reservations.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Reservation created successfully", res)
}

func (rc *ReservationController) ListByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.RespondError(c, utils.NewValidationError("date", "is required"))
		return
	}
	list, err := rc.Reservations.ListByDate(c.Request.Context(), date)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Reservations for "+date, len(list), list)
}

func (rc *ReservationController) Search(c *gin.Context) {
	list, err := rc.Reservations.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Search results", len(list), list)
}

func (rc *ReservationController) Upcoming(c *gin.Context) {
	list, err := rc.Reservations.Upcoming(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Upcoming reservations", len(list), list)
}

func (rc *ReservationController) GetByConfirmationCode(c *gin.Context) {
	res, err := rc.Reservations.GetByConfirmationCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation found", res)
}

func (rc *ReservationController) ConfirmationQR(c *gin.Context) {
	png, err := rc.Reservations.ConfirmationQR(c.Request.Context(), c.Param("code"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func (rc *ReservationController) GetByID(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	res, err := rc.Reservations.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation found", res)
}

func (rc *ReservationController) History(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	history, err := rc.Reservations.History(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Reservation history", len(history), history)
}

// UpdateStatus applies a status change. The acting user comes from the body or, failing
// that, from the bearer token.
func (rc *ReservationController) UpdateStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req services.StatusUpdateInput
	if !bindJSON(c, &req) {
		return
	}
	if req.ActorUserID == nil {
		if userID, ok := middlewares.CurrentUserID(c); ok {
			req.ActorUserID = &userID
		}
	}

	res, err := rc.Reservations.SetStatus(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation status updated", res)
}

// MyReservations lists the reservations of the signed-in user.
func (rc *ReservationController) MyReservations(c *gin.Context) {
	userID, err := middlewares.RequireUserID(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	list, err := rc.Reservations.ListByUser(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Your reservations", len(list), list)
}
