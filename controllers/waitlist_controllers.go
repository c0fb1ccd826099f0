package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type WaitlistController struct {
	Waitlist *services.WaitlistService
}

func NewWaitlistController(waitlist *services.WaitlistService) *WaitlistController {
	return &WaitlistController{Waitlist: waitlist}
}

func (wc *WaitlistController) AddToWaitlist(c *gin.Context) {
	var req services.AddWaitlistInput
	if !bindJSON(c, &req) {
		return
	}

	entry, err := wc.Waitlist.Add(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Added to waitlist", entry)
}

func (wc *WaitlistController) CurrentWaitlist(c *gin.Context) {
	entries, err := wc.Waitlist.Current(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Current waitlist", len(entries), entries)
}

func (wc *WaitlistController) UpdateStatus(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req services.WaitlistStatusInput
	if !bindJSON(c, &req) {
		return
	}

	entry, err := wc.Waitlist.SetStatus(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Waitlist status updated", entry)
}
