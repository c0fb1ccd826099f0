package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/realtime"
)

// WSController upgrades staff dashboards to the live update feed.
type WSController struct {
	Hub *realtime.Hub
}

func NewWSController(hub *realtime.Hub) *WSController {
	return &WSController{Hub: hub}
}

func (wc *WSController) Connect(c *gin.Context) {
	wc.Hub.ServeWS(c.Writer, c.Request)
}
