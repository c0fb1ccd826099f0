package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// SettingsController exposes opening hours, restaurant settings and special events.
type SettingsController struct {
	Catalog *services.CatalogService
}

func NewSettingsController(catalog *services.CatalogService) *SettingsController {
	return &SettingsController{Catalog: catalog}
}

func (sc *SettingsController) OperatingHours(c *gin.Context) {
	hours, err := sc.Catalog.OperatingHours(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Operating hours", len(hours), hours)
}

func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.Catalog.Settings(c.Request.Context(), c.Param("category"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Settings", len(settings), settings)
}

// SaveSetting creates or replaces one setting in the category.
func (sc *SettingsController) SaveSetting(c *gin.Context) {
	var req services.SettingInput
	if !bindJSON(c, &req) {
		return
	}

	setting, err := sc.Catalog.SaveSetting(c.Request.Context(), c.Param("category"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Setting saved", setting)
}

func (sc *SettingsController) SpecialEvents(c *gin.Context) {
	events, err := sc.Catalog.SpecialEvents(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Special events", len(events), events)
}

// SpecialEvent accepts either the numeric id or the slug.
func (sc *SettingsController) SpecialEvent(c *gin.Context) {
	event, err := sc.Catalog.SpecialEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Special event found", event)
}

func (sc *SettingsController) CreateSpecialEvent(c *gin.Context) {
	var req services.SpecialEventInput
	if !bindJSON(c, &req) {
		return
	}

	event, err := sc.Catalog.CreateSpecialEvent(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Special event created successfully", event)
}
