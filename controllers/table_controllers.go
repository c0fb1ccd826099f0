package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

const defaultPartySize = 2

// TableController serves the floor plan: availability lookups for guests and table
// administration for staff.
type TableController struct {
	Availability *services.AvailabilityService
	Catalog      *services.CatalogService
}

func NewTableController(availability *services.AvailabilityService, catalog *services.CatalogService) *TableController {
	return &TableController{Availability: availability, Catalog: catalog}
}

// AvailableTables -> GET /api/tables/available?date=&time=&partySize=
func (tc *TableController) AvailableTables(c *gin.Context) {
	partySize, err := queryInt(c, "partySize", 0)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	tables, err := tc.Availability.AvailableTables(c.Request.Context(), c.Query("date"), c.Query("time"), partySize)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Available tables", len(tables), tables)
}

// TimeSlots -> GET /api/time-slots?date=&partySize=
func (tc *TableController) TimeSlots(c *gin.Context) {
	partySize, err := queryInt(c, "partySize", defaultPartySize)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	slots, err := tc.Availability.TimeSlots(c.Request.Context(), c.Query("date"), partySize)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Available time slots", len(slots), slots)
}

func (tc *TableController) DiningAreas(c *gin.Context) {
	areas, err := tc.Availability.DiningAreas(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Dining areas", len(areas), areas)
}

func (tc *TableController) AreaTables(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	tables, err := tc.Availability.TablesInArea(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Tables in dining area", len(tables), tables)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req services.TableInput
	if !bindJSON(c, &req) {
		return
	}

	table, err := tc.Catalog.CreateTable(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

func (tc *TableController) UpdateTable(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	var req services.TableUpdateInput
	if !bindJSON(c, &req) {
		return
	}

	table, err := tc.Catalog.UpdateTable(c.Request.Context(), id, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}

// DeleteTable deactivates the table; its reservations keep pointing at it.
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	if err := tc.Catalog.DeactivateTable(c.Request.Context(), id); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deactivated successfully", nil)
}
