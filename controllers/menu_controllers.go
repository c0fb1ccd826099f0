package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

type MenuController struct {
	Catalog *services.CatalogService
}

func NewMenuController(catalog *services.CatalogService) *MenuController {
	return &MenuController{Catalog: catalog}
}

func (mc *MenuController) GetCategories(c *gin.Context) {
	categories, err := mc.Catalog.MenuCategories(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Menu categories", len(categories), categories)
}

// GetItems lists the available items of one category.
func (mc *MenuController) GetItems(c *gin.Context) {
	id, err := paramID(c, "id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	items, err := mc.Catalog.MenuItems(c.Request.Context(), id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Menu items", len(items), items)
}

func (mc *MenuController) GetFeatured(c *gin.Context) {
	items, err := mc.Catalog.FeaturedItems(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondList(c, "Featured menu items", len(items), items)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req services.MenuItemInput
	if !bindJSON(c, &req) {
		return
	}

	item, err := mc.Catalog.CreateMenuItem(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}
