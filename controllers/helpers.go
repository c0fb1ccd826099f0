package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

// paramID reads a positive integer path parameter.
func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, utils.NewValidationError(name, "must be a positive integer")
	}
	return uint(id), nil
}

// queryInt reads an integer query parameter, falling back when it is absent.
func queryInt(c *gin.Context, name string, fallback int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.NewValidationError(name, "must be an integer")
	}
	return n, nil
}

// bindJSON binds the request body and reports failures as validation errors.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondError(c, utils.BindingError(err))
		return false
	}
	return true
}
