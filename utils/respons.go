package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	Detail  string       `json:"detail,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Success: code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondList writes a success envelope with a count of the returned items.
func RespondList(c *gin.Context, message string, count int, data interface{}) {
	c.JSON(http.StatusOK, JSONResponse{
		Success: true,
		Message: message,
		Count:   &count,
		Data:    data,
	})
}

// RespondError writes the error envelope with the status derived from err.
func RespondError(c *gin.Context, err error) {
	RespondErrorCode(c, StatusFor(err), err)
}

func RespondErrorCode(c *gin.Context, code int, err error) {
	resp := ErrorResponse{
		Success: false,
		Message: err.Error(),
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		resp.Message = ve.Message
		resp.Errors = ve.Fields
	}

	if code >= http.StatusInternalServerError {
		ErrorLogger.WithField("path", c.Request.URL.Path).Errorf("request failed: %v", err)
		if gin.Mode() != gin.ReleaseMode {
			resp.Detail = err.Error()
		} else {
			resp.Message = "Internal server error"
		}
	}

	c.JSON(code, resp)
}
