package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-server/internal/apperrors"
	"portfolio-server/internal/logger"
)

const msgInternal = "Une erreur interne est survenue"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// DataResponse wraps a single resource.
type DataResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// ListResponse wraps a collection.
type ListResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Count   int         `json:"count"`
}

// Success sends a 200 with the resource.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, DataResponse{Success: true, Data: data})
}

// Created sends a 201 with the new resource.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, DataResponse{Success: true, Data: data})
}

// List sends a 200 with a collection and its size.
func List(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, ListResponse{Success: true, Data: data, Count: count})
}

// Error sends an error body with the given status.
func Error(c *gin.Context, statusCode int, message string, details map[string]interface{}) {
	c.JSON(statusCode, ErrorResponse{Error: message, Details: details})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message, nil)
}

// Forbidden sends a 403 Forbidden error response.
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message, nil)
}

// HandleError writes err to the client. AppErrors keep their status and
// message; internal and unknown errors are logged and shown generically.
func HandleError(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Kind == apperrors.KindInternal {
		logger.FromContext(c.Request.Context()).Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
		Error(c, http.StatusInternalServerError, msgInternal, nil)
		return
	}
	Error(c, appErr.StatusCode(), appErr.Message, appErr.Details)
}
