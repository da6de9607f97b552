package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"syntra-pos/internal/database/models"
	"syntra-pos/internal/gateway/middleware"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ListMeta struct {
	Count int `json:"count"`
}

func successResponse(message string, data interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func errorResponse(message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
	}
}

func successWithMetaResponse(message string, data interface{}, meta interface{}) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Meta:    meta,
	}
}

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// publicError returns the status and message for err. Internal errors are logged and
// replaced by a generic message.
func publicError(c *gin.Context, err error) (int, string) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("[%s] ERROR %s %s: %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
		return status, "Internal server error"
	}
	return status, err.Error()
}

// legacyError answers the form/JSON endpoints used by the shop front: {"success": false, "error": msg}.
func legacyError(c *gin.Context, err error) {
	status, msg := publicError(c, err)
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}

func apiError(c *gin.Context, err error) {
	status, msg := publicError(c, err)
	c.JSON(status, errorResponse(msg))
}

func pageError(c *gin.Context, err error) {
	status, msg := publicError(c, err)
	c.String(status, msg)
}

func requestID(c *gin.Context) string {
	return middleware.GetRequestID(c)
}

func parseIntParam(c *gin.Context, param string) (int, error) {
	return strconv.Atoi(c.Param(param))
}
