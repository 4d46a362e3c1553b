package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Message là error/status body chuẩn của API: { "message": "..." }
type Message struct {
	Message string `json:"message"`
}

// Created body cho POST /api/create
type Created struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func CreatedWithID(c *gin.Context, id, message string) {
	c.JSON(http.StatusCreated, Created{ID: id, Message: message})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Message{Message: message})
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, message)
}

func GatewayTimeout(c *gin.Context, message string) {
	Error(c, http.StatusGatewayTimeout, message)
}
