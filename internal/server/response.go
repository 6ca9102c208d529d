package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope of every API response.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Response{Code: 0, Message: "success", Data: data})
}

// fail writes an error envelope. The envelope code is the HTTP status times
// 100 plus a route-specific detail.
func fail(c *gin.Context, status, detail int, message string, data any) {
	c.AbortWithStatusJSON(status, Response{
		Code:    status*100 + detail,
		Message: message,
		Data:    data,
	})
}

func badRequest(c *gin.Context, message string) {
	fail(c, http.StatusBadRequest, 0, message, nil)
}
