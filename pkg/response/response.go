package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the shape of every successful response body.
type Envelope struct {
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
	Data       any    `json:"data"`
}

// ErrorBody is the shape of every error response body. Fields carries
// per-field validation messages when present.
type ErrorBody struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func Success(c *gin.Context, status int, message string, data any) {
	if status == 0 {
		status = http.StatusOK
	}
	c.JSON(status, Envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

func Error(c *gin.Context, status int, detail string) {
	c.JSON(status, ErrorBody{Detail: detail})
}

// ValidationError reports per-field binding failures alongside the detail.
func ValidationError(c *gin.Context, detail string, fields map[string]string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Detail: detail, Fields: fields})
}

// AbortError writes an error body and stops the handler chain. Used by
// middleware that must short-circuit.
func AbortError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, ErrorBody{Detail: detail})
}
