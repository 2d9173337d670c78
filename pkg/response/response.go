package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope shared by every JSON endpoint except the
// latest-notice and message-list reads, which return bare documents.
type APIResponse[T any] struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      T      `json:"data,omitempty"`
	Error     any    `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success writes a successful envelope carrying data.
func Success[T any](ctx *gin.Context, status int, data T, message string) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: ctx.GetString("request_id"),
	})
}

// OK writes a successful envelope without data.
func OK(ctx *gin.Context, message string) {
	Success[any](ctx, http.StatusOK, nil, message)
}

// Error writes a failure envelope. details is optional field-level information.
func Error(ctx *gin.Context, status int, message string, details any) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.JSON(status, APIResponse[any]{
		Success:   false,
		Message:   message,
		Error:     details,
		RequestID: ctx.GetString("request_id"),
	})
}

// Abort writes a failure envelope and stops the handler chain.
func Abort(ctx *gin.Context, status int, message string) {
	Error(ctx, status, message, nil)
	ctx.Abort()
}
