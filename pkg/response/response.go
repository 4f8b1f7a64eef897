package response

import (
	"errors"
	"net/http"

	"payments-pipeline/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the inner error object of the standard envelope.
type ErrorBody struct {
	Category  string `json:"category"`
	Message   string `json:"message"`
	Dimension string `json:"dimension,omitempty"`
}

// ErrorEnvelope is the standard error envelope: {"error": {...}}.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// JSON sends a success payload with the given status code.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// NotFound sends a 404 in the standard envelope.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorEnvelope{Error: ErrorBody{
		Category: string(apperror.CategoryValidation),
		Message:  message,
	}})
}

// Error maps err onto the error envelope. *apperror.AppError carries its own
// category and status; anything else becomes a generic 500 so internal
// detail never leaks.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, ErrorEnvelope{Error: ErrorBody{
			Category:  string(appErr.Category),
			Message:   appErr.Message,
			Dimension: appErr.Dimension,
		}})
		return
	}
	c.JSON(http.StatusInternalServerError, ErrorEnvelope{Error: ErrorBody{
		Category: string(apperror.CategoryUnexpected),
		Message:  "Internal server error",
	}})
}
