package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/starterkit/server/internal/shared/errors"
)

// ErrorBody is the JSON shape of every failed request.
type ErrorBody struct {
	Success       bool                            `json:"success"`
	Message       string                          `json:"message"`
	ErrorMessages []apperrors.GenericErrorMessage `json:"errorMessages"`
	Stack         string                          `json:"stack,omitempty"`
}

// Error aborts the chain and writes an ErrorBody with the given status.
func Error(c *gin.Context, status int, body ErrorBody) {
	body.Success = false
	if body.ErrorMessages == nil {
		body.ErrorMessages = []apperrors.GenericErrorMessage{}
	}
	c.AbortWithStatusJSON(status, body)
}

// NotFound writes the response for an unmatched route.
func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, ErrorBody{
		Message: "Not Found",
		ErrorMessages: []apperrors.GenericErrorMessage{
			{Path: c.Request.URL.String(), Message: "API Not Found"},
		},
	})
}
