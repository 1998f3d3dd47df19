// Package handler adapts error-returning request handlers to gin.
package handler

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"

	apperrors "github.com/starterkit/server/internal/shared/errors"
)

// Func is a request handler that reports failure through its return value.
type Func func(c *gin.Context) error

// Wrap adapts h into a gin.HandlerFunc. A returned error, or a panic raised
// by h, is attached to the context and the chain is aborted so that the global
// error handler writes the response. Plain errors get the stack of this call.
// On success nothing is added.
func Wrap(h Func) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if v := recover(); v != nil {
				fail(c, &apperrors.Recovered{Value: v, Stack: string(debug.Stack())})
			}
		}()

		if err := h(c); err != nil {
			fail(c, apperrors.WithStack(err))
		}
	}
}

func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
