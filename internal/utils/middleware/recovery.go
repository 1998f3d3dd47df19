package middleware

import (
	"github.com/gin-gonic/gin"
)

// Recovery returns the outermost middleware. It catches panics raised by the
// middleware registered ahead of ErrorHandler and answers them the same way.
func Recovery(r *ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer r.recoverInto(c)
		c.Next()
	}
}
