package middleware

import (
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/starterkit/server/internal/shared/config"
	apperrors "github.com/starterkit/server/internal/shared/errors"
	"github.com/starterkit/server/internal/shared/logger"
	"github.com/starterkit/server/internal/shared/response"
	"github.com/starterkit/server/internal/utils/metrics"
	"github.com/starterkit/server/internal/utils/requestctx"
)

// errorLoggedKey marks a request whose failure the responder already logged.
const errorLoggedKey = "error_logged"

// ErrorResponder is the single place where a request failure becomes a log
// line and an error envelope.
type ErrorResponder struct {
	development bool
	log         *logger.Logger
	metrics     *metrics.Metrics
}

// NewErrorResponder creates an ErrorResponder. m may be nil.
func NewErrorResponder(cfg *config.Config, log *logger.Logger, m *metrics.Metrics) *ErrorResponder {
	return &ErrorResponder{
		development: cfg.IsDevelopment(),
		log:         log,
		metrics:     m,
	}
}

// Respond logs failure once and writes the error envelope, unless the handler
// already wrote a response.
func (r *ErrorResponder) Respond(c *gin.Context, failure any) {
	fields := append(requestctx.Fields(c.Request.Context()),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
	)
	if err, ok := failure.(error); ok {
		fields = append(fields, zap.Error(err))
	} else {
		fields = append(fields, zap.Any("error", failure))
	}

	// Development logs to the console instead of the error channel, never both.
	if r.development {
		r.log.Console().Error("globalErrorHandler", fields...)
	} else {
		r.log.Error("globalErrorHandler", fields...)
	}
	c.Set(errorLoggedKey, true)

	cls := apperrors.Classify(failure)
	if r.metrics != nil {
		r.metrics.RecordError(cls.Kind.String(), cls.StatusCode)
	}

	if c.Writer.Written() {
		c.Abort()
		return
	}

	body := response.ErrorBody{
		Message:       cls.Message,
		ErrorMessages: apperrors.Messages(cls.Message),
	}
	if r.development {
		body.Stack = cls.Stack
	}
	response.Error(c, cls.StatusCode, body)
}

// recoverInto answers a panic in the current chain through r.
func (r *ErrorResponder) recoverInto(c *gin.Context) {
	if v := recover(); v != nil {
		r.Respond(c, &apperrors.Recovered{Value: v, Stack: string(debug.Stack())})
	}
}

// ErrorHandler returns the global error handling middleware. It must run
// before the route handlers so that it sees their errors after c.Next().
func ErrorHandler(r *ErrorResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer r.recoverInto(c)

		c.Next()

		if last := c.Errors.Last(); last != nil {
			r.Respond(c, last.Err)
		}
	}
}
