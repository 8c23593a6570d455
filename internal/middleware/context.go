package middleware

import (
	"time"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxRequestIDLength = 128

// ContextMiddleware attaches request id, client ip and user agent to the
// request context and bounds the request with timeout when it is positive.
// An incoming X-Request-ID is kept so callers can correlate logs.
func ContextMiddleware(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderXRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		ctx := ctxutil.NewRequestContext(
			c.Request.Context(),
			requestID,
			c.ClientIP(),
			c.GetHeader(constants.HeaderUserAgent),
		)
		if timeout > 0 {
			var cancel func()
			ctx, cancel = ctxutil.WithTimeout(ctx, timeout)
			defer cancel()
		}

		c.Request = c.Request.WithContext(ctx)
		c.Header(constants.HeaderXRequestID, requestID)

		logger.DebugWithContext(ctx, "Request started").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			Log()

		c.Next()

		// the auth middleware may have added the user id further down the chain
		logger.DebugWithContext(c.Request.Context(), "Request completed").
			String("method", c.Request.Method).
			String("path", c.Request.URL.Path).
			Int("status_code", c.Writer.Status()).
			Int("response_size", c.Writer.Size()).
			Duration(ctxutil.GetDuration(ctx)).
			Log()
	}
}
