package middleware

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// LoggingMiddleware writes one zap line per request. Gin's own text output
// is discarded.
func LoggingMiddleware(skipPaths ...string) gin.HandlerFunc {
	return gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			logger.LogRequest(
				param.Method,
				param.Path,
				param.StatusCode,
				param.Latency.Milliseconds(),
				param.ClientIP,
				param.Request.UserAgent(),
			)
			return ""
		},
		Output:    io.Discard,
		SkipPaths: skipPaths,
	})
}

// RecoveryMiddleware turns a panic into the standard 500 envelope. The panic
// value is only returned to the client when exposeDetail is set.
func RecoveryMiddleware(exposeDetail bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.LogPanic(recovered)

		detail := ""
		if exposeDetail {
			detail = fmt.Sprint(recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			constants.BuildErrorResponse(constants.MsgInternalError, detail))
	})
}
