package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/gin-gonic/gin"
)

var (
	corsAllowedMethods = []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodDelete,
		http.MethodPatch,
		http.MethodOptions,
	}
	corsAllowedHeaders = []string{constants.HeaderContentType, constants.HeaderAuthorization}
	corsExposedHeaders = []string{"Content-Range", "X-Content-Range"}
	corsMaxAge         = 86400
)

// CORS allows any origin outside production. In production only origins in
// allowedOrigins are echoed back; other origins get no CORS headers at all.
func CORS(environment string, allowedOrigins []string) gin.HandlerFunc {
	production := environment == constants.EnvProduction

	return func(c *gin.Context) {
		origin := c.GetHeader(constants.HeaderOrigin)

		switch {
		case !production:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(allowedOrigins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", constants.HeaderOrigin)
		default:
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusNoContent)
				return
			}
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Methods", strings.Join(corsAllowedMethods, ", "))
		c.Header("Access-Control-Allow-Headers", strings.Join(corsAllowedHeaders, ", "))
		c.Header("Access-Control-Expose-Headers", strings.Join(corsExposedHeaders, ", "))
		c.Header("Access-Control-Max-Age", strconv.Itoa(corsMaxAge))

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
