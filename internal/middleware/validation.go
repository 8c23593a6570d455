package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/Payphone-Digital/auth-service/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// normalizer is implemented by request DTOs that clean their fields before
// validation runs
type normalizer interface {
	Normalize()
}

type ValidationMiddleware struct {
	validate *validator.Validate
}

func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{validate: validation.New()}
}

// ValidateRequestBody decodes the JSON body into factory(), normalizes and
// validates it, and stores the result under GinKeyValidatedBody. An empty
// body is treated as {} so missing fields are reported per field.
func (m *ValidationMiddleware) ValidateRequestBody(factory func() any) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var bodyBytes []byte
		if c.Request.Body != nil {
			var err error
			bodyBytes, err = io.ReadAll(c.Request.Body)
			if err != nil {
				logger.WarnWithContext(ctx, "Failed to read request body").
					String("path", c.Request.URL.Path).
					Err(err).
					Log()
				c.AbortWithStatusJSON(http.StatusBadRequest,
					constants.BuildErrorResponse(constants.MsgBadRequest, ""))
				return
			}
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		if len(bytes.TrimSpace(bodyBytes)) == 0 {
			bodyBytes = []byte("{}")
		}

		request := factory()
		if err := binding.JSON.BindBody(bodyBytes, request); err != nil {
			logger.WarnWithContext(ctx, "Invalid JSON body").
				String("path", c.Request.URL.Path).
				Int("body_size", len(bodyBytes)).
				Err(err).
				Log()
			c.AbortWithStatusJSON(http.StatusBadRequest,
				constants.BuildErrorResponse(constants.MsgInvalidJSON, ""))
			return
		}

		if n, ok := request.(normalizer); ok {
			n.Normalize()
		}

		if err := m.validate.Struct(request); err != nil {
			details := validation.Translate(err)
			logger.DebugWithContext(ctx, "Request validation failed").
				String("path", c.Request.URL.Path).
				Int("error_count", len(details)).
				Log()
			c.AbortWithStatusJSON(http.StatusBadRequest,
				constants.BuildValidationErrorResponse(constants.MsgValidationFailed, details))
			return
		}

		c.Set(constants.GinKeyValidatedBody, request)
		c.Next()
	}
}
