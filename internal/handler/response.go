package handler

import (
	"context"
	"net/http"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// respondError writes the error envelope for err. Server errors are logged
// here so services only log what they know about the failure.
func respondError(ctx context.Context, c *gin.Context, err error, development bool) {
	status, body := apperrors.HTTPResponse(err, development)
	if status >= http.StatusInternalServerError {
		logger.ErrorWithContext(ctx, "Request failed").
			String("path", c.Request.URL.Path).
			Int("http_status", status).
			Err(err).
			Log()
	}
	c.JSON(status, body)
}

// validatedBody returns the DTO stored by the validation middleware
func validatedBody[T any](c *gin.Context) (*T, bool) {
	value, ok := c.Get(constants.GinKeyValidatedBody)
	if !ok {
		return nil, false
	}
	req, ok := value.(*T)
	return req, ok
}
