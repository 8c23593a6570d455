package middleware

import (
	"context"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

// Authenticator resolves an Authorization header to the caller's identity
type Authenticator interface {
	Authenticate(ctx context.Context, header string) (*dto.AuthenticatedUser, error)
}

type JWTMiddleware struct {
	auth Authenticator
}

func NewJWTMiddleware(auth Authenticator) *JWTMiddleware {
	return &JWTMiddleware{auth: auth}
}

// RequireAuth rejects requests without a valid bearer access token. On
// success the user id and email are available both as gin keys and on the
// request context.
func (m *JWTMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		user, err := m.auth.Authenticate(ctx, c.GetHeader(constants.HeaderAuthorization))
		if err != nil {
			logger.WarnWithContext(ctx, "Request rejected: unauthenticated").
				String("path", c.Request.URL.Path).
				String("method", c.Request.Method).
				Err(err).
				Log()
			status, body := apperrors.HTTPResponse(err, false)
			c.AbortWithStatusJSON(status, body)
			return
		}

		c.Set(constants.GinKeyUserID, user.UserID)
		c.Set(constants.GinKeyEmail, user.Email)

		ctx = ctxutil.WithUserID(ctx, user.UserID)
		ctx = ctxutil.WithEmail(ctx, user.Email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AuthenticatedUser returns the identity stored by RequireAuth
func AuthenticatedUser(c *gin.Context) (*dto.AuthenticatedUser, bool) {
	userID, ok := c.Get(constants.GinKeyUserID)
	if !ok {
		return nil, false
	}
	id, ok := userID.(uint)
	if !ok {
		return nil, false
	}
	return &dto.AuthenticatedUser{UserID: id, Email: c.GetString(constants.GinKeyEmail)}, true
}
