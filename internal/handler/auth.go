package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/dto"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/middleware"
	"github.com/Payphone-Digital/auth-service/internal/service"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
	development bool
}

func NewAuthHandler(authService *service.AuthService, development bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		development: development,
	}
}

// Register expects the validation middleware to have stored a RegisterRequest
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "Register")

	req, ok := validatedBody[dto.RegisterRequest](c)
	if !ok {
		respondError(ctx, c, apperrors.ErrValidation, h.development)
		return
	}

	response, err := h.authService.Register(ctx, *req)
	if err != nil {
		respondError(ctx, c, err, h.development)
		return
	}

	c.JSON(http.StatusCreated, constants.BuildSuccessResponse(constants.MsgRegistered, response, nil))
}

func (h *AuthHandler) Login(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "Login")

	req, ok := validatedBody[dto.LoginRequest](c)
	if !ok {
		respondError(ctx, c, apperrors.ErrValidation, h.development)
		return
	}

	response, err := h.authService.Login(ctx, *req)
	if err != nil {
		respondError(ctx, c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgLoggedIn, response, nil))
}

// RefreshToken issues a new access token. The refresh token itself is not rotated.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "RefreshToken")

	req, ok := h.bindRefreshToken(c)
	if !ok {
		return
	}

	response, err := h.authService.Refresh(ctx, req.RefreshToken)
	if err != nil {
		respondError(ctx, c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgTokenRefreshed, response, nil))
}

// Logout revokes the given refresh token. Unknown tokens still succeed.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "Logout")

	req, ok := h.bindRefreshToken(c)
	if !ok {
		return
	}

	if err := h.authService.Logout(ctx, req.RefreshToken); err != nil {
		respondError(ctx, c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgLoggedOut, nil, nil))
}

// Me echoes the identity carried by the access token
func (h *AuthHandler) Me(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "Me")

	user, ok := middleware.AuthenticatedUser(c)
	if !ok {
		respondError(ctx, c, apperrors.ErrMissingToken, h.development)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgAuthenticated, user, nil))
}

// bindRefreshToken accepts an empty body so the service can report the
// missing token itself. Only malformed JSON is rejected here.
func (h *AuthHandler) bindRefreshToken(c *gin.Context) (dto.RefreshTokenRequest, bool) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.WarnWithContext(c.Request.Context(), "Invalid refresh token request").
			Err(err).
			Log()
		c.JSON(http.StatusBadRequest, constants.BuildErrorResponse(constants.MsgInvalidJSON, ""))
		return req, false
	}
	return req, true
}
