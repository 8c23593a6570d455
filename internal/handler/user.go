package handler

import (
	"net/http"
	"strconv"

	"github.com/Payphone-Digital/auth-service/internal/constants"
	apperrors "github.com/Payphone-Digital/auth-service/internal/errors"
	"github.com/Payphone-Digital/auth-service/internal/service"
	ctxutil "github.com/Payphone-Digital/auth-service/pkg/context"
	"github.com/Payphone-Digital/auth-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
	development bool
}

func NewUserHandler(userService *service.UserService, development bool) *UserHandler {
	return &UserHandler{
		userService: userService,
		development: development,
	}
}

func (h *UserHandler) GetByID(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "GetByID")

	id := c.Param("id")
	userID, err := strconv.ParseUint(id, 10, 32)
	if err != nil || userID == 0 {
		logger.WarnWithContext(ctx, "Invalid user ID format").
			String("raw_id", id).
			Log()
		respondError(ctx, c, apperrors.ErrInvalidUserID, h.development)
		return
	}

	user, err := h.userService.GetByID(ctx, uint(userID))
	if err != nil {
		respondError(ctx, c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgUserRetrieved, user, nil))
}

// List supports search on name and email, an allow-listed sortBy and page/limit pagination
func (h *UserHandler) List(c *gin.Context) {
	ctx := ctxutil.WithFunction(c.Request.Context(), "handler", "ListUsers")

	params := service.ListUsersParams{
		Search:     c.DefaultQuery(constants.QueryParamSearch, constants.DefaultSearch),
		SortBy:     c.DefaultQuery(constants.QueryParamSortBy, constants.DefaultSortBy),
		Order:      c.DefaultQuery(constants.QueryParamOrder, constants.DefaultOrder),
		Pagination: constants.ParsePaginationParams(c),
	}

	users, meta, err := h.userService.List(ctx, params)
	if err != nil {
		respondError(ctx, c, err, h.development)
		return
	}

	c.JSON(http.StatusOK, constants.BuildSuccessResponse(constants.MsgUsersRetrieved, users, meta))
}
