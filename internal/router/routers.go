package router

import (
	"net/http"

	"github.com/Payphone-Digital/auth-service/config"
	"github.com/Payphone-Digital/auth-service/internal/constants"
	"github.com/Payphone-Digital/auth-service/internal/handler"
	"github.com/Payphone-Digital/auth-service/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authHandler   *handler.AuthHandler
	userHandler   *handler.UserHandler
	healthHandler *handler.HealthHandler

	validMw *middleware.ValidationMiddleware
	jwtMw   *middleware.JWTMiddleware
	config  *config.Config
}

func NewRouter(
	auth *handler.AuthHandler,
	user *handler.UserHandler,
	healthHandler *handler.HealthHandler,

	validMw *middleware.ValidationMiddleware,
	jwtMw *middleware.JWTMiddleware,
	config *config.Config,
) *Router {
	return &Router{
		authHandler:   auth,
		userHandler:   user,
		healthHandler: healthHandler,

		validMw: validMw,
		jwtMw:   jwtMw,
		config:  config,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	router := gin.New()

	// Recovery first so panics anywhere below still get the JSON envelope
	router.Use(middleware.RecoveryMiddleware(r.config.IsDevelopment()))
	router.Use(middleware.ContextMiddleware(r.config.App.Timeout))
	router.Use(middleware.LoggingMiddleware("/health"))
	router.Use(middleware.CORS(r.config.App.Environment, r.config.App.AllowedOrigins))

	router.GET("/", r.healthHandler.Root)
	router.GET("/health", r.healthHandler.HealthCheck)

	api := router.Group("/api")
	{
		r.authRoutes(api)
		r.userRoutes(api)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, constants.BuildErrorResponse(constants.MsgRouteNotFound, ""))
	})

	return router
}
