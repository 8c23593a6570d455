package router

import (
	"github.com/Payphone-Digital/auth-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (r *Router) authRoutes(api *gin.RouterGroup) {
	auth := api.Group("/auth")
	{
		// Public routes
		auth.POST("/register",
			r.validMw.ValidateRequestBody(func() any { return &dto.RegisterRequest{} }),
			r.authHandler.Register)
		auth.POST("/login",
			r.validMw.ValidateRequestBody(func() any { return &dto.LoginRequest{} }),
			r.authHandler.Login)
		auth.POST("/refresh", r.authHandler.RefreshToken)
		auth.POST("/logout", r.authHandler.Logout)

		// Protected routes
		protected := auth.Group("")
		protected.Use(r.jwtMw.RequireAuth())
		{
			protected.GET("/me", r.authHandler.Me)
		}
	}
}
