package router

import "github.com/gin-gonic/gin"

func (r *Router) userRoutes(api *gin.RouterGroup) {
	users := api.Group("/users")
	{
		// All user routes require JWT authentication
		users.Use(r.jwtMw.RequireAuth())
		{
			users.GET("", r.userHandler.List)
			users.GET("/:id", r.userHandler.GetByID)
		}
	}
}
