package routes

import (
	"ecoshare/controllers"
	"ecoshare/middleware"

	"github.com/gin-gonic/gin"
)

func SetupCenterRoutes(r *gin.Engine) {
	centerController := controllers.NewCenterController()
	grp := r.Group("/centers")
	{
		grp.GET("", centerController.List)
		grp.GET("/search", centerController.Search)
		grp.GET("/filters", centerController.Filters)
		grp.POST("", middleware.JWTAuthMiddleware(), centerController.Create)
		grp.GET("/:slug", centerController.GetBySlug)
	}
}
