package routes

import (
	"ecoshare/controllers"
	"ecoshare/middleware"

	"github.com/gin-gonic/gin"
)

func SetupItemRoutes(r *gin.Engine) {
	itemController := controllers.NewItemController()
	grp := r.Group("/items")
	{
		grp.GET("", itemController.List)
		grp.GET("/categories", itemController.Categories)
		grp.GET("/my", middleware.JWTAuthMiddleware(), itemController.MyItems)
		grp.POST("", middleware.JWTAuthMiddleware(), itemController.Create)
		grp.GET("/:slug", middleware.OptionalJWTAuthMiddleware(), itemController.GetBySlug)
		grp.PUT("/:slug", middleware.JWTAuthMiddleware(), itemController.Update)
		grp.DELETE("/:slug", middleware.JWTAuthMiddleware(), itemController.Delete)
	}
}
