package routes

import (
	"ecoshare/controllers"
	"ecoshare/middleware"
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
)

func SetupTipRoutes(r *gin.Engine) {
	tipController := controllers.NewTipController(utils.GetRedis())
	grp := r.Group("/tips")
	{
		grp.GET("", middleware.OptionalJWTAuthMiddleware(), tipController.List)
		grp.GET("/my", middleware.JWTAuthMiddleware(), tipController.MyTips)
		grp.GET("/favorites", middleware.JWTAuthMiddleware(), tipController.Favorites)
		grp.POST("/clear-history", tipController.ClearHistory)
		grp.POST("", middleware.JWTAuthMiddleware(), tipController.Create)
		grp.GET("/:slug", middleware.OptionalJWTAuthMiddleware(), tipController.GetBySlug)
		grp.PUT("/:slug", middleware.JWTAuthMiddleware(), tipController.Update)
		grp.DELETE("/:slug", middleware.JWTAuthMiddleware(), tipController.Delete)
		grp.POST("/:slug/favorite", middleware.JWTAuthMiddleware(), tipController.ToggleFavorite)
	}
}
