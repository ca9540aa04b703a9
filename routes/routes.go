package routes

import (
	"strings"

	"ecoshare/config"
	"ecoshare/controllers"
	"ecoshare/middleware"
	"ecoshare/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter creates the gin.Engine and registers all routes.
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.RecoveryMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.CORSOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Every request gets a browser session id for session-scoped state
	r.Use(middleware.SessionMiddleware())

	rdb := utils.GetRedis()
	userController := controllers.NewUserController(rdb)
	userProfileController := controllers.NewUserProfileController(rdb)
	coreController := controllers.NewCoreController()

	r.GET("/health", coreController.Health)
	r.GET("/home", coreController.Home)
	r.Static("/uploads", "./uploads")

	auth := r.Group("/auth")
	{
		auth.POST("/register", userController.Register)
		auth.POST("/login", userController.Login)
		auth.POST("/logout", middleware.JWTAuthMiddleware(), userController.Logout)
		auth.POST("/password-reset", userController.RequestPasswordReset)
		auth.POST("/password-reset/confirm", userController.ConfirmPasswordReset)
		auth.GET("/google", userController.GoogleLogin)
		auth.GET("/google/callback", userController.GoogleCallback)
	}

	userGroup := r.Group("/user", middleware.JWTAuthMiddleware())
	{
		userGroup.GET("/profile", userProfileController.GetProfile)
		userGroup.PUT("/profile", userProfileController.UpdateProfile)
		userGroup.POST("/profile/avatar", userProfileController.UploadAvatar)
		userGroup.POST("/change-password", userProfileController.ChangePassword)
		userGroup.GET("/dashboard", userProfileController.Dashboard)
	}

	SetupItemRoutes(r)
	SetupCenterRoutes(r)
	SetupTipRoutes(r)

	return r
}
