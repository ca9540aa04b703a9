package controllers

import (
	"net/http"

	"ecoshare/models"
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

type UserProfileController struct {
	RDB *redis.Client
}

func NewUserProfileController(rdb *redis.Client) *UserProfileController {
	return &UserProfileController{RDB: rdb}
}

// GET /user/profile
func (upc *UserProfileController) GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var user models.User
	if err := db.Preload("Profile").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "User not found"})
		return
	}

	var recentItems []models.Item
	db.Where("owner_id = ?", userID).Order("created_at DESC").Limit(5).Find(&recentItems)
	var recentTips []models.RecyclingTip
	db.Preload("Category").Where("author_id = ?", userID).Order("created_at DESC").Limit(5).Find(&recentTips)

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"email":        user.Email,
		"first_name":   user.FirstName,
		"last_name":    user.LastName,
		"role":         user.Role,
		"profile":      user.Profile,
		"recent_items": recentItems,
		"recent_tips":  recentTips,
	}, "success": true})
}

// PUT /user/profile
func (upc *UserProfileController) UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")
	var req struct {
		Bio      *string `json:"bio"`
		Location *string `json:"location"`
		Phone    *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "invalid request"})
		return
	}
	db := utils.GetDB()
	var profile models.UserProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Profile not found"})
		return
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Phone != nil {
		profile.Phone = *req.Phone
	}
	if err := db.Save(&profile).Error; err != nil {
		utils.LogError(err, "update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": profile, "success": true})
}

// POST /user/profile/avatar
// multipart/form-data, field "file"
func (upc *UserProfileController) UploadAvatar(c *gin.Context) {
	userID := c.GetInt("user_id")

	const maxUploadSize = 5 << 20 // 5 MB
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "file is required"})
		return
	}
	url, err := utils.SaveUploadedImage(c, file, "avatars")
	if err != nil {
		utils.LogError(err, "save avatar")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to save file"})
		return
	}

	db := utils.GetDB()
	if err := db.Model(&models.UserProfile{}).Where("user_id = ?", userID).Update("avatar", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to update avatar"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"avatar": url}, "success": true})
}

// POST /user/change-password
func (upc *UserProfileController) ChangePassword(c *gin.Context) {
	userID := c.GetInt("user_id")
	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "invalid request"})
		return
	}
	if len(req.NewPassword) < utils.MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "new password is too short"})
		return
	}
	db := utils.GetDB()
	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "User not found"})
		return
	}
	if !utils.CheckPasswordHash(req.CurrentPassword, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"result": nil, "success": false, "error": "Current password is incorrect"})
		return
	}
	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to hash password"})
		return
	}
	user.Password = hash
	if err := db.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to update password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"status": "password updated"}, "success": true})
}

// GET /user/dashboard
func (upc *UserProfileController) Dashboard(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()

	var userItems []models.Item
	db.Preload("Category").Preload("Images").Where("owner_id = ?", userID).Order("created_at DESC").Find(&userItems)

	var userTips []models.RecyclingTip
	db.Preload("Category").Where("author_id = ?", userID).Order("created_at DESC").Find(&userTips)

	var favorites []models.FavoriteTip
	db.Preload("Tip").Preload("Tip.Category").Where("user_id = ?", userID).Order("created_at DESC").Find(&favorites)

	// Recently viewed tips for this browser session
	recentTips := loadRecentTips(upc.RDB, c.GetString("session_id"), db, utils.RecentLimit)

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"user_items":           userItems,
		"user_tips":            userTips,
		"favorite_tips":        favorites,
		"recently_viewed_tips": recentTips,
		"total_user_items":     len(userItems),
		"total_user_tips":      len(userTips),
		"total_favorites":      len(favorites),
	}, "success": true})
}
