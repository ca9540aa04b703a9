package controllers

import (
	"net/http"

	"ecoshare/models"
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
)

type CoreController struct{}

func NewCoreController() *CoreController {
	return &CoreController{}
}

// GET /home — landing page payload: featured content plus site totals.
func (cc *CoreController) Home(c *gin.Context) {
	db := utils.GetDB()

	var featuredItems []models.Item
	db.Preload("Category").Preload("Images").Where("status = ?", models.StatusAvailable).
		Order("created_at DESC").Limit(4).Find(&featuredItems)

	var featuredTips []models.RecyclingTip
	db.Preload("Category").Where("is_featured = ?", true).Order("created_at DESC").Limit(3).Find(&featuredTips)

	var recentTips []models.RecyclingTip
	db.Preload("Category").Order("created_at DESC").Limit(5).Find(&recentTips)

	var totalItems, totalTips, totalCenters, totalCategories int64
	db.Model(&models.Item{}).Where("status = ?", models.StatusAvailable).Count(&totalItems)
	db.Model(&models.RecyclingTip{}).Count(&totalTips)
	db.Model(&models.RecyclingCenter{}).Count(&totalCenters)
	db.Model(&models.Category{}).Count(&totalCategories)

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"featured_items":  featuredItems,
		"featured_tips":   featuredTips,
		"recent_tips":     recentTips,
		"item_categories": totalCategories,
		"total_items":     totalItems,
		"total_tips":      totalTips,
		"total_centers":   totalCenters,
	}, "success": true})
}

// GET /health
func (cc *CoreController) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
