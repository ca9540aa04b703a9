package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ecoshare/models"
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const tipPageSize = 12
const tipExcerptLength = 200

type TipController struct {
	RDB *redis.Client
}

func NewTipController(rdb *redis.Client) *TipController {
	return &TipController{RDB: rdb}
}

func jsonFrom(v any) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

func parseJSONStrings(j datatypes.JSON) []string {
	if len(j) == 0 {
		return []string{}
	}
	var out []string
	_ = json.Unmarshal(j, &out)
	return out
}

// parsePage reads ?page=N, defaulting to 1. Out-of-range pages are valid
// and simply yield an empty result set.
func parsePage(c *gin.Context) int {
	page := 1
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page = n
		}
	}
	return page
}

// loadRecent reads the session's recently-viewed tip id list from Redis.
func loadRecent(rdb *redis.Client, sessionID string) utils.RecentList {
	if rdb == nil || sessionID == "" {
		return nil
	}
	raw, err := rdb.Get(utils.RedisCtx(), utils.RecentTipsKey(sessionID)).Result()
	if err != nil {
		return nil
	}
	var list utils.RecentList
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}

func storeRecent(rdb *redis.Client, sessionID string, list utils.RecentList) {
	if rdb == nil || sessionID == "" {
		return
	}
	raw, _ := json.Marshal(list)
	// session lifetime, refreshed on every view
	rdb.Set(utils.RedisCtx(), utils.RecentTipsKey(sessionID), raw, 30*24*time.Hour)
}

// loadRecentTips resolves the session's recent id list to tips, preserving
// most-recent-first order. Deleted tips drop out silently.
func loadRecentTips(rdb *redis.Client, sessionID string, db *gorm.DB, limit int) []models.RecyclingTip {
	ids := loadRecent(rdb, sessionID).Head(limit)
	if len(ids) == 0 {
		return []models.RecyclingTip{}
	}
	var tips []models.RecyclingTip
	db.Preload("Category").Where("id IN ?", []uint(ids)).Find(&tips)
	byID := make(map[uint]models.RecyclingTip, len(tips))
	for _, t := range tips {
		byID[t.ID] = t
	}
	ordered := make([]models.RecyclingTip, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered
}

func (tc *TipController) tipListItem(t models.RecyclingTip) gin.H {
	return gin.H{
		"id":          t.ID,
		"title":       t.Title,
		"slug":        t.Slug,
		"excerpt":     utils.Excerpt(t.Content, tipExcerptLength),
		"tags":        parseJSONStrings(t.Tags),
		"category":    t.Category,
		"author_id":   t.AuthorID,
		"image":       t.Image,
		"is_featured": t.IsFeatured,
		"views":       t.Views,
		"created_at":  t.CreatedAt,
	}
}

// GET /tips
// Query: ?search=a&category=reuse&page=1
func (tc *TipController) List(c *gin.Context) {
	db := utils.GetDB()
	search := strings.TrimSpace(c.Query("search"))
	categorySlug := strings.TrimSpace(c.Query("category"))
	page := parsePage(c)
	offset := (page - 1) * tipPageSize

	q := db.Model(&models.RecyclingTip{}).Preload("Category")
	if search != "" {
		p := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", p, p)
	}
	if categorySlug != "" {
		q = q.Joins("JOIN tip_categories ON tip_categories.id = recycling_tips.category_id").
			Where("tip_categories.slug = ?", categorySlug)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to count tips"})
		return
	}
	var tips []models.RecyclingTip
	if err := q.Order("recycling_tips.created_at DESC").Offset(offset).Limit(tipPageSize).Find(&tips).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to fetch tips"})
		return
	}
	rows := make([]gin.H, 0, len(tips))
	for _, t := range tips {
		rows = append(rows, tc.tipListItem(t))
	}

	var featured []models.RecyclingTip
	db.Preload("Category").Where("is_featured = ?", true).Order("created_at DESC").Limit(3).Find(&featured)

	favoriteIDs := []uint{}
	if userID := c.GetInt("user_id"); userID > 0 {
		db.Model(&models.FavoriteTip{}).Where("user_id = ?", userID).Pluck("tip_id", &favoriteIDs)
	}

	var categories []models.TipCategory
	db.Order("name").Find(&categories)

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"page":                 page,
		"page_size":            tipPageSize,
		"total_count":          total,
		"data":                 rows,
		"featured_tips":        featured,
		"favorite_tip_ids":     favoriteIDs,
		"categories":           categories,
		"recently_viewed_tips": loadRecentTips(tc.RDB, c.GetString("session_id"), db, 5),
	}, "success": true})
}

// GET /tips/:slug
func (tc *TipController) GetBySlug(c *gin.Context) {
	db := utils.GetDB()
	var tip models.RecyclingTip
	if err := db.Preload("Category").Where("slug = ?", c.Param("slug")).First(&tip).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Tip not found"})
		return
	}

	userID := c.GetInt("user_id")

	// The author's own views never count. Increment is atomic in SQL, not
	// read-modify-write.
	if uint(userID) != tip.AuthorID {
		db.Model(&models.RecyclingTip{}).Where("id = ?", tip.ID).
			UpdateColumn("views", gorm.Expr("views + 1"))
		tip.Views++
	}

	// Move-to-front in the session's recently-viewed ring
	sessionID := c.GetString("session_id")
	recent := loadRecent(tc.RDB, sessionID).Touch(tip.ID)
	storeRecent(tc.RDB, sessionID, recent)

	var related []models.RecyclingTip
	db.Preload("Category").Where("category_id = ? AND id <> ?", tip.CategoryID, tip.ID).
		Order("created_at DESC").Limit(4).Find(&related)

	isFavorited := false
	if userID > 0 {
		var count int64
		db.Model(&models.FavoriteTip{}).Where("user_id = ? AND tip_id = ?", userID, tip.ID).Count(&count)
		isFavorited = count > 0
	}

	relatedRows := make([]gin.H, 0, len(related))
	for _, t := range related {
		relatedRows = append(relatedRows, tc.tipListItem(t))
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"id":           tip.ID,
		"title":        tip.Title,
		"slug":         tip.Slug,
		"content":      tip.Content,
		"tags":         parseJSONStrings(tip.Tags),
		"category":     tip.Category,
		"author_id":    tip.AuthorID,
		"image":        tip.Image,
		"is_featured":  tip.IsFeatured,
		"views":        tip.Views,
		"created_at":   tip.CreatedAt,
		"updated_at":   tip.UpdatedAt,
		"related_tips": relatedRows,
		"is_favorited": isFavorited,
	}, "success": true})
}

type tipPayload struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	CategoryID uint     `json:"category_id"`
	Tags       []string `json:"tags"`
}

func (tc *TipController) bindTipPayload(c *gin.Context) (*tipPayload, string, bool) {
	var req tipPayload
	imageURL := ""

	contentType := strings.ToLower(c.GetHeader("Content-Type"))
	if strings.HasPrefix(contentType, "multipart/form-data") {
		req.Title = c.PostForm("title")
		req.Content = c.PostForm("content")
		if id, err := strconv.Atoi(c.PostForm("category_id")); err == nil && id > 0 {
			req.CategoryID = uint(id)
		}
		for _, t := range strings.Split(c.PostForm("tags"), ",") {
			t = strings.TrimSpace(t)
			if t != "" {
				req.Tags = append(req.Tags, t)
			}
		}
		if fh, err := c.FormFile("image"); err == nil {
			url, err := utils.SaveUploadedImage(c, fh, "tips")
			if err != nil {
				utils.LogError(err, "save tip image")
				c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to save file"})
				return nil, "", false
			}
			imageURL = url
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "invalid request"})
			return nil, "", false
		}
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Content) == "" || req.CategoryID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "title, content and category_id are required"})
		return nil, "", false
	}
	return &req, imageURL, true
}

// POST /tips
func (tc *TipController) Create(c *gin.Context) {
	userID := c.GetInt("user_id")
	req, imageURL, ok := tc.bindTipPayload(c)
	if !ok {
		return
	}

	db := utils.GetDB()
	var catCount int64
	db.Model(&models.TipCategory{}).Where("id = ?", req.CategoryID).Count(&catCount)
	if catCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "unknown category"})
		return
	}

	// Author always comes from the token, never from the payload
	tip := models.RecyclingTip{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       jsonFrom(req.Tags),
		CategoryID: req.CategoryID,
		AuthorID:   uint(userID),
		Image:      imageURL,
	}
	if err := createWithSlug(db, &tip, utils.Slugify(req.Title), func(s string) { tip.Slug = s }); err != nil {
		utils.LogError(err, "create tip")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to create tip"})
		return
	}
	db.Preload("Category").First(&tip, tip.ID)
	c.JSON(http.StatusCreated, gin.H{"result": tip, "success": true})
}

// PUT /tips/:slug — author only.
func (tc *TipController) Update(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var tip models.RecyclingTip
	if err := db.Where("slug = ?", c.Param("slug")).First(&tip).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Tip not found"})
		return
	}
	if tip.AuthorID != uint(userID) {
		c.JSON(http.StatusForbidden, gin.H{"result": nil, "success": false, "error": "You can only edit your own tips"})
		return
	}

	req, imageURL, ok := tc.bindTipPayload(c)
	if !ok {
		return
	}
	var catCount int64
	db.Model(&models.TipCategory{}).Where("id = ?", req.CategoryID).Count(&catCount)
	if catCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "unknown category"})
		return
	}

	tip.Title = req.Title
	tip.Content = req.Content
	tip.Tags = jsonFrom(req.Tags)
	tip.CategoryID = req.CategoryID
	if imageURL != "" {
		tip.Image = imageURL
	}
	if err := db.Save(&tip).Error; err != nil {
		utils.LogError(err, "update tip")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to update tip"})
		return
	}
	db.Preload("Category").First(&tip, tip.ID)
	c.JSON(http.StatusOK, gin.H{"result": tip, "success": true})
}

// DELETE /tips/:slug — author only. Hard delete, favorites go with the
// tip and the slug becomes free for reuse.
func (tc *TipController) Delete(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var tip models.RecyclingTip
	if err := db.Where("slug = ?", c.Param("slug")).First(&tip).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Tip not found"})
		return
	}
	if tip.AuthorID != uint(userID) {
		c.JSON(http.StatusForbidden, gin.H{"result": nil, "success": false, "error": "You can only delete your own tips"})
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("tip_id = ?", tip.ID).Delete(&models.FavoriteTip{}).Error; err != nil {
			return err
		}
		return tx.Delete(&tip).Error
	})
	if err != nil {
		utils.LogError(err, "delete tip")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to delete tip"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"id": tip.ID}, "success": true})
}

// POST /tips/:slug/favorite
// Toggle: delete-first, insert if nothing was deleted. A unique-constraint
// conflict on the insert means a concurrent toggle won; report "added".
func (tc *TipController) ToggleFavorite(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var tip models.RecyclingTip
	if err := db.Where("slug = ?", c.Param("slug")).First(&tip).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Tip not found"})
		return
	}

	res := db.Unscoped().Where("user_id = ? AND tip_id = ?", userID, tip.ID).Delete(&models.FavoriteTip{})
	if res.Error != nil {
		utils.LogError(res.Error, "toggle favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to update favorites"})
		return
	}
	if res.RowsAffected > 0 {
		c.JSON(http.StatusOK, gin.H{"result": gin.H{"is_favorited": false, "message": "Tip removed from favorites"}, "success": true})
		return
	}

	fav := models.FavoriteTip{UserID: uint(userID), TipID: tip.ID}
	if err := db.Create(&fav).Error; err != nil && !utils.IsUniqueViolation(err) {
		utils.LogError(err, "toggle favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to update favorites"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"is_favorited": true, "message": "Tip added to favorites"}, "success": true})
}

// GET /tips/my
func (tc *TipController) MyTips(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var tips []models.RecyclingTip
	db.Preload("Category").Where("author_id = ?", userID).Order("created_at DESC").Find(&tips)
	c.JSON(http.StatusOK, gin.H{"result": tips, "success": true})
}

// GET /tips/favorites
func (tc *TipController) Favorites(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var favorites []models.FavoriteTip
	db.Preload("Tip").Preload("Tip.Category").Where("user_id = ?", userID).
		Order("created_at DESC").Find(&favorites)
	c.JSON(http.StatusOK, gin.H{"result": favorites, "success": true})
}

// POST /tips/clear-history — empties the session's recently-viewed list.
func (tc *TipController) ClearHistory(c *gin.Context) {
	sessionID := c.GetString("session_id")
	if tc.RDB != nil && sessionID != "" {
		tc.RDB.Del(utils.RedisCtx(), utils.RecentTipsKey(sessionID))
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"status": "history cleared"}, "success": true})
}
