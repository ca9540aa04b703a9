package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"ecoshare/models"
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const itemPageSize = 12
const maxItemImages = 5

type ItemController struct{}

func NewItemController() *ItemController {
	return &ItemController{}
}

// GET /items
// Query: ?search=a&category=furniture&condition=used&type=free|trade&page=1
// Listings default to available items only; owners see the rest under /items/my.
func (ic *ItemController) List(c *gin.Context) {
	db := utils.GetDB()
	page := parsePage(c)
	offset := (page - 1) * itemPageSize

	q := db.Model(&models.Item{}).Preload("Category").Preload("Images").
		Where("status = ?", models.StatusAvailable)

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		p := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(location) LIKE ?", p, p, p)
	}
	if categorySlug := strings.TrimSpace(c.Query("category")); categorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = items.category_id").
			Where("categories.slug = ?", categorySlug)
	}
	if condition := c.Query("condition"); condition != "" {
		if !models.ValidCondition(condition) {
			c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "unknown condition"})
			return
		}
		q = q.Where("condition = ?", condition)
	}
	switch c.Query("type") {
	case "free":
		q = q.Where("is_free = ?", true)
	case "trade":
		q = q.Where("is_free = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to count items"})
		return
	}
	var items []models.Item
	if err := q.Order("items.created_at DESC").Offset(offset).Limit(itemPageSize).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to fetch items"})
		return
	}

	var categories []models.Category
	db.Order("name").Find(&categories)

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"page":              page,
		"page_size":         itemPageSize,
		"total_count":       total,
		"data":              items,
		"categories":        categories,
		"condition_choices": models.ConditionChoices,
	}, "success": true})
}

// GET /items/my — the owner's items, all statuses.
func (ic *ItemController) MyItems(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var items []models.Item
	db.Preload("Category").Preload("Images").Where("owner_id = ?", userID).
		Order("created_at DESC").Find(&items)
	c.JSON(http.StatusOK, gin.H{"result": items, "success": true})
}

// GET /items/categories
func (ic *ItemController) Categories(c *gin.Context) {
	db := utils.GetDB()
	var categories []models.Category
	db.Order("name").Find(&categories)
	c.JSON(http.StatusOK, gin.H{"result": categories, "success": true})
}

// GET /items/:slug
func (ic *ItemController) GetBySlug(c *gin.Context) {
	db := utils.GetDB()
	var item models.Item
	if err := db.Preload("Category").Preload("Images").Where("slug = ?", c.Param("slug")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Item not found"})
		return
	}

	// Atomic increment; the owner's own views don't count
	if uint(c.GetInt("user_id")) != item.OwnerID {
		db.Model(&models.Item{}).Where("id = ?", item.ID).
			UpdateColumn("views", gorm.Expr("views + 1"))
		item.Views++
	}

	c.JSON(http.StatusOK, gin.H{"result": item, "success": true})
}

type itemPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  *uint  `json:"category_id"`
	Location    string `json:"location"`
	Condition   string `json:"condition"`
	Status      string `json:"status"`
	IsFree      *bool  `json:"is_free"`
}

// bindItemPayload reads the item fields from JSON or multipart form.
// Absent condition/status fall back to the given defaults: the zero
// vocabulary values on create, the item's current values on update, so a
// partial update never silently resets a reserved item to available.
func (ic *ItemController) bindItemPayload(c *gin.Context, defaultCondition, defaultStatus string) (*itemPayload, bool) {
	var req itemPayload
	contentType := strings.ToLower(c.GetHeader("Content-Type"))
	if strings.HasPrefix(contentType, "multipart/form-data") {
		req.Title = c.PostForm("title")
		req.Description = c.PostForm("description")
		req.Location = c.PostForm("location")
		req.Condition = c.PostForm("condition")
		req.Status = c.PostForm("status")
		if id, err := strconv.Atoi(c.PostForm("category_id")); err == nil && id > 0 {
			cid := uint(id)
			req.CategoryID = &cid
		}
		if v := c.PostForm("is_free"); v != "" {
			isFree := v == "true" || v == "on" || v == "1"
			req.IsFree = &isFree
		}
	} else {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "invalid request"})
			return nil, false
		}
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "title is required"})
		return nil, false
	}
	if req.Condition == "" {
		req.Condition = defaultCondition
	}
	if !models.ValidCondition(req.Condition) {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "unknown condition"})
		return nil, false
	}
	if req.Status == "" {
		req.Status = defaultStatus
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "unknown status"})
		return nil, false
	}
	if req.CategoryID != nil {
		var count int64
		utils.GetDB().Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count)
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "unknown category"})
			return nil, false
		}
	}
	return &req, true
}

// saveItemImages stores the multipart image files (field "images", up to
// maxItemImages) for an item. The first uploaded image becomes primary
// unless the item already has one.
func (ic *ItemController) saveItemImages(c *gin.Context, db *gorm.DB, item *models.Item) bool {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return true
	}
	files := form.File["images"]
	if len(files) == 0 {
		if fh, ferr := c.FormFile("image"); ferr == nil {
			files = append(files, fh)
		}
	}
	if len(files) == 0 {
		return true
	}
	if len(files) > maxItemImages {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "too many images"})
		return false
	}

	var existing int64
	db.Model(&models.ItemImage{}).Where("item_id = ?", item.ID).Count(&existing)

	for i, fh := range files {
		url, err := utils.SaveUploadedImage(c, fh, "items")
		if err != nil {
			utils.LogError(err, "save item image")
			c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to save file"})
			return false
		}
		img := models.ItemImage{
			ItemID:    item.ID,
			URL:       url,
			IsPrimary: existing == 0 && i == 0,
		}
		if err := db.Create(&img).Error; err != nil {
			utils.LogError(err, "save item image record")
			c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to save image"})
			return false
		}
	}
	return true
}

// POST /items
func (ic *ItemController) Create(c *gin.Context) {
	userID := c.GetInt("user_id")
	req, ok := ic.bindItemPayload(c, models.ConditionUsed, models.StatusAvailable)
	if !ok {
		return
	}

	db := utils.GetDB()
	isFree := true
	if req.IsFree != nil {
		isFree = *req.IsFree
	}
	// Owner always comes from the token, never from the payload
	item := models.Item{
		Title:       req.Title,
		Description: req.Description,
		OwnerID:     uint(userID),
		CategoryID:  req.CategoryID,
		Location:    req.Location,
		Condition:   req.Condition,
		Status:      req.Status,
		IsFree:      isFree,
	}

	base := utils.Slugify(req.Title)
	if len(base) > 200 {
		base = strings.Trim(base[:200], "-")
	}
	if err := createWithSlug(db, &item, base, func(s string) { item.Slug = s }); err != nil {
		utils.LogError(err, "create item")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to create item"})
		return
	}

	if !ic.saveItemImages(c, db, &item) {
		return
	}

	db.Preload("Category").Preload("Images").First(&item, item.ID)
	c.JSON(http.StatusCreated, gin.H{"result": item, "success": true})
}

// PUT /items/:slug — owner only.
func (ic *ItemController) Update(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var item models.Item
	if err := db.Where("slug = ?", c.Param("slug")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Item not found"})
		return
	}
	if item.OwnerID != uint(userID) {
		c.JSON(http.StatusForbidden, gin.H{"result": nil, "success": false, "error": "You can only edit your own items"})
		return
	}

	req, ok := ic.bindItemPayload(c, item.Condition, item.Status)
	if !ok {
		return
	}

	item.Title = req.Title
	item.Description = req.Description
	item.CategoryID = req.CategoryID
	item.Location = req.Location
	item.Condition = req.Condition
	item.Status = req.Status
	if req.IsFree != nil {
		item.IsFree = *req.IsFree
	}
	if err := db.Save(&item).Error; err != nil {
		utils.LogError(err, "update item")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to update item"})
		return
	}

	if !ic.saveItemImages(c, db, &item) {
		return
	}

	db.Preload("Category").Preload("Images").First(&item, item.ID)
	c.JSON(http.StatusOK, gin.H{"result": item, "success": true})
}

// DELETE /items/:slug — owner only. The row goes away for real, images
// with it, and the slug becomes free for reuse.
func (ic *ItemController) Delete(c *gin.Context) {
	userID := c.GetInt("user_id")
	db := utils.GetDB()
	var item models.Item
	if err := db.Where("slug = ?", c.Param("slug")).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Item not found"})
		return
	}
	if item.OwnerID != uint(userID) {
		c.JSON(http.StatusForbidden, gin.H{"result": nil, "success": false, "error": "You can only delete your own items"})
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", item.ID).Delete(&models.ItemImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		utils.LogError(err, "delete item")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to delete item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": gin.H{"id": item.ID}, "success": true})
}
