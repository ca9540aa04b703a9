package controllers

import (
	"net/http"
	"strings"

	"ecoshare/models"
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const centerPageSize = 15

type CenterController struct{}

func NewCenterController() *CenterController {
	return &CenterController{}
}

// boolFlag treats "on", "true" and "1" as set, matching checkbox-style
// query params.
func boolFlag(c *gin.Context, name string) bool {
	v := strings.ToLower(c.Query(name))
	return v == "on" || v == "true" || v == "1"
}

func (cc *CenterController) applyFilters(c *gin.Context, q *gorm.DB) (*gorm.DB, bool) {
	if query := strings.TrimSpace(c.Query("q")); query != "" {
		p := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(address) LIKE ? OR LOWER(state) LIKE ? OR LOWER(description) LIKE ?",
			p, p, p, p, p)
	}
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("LOWER(city) LIKE ?", "%"+strings.ToLower(city)+"%")
	}
	// State is stored as the two-letter province code
	if state := strings.TrimSpace(c.Query("state")); state != "" {
		q = q.Where("state = ?", strings.ToUpper(state))
	}
	if zipcode := strings.TrimSpace(c.Query("zipcode")); zipcode != "" {
		q = q.Where("LOWER(zipcode) LIKE ?", "%"+strings.ToLower(zipcode)+"%")
	}
	if material := strings.TrimSpace(c.Query("material")); material != "" {
		if !models.ValidMaterial(material) {
			c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "unknown material type"})
			return nil, false
		}
		q = q.Where("id IN (?)", utils.GetDB().Model(&models.AcceptedMaterial{}).
			Select("center_id").Where("material_type = ?", material))
	}
	if boolFlag(c, "dropoff") {
		q = q.Where("accepts_dropoff = ?", true)
	}
	if boolFlag(c, "pickup") {
		q = q.Where("offers_pickup = ?", true)
	}
	if boolFlag(c, "donations") {
		q = q.Where("accepts_donations = ?", true)
	}
	if boolFlag(c, "verified") {
		q = q.Where("is_verified = ?", true)
	}
	return q, true
}

// GET /centers
// Query: ?q=depot&city=Toronto&state=ON&zipcode=M4&material=glass&dropoff=on&verified=on&page=1
// Ordering is always city then name; filters never change it.
func (cc *CenterController) List(c *gin.Context) {
	db := utils.GetDB()
	page := parsePage(c)
	offset := (page - 1) * centerPageSize

	q, ok := cc.applyFilters(c, db.Model(&models.RecyclingCenter{}).Preload("Materials"))
	if !ok {
		return
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to count centers"})
		return
	}
	var centers []models.RecyclingCenter
	if err := q.Order("city, name").Offset(offset).Limit(centerPageSize).Find(&centers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to fetch centers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"page":        page,
		"page_size":   centerPageSize,
		"total_count": total,
		"data":        centers,
	}, "success": true})
}

// GET /centers/search
// Simple keyword + location search, capped at 20 results.
func (cc *CenterController) Search(c *gin.Context) {
	db := utils.GetDB()
	q := db.Model(&models.RecyclingCenter{}).Preload("Materials")

	if query := strings.TrimSpace(c.Query("q")); query != "" {
		p := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(city) LIKE ?", p, p, p)
	}
	if location := strings.TrimSpace(c.Query("location")); location != "" {
		p := "%" + strings.ToLower(location) + "%"
		q = q.Where("LOWER(city) LIKE ? OR state = ? OR LOWER(zipcode) LIKE ?", p, strings.ToUpper(location), p)
	}

	var centers []models.RecyclingCenter
	if err := q.Order("city, name").Limit(20).Find(&centers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to search centers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": centers, "success": true})
}

// GET /centers/filters — distinct cities/states plus the material vocabulary.
func (cc *CenterController) Filters(c *gin.Context) {
	db := utils.GetDB()
	var cities, states []string
	db.Model(&models.RecyclingCenter{}).Distinct("city").Order("city").Pluck("city", &cities)
	db.Model(&models.RecyclingCenter{}).Distinct("state").Order("state").Pluck("state", &states)
	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"cities":           cities,
		"states":           states,
		"material_choices": models.MaterialChoices,
	}, "success": true})
}

// GET /centers/:slug
func (cc *CenterController) GetBySlug(c *gin.Context) {
	db := utils.GetDB()
	var center models.RecyclingCenter
	if err := db.Preload("Materials").Where("slug = ?", c.Param("slug")).First(&center).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"result": nil, "success": false, "error": "Center not found"})
		return
	}

	var nearby []models.RecyclingCenter
	db.Where("city = ? AND id <> ?", center.City, center.ID).Order("name").Limit(3).Find(&nearby)

	hours := make([]gin.H, 0, 7)
	for _, h := range center.OperatingHours() {
		hours = append(hours, gin.H{"day": h[0], "hours": h[1]})
	}

	c.JSON(http.StatusOK, gin.H{"result": gin.H{
		"center":          center,
		"full_address":    center.FullAddress(),
		"operating_hours": hours,
		"nearby_centers":  nearby,
	}, "success": true})
}

type centerPayload struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Zipcode     string   `json:"zipcode"`
	Country     string   `json:"country"`
	Phone       string   `json:"phone"`
	Email       string   `json:"email"`
	Website     string   `json:"website"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`

	MondayHours    string `json:"monday_hours"`
	TuesdayHours   string `json:"tuesday_hours"`
	WednesdayHours string `json:"wednesday_hours"`
	ThursdayHours  string `json:"thursday_hours"`
	FridayHours    string `json:"friday_hours"`
	SaturdayHours  string `json:"saturday_hours"`
	SundayHours    string `json:"sunday_hours"`

	AcceptsDropoff   *bool `json:"accepts_dropoff"`
	OffersPickup     bool  `json:"offers_pickup"`
	AcceptsDonations bool  `json:"accepts_donations"`
	IsVerified       bool  `json:"is_verified"`

	Materials []struct {
		MaterialType string `json:"material_type"`
		Notes        string `json:"notes"`
	} `json:"materials"`
}

// POST /centers — admin only; the directory is read-mostly and new entries
// arrive through operators, not end users.
func (cc *CenterController) Create(c *gin.Context) {
	if c.GetString("role") != "admin" {
		c.JSON(http.StatusForbidden, gin.H{"result": nil, "success": false, "error": "admin access required"})
		return
	}

	var req centerPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "invalid request"})
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.City == "" || req.State == "" {
		c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "name, city and state are required"})
		return
	}
	seen := make(map[string]bool, len(req.Materials))
	for _, m := range req.Materials {
		if !models.ValidMaterial(m.MaterialType) {
			c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "unknown material type: " + m.MaterialType})
			return
		}
		if seen[m.MaterialType] {
			c.JSON(http.StatusBadRequest, gin.H{"result": nil, "success": false, "error": "duplicate material type: " + m.MaterialType})
			return
		}
		seen[m.MaterialType] = true
	}

	hoursOr := func(v string) string {
		if v == "" {
			return "Closed"
		}
		return v
	}
	country := req.Country
	if country == "" {
		country = "Canada"
	}
	acceptsDropoff := true
	if req.AcceptsDropoff != nil {
		acceptsDropoff = *req.AcceptsDropoff
	}

	center := models.RecyclingCenter{
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		State:       strings.ToUpper(strings.TrimSpace(req.State)),
		Zipcode:     req.Zipcode,
		Country:     country,
		Phone:       req.Phone,
		Email:       req.Email,
		Website:     req.Website,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,

		MondayHours:    hoursOr(req.MondayHours),
		TuesdayHours:   hoursOr(req.TuesdayHours),
		WednesdayHours: hoursOr(req.WednesdayHours),
		ThursdayHours:  hoursOr(req.ThursdayHours),
		FridayHours:    hoursOr(req.FridayHours),
		SaturdayHours:  hoursOr(req.SaturdayHours),
		SundayHours:    hoursOr(req.SundayHours),

		AcceptsDropoff:   acceptsDropoff,
		OffersPickup:     req.OffersPickup,
		AcceptsDonations: req.AcceptsDonations,
		IsVerified:       req.IsVerified,
	}
	for _, m := range req.Materials {
		center.Materials = append(center.Materials, models.AcceptedMaterial{
			MaterialType: m.MaterialType,
			Notes:        m.Notes,
		})
	}

	db := utils.GetDB()
	if err := createWithSlug(db, &center, utils.Slugify(req.Name), func(s string) { center.Slug = s }); err != nil {
		utils.LogError(err, "create center")
		c.JSON(http.StatusInternalServerError, gin.H{"result": nil, "success": false, "error": "failed to create center"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"result": center, "success": true})
}
