package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"ecoshare/database"
	"ecoshare/models"
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// newTestDB opens a fresh in-memory database per test, migrates the schema
// and installs it as the global handle.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	utils.SetDB(db)
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Role: "user"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedTipCategory(t *testing.T, db *gorm.DB) models.TipCategory {
	t.Helper()
	cat := models.TipCategory{Name: "Reuse", Slug: "reuse"}
	require.NoError(t, db.Create(&cat).Error)
	return cat
}

func seedTip(t *testing.T, db *gorm.DB, authorID, categoryID uint, title string) models.RecyclingTip {
	t.Helper()
	tip := models.RecyclingTip{Title: title, Content: "body", CategoryID: categoryID, AuthorID: authorID}
	require.NoError(t, createWithSlug(db, &tip, utils.Slugify(title), func(s string) { tip.Slug = s }))
	return tip
}

func seedItem(t *testing.T, db *gorm.DB, ownerID uint, title string) models.Item {
	t.Helper()
	item := models.Item{
		Title:     title,
		OwnerID:   ownerID,
		Condition: models.ConditionUsed,
		Status:    models.StatusAvailable,
		IsFree:    true,
	}
	require.NoError(t, createWithSlug(db, &item, utils.Slugify(title), func(s string) { item.Slug = s }))
	return item
}

// testContext builds a gin context carrying the acting user and an
// optional slug parameter.
func testContext(method, target string, body interface{}, userID int, slug string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	c.Request = httptest.NewRequest(method, target, &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		c.Set("user_id", userID)
	}
	if slug != "" {
		c.Params = gin.Params{{Key: "slug", Value: slug}}
	}
	return c, w
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var payload struct {
		Result  map[string]interface{} `json:"result"`
		Success bool                   `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.Result
}

func TestCreateWithSlugSequence(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "sasha")

	var slugs []string
	for i := 0; i < 3; i++ {
		item := models.Item{Title: "Garden Chair", OwnerID: user.ID, Condition: "used", Status: "available"}
		require.NoError(t, createWithSlug(db, &item, utils.Slugify(item.Title), func(s string) { item.Slug = s }))
		slugs = append(slugs, item.Slug)
	}
	assert.Equal(t, []string{"garden-chair", "garden-chair-1", "garden-chair-2"}, slugs)
}

func TestUniqueSlugExcludeID(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "sasha")
	item := seedItem(t, db, user.ID, "Garden Chair")

	// An update may keep its own slug
	slug, err := utils.UniqueSlug(db, &models.Item{}, "garden-chair", item.ID)
	require.NoError(t, err)
	assert.Equal(t, "garden-chair", slug)

	// Anyone else gets the next suffix
	slug, err = utils.UniqueSlug(db, &models.Item{}, "garden-chair", 0)
	require.NoError(t, err)
	assert.Equal(t, "garden-chair-1", slug)
}

func TestDeleteItemFreesSlugAndImages(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "sasha")
	item := seedItem(t, db, user.ID, "Garden Chair")
	require.NoError(t, db.Create(&models.ItemImage{ItemID: item.ID, URL: "/uploads/items/a.jpg", IsPrimary: true}).Error)

	ic := NewItemController()
	c, w := testContext("DELETE", "/items/"+item.Slug, nil, int(user.ID), item.Slug)
	ic.Delete(c)
	require.Equal(t, 200, w.Code)

	var itemCount, imageCount int64
	db.Model(&models.Item{}).Count(&itemCount)
	db.Model(&models.ItemImage{}).Where("item_id = ?", item.ID).Count(&imageCount)
	assert.Zero(t, itemCount)
	assert.Zero(t, imageCount)

	// The slug is back in circulation, no suffix needed
	again := seedItem(t, db, user.ID, "Garden Chair")
	assert.Equal(t, "garden-chair", again.Slug)
}

func TestDeleteTipRemovesFavorites(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "sasha")
	fan := seedUser(t, db, "robin")
	cat := seedTipCategory(t, db)
	tip := seedTip(t, db, author.ID, cat.ID, "Rinse Your Jars")
	require.NoError(t, db.Create(&models.FavoriteTip{UserID: fan.ID, TipID: tip.ID}).Error)

	tc := NewTipController(nil)
	c, w := testContext("DELETE", "/tips/"+tip.Slug, nil, int(author.ID), tip.Slug)
	tc.Delete(c)
	require.Equal(t, 200, w.Code)

	var tipCount, favCount int64
	db.Model(&models.RecyclingTip{}).Count(&tipCount)
	db.Unscoped().Model(&models.FavoriteTip{}).Where("tip_id = ?", tip.ID).Count(&favCount)
	assert.Zero(t, tipCount)
	assert.Zero(t, favCount)

	// The slug is reusable after the delete
	again := seedTip(t, db, author.ID, cat.ID, "Rinse Your Jars")
	assert.Equal(t, "rinse-your-jars", again.Slug)
}

func TestToggleFavoriteDoubleToggle(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "sasha")
	fan := seedUser(t, db, "robin")
	cat := seedTipCategory(t, db)
	tip := seedTip(t, db, author.ID, cat.ID, "Rinse Your Jars")

	tc := NewTipController(nil)

	c, w := testContext("POST", "/tips/"+tip.Slug+"/favorite", nil, int(fan.ID), tip.Slug)
	tc.ToggleFavorite(c)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, true, decodeResult(t, w)["is_favorited"])

	c, w = testContext("POST", "/tips/"+tip.Slug+"/favorite", nil, int(fan.ID), tip.Slug)
	tc.ToggleFavorite(c)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, false, decodeResult(t, w)["is_favorited"])

	var favCount int64
	db.Unscoped().Model(&models.FavoriteTip{}).Where("user_id = ? AND tip_id = ?", fan.ID, tip.ID).Count(&favCount)
	assert.Zero(t, favCount)
}

func TestTipViewCountSkipsAuthor(t *testing.T) {
	db := newTestDB(t)
	author := seedUser(t, db, "sasha")
	reader := seedUser(t, db, "robin")
	cat := seedTipCategory(t, db)
	tip := seedTip(t, db, author.ID, cat.ID, "Rinse Your Jars")

	tc := NewTipController(nil)

	c, w := testContext("GET", "/tips/"+tip.Slug, nil, int(reader.ID), tip.Slug)
	tc.GetBySlug(c)
	require.Equal(t, 200, w.Code)

	var got models.RecyclingTip
	require.NoError(t, db.First(&got, tip.ID).Error)
	assert.Equal(t, int64(1), got.Views)

	c, w = testContext("GET", "/tips/"+tip.Slug, nil, int(author.ID), tip.Slug)
	tc.GetBySlug(c)
	require.Equal(t, 200, w.Code)

	require.NoError(t, db.First(&got, tip.ID).Error)
	assert.Equal(t, int64(1), got.Views)
}

func TestItemListOutOfRangePageIsEmpty(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "sasha")
	for i := 0; i < 5; i++ {
		seedItem(t, db, user.ID, fmt.Sprintf("Item %d", i))
	}

	ic := NewItemController()
	c, w := testContext("GET", "/items?page=3", nil, 0, "")
	ic.List(c)
	require.Equal(t, 200, w.Code)

	result := decodeResult(t, w)
	assert.Equal(t, float64(5), result["total_count"])
	assert.Empty(t, result["data"])
}

func TestItemUpdatePreservesStatusWhenOmitted(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "sasha")
	item := seedItem(t, db, user.ID, "Garden Chair")
	require.NoError(t, db.Model(&item).Update("status", models.StatusReserved).Error)

	ic := NewItemController()
	c, w := testContext("PUT", "/items/"+item.Slug, gin.H{"title": "Garden Chair", "description": "sturdy"}, int(user.ID), item.Slug)
	ic.Update(c)
	require.Equal(t, 200, w.Code)

	var got models.Item
	require.NoError(t, db.First(&got, item.ID).Error)
	assert.Equal(t, models.StatusReserved, got.Status)
	assert.Equal(t, "sturdy", got.Description)
}
