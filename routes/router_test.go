package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"ecoshare/config"
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

func testRouter() *gin.Engine {
	return SetupRouter(&config.Config{CORSOrigins: "http://localhost:3000"})
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doJSON(t, testRouter(), "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSessionCookieMinted(t *testing.T) {
	w := doJSON(t, testRouter(), "GET", "/health", nil)
	found := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "eco_session" && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "expected an eco_session cookie on first response")
}

func TestSessionCookieNotReissued(t *testing.T) {
	r := testRouter()
	req := httptest.NewRequest("GET", "/health", nil)
	req.AddCookie(&http.Cookie{Name: "eco_session", Value: "abc123"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		assert.NotEqual(t, "eco_session", c.Name)
	}
}

func TestRegisterValidation(t *testing.T) {
	r := testRouter()

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/auth/register", strings.NewReader("not json"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/auth/register", gin.H{"username": "sasha"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "required")
	})

	t.Run("invalid email", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/auth/register", gin.H{
			"username": "sasha", "email": "not-an-email", "password": "longenough",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"email"`)
	})

	t.Run("short password", func(t *testing.T) {
		w := doJSON(t, r, "POST", "/auth/register", gin.H{
			"username": "sasha", "email": "sasha@example.com", "password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), `"field":"password"`)
	})
}

func TestLoginValidation(t *testing.T) {
	w := doJSON(t, testRouter(), "POST", "/auth/login", gin.H{"username": "sasha"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "required")
}

func TestPasswordResetValidation(t *testing.T) {
	w := doJSON(t, testRouter(), "POST", "/auth/password-reset", gin.H{"identifier": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "identifier is required")
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	r := testRouter()
	cases := []struct {
		method, path string
	}{
		{"POST", "/auth/logout"},
		{"GET", "/user/profile"},
		{"PUT", "/user/profile"},
		{"GET", "/user/dashboard"},
		{"POST", "/items"},
		{"GET", "/items/my"},
		{"DELETE", "/items/some-item"},
		{"POST", "/tips"},
		{"GET", "/tips/my"},
		{"GET", "/tips/favorites"},
		{"POST", "/tips/some-tip/favorite"},
		{"POST", "/centers"},
	}
	for _, tc := range cases {
		w := doJSON(t, r, tc.method, tc.path, gin.H{})
		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, w.Body.String(), "Authorization")
	}
}

func TestProtectedRouteRejectsGarbageToken(t *testing.T) {
	r := testRouter()
	req := httptest.NewRequest("GET", "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func authHeader(t *testing.T, userID uint, role string) string {
	t.Helper()
	token, err := utils.GenerateJWT(userID, role, os.Getenv("JWT_SECRET"))
	assert.NoError(t, err)
	return "Bearer " + token
}

func doAuthJSON(t *testing.T, r *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", auth)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCenterCreateRequiresAdmin(t *testing.T) {
	r := testRouter()
	w := doAuthJSON(t, r, "POST", "/centers", authHeader(t, 7, "user"), gin.H{"name": "Depot"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin access required")
}

func TestCenterCreateValidation(t *testing.T) {
	r := testRouter()
	admin := authHeader(t, 1, "admin")

	t.Run("missing fields", func(t *testing.T) {
		w := doAuthJSON(t, r, "POST", "/centers", admin, gin.H{"name": "Depot"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "name, city and state are required")
	})

	t.Run("unknown material", func(t *testing.T) {
		w := doAuthJSON(t, r, "POST", "/centers", admin, gin.H{
			"name": "Depot", "city": "Halifax", "state": "NS",
			"materials": []gin.H{{"material_type": "uranium"}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown material type: uranium")
	})

	t.Run("duplicate material", func(t *testing.T) {
		w := doAuthJSON(t, r, "POST", "/centers", admin, gin.H{
			"name": "Depot", "city": "Halifax", "state": "NS",
			"materials": []gin.H{{"material_type": "glass"}, {"material_type": "glass"}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "duplicate material type: glass")
	})
}

func TestItemCreateValidation(t *testing.T) {
	r := testRouter()
	auth := authHeader(t, 5, "user")

	t.Run("missing title", func(t *testing.T) {
		w := doAuthJSON(t, r, "POST", "/items", auth, gin.H{"description": "no title"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "title is required")
	})

	t.Run("unknown condition", func(t *testing.T) {
		w := doAuthJSON(t, r, "POST", "/items", auth, gin.H{"title": "Bike", "condition": "shiny"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown condition")
	})

	t.Run("unknown status", func(t *testing.T) {
		w := doAuthJSON(t, r, "POST", "/items", auth, gin.H{"title": "Bike", "status": "lost"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "unknown status")
	})
}

func TestTipCreateValidation(t *testing.T) {
	r := testRouter()
	w := doAuthJSON(t, r, "POST", "/tips", authHeader(t, 3, "user"), gin.H{"title": "Only a title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "title, content and category_id are required")
}

func TestClearHistoryWithoutState(t *testing.T) {
	w := doJSON(t, testRouter(), "POST", "/tips/clear-history", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "history cleared")
}
