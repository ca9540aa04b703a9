package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"ecoshare/models"
	"ecoshare/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var googleOauthConfig *oauth2.Config

func InitGoogleOAuth() {
	googleOauthConfig = &oauth2.Config{
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URI"),
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email"},
		Endpoint:     google.Endpoint,
	}
}

type UserController struct {
	RDB *redis.Client
}

func NewUserController(rdb *redis.Client) *UserController {
	return &UserController{RDB: rdb}
}

// resolveIdentifier looks an account up by the single identifier string:
// anything containing "@" is treated as an email, otherwise as a username.
func resolveIdentifier(db *gorm.DB, identifier string) (*models.User, error) {
	var user models.User
	var result *gorm.DB
	if strings.Contains(identifier, "@") {
		result = db.Where("email = ?", strings.ToLower(identifier)).First(&user)
	} else {
		result = db.Where("username = ?", identifier).First(&user)
	}
	if result.Error != nil {
		return nil, result.Error
	}
	return &user, nil
}

// sendMailBestEffort delivers a transactional mail without ever failing the
// request: throttled per recipient, errors only logged.
func sendMailBestEffort(rdb *redis.Client, to, subject, body string) {
	if os.Getenv("SMTP_HOST") == "" {
		return
	}
	if rdb != nil {
		if !utils.CanSendEmail(rdb, to) {
			return
		}
		utils.MarkEmailSent(rdb, to)
	}
	go func() {
		if err := utils.SendEmail(to, subject, body, os.Getenv("SMTP_HOST"), os.Getenv("SMTP_PORT"), os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS")); err != nil {
			utils.LogError(err, "send mail")
		}
	}()
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
}

// POST /auth/register
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
		return
	}
	if !strings.Contains(req.Email, "@") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email", "field": "email"})
		return
	}
	if len(req.Password) < utils.MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("password must be at least %d characters", utils.MinPasswordLength), "field": "password"})
		return
	}

	db := utils.GetDB()
	var count int64
	db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This email is already registered.", "field": "email"})
		return
	}
	db.Model(&models.User{}).Where("username = ?", req.Username).Count(&count)
	if count > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This username is already taken.", "field": "username"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := models.User{
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      "user",
		Profile:   models.UserProfile{},
	}
	if err := db.Create(&user).Error; err != nil {
		// Duplicate insert racing the pre-check lands here
		if utils.IsUniqueViolation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "This username or email is already registered."})
			return
		}
		utils.LogError(err, "register user")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	sendMailBestEffort(uc.RDB, user.Email, "Welcome to EcoShare",
		fmt.Sprintf("Hi %s, your EcoShare account is ready. Happy sharing!", user.Username))

	c.JSON(http.StatusCreated, gin.H{"status": "account created", "id": user.ID})
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /auth/login
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}
	db := utils.GetDB()
	var user models.User
	if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
		return
	}
	if user.GoogleID != nil && *user.GoogleID != "" && user.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "This account uses Google sign-in."})
		return
	}
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password."})
		return
	}
	token, err := utils.GenerateJWT(user.ID, user.Role, os.Getenv("JWT_SECRET"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "username": user.Username})
}

// POST /auth/logout — blacklists the presented token until it expires.
func (uc *UserController) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no token presented"})
		return
	}
	ttl := 72 * time.Hour
	if claims, err := utils.ParseJWT(token, os.Getenv("JWT_SECRET")); err == nil {
		ttl = utils.TokenTTL(claims)
	}
	if uc.RDB != nil {
		uc.RDB.Set(context.Background(), utils.TokenBlacklistKey(token), "1", ttl)
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

type PasswordResetRequest struct {
	Identifier string `json:"identifier"`
}

// POST /auth/password-reset
// Stage one of the reset flow: resolve the identifier and park it in the
// session store for the confirm step.
func (uc *UserController) RequestPasswordReset(c *gin.Context) {
	var req PasswordResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	identifier := strings.TrimSpace(req.Identifier)
	if identifier == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifier is required"})
		return
	}

	db := utils.GetDB()
	if _, err := resolveIdentifier(db, identifier); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No account found with this username or email."})
		return
	}

	sessionID := c.GetString("session_id")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no session"})
		return
	}
	uc.RDB.Set(context.Background(), utils.ResetStageKey(sessionID), identifier, 15*time.Minute)
	c.JSON(http.StatusOK, gin.H{"status": "identifier staged", "next": "/auth/password-reset/confirm"})
}

type PasswordResetConfirmRequest struct {
	Password string `json:"password"`
}

// POST /auth/password-reset/confirm
// Consumes the staged identifier. Missing stage or a vanished account sends
// the caller back to the request step.
func (uc *UserController) ConfirmPasswordReset(c *gin.Context) {
	sessionID := c.GetString("session_id")
	staged, err := uc.RDB.Get(context.Background(), utils.ResetStageKey(sessionID)).Result()
	if err != nil || staged == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please enter your username or email first.", "next": "/auth/password-reset"})
		return
	}

	db := utils.GetDB()
	user, err := resolveIdentifier(db, staged)
	if err != nil {
		uc.RDB.Del(context.Background(), utils.ResetStageKey(sessionID))
		c.JSON(http.StatusNotFound, gin.H{"error": "No account found with that username or email.", "next": "/auth/password-reset"})
		return
	}

	var req PasswordResetConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if len(req.Password) < utils.MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("password must be at least %d characters", utils.MinPasswordLength)})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}
	user.Password = hash
	if err := db.Save(user).Error; err != nil {
		utils.LogError(err, "reset password")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
		return
	}
	uc.RDB.Del(context.Background(), utils.ResetStageKey(sessionID))

	sendMailBestEffort(uc.RDB, user.Email, "EcoShare: your password was changed",
		fmt.Sprintf("Hi %s, the password on your EcoShare account was just reset. If this wasn't you, contact support.", user.Username))

	c.JSON(http.StatusOK, gin.H{"status": "password updated"})
}

type googleUserInfo struct {
	Email string `json:"email"`
	Id    string `json:"id"`
	Name  string `json:"name"`
}

// GET /auth/google
func (uc *UserController) GoogleLogin(c *gin.Context) {
	url := googleOauthConfig.AuthCodeURL("state", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback — resolves or creates the account and issues a JWT.
func (uc *UserController) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code not found"})
		return
	}
	token, err := googleOauthConfig.Exchange(context.Background(), code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token exchange failed"})
		return
	}
	client := googleOauthConfig.Client(context.Background(), token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo?alt=json")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to get user info"})
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to get user info"})
		return
	}
	var userInfo googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to decode user info"})
		return
	}
	if userInfo.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email not found in Google profile"})
		return
	}

	db := utils.GetDB()
	var user models.User
	result := db.Where("google_id = ? OR email = ?", userInfo.Id, strings.ToLower(userInfo.Email)).First(&user)
	if result.Error != nil {
		// First Google sign-in: create the account with a derived username
		username, err := uniqueUsername(db, userInfo.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			return
		}
		googleID := userInfo.Id
		user = models.User{
			Username:  username,
			Email:     strings.ToLower(userInfo.Email),
			FirstName: userInfo.Name,
			GoogleID:  &googleID,
			Role:      "user",
			Profile:   models.UserProfile{},
		}
		if err := db.Create(&user).Error; err != nil {
			utils.LogError(err, "google register")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
			return
		}
	} else if user.GoogleID == nil {
		googleID := userInfo.Id
		user.GoogleID = &googleID
		db.Save(&user)
	}

	jwt, err := utils.GenerateJWT(user.ID, user.Role, os.Getenv("JWT_SECRET"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": jwt, "username": user.Username})
}

// uniqueUsername derives a free username from the email local part,
// suffixing -1, -2, ... on collision like the slug rule.
func uniqueUsername(db *gorm.DB, email string) (string, error) {
	base := utils.Slugify(strings.SplitN(email, "@", 2)[0])
	username := base
	for i := 1; ; i++ {
		var count int64
		if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return username, nil
		}
		username = fmt.Sprintf("%s-%d", base, i)
	}
}
