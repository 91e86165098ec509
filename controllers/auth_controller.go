package controllers

import (
	"log"
	"net/http"

	"stock_advisor_backend/config"
	"stock_advisor_backend/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthController handles admin authentication
type AuthController struct {
	cfg *config.Config
}

// NewAuthController creates a new auth controller
func NewAuthController(cfg *config.Config) *AuthController {
	return &AuthController{cfg: cfg}
}

// LoginRequest is the admin login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies admin credentials and issues a JWT token
// POST /api/v1/admin/login
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ip := c.ClientIP()

	if ac.cfg.AdminPasswordHash == "" {
		log.Println("Admin login rejected: ADMIN_PASSWORD_HASH not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "admin_disabled",
			"message": "Admin login is not configured",
		})
		return
	}

	if req.Username != ac.cfg.AdminUsername ||
		bcrypt.CompareHashAndPassword([]byte(ac.cfg.AdminPasswordHash), []byte(req.Password)) != nil {
		middleware.RecordLoginAttempt(ip, false)
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "invalid_credentials",
			"message": "Invalid username or password",
		})
		return
	}

	token, err := middleware.GenerateAdminToken(req.Username, ac.cfg.JWTSecret)
	if err != nil {
		log.Printf("Failed to generate admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	middleware.RecordLoginAttempt(ip, true)
	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_in": int(middleware.AdminTokenTTL.Seconds()),
	})
}
