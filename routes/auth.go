package routes

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"farmstay-server/database"
	"farmstay-server/models"
	"farmstay-server/services"
	"farmstay-server/utils"
)

// RegisterAuthRoutes registers staff session endpoints
func RegisterAuthRoutes(router *gin.RouterGroup) {
	router.POST("/login", login)
	router.POST("/refresh", refreshToken)
	router.POST("/logout", logout)
}

// RegisterProtectedAuthRoutes registers session endpoints that require a
// valid token
func RegisterProtectedAuthRoutes(router *gin.RouterGroup) {
	router.GET("/auth/me", getCurrentUser)
}

// login authenticates a staff member by email and password
func login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	var user models.StaffUser
	if err := database.DB.Where("lower(email) = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
		log.Printf("❌ Login failed for %s: %v", req.Email, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsActive {
		log.Printf("❌ Login attempt by inactive user %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account is inactive"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		log.Printf("❌ Invalid password for user %d", user.ID)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	jwtService := services.NewJWTService()
	tokens, err := jwtService.GenerateTokenPair(&user, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		log.Printf("❌ Failed to generate tokens for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// refreshToken exchanges a valid refresh token for a new token pair
func refreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	jwtService := services.NewJWTService()
	stored, err := jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	var user models.StaffUser
	if err := database.DB.First(&user, stored.UserID).Error; err != nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	// Rotate: the used token is revoked and a fresh pair issued
	if err := jwtService.RevokeRefreshToken(req.RefreshToken); err != nil {
		log.Printf("⚠️ Failed to revoke used refresh token: %v", err)
	}

	tokens, err := jwtService.GenerateTokenPair(&user, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

// logout revokes the presented refresh token
func logout(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	jwtService := services.NewJWTService()
	if err := jwtService.RevokeRefreshToken(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// getCurrentUser returns the authenticated staff user
func getCurrentUser(c *gin.Context) {
	value, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": value})
}
