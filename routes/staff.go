package routes

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"farmstay-server/database"
	"farmstay-server/models"
	"farmstay-server/services"
	"farmstay-server/utils"
)

// RegisterStaffRoutes registers staff account management (admin only)
func RegisterStaffRoutes(router *gin.RouterGroup) {
	router.GET("/staff", listStaff)
	router.POST("/staff", createStaff)
	router.PATCH("/staff/:id/status", updateStaffStatus)
}

func listStaff(c *gin.Context) {
	var staff []models.StaffUser
	if err := database.DB.Order("full_name ASC").Find(&staff).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch staff"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

func createStaff(c *gin.Context) {
	var req struct {
		FullName string `json:"full_name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role" binding:"omitempty,oneof=admin staff"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create staff account"})
		return
	}

	role := models.StaffRole(req.Role)
	if role == "" {
		role = models.RoleStaff
	}

	user := models.StaffUser{
		FullName:     req.FullName,
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("❌ Failed to create staff account: %v", err)
		c.JSON(http.StatusConflict, gin.H{"error": "A staff account with this email already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// updateStaffStatus activates or deactivates an account. Deactivation also
// revokes the account's refresh tokens.
func updateStaffStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid staff ID"})
		return
	}

	var req struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.StaffUser
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Staff member not found"})
		return
	}

	if err := database.DB.Model(&user).Update("is_active", *req.IsActive).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update staff status"})
		return
	}

	if !*req.IsActive {
		if err := services.NewJWTService().RevokeUserTokens(user.ID); err != nil {
			log.Printf("⚠️ Failed to revoke tokens for deactivated user %d: %v", user.ID, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
