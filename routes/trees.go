package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farmstay-server/database"
	"farmstay-server/models"
	"farmstay-server/storage"
)

// RegisterTreeRoutes registers tree management routes
func RegisterTreeRoutes(router *gin.RouterGroup) {
	router.GET("/trees", listTrees)
	router.GET("/trees/:id", getTree)
	router.POST("/trees", createTree)
	router.PUT("/trees/:id", updateTree)
	router.PATCH("/trees/:id/status", updateTreeStatus)
	router.DELETE("/trees/:id", deleteTree)
}

type treeRequest struct {
	Name     string `json:"name" binding:"required"`
	Type     string `json:"type" binding:"required"`
	ImageURL string `json:"image_url"`
}

func listTrees(c *gin.Context) {
	query := database.DB.Model(&models.Tree{}).Preload("CurrentRenter")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var trees []models.Tree
	if err := query.Order("name ASC").Find(&trees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trees"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trees": trees})
}

func getTree(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tree ID"})
		return
	}

	var tree models.Tree
	if err := database.DB.Preload("CurrentRenter").First(&tree, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tree not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tree": tree})
}

func createTree(c *gin.Context) {
	var req treeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tree := models.Tree{
		Name:     req.Name,
		Type:     req.Type,
		Status:   models.TreeStatusAvailable,
		ImageURL: req.ImageURL,
	}

	if err := database.DB.Create(&tree).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tree"})
		return
	}

	storage.CacheInvalidate(c.Request.Context(), publicTreesCacheKey)

	c.JSON(http.StatusCreated, gin.H{"tree": tree})
}

func updateTree(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tree ID"})
		return
	}

	var tree models.Tree
	if err := database.DB.First(&tree, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tree not found"})
		return
	}

	var req treeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tree.Name = req.Name
	tree.Type = req.Type
	if req.ImageURL != "" {
		tree.ImageURL = req.ImageURL
	}

	if err := database.DB.Save(&tree).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tree"})
		return
	}

	storage.CacheInvalidate(c.Request.Context(), publicTreesCacheKey)

	c.JSON(http.StatusOK, gin.H{"tree": tree})
}

// updateTreeStatus moves a tree between available and maintenance. The
// rented status is owned by the rental flow and cannot be set by hand.
func updateTreeStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tree ID"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=available maintenance"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var tree models.Tree
	if err := database.DB.First(&tree, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tree not found"})
		return
	}

	if tree.Status == models.TreeStatusRented {
		c.JSON(http.StatusConflict, gin.H{"error": "Tree is rented; end the rental first"})
		return
	}

	tree.Status = models.TreeStatus(req.Status)
	if err := database.DB.Model(&tree).Update("status", tree.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tree status"})
		return
	}

	storage.CacheInvalidate(c.Request.Context(), publicTreesCacheKey)

	c.JSON(http.StatusOK, gin.H{"tree": tree})
}

func deleteTree(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tree ID"})
		return
	}

	var count int64
	database.DB.Model(&models.TreeRental{}).
		Where("tree_id = ? AND status = ?", id, models.RentalStatusActive).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Tree has an active rental and cannot be deleted"})
		return
	}

	if err := database.DB.Delete(&models.Tree{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tree"})
		return
	}

	storage.CacheInvalidate(c.Request.Context(), publicTreesCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "Tree deleted"})
}
