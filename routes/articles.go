package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"farmstay-server/database"
	"farmstay-server/models"
	"farmstay-server/storage"
	"farmstay-server/utils"
)

// RegisterArticleRoutes registers journal article management routes
func RegisterArticleRoutes(router *gin.RouterGroup) {
	router.GET("/articles", listArticlesAdmin)
	router.POST("/articles", createArticle)
	router.PUT("/articles/:id", updateArticle)
	router.PATCH("/articles/:id/publish", publishArticle)
	router.DELETE("/articles/:id", deleteArticle)
}

type articleRequest struct {
	Title      string `json:"title" binding:"required"`
	Excerpt    string `json:"excerpt"`
	Body       string `json:"body" binding:"required"`
	CoverImage string `json:"cover_image"`
}

func listArticlesAdmin(c *gin.Context) {
	var articles []models.Article
	if err := database.DB.Preload("Author").Order("created_at DESC").Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func createArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article := models.Article{
		Title:      req.Title,
		Slug:       utils.Slugify(req.Title),
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		AuthorID:   c.GetUint("user_id"),
	}

	if err := database.DB.Create(&article).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An article with this title already exists"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"article": article})
}

func updateArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var article models.Article
	if err := database.DB.First(&article, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	article.Title = req.Title
	article.Slug = utils.Slugify(req.Title)
	article.Excerpt = req.Excerpt
	article.Body = req.Body
	if req.CoverImage != "" {
		article.CoverImage = req.CoverImage
	}

	if err := database.DB.Save(&article).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	storage.CacheInvalidate(c.Request.Context(), publicArticlesCacheKey)

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// publishArticle toggles the published flag; publishing stamps published_at
func publishArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	var req struct {
		IsPublished *bool `json:"is_published" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var article models.Article
	if err := database.DB.First(&article, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}

	updates := map[string]interface{}{"is_published": *req.IsPublished}
	if *req.IsPublished && article.PublishedAt == nil {
		now := time.Now()
		updates["published_at"] = &now
	}

	if err := database.DB.Model(&article).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update article"})
		return
	}

	storage.CacheInvalidate(c.Request.Context(), publicArticlesCacheKey)

	c.JSON(http.StatusOK, gin.H{"article": article})
}

func deleteArticle(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article ID"})
		return
	}

	if err := database.DB.Delete(&models.Article{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete article"})
		return
	}

	storage.CacheInvalidate(c.Request.Context(), publicArticlesCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}
