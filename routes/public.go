package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"farmstay-server/database"
	"farmstay-server/models"
	"farmstay-server/storage"
	ws "farmstay-server/websocket"
)

// Cache keys for public site payloads
const (
	publicRoomsCacheKey    = "public:rooms"
	publicTreesCacheKey    = "public:trees"
	publicArticlesCacheKey = "public:articles"
)

// RegisterPublicRoutes registers the unauthenticated marketing site API
func RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/rooms", publicListRooms)
	router.GET("/rooms/:slug", publicGetRoom)
	router.GET("/trees", publicListTrees)
	router.GET("/articles", publicListArticles)
	router.GET("/articles/:slug", publicGetArticle)
	router.POST("/contact", submitContactMessage)
}

func publicListRooms(c *gin.Context) {
	var rooms []models.Room
	if storage.CacheGet(c.Request.Context(), publicRoomsCacheKey, &rooms) {
		c.JSON(http.StatusOK, gin.H{"rooms": rooms})
		return
	}

	if err := database.DB.Where("is_published = ?", true).Order("name ASC").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}

	storage.CacheSet(c.Request.Context(), publicRoomsCacheKey, rooms)
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func publicGetRoom(c *gin.Context) {
	var room models.Room
	if err := database.DB.Where("slug = ? AND is_published = ?", c.Param("slug"), true).
		First(&room).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

// publicListTrees shows the rentable trees with their availability. Renter
// identity stays private; only status is exposed.
func publicListTrees(c *gin.Context) {
	type publicTree struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		Status   string `json:"status"`
		ImageURL string `json:"image_url"`
	}

	var cached []publicTree
	if storage.CacheGet(c.Request.Context(), publicTreesCacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"trees": cached})
		return
	}

	var trees []models.Tree
	if err := database.DB.Order("name ASC").Find(&trees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch trees"})
		return
	}

	out := make([]publicTree, 0, len(trees))
	for _, t := range trees {
		out = append(out, publicTree{
			ID:       t.ID,
			Name:     t.Name,
			Type:     t.Type,
			Status:   string(t.Status),
			ImageURL: t.ImageURL,
		})
	}

	storage.CacheSet(c.Request.Context(), publicTreesCacheKey, out)
	c.JSON(http.StatusOK, gin.H{"trees": out})
}

func publicListArticles(c *gin.Context) {
	var articles []models.Article
	if storage.CacheGet(c.Request.Context(), publicArticlesCacheKey, &articles) {
		c.JSON(http.StatusOK, gin.H{"articles": articles})
		return
	}

	if err := database.DB.Where("is_published = ?", true).
		Order("published_at DESC").Find(&articles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch articles"})
		return
	}

	storage.CacheSet(c.Request.Context(), publicArticlesCacheKey, articles)
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

func publicGetArticle(c *gin.Context) {
	var article models.Article
	if err := database.DB.Where("slug = ? AND is_published = ?", c.Param("slug"), true).
		First(&article).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"article": article})
}

// submitContactMessage stores an inquiry from the public contact form
func submitContactMessage(c *gin.Context) {
	var req struct {
		Name    string `json:"name" binding:"required"`
		Email   string `json:"email" binding:"required,email"`
		Message string `json:"message" binding:"required,max=4000"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}

	if err := database.DB.Create(&message).Error; err != nil {
		log.Printf("❌ Failed to store contact message: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	publish(ws.EventContactReceived, gin.H{"id": message.ID, "name": message.Name})

	c.JSON(http.StatusCreated, gin.H{"message": "Thank you! We'll be in touch soon."})
}
