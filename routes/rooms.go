package routes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"farmstay-server/database"
	"farmstay-server/models"
	"farmstay-server/storage"
	"farmstay-server/utils"
)

// RegisterRoomRoutes registers room management routes
func RegisterRoomRoutes(router *gin.RouterGroup) {
	router.GET("/rooms", listRooms)
	router.GET("/rooms/:id", getRoom)
	router.POST("/rooms", createRoom)
	router.PUT("/rooms/:id", updateRoom)
	router.DELETE("/rooms/:id", deleteRoom)
}

type roomRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Capacity    int     `json:"capacity" binding:"omitempty,min=1"`
	NightlyRate float64 `json:"nightly_rate" binding:"required,min=0"`
	ImageURL    string  `json:"image_url"`
	IsPublished *bool   `json:"is_published"`
}

func listRooms(c *gin.Context) {
	var rooms []models.Room
	if err := database.DB.Order("name ASC").Find(&rooms).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rooms"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rooms": rooms})
}

func getRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var room models.Room
	if err := database.DB.First(&room, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"room": room})
}

func createRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	capacity := req.Capacity
	if capacity == 0 {
		capacity = 2
	}

	room := models.Room{
		Name:        req.Name,
		Slug:        utils.Slugify(req.Name),
		Description: req.Description,
		Capacity:    capacity,
		NightlyRate: req.NightlyRate,
		ImageURL:    req.ImageURL,
	}
	if req.IsPublished != nil {
		room.IsPublished = *req.IsPublished
	}

	if err := database.DB.Create(&room).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A room with this name already exists"})
		return
	}

	invalidatePublicRoomCache(c)

	c.JSON(http.StatusCreated, gin.H{"room": room})
}

func updateRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	var room models.Room
	if err := database.DB.First(&room, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
		return
	}

	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room.Name = req.Name
	room.Slug = utils.Slugify(req.Name)
	room.Description = req.Description
	if req.Capacity > 0 {
		room.Capacity = req.Capacity
	}
	room.NightlyRate = req.NightlyRate
	if req.ImageURL != "" {
		room.ImageURL = req.ImageURL
	}
	if req.IsPublished != nil {
		room.IsPublished = *req.IsPublished
	}

	if err := database.DB.Save(&room).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update room"})
		return
	}

	invalidatePublicRoomCache(c)

	c.JSON(http.StatusOK, gin.H{"room": room})
}

func deleteRoom(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid room ID"})
		return
	}

	// Refuse to delete a room with live bookings
	var count int64
	database.DB.Model(&models.Booking{}).
		Where("room_id = ? AND status <> ?", id, models.BookingStatusCancelled).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Room has active bookings and cannot be deleted"})
		return
	}

	if err := database.DB.Delete(&models.Room{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete room"})
		return
	}

	invalidatePublicRoomCache(c)

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

func invalidatePublicRoomCache(c *gin.Context) {
	storage.CacheInvalidate(c.Request.Context(), publicRoomsCacheKey)
}
