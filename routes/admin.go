package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"farmstay-server/database"
	"farmstay-server/models"
	"farmstay-server/utils"
)

// RegisterAdminRoutes registers the dashboard overview endpoints
func RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard/stats", getDashboardStats)
	router.GET("/contact-messages", listContactMessages)
	router.POST("/contact-messages/:id/read", markContactMessageRead)
}

// getDashboardStats returns the counters the dashboard landing page shows
func getDashboardStats(c *gin.Context) {
	// Check-in dates are stored as midnight values, so the window starts at
	// the beginning of today or same-day arrivals disappear from the count
	today := utils.StartOfDay(time.Now())
	weekAhead := today.AddDate(0, 0, 7)

	var upcomingCheckIns int64
	database.DB.Model(&models.Booking{}).
		Where("status = ? AND check_in_date BETWEEN ? AND ?", models.BookingStatusConfirmed, today, weekAhead).
		Count(&upcomingCheckIns)

	var pendingBookings int64
	database.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingStatusPending).
		Count(&pendingBookings)

	var activeRentals int64
	database.DB.Model(&models.TreeRental{}).
		Where("status = ?", models.RentalStatusActive).
		Count(&activeRentals)

	var openTasks int64
	database.DB.Model(&models.Task{}).
		Where("status <> ?", models.TaskStatusDone).
		Count(&openTasks)

	var unreadMessages int64
	database.DB.Model(&models.ContactMessage{}).
		Where("is_read = ?", false).
		Count(&unreadMessages)

	c.JSON(http.StatusOK, gin.H{
		"upcoming_check_ins": upcomingCheckIns,
		"pending_bookings":   pendingBookings,
		"active_rentals":     activeRentals,
		"open_tasks":         openTasks,
		"unread_messages":    unreadMessages,
	})
}

func listContactMessages(c *gin.Context) {
	query := database.DB.Model(&models.ContactMessage{})
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var messages []models.ContactMessage
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func markContactMessageRead(c *gin.Context) {
	result := database.DB.Model(&models.ContactMessage{}).
		Where("id = ?", c.Param("id")).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update message"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Marked as read"})
}
