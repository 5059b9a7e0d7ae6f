package routes

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"farmstay-server/database"
	"farmstay-server/models"
	"farmstay-server/services"
	"farmstay-server/utils"
	ws "farmstay-server/websocket"
)

// RegisterBookingRoutes registers booking management routes
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.GET("/bookings", listBookings)
	router.GET("/bookings/:id", getBooking)
	router.POST("/bookings", createBooking)
	router.PUT("/bookings/:id", updateBooking)
	router.DELETE("/bookings/:id", deleteBooking)
}

// bookingRequest is the create/edit form payload. Dates travel as ISO
// strings and are parsed and ordered before any query runs.
type bookingRequest struct {
	RoomID       uint    `json:"room_id" binding:"required"`
	CustomerID   uint    `json:"customer_id" binding:"required"`
	CheckInDate  string  `json:"check_in_date" binding:"required"`
	CheckOutDate string  `json:"check_out_date" binding:"required"`
	Status       string  `json:"status" binding:"omitempty,oneof=confirmed pending cancelled"`
	Guests       int     `json:"guests" binding:"omitempty,min=1"`
	Notes        *string `json:"notes"`
}

func listBookings(c *gin.Context) {
	query := database.DB.Model(&models.Booking{}).
		Preload("Room").
		Preload("Customer")

	if roomID := c.Query("room_id"); roomID != "" {
		query = query.Where("room_id = ?", roomID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		if date, err := utils.ParseDate(from); err == nil {
			query = query.Where("check_out_date >= ?", date)
		}
	}
	if to := c.Query("to"); to != "" {
		if date, err := utils.ParseDate(to); err == nil {
			query = query.Where("check_in_date <= ?", date)
		}
	}

	var bookings []models.Booking
	if err := query.Order("check_in_date ASC").Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func getBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	if err := database.DB.Preload("Room").Preload("Customer").First(&booking, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

// createBooking runs the conflict guard and creates the booking
func createBooking(c *gin.Context) {
	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := buildBookingInput(c, req)
	if !ok {
		return
	}

	bookingService := services.NewBookingService(database.DB)
	booking, err := bookingService.CreateBooking(input)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	publish(ws.EventBookingCreated, booking)

	c.JSON(http.StatusCreated, gin.H{"booking": booking})
}

// updateBooking edits a booking, excluding it from its own conflict set
func updateBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input, ok := buildBookingInput(c, req)
	if !ok {
		return
	}

	bookingService := services.NewBookingService(database.DB)
	booking, err := bookingService.UpdateBooking(uint(id), input)
	if err != nil {
		respondBookingError(c, err)
		return
	}

	if booking.Status == models.BookingStatusCancelled {
		publish(ws.EventBookingCancelled, booking)
	} else {
		publish(ws.EventBookingUpdated, booking)
	}

	c.JSON(http.StatusOK, gin.H{"booking": booking})
}

func deleteBooking(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID"})
		return
	}

	var booking models.Booking
	if err := database.DB.First(&booking, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}

	if err := database.DB.Delete(&booking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}

	publish(ws.EventBookingCancelled, booking)

	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted"})
}

// buildBookingInput validates the form payload. The date checks run here,
// before anything touches the database.
func buildBookingInput(c *gin.Context, req bookingRequest) (services.BookingInput, bool) {
	checkIn, checkOut, err := utils.ParseDateRange(req.CheckInDate, req.CheckOutDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return services.BookingInput{}, false
	}

	var room models.Room
	if err := database.DB.First(&room, req.RoomID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Room not found"})
		return services.BookingInput{}, false
	}

	var customer models.Customer
	if err := database.DB.First(&customer, req.CustomerID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
		return services.BookingInput{}, false
	}

	guests := req.Guests
	if guests == 0 {
		guests = 1
	}

	return services.BookingInput{
		RoomID:       req.RoomID,
		CustomerID:   req.CustomerID,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		Status:       models.BookingStatus(req.Status),
		Guests:       guests,
		Notes:        req.Notes,
	}, true
}

func respondBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrBookingConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "booking_conflict",
			"message": "This room is already booked for the selected dates.",
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
	default:
		log.Printf("❌ Booking operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save booking"})
	}
}
