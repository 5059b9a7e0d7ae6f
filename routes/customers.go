package routes

import (
	"errors"
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

// RegisterCustomerRoutes registers customer management routes
func RegisterCustomerRoutes(router *gin.RouterGroup) {
	router.GET("/customers", listCustomers)
	router.GET("/customers/:id", getCustomer)
	router.PUT("/customers/:id", updateCustomer)
}

func listCustomers(c *gin.Context) {
	query := database.DB.Model(&models.Customer{})

	// Search matches name, email or normalized phone
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where(
			"lower(full_name) LIKE ? OR lower(email) LIKE ? OR phone LIKE ?",
			like, like, "%"+utils.NormalizePhoneNumber(q)+"%",
		)
	}

	var customers []models.Customer
	if err := query.Order("full_name ASC").Limit(200).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func getCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	var customer models.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	// Include history so staff see the full relationship
	var bookings []models.Booking
	database.DB.Where("customer_id = ?", id).Preload("Room").
		Order("check_in_date DESC").Find(&bookings)
	var rentals []models.TreeRental
	database.DB.Where("customer_id = ?", id).Preload("Tree").
		Order("start_date DESC").Find(&rentals)

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"bookings": bookings,
		"rentals":  rentals,
	})
}

func updateCustomer(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer ID"})
		return
	}

	var req struct {
		FullName string `json:"full_name"`
		Email    string `json:"email" binding:"omitempty,email"`
		Phone    string `json:"phone"`
		Notes    string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Phone != "" && !utils.ValidatePhoneNumber(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	customerService := services.NewCustomerService(database.DB)
	customer, err := customerService.UpdateIdentity(uint(id), services.CustomerIdentity{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		respondCustomerError(c, err)
		return
	}

	if req.Notes != "" {
		database.DB.Model(customer).Update("notes", req.Notes)
	}

	c.JSON(http.StatusOK, gin.H{"customer": customer})
}

// respondCustomerError keeps a missing record distinct from a failed query
func respondCustomerError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrCustomerNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}
	log.Printf("❌ Customer update failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
}
