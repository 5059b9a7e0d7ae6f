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

// RegisterRentalRoutes registers tree rental management routes
func RegisterRentalRoutes(router *gin.RouterGroup) {
	router.GET("/rentals", listRentals)
	router.POST("/rentals", createRental)
	router.POST("/rentals/:id/end", endRental)
}

// rentalRequest is the create-rental form. Renter identity comes either as
// free-form fields (resolved by reconciliation) or as an explicit
// customer_id after the operator answered an ambiguity prompt.
type rentalRequest struct {
	TreeID    uint   `json:"tree_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`

	CustomerID     uint   `json:"customer_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	ForceNew       bool   `json:"force_new"`
	UpdateExisting bool   `json:"update_existing"`
}

func listRentals(c *gin.Context) {
	query := database.DB.Model(&models.TreeRental{}).
		Preload("Tree").
		Preload("Customer")

	if treeID := c.Query("tree_id"); treeID != "" {
		query = query.Where("tree_id = ?", treeID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var rentals []models.TreeRental
	if err := query.Order("start_date DESC").Find(&rentals).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rentals"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rentals": rentals})
}

// createRental resolves the renter's identity, then runs the rental
// conflict guard and writes the rental plus the tree state change
func createRental(c *gin.Context) {
	var req rentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Date validation before any lookup
	start, end, err := utils.ParseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CustomerID == 0 && req.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Renter name is required"})
		return
	}
	if req.Phone != "" && !utils.ValidatePhoneNumber(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number"})
		return
	}

	var tree models.Tree
	if err := database.DB.First(&tree, req.TreeID).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tree not found"})
		return
	}

	customer, ok := resolveRenter(c, req)
	if !ok {
		return
	}

	rentalService := services.NewRentalService(database.DB)
	rental, err := rentalService.CreateRental(req.TreeID, customer.ID, start, end)
	if err != nil {
		respondRentalError(c, err)
		return
	}
	rental.Customer = *customer

	publish(ws.EventRentalStarted, rental)

	c.JSON(http.StatusCreated, gin.H{"rental": rental})
}

// endRental closes a rental and frees its tree
func endRental(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rental ID"})
		return
	}

	rentalService := services.NewRentalService(database.DB)
	rental, err := rentalService.EndRental(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		log.Printf("❌ Failed to end rental %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to end rental"})
		return
	}

	publish(ws.EventRentalEnded, rental)

	c.JSON(http.StatusOK, gin.H{"rental": rental})
}

// resolveRenter maps the submitted identity to a customer record. When the
// fields point at different existing customers the handler answers 409 with
// both candidates and the operator resubmits with an explicit choice; the
// server never picks one silently.
func resolveRenter(c *gin.Context, req rentalRequest) (*models.Customer, bool) {
	customerService := services.NewCustomerService(database.DB)
	identity := services.CustomerIdentity{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	// Operator already decided: reuse (optionally updating contact info)
	if req.CustomerID != 0 {
		var customer *models.Customer
		var err error
		if req.UpdateExisting {
			customer, err = customerService.UpdateIdentity(req.CustomerID, identity)
		} else {
			customer, err = customerService.Confirm(req.CustomerID)
		}
		if err != nil {
			if errors.Is(err, services.ErrCustomerNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Customer not found"})
			} else {
				log.Printf("❌ Customer lookup failed: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve customer"})
			}
			return nil, false
		}
		return customer, true
	}

	// Operator already decided: create a fresh record despite partial matches
	if req.ForceNew {
		customer, err := customerService.Create(identity)
		if err != nil {
			log.Printf("❌ Customer creation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
			return nil, false
		}
		return customer, true
	}

	resolution, err := customerService.Resolve(identity)
	if err != nil {
		log.Printf("❌ Customer resolution failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve customer"})
		return nil, false
	}

	switch resolution.Kind {
	case services.ResolutionExisting:
		// Defensive re-read before the rental references the id
		customer, err := customerService.Confirm(resolution.Customer.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve customer"})
			return nil, false
		}
		return customer, true

	case services.ResolutionCreate:
		customer, err := customerService.Create(identity)
		if err != nil {
			log.Printf("❌ Customer creation failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
			return nil, false
		}
		return customer, true

	default: // ResolutionAmbiguous
		c.JSON(http.StatusConflict, gin.H{
			"error":       "customer_ambiguous",
			"message":     "The email and phone match different existing customers. Choose one or create a new customer.",
			"email_match": resolution.EmailMatch,
			"phone_match": resolution.PhoneMatch,
		})
		return nil, false
	}
}

func respondRentalError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrRentalConflict):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "rental_conflict",
			"message": "This tree is already rented for the selected period.",
		})
	case errors.Is(err, services.ErrTreeUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "tree_unavailable",
			"message": "This tree is under maintenance and cannot be rented.",
		})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
	default:
		log.Printf("❌ Rental operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rental"})
	}
}
