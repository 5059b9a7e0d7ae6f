package routes

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"farmstay-server/services"
)

// The validation layer runs before any query, so these requests must be
// rejected without a database behind the router.
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("/api/v1")
	RegisterBookingRoutes(api)
	RegisterRentalRoutes(api)
	return router
}

func performRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateBookingValidation(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		name string
		body string
	}{
		{
			name: "malformed json",
			body: `{"room_id":`,
		},
		{
			name: "missing required fields",
			body: `{"room_id": 1}`,
		},
		{
			name: "bad date format",
			body: `{"room_id": 1, "customer_id": 1, "check_in_date": "10/06/2024", "check_out_date": "12/06/2024"}`,
		},
		{
			name: "check-in after check-out",
			body: `{"room_id": 1, "customer_id": 1, "check_in_date": "2024-06-12", "check_out_date": "2024-06-10"}`,
		},
		{
			name: "unknown status",
			body: `{"room_id": 1, "customer_id": 1, "check_in_date": "2024-06-10", "check_out_date": "2024-06-12", "status": "archived"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "POST", "/api/v1/bookings", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestGetBookingInvalidID(t *testing.T) {
	router := setupTestRouter()

	w := performRequest(router, "GET", "/api/v1/bookings/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid booking ID")
}

func TestCreateRentalValidation(t *testing.T) {
	router := setupTestRouter()

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name: "start after end",
			body: `{"tree_id": 1, "start_date": "2024-07-01", "end_date": "2024-06-01", "full_name": "Mai Tran"}`,
		},
		{
			name:    "missing renter name",
			body:    `{"tree_id": 1, "start_date": "2024-06-01", "end_date": "2024-07-01"}`,
			message: "Renter name is required",
		},
		{
			name:    "phone too short",
			body:    `{"tree_id": 1, "start_date": "2024-06-01", "end_date": "2024-07-01", "full_name": "Mai Tran", "phone": "12345"}`,
			message: "Invalid phone number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performRequest(router, "POST", "/api/v1/rentals", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			if tt.message != "" {
				assert.Contains(t, w.Body.String(), tt.message)
			}
		})
	}
}

func TestEndRentalInvalidID(t *testing.T) {
	router := setupTestRouter()

	w := performRequest(router, "POST", "/api/v1/rentals/abc/end", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// A missing customer is 404; anything else is a server fault, not 404
func TestRespondCustomerError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondCustomerError(c, services.ErrCustomerNotFound)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("query failure", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondCustomerError(c, errors.New("connection reset"))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
