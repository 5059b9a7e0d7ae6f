package jobs

import (
	"log"
	"time"

	"farmstay-server/database"
	"farmstay-server/services"
	ws "farmstay-server/websocket"
)

// RentalExpiryJob ends active tree rentals whose end date has passed and
// returns their trees to the available pool
type RentalExpiryJob struct {
	hub      *ws.Hub
	stopChan chan bool
}

// NewRentalExpiryJob creates a new rental expiry job
func NewRentalExpiryJob(hub *ws.Hub) *RentalExpiryJob {
	return &RentalExpiryJob{
		hub:      hub,
		stopChan: make(chan bool),
	}
}

// Start begins the rental expiry job
func (j *RentalExpiryJob) Start() {
	go j.run()
	log.Println("🚀 Rental expiry job started")
}

// Stop stops the rental expiry job
func (j *RentalExpiryJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Rental expiry job stopped")
}

func (j *RentalExpiryJob) run() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	// First sweep shortly after boot so overnight expiries close promptly
	j.sweep()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopChan:
			return
		}
	}
}

func (j *RentalExpiryJob) sweep() {
	rentalService := services.NewRentalService(database.DB)

	ended, err := rentalService.EndExpiredRentals(time.Now())
	if err != nil {
		log.Printf("❌ Rental expiry sweep failed: %v", err)
		return
	}

	if ended > 0 {
		log.Printf("⏰ Ended %d expired tree rentals", ended)
		if j.hub != nil {
			j.hub.Publish(ws.EventRentalEnded, map[string]interface{}{"ended": ended})
		}
	}
}
