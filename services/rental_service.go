package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"farmstay-server/models"
	"farmstay-server/utils"
)

var (
	// ErrRentalConflict is returned when a proposed period overlaps an
	// active rental on the same tree
	ErrRentalConflict = errors.New("tree already rented for the selected period")
	// ErrTreeUnavailable is returned when the tree is under maintenance
	ErrTreeUnavailable = errors.New("tree is not available for rental")
)

// RentalService owns the rental no-overlap invariant and the tree state
// that moves with it
type RentalService struct {
	db *gorm.DB
}

func NewRentalService(db *gorm.DB) *RentalService {
	return &RentalService{db: db}
}

// CreateRental inserts an active rental and flips the tree to rented. Guard,
// insert and tree update share one transaction: a failure at any step leaves
// neither a rental without a rented tree nor a rented tree without a rental.
func (s *RentalService) CreateRental(treeID, customerID uint, start, end time.Time) (*models.TreeRental, error) {
	rental := &models.TreeRental{
		TreeID:     treeID,
		CustomerID: customerID,
		StartDate:  start,
		EndDate:    end,
		Status:     models.RentalStatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var tree models.Tree
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&tree, treeID).Error; err != nil {
			return err
		}
		if tree.Status == models.TreeStatusMaintenance {
			return ErrTreeUnavailable
		}

		var candidates []models.TreeRental
		if err := tx.Model(&models.TreeRental{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("tree_id = ? AND status = ?", treeID, models.RentalStatusActive).
			Find(&candidates).Error; err != nil {
			return err
		}
		if conflict := FindRentalConflict(candidates, start, end, 0); conflict != nil {
			return ErrRentalConflict
		}

		if err := tx.Create(rental).Error; err != nil {
			return err
		}

		return tx.Model(&tree).Updates(map[string]interface{}{
			"status":            models.TreeStatusRented,
			"current_renter_id": customerID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return rental, nil
}

// EndRental marks a rental ended and frees its tree, transactionally
func (s *RentalService) EndRental(rentalID uint) (*models.TreeRental, error) {
	var rental models.TreeRental

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&rental, rentalID).Error; err != nil {
			return err
		}
		if rental.Status == models.RentalStatusEnded {
			return nil // already ended, nothing to do
		}

		rental.Status = models.RentalStatusEnded
		if err := tx.Save(&rental).Error; err != nil {
			return err
		}

		return s.releaseTree(tx, rental.TreeID)
	})
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// EndExpiredRentals ends every active rental whose end date has passed and
// frees the trees. Used by the background expiry job; returns how many
// rentals were closed. End dates are inclusive, so a rental ending today
// keeps its tree until the day rolls over.
func (s *RentalService) EndExpiredRentals(now time.Time) (int, error) {
	var expired []models.TreeRental
	if err := s.db.Where("status = ? AND end_date < ?", models.RentalStatusActive, utils.StartOfDay(now)).
		Find(&expired).Error; err != nil {
		return 0, err
	}

	ended := 0
	for _, rental := range expired {
		if _, err := s.EndRental(rental.ID); err != nil {
			return ended, err
		}
		ended++
	}
	return ended, nil
}

// releaseTree returns a tree to the available pool unless it is under
// maintenance, which staff set deliberately and rentals must not undo
func (s *RentalService) releaseTree(tx *gorm.DB, treeID uint) error {
	var tree models.Tree
	if err := tx.First(&tree, treeID).Error; err != nil {
		return err
	}
	if tree.Status == models.TreeStatusMaintenance {
		return tx.Model(&tree).Update("current_renter_id", nil).Error
	}
	return tx.Model(&tree).Updates(map[string]interface{}{
		"status":            models.TreeStatusAvailable,
		"current_renter_id": nil,
	}).Error
}
