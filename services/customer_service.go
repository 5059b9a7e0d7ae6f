package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"farmstay-server/models"
	"farmstay-server/utils"
)

var ErrCustomerNotFound = errors.New("customer not found")

// ResolutionKind says what the reconciliation decided
type ResolutionKind string

const (
	// ResolutionExisting means email and phone agree on one customer
	ResolutionExisting ResolutionKind = "existing"
	// ResolutionCreate means nothing matched; a new customer is safe
	ResolutionCreate ResolutionKind = "create"
	// ResolutionAmbiguous means the identity fields point at different
	// records; the operator must decide, the server never guesses
	ResolutionAmbiguous ResolutionKind = "ambiguous"
)

// Resolution is the outcome of matching submitted identity fields against
// existing customers
type Resolution struct {
	Kind       ResolutionKind
	Customer   *models.Customer // set when Kind == ResolutionExisting
	EmailMatch *models.Customer // candidate matched by email, if any
	PhoneMatch *models.Customer // candidate matched by phone, if any
}

// Reconcile implements the identity decision table over already-fetched
// candidates:
//
//	email match + phone match, same record  -> use it
//	email match only (or phone disagrees)   -> ambiguous
//	phone match only (or email disagrees)   -> ambiguous
//	no match                                -> create
func Reconcile(emailMatch, phoneMatch *models.Customer) Resolution {
	switch {
	case emailMatch == nil && phoneMatch == nil:
		return Resolution{Kind: ResolutionCreate}
	case emailMatch != nil && phoneMatch != nil && emailMatch.ID == phoneMatch.ID:
		return Resolution{Kind: ResolutionExisting, Customer: emailMatch, EmailMatch: emailMatch, PhoneMatch: phoneMatch}
	default:
		return Resolution{Kind: ResolutionAmbiguous, EmailMatch: emailMatch, PhoneMatch: phoneMatch}
	}
}

// CustomerService resolves renter identity against the customers table
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// CustomerIdentity is what a staff member typed into the rental form
type CustomerIdentity struct {
	FullName string
	Email    string
	Phone    string
}

// Resolve looks up the submitted identity by email and independently by
// phone, then applies the decision table. Lookups are normalized: email is
// case-folded, phone reduced to digits.
func (s *CustomerService) Resolve(identity CustomerIdentity) (Resolution, error) {
	emailMatch, err := s.findByEmail(identity.Email)
	if err != nil {
		return Resolution{}, err
	}
	phoneMatch, err := s.findByPhone(identity.Phone)
	if err != nil {
		return Resolution{}, err
	}
	return Reconcile(emailMatch, phoneMatch), nil
}

// Create inserts a new customer with normalized identity fields
func (s *CustomerService) Create(identity CustomerIdentity) (*models.Customer, error) {
	customer := &models.Customer{
		FullName: identity.FullName,
		Email:    strings.ToLower(strings.TrimSpace(identity.Email)),
		Phone:    utils.NormalizePhoneNumber(identity.Phone),
	}
	if err := s.db.Create(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

// Confirm re-reads a resolved customer id before anything is written
// against it. A rental must never reference an id a failed create left
// dangling.
func (s *CustomerService) Confirm(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	return &customer, nil
}

// UpdateIdentity overwrites a customer's contact fields after the operator
// chose to reuse the record with corrected info
func (s *CustomerService) UpdateIdentity(id uint, identity CustomerIdentity) (*models.Customer, error) {
	customer, err := s.Confirm(id)
	if err != nil {
		return nil, err
	}
	if identity.FullName != "" {
		customer.FullName = identity.FullName
	}
	if identity.Email != "" {
		customer.Email = strings.ToLower(strings.TrimSpace(identity.Email))
	}
	if identity.Phone != "" {
		customer.Phone = utils.NormalizePhoneNumber(identity.Phone)
	}
	if err := s.db.Save(customer).Error; err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *CustomerService) findByEmail(email string) (*models.Customer, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, nil
	}
	var customer models.Customer
	err := s.db.Where("lower(email) = ?", email).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (s *CustomerService) findByPhone(phone string) (*models.Customer, error) {
	normalized := utils.NormalizePhoneNumber(phone)
	if normalized == "" {
		return nil, nil
	}
	var customer models.Customer
	err := s.db.Where("phone = ?", normalized).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}
