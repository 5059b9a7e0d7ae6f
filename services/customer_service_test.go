package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"farmstay-server/models"
)

func TestReconcile(t *testing.T) {
	alice := &models.Customer{ID: 1, FullName: "Alice", Email: "a@x.com", Phone: "5551111"}
	bob := &models.Customer{ID: 2, FullName: "Bob", Email: "b@x.com", Phone: "5552222"}

	tests := []struct {
		name       string
		emailMatch *models.Customer
		phoneMatch *models.Customer
		wantKind   ResolutionKind
		wantID     uint
	}{
		{
			name:       "no match creates a new customer",
			emailMatch: nil,
			phoneMatch: nil,
			wantKind:   ResolutionCreate,
		},
		{
			name:       "email and phone agree on the same customer",
			emailMatch: alice,
			phoneMatch: alice,
			wantKind:   ResolutionExisting,
			wantID:     1,
		},
		{
			name:       "email only match is ambiguous",
			emailMatch: alice,
			phoneMatch: nil,
			wantKind:   ResolutionAmbiguous,
		},
		{
			name:       "phone only match is ambiguous",
			emailMatch: nil,
			phoneMatch: bob,
			wantKind:   ResolutionAmbiguous,
		},
		{
			name:       "email and phone matching different customers is ambiguous",
			emailMatch: alice,
			phoneMatch: bob,
			wantKind:   ResolutionAmbiguous,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.emailMatch, tt.phoneMatch)
			assert.Equal(t, tt.wantKind, got.Kind)
			if tt.wantKind == ResolutionExisting {
				assert.NotNil(t, got.Customer)
				assert.Equal(t, tt.wantID, got.Customer.ID)
			} else {
				assert.Nil(t, got.Customer)
			}
		})
	}
}

// The prompt carries both candidates so the operator can decide
func TestReconcileAmbiguousKeepsCandidates(t *testing.T) {
	alice := &models.Customer{ID: 1, Email: "a@x.com"}
	bob := &models.Customer{ID: 2, Phone: "5551111"}

	got := Reconcile(alice, bob)

	assert.Equal(t, ResolutionAmbiguous, got.Kind)
	assert.Equal(t, alice, got.EmailMatch)
	assert.Equal(t, bob, got.PhoneMatch)
}
