package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"farmstay-server/config"
)

func TestNormalizePhoneNumber(t *testing.T) {
	config.Load()

	assert.Equal(t, NormalizePhoneNumber("0912 345 678"), NormalizePhoneNumber("0912-345-678"))
	assert.Equal(t, NormalizePhoneNumber("+84 912 345 678"), NormalizePhoneNumber("0912345678"))
	assert.Equal(t, "", NormalizePhoneNumber(""))
	assert.Equal(t, "", NormalizePhoneNumber("---"))

	// A number with an explicit country code keeps it
	assert.Equal(t, "15550100", NormalizePhoneNumber("+1 555 0100"))
	assert.Equal(t, "4930123456", NormalizePhoneNumber("+49 30 123456"))
}

func TestValidatePhoneNumber(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"555-1111", true},
		{"0912 345 678", true},
		{"+84912345678", true},
		{"123", false},
		{"", false},
		{"12345678901234567890", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidatePhoneNumber(tt.input), "input %q", tt.input)
	}
}
