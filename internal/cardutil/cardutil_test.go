package cardutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripSpaces(t *testing.T) {
	assert.Equal(t, "4242424242424242", StripSpaces("4242 4242 4242 4242"))
	assert.Equal(t, "4242424242424242", StripSpaces("4242424242424242"))
	assert.Equal(t, "123", StripSpaces(" 1\t2\n3 "))
	assert.Equal(t, "", StripSpaces("   "))
}

func TestValidNumber(t *testing.T) {
	tests := []struct {
		name   string
		number string
		valid  bool
	}{
		{"visa test card", "4242424242424242", true},
		{"visa", "4111111111111111", true},
		{"mastercard", "5555555555554444", true},
		{"amex", "378282246310005", true},
		{"bad check digit", "4242424242424241", false},
		{"too short", "42424242424", false},
		{"too long", "42424242424242424242", false},
		{"non numeric", "4242-4242-4242-4242", false},
		{"embedded space", "4242 4242 4242 4242", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidNumber(tt.number))
		})
	}
}

func TestIsDigits(t *testing.T) {
	assert.True(t, IsDigits("0123456789"))
	assert.False(t, IsDigits(""))
	assert.False(t, IsDigits("12a3"))
}
