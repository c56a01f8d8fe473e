package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEmail(t *testing.T) {
	email, err := SanitizeEmail("  Admin@Example.COM ")
	assert.NoError(t, err)
	assert.Equal(t, "admin@example.com", email)

	_, err = SanitizeEmail("not-an-email")
	assert.Error(t, err)

	_, err = SanitizeEmail("")
	assert.Error(t, err)
}

func TestSanitizePhone(t *testing.T) {
	phone, err := SanitizePhone("+91 98765-43210")
	assert.NoError(t, err)
	assert.Equal(t, "+919876543210", phone)

	phone, err = SanitizePhone("9876543210")
	assert.NoError(t, err)
	assert.Equal(t, "+9876543210", phone)

	// Optional
	phone, err = SanitizePhone("  ")
	assert.NoError(t, err)
	assert.Empty(t, phone)

	_, err = SanitizePhone("12")
	assert.Error(t, err)
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "hello", SanitizeInput("  hello  "))
	assert.NotContains(t, SanitizeInput("<script>alert(1)</script>hi"), "<script>")
	assert.NotContains(t, SanitizeInput("a\x00b"), "\x00")
}
