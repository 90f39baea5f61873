package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidObjectID(t *testing.T) {
	assert.True(t, IsValidObjectID("507f1f77bcf86cd799439011"))
	assert.True(t, IsValidObjectID(" 507f1f77bcf86cd799439011 "))
	assert.False(t, IsValidObjectID("507f1f77bcf86cd79943901"))
	assert.False(t, IsValidObjectID("not-an-id"))
	assert.False(t, IsValidObjectID(""))
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"9876543210", "6000000000", "7123456789", "8999999999"}
	for _, phone := range valid {
		assert.True(t, IsValidPhone(phone), phone)
	}
	invalid := []string{"5876543210", "987654321", "98765432100", "98765abc10", "+919876543210", ""}
	for _, phone := range invalid {
		assert.False(t, IsValidPhone(phone), phone)
	}
}

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("user@example.com"))
	assert.True(t, IsValidEmail("first.last+tag@sub.domain.in"))
	assert.False(t, IsValidEmail("user@example"))
	assert.False(t, IsValidEmail("userexample.com"))
	assert.False(t, IsValidEmail("user @example.com"))
}

func TestIsValidPassword(t *testing.T) {
	assert.False(t, IsValidPassword("short7!"))
	assert.True(t, IsValidPassword("eightch8"))
	assert.True(t, IsValidPassword("fifteencharss15"))
	assert.False(t, IsValidPassword("sixteencharacter"))
}

func TestIsValidPincode(t *testing.T) {
	assert.True(t, IsValidPincode("560001"))
	assert.True(t, IsValidPincode("110011"))
	assert.False(t, IsValidPincode("060001"), "pincode cannot start with 0")
	assert.False(t, IsValidPincode("56001"))
	assert.False(t, IsValidPincode("5600011"))
	assert.False(t, IsValidPincode("56000a"))
}

func TestIsValidPrice(t *testing.T) {
	valid := []string{"1", "99", "499.99", "12345678", "12345678.99", "10.5"}
	for _, price := range valid {
		assert.True(t, IsValidPrice(price), price)
	}
	invalid := []string{"0", "0.99", "-10", "123456789", "499.999", "499.", ".99", "10,50", ""}
	for _, price := range invalid {
		assert.False(t, IsValidPrice(price), price)
	}
}

func TestIsValidInstallment(t *testing.T) {
	assert.True(t, IsValidInstallment("1"))
	assert.True(t, IsValidInstallment("12"))
	assert.True(t, IsValidInstallment("99"))
	assert.False(t, IsValidInstallment("0"))
	assert.False(t, IsValidInstallment("100"))
	assert.False(t, IsValidInstallment("07"))
}

func TestIsValidName(t *testing.T) {
	assert.True(t, IsValidName("Asha Verma"))
	assert.False(t, IsValidName("Asha123"))
	assert.False(t, IsValidName(""))
}

func TestIsValidStreetAndCity(t *testing.T) {
	assert.True(t, IsValidStreet("221/B, MG Road (2nd Cross)"))
	assert.False(t, IsValidStreet("MG Road #42"))

	assert.True(t, IsValidCity("New Delhi"))
	assert.True(t, IsValidCity("Nagar-Haveli"))
	assert.False(t, IsValidCity("Delhi 110001"))
}

func TestNormalizeSizes(t *testing.T) {
	sizes, invalid := NormalizeSizes([]string{" m ", "XL", "m", "xl", "L"})
	assert.Equal(t, []string{"M", "XL", "L"}, sizes, "dedupe preserves first-seen order")
	assert.Empty(t, invalid)

	sizes, invalid = NormalizeSizes([]string{"S", "XXXL", "tiny"})
	assert.Equal(t, []string{"S"}, sizes)
	assert.Equal(t, []string{"XXXL", "tiny"}, invalid)

	sizes, invalid = NormalizeSizes(nil)
	assert.Empty(t, sizes)
	assert.Empty(t, invalid)
}
