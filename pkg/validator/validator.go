package validator

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Pure field predicates shared by the handlers. No side effects, no I/O.

var (
	nameRegex        = regexp.MustCompile(`^[a-zA-Z ]+$`)
	emailRegex       = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	phoneRegex       = regexp.MustCompile(`^[6-9]\d{9}$`)
	streetRegex      = regexp.MustCompile(`^[a-zA-Z0-9/\-,.() ]+$`)
	cityRegex        = regexp.MustCompile(`^[a-zA-Z\- ]+$`)
	pincodeRegex     = regexp.MustCompile(`^[1-9]\d{5}$`)
	priceRegex       = regexp.MustCompile(`^[1-9][0-9]{0,7}(\.[0-9]{1,2})?$`)
	installmentRegex = regexp.MustCompile(`^[1-9][0-9]?$`)
)

// ValidSizes is the closed set of product sizes.
var ValidSizes = []string{"S", "XS", "M", "X", "L", "XXL", "XL"}

func IsValid(value string) bool {
	return strings.TrimSpace(value) != ""
}

func IsValidObjectID(value string) bool {
	_, err := bson.ObjectIDFromHex(strings.TrimSpace(value))
	return err == nil
}

func IsValidName(name string) bool {
	return nameRegex.MatchString(name)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone accepts Indian mobile numbers only.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func IsValidPassword(password string) bool {
	return len(password) >= 8 && len(password) <= 15
}

func IsValidStreet(street string) bool {
	return streetRegex.MatchString(street)
}

func IsValidCity(city string) bool {
	return cityRegex.MatchString(city)
}

// IsValidPincode accepts six-digit Indian pincodes not starting with 0.
func IsValidPincode(pincode string) bool {
	return pincodeRegex.MatchString(pincode)
}

func IsValidSize(size string) bool {
	for _, s := range ValidSizes {
		if s == size {
			return true
		}
	}
	return false
}

// IsValidPrice accepts positive decimals with at most 8 integer digits and
// at most 2 decimal places.
func IsValidPrice(price string) bool {
	return priceRegex.MatchString(price)
}

// IsValidInstallment accepts whole numbers 1-99.
func IsValidInstallment(value string) bool {
	return installmentRegex.MatchString(value)
}

// NormalizeSizes trims, upper-cases and de-duplicates a size list,
// preserving first-seen order. The second return value lists the inputs
// that are not valid sizes.
func NormalizeSizes(raw []string) ([]string, []string) {
	var sizes []string
	var invalid []string
	seen := make(map[string]bool)
	for _, s := range raw {
		size := strings.ToUpper(strings.TrimSpace(s))
		if !IsValidSize(size) {
			invalid = append(invalid, s)
			continue
		}
		if seen[size] {
			continue
		}
		seen[size] = true
		sizes = append(sizes, size)
	}
	return sizes, invalid
}
