package usecase

import (
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const (
	maxTokenLength  = 64
	maxCartLines    = 50
	maxLineQuantity = 1000

	minPhoneLength = 10
	maxPhoneLength = 13
)

// ValidateOrderToken reports whether token may name an order. Tokens are
// uuids in practice but any short alphanumeric string with dashes is accepted.
func ValidateOrderToken(token string) bool {
	if token == "" || len(token) > maxTokenLength {
		return false
	}
	for _, r := range token {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
		default:
			return false
		}
	}
	return true
}

// validateCart rejects empty carts and out of range quantities.
func validateCart(items []model.CartItem) bool {
	if len(items) == 0 || len(items) > maxCartLines {
		return false
	}
	for _, item := range items {
		if item.ProductID <= 0 || item.Quantity <= 0 || item.Quantity > maxLineQuantity {
			return false
		}
	}
	return true
}

// normalizeAddress trims every field and reports whether the address is
// complete. Phone numbers are 10 to 13 characters.
func normalizeAddress(a *model.Address) bool {
	fields := []*string{&a.Province, &a.City, &a.District, &a.Address, &a.ContactName, &a.ContactPhone}
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
		if *f == "" {
			return false
		}
	}
	n := len(a.ContactPhone)
	return n >= minPhoneLength && n <= maxPhoneLength
}
