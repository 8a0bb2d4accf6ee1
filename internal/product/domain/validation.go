package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	MinNameLength        = 2
	MaxNameLength        = 100
	MinDescriptionLength = 10
	MaxDescriptionLength = 500
	MaxPriceIntDigits    = 10
	MaxPriceFracDigits   = 2
)

// DomainTerms is the vocabulary a product name must draw from.
var DomainTerms = []string{
	"star", "galaxy", "comet", "space", "cosmic", "intergalactic", "orbit",
	"planet", "solar", "lunar", "astro", "meteor", "black hole", "quasar",
	"pulsar", "constellation", "moon", "sun", "universe", "cosmos",
}

// ContainsDomainTerm reports whether name contains a domain term as a
// case-insensitive substring.
func ContainsDomainTerm(name string) bool {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return false
	}
	for _, term := range DomainTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

func ValidName(name string) bool {
	name = strings.TrimSpace(name)
	n := utf8.RuneCountInString(name)
	return n >= MinNameLength && n <= MaxNameLength && ContainsDomainTerm(name)
}

func ValidDescription(description string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(description))
	return n >= MinDescriptionLength && n <= MaxDescriptionLength
}

var maxPrice = decimal.New(1, MaxPriceIntDigits)

// ValidPrice accepts positive amounts with at most 10 integer and 2 fraction digits.
func ValidPrice(price decimal.Decimal) bool {
	if !price.IsPositive() {
		return false
	}
	if price.GreaterThanOrEqual(maxPrice) {
		return false
	}
	return price.Equal(price.Truncate(MaxPriceFracDigits))
}

func ValidQuantity(quantity int) bool {
	return quantity >= 0
}
