package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestContainsDomainTerm(t *testing.T) {
	assert.True(t, ContainsDomainTerm("Galaxy Ball"))
	assert.True(t, ContainsDomainTerm("tiny BLACK HOLE"))
	assert.True(t, ContainsDomainTerm("Supernova Sunglasses"))
	assert.False(t, ContainsDomainTerm("Bouncy Ball"))
	assert.False(t, ContainsDomainTerm("   "))
}

func TestValidPrice(t *testing.T) {
	assert.True(t, ValidPrice(decimal.RequireFromString("0.01")))
	assert.True(t, ValidPrice(decimal.RequireFromString("9999999999.99")))
	assert.False(t, ValidPrice(decimal.RequireFromString("10000000000")))
	assert.False(t, ValidPrice(decimal.RequireFromString("1.001")))
	assert.False(t, ValidPrice(decimal.Zero))
	assert.False(t, ValidPrice(decimal.RequireFromString("-5")))
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("  Star  "))
	assert.False(t, ValidName("S"))
	assert.False(t, ValidName("Rubber Duck"))
}
