package percent

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFraction(t *testing.T) {
	assert.True(t, Fraction(decimal.NewFromFloat(7.0)).Equal(decimal.NewFromFloat(0.07)))
	assert.True(t, Fraction(decimal.NewFromInt(100)).Equal(decimal.NewFromInt(1)))
	assert.True(t, Fraction(decimal.Zero).IsZero())
}

func TestOf(t *testing.T) {
	assert.True(t, Of(decimal.NewFromInt(200000), decimal.NewFromInt(25)).Equal(decimal.NewFromInt(50000)))
	assert.True(t, Of(decimal.NewFromInt(1000), decimal.NewFromFloat(7.5)).Equal(decimal.NewFromInt(75)))
	assert.True(t, Of(decimal.NewFromInt(1000), decimal.Zero).IsZero())
}

func TestClamp(t *testing.T) {
	lo := decimal.Zero
	hi := decimal.NewFromInt(100)

	assert.True(t, Clamp(decimal.NewFromInt(50), lo, hi).Equal(decimal.NewFromInt(50)))
	assert.True(t, Clamp(decimal.NewFromInt(-10), lo, hi).Equal(lo))
	assert.True(t, Clamp(decimal.NewFromInt(150), lo, hi).Equal(hi))
	assert.True(t, Clamp(lo, lo, hi).Equal(lo))
	assert.True(t, Clamp(hi, lo, hi).Equal(hi))
}
