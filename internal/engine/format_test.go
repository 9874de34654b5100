package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	tests := map[int64]string{
		0:         "₹0",
		999:       "₹999",
		1000:      "₹1,000",
		100000:    "₹1,00,000",
		1250000:   "₹12,50,000",
		123456789: "₹12,34,56,789",
		-5000:     "-₹5,000",

		math.MaxInt64: "₹92,23,37,20,36,85,47,75,807",
		math.MinInt64: "-₹92,23,37,20,36,85,47,75,808",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatINR(in), "amount=%d", in)
	}
}

func TestFormatLakh(t *testing.T) {
	assert.Equal(t, "₹10L", FormatLakh(1000000))
	assert.Equal(t, "₹2.5L", FormatLakh(250000))
	assert.Equal(t, "₹1.5Cr", FormatLakh(15000000))
	assert.Equal(t, "₹50,000", FormatLakh(50000))
}
