package invoice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "Zero"},
		{1, "One Only"},
		{19, "Nineteen Only"},
		{40, "Forty Only"},
		{85, "Eighty Five Only"},
		{100, "One Hundred Only"},
		{205, "Two Hundred Five Only"},
		{1000, "One Thousand Only"},
		{2650, "Two Thousand Six Hundred Fifty Only"},
		{99999, "Ninety Nine Thousand Nine Hundred Ninety Nine Only"},
		{100000, "One Lakh Only"},
		{461480, "Four Lakh Sixty One Thousand Four Hundred Eighty Only"},
		{10000000, "One Crore Only"},
		{17107770, "One Crore Seventy One Lakh Seven Thousand Seven Hundred Seventy Only"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(tt.amount))
		})
	}
}

func TestAmountInWordsNegativeAmounts(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{-1, "Minus One Only"},
		{-200, "Minus Two Hundred Only"},
		{-461480, "Minus Four Lakh Sixty One Thousand Four Hundred Eighty Only"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(tt.amount))
		})
	}
}

func TestAmountInWordsNeverUsesShortScale(t *testing.T) {
	for _, n := range []int64{1, 999, 1000000, 2000000, 999999999, 1234567890} {
		words := AmountInWords(n)
		assert.NotContains(t, words, "Million")
		assert.NotContains(t, words, "Billion")
		assert.True(t, strings.HasSuffix(words, "Only"), "expected Only suffix for %d, got %q", n, words)
	}
}
