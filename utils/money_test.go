package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"450", 450},
		{"1,299.00", 1299},
		{"Rs. 450", 450},
		{"Rs. 1,299.50", 1299.5},
		{"₹450.75", 450.75},
		{"  999.50  ", 999.5},
		{"-50.5", -50.5},
		{"1.2.3", 1.2},
		{"", 0},
		{"free", 0},
		{"N/A", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseAmount(tt.in), "input %q", tt.in)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{450, "450.00"},
		{1299.5, "1,299.50"},
		{999999.99, "999,999.99"},
		{1000000, "1,000,000.00"},
		{-50.5, "-50.50"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(tt.in), "input %v", tt.in)
	}
}
