package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/snngymn-development/modatasar-m/internal/core/domain"
	"github.com/snngymn-development/modatasar-m/internal/utils"
)

func TestFormatTRY(t *testing.T) {
	tests := []struct {
		name  string
		cents int64
		want  string
	}{
		{name: "zero", cents: 0, want: "₺0"},
		{name: "whole lira", cents: 12500, want: "₺125"},
		{name: "thousands grouped", cents: 1234500, want: "₺12.345"},
		{name: "millions grouped", cents: 123456700, want: "₺1.234.567"},
		{name: "rounds half up", cents: 150, want: "₺2"},
		{name: "rounds down below half", cents: 149, want: "₺1"},
		{name: "negative", cents: -1234500, want: "₺-12.345"},
		{name: "negative rounds away from zero", cents: -150, want: "₺-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatTRY(tt.cents))
		})
	}
}

func TestFormatCents(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		currency domain.CurrencyCode
		want     string
	}{
		{name: "dollars", cents: 250000, currency: domain.USD, want: "$2.500"},
		{name: "euros", cents: 9900, currency: domain.EUR, want: "€99"},
		{name: "lira", cents: 100, currency: domain.TRY, want: "₺1"},
		{name: "unknown currency falls back to code", cents: 5000, currency: "GBP", want: "GBP 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.FormatCents(tt.cents, tt.currency))
		})
	}
}
