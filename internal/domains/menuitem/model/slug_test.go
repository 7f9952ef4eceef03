package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"resto/internal/domains/menuitem/model"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two words", "Deluxe Combo", "deluxe-combo"},
		{"surrounding space", "  Iced Tea ", "iced-tea"},
		{"punctuation stripped", "Mom's Fried Rice!", "moms-fried-rice"},
		{"repeated spaces", "Nasi   Goreng", "nasi-goreng"},
		{"digits kept", "Combo 2 Pax", "combo-2-pax"},
		{"existing hyphen", "Set-A Lunch", "set-a-lunch"},
		{"nothing usable", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.Slugify(tt.in))
		})
	}
}
