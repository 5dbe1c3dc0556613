package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"single word", "Phones", "phones"},
		{"multiple words", "Smart Phones", "smart-phones"},
		{"extra whitespace", "  Smart   Phones  ", "smart-phones"},
		{"already lowercase", "accessories", "accessories"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}
