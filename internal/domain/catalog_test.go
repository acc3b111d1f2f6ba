package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewCategory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		slug     string
		wantSlug string
	}{
		{"derives slug from name", "Home & Garden", "", "home-garden"},
		{"lowercases and hyphenates", "Vintage Toys", "", "vintage-toys"},
		{"explicit slug wins", "Home & Garden", "garden", "garden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCategory(tt.input, tt.slug)
			assert.Equal(t, tt.input, c.Name)
			assert.Equal(t, tt.wantSlug, c.Slug)
			assert.NotEqual(t, uuid.Nil, c.ID)
		})
	}
}
