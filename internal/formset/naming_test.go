package formset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithIndex(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		target     int
		want       string
	}{
		{"rewrites embedded index", "ingredient-2-quantity", 5, "ingredient-5-quantity"},
		{"no embedded index passes through", "submit-button", 5, "submit-button"},
		{"plain name passes through", "ingredients-TOTAL_FORMS", 3, "ingredients-TOTAL_FORMS"},
		{"only first run is touched", "ingredients-2-step-3-note", 7, "ingredients-7-step-3-note"},
		{"digits inside field name untouched", "ingredients-0-vitamin_b12", 4, "ingredients-4-vitamin_b12"},
		{"id attribute form", "id_ingredients-1-quantity", 0, "id_ingredients-0-quantity"},
		{"zero target", "ingredients-9-id", 0, "ingredients-0-id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithIndex(tt.identifier, tt.target))
		})
	}
}

func TestIndexOf(t *testing.T) {
	n, ok := IndexOf("ingredients-12-quantity")
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = IndexOf("submit-button")
	assert.False(t, ok)
}
