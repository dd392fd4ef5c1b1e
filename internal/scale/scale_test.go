package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactor(t *testing.T) {
	assert.Equal(t, 2.0, Factor(4, 8))
	assert.Equal(t, 0.5, Factor(4, 2))
	assert.Equal(t, 1.0, Factor(0, 6))
	assert.Equal(t, 1.0, Factor(4, 0))
}

func TestQuantity(t *testing.T) {
	tests := []struct {
		quantity string
		factor   float64
		want     string
	}{
		{"2 dl", 2, "4 dl"},
		{"5 dl", 0.5, "2,5 dl"},
		{"3 kpl", 1, "3 kpl"},
		{"1/2 tl", 2, "1 tl"},
		{"1/2 tl", 1, "0,5 tl"},
		{"2,5 dl", 2, "5 dl"},
		{"500 g", 1.5, "750 g"},
		{"1 rkl sulatettua voita", 3, "3 rkl sulatettua voita"},
		{"ripaus suolaa", 2, "ripaus suolaa"},
		{"maun mukaan", 0.5, "maun mukaan"},
		{"2", 2, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.quantity, func(t *testing.T) {
			got, err := Quantity(tt.quantity, tt.factor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuantityRounding(t *testing.T) {
	got, err := Quantity("1 dl", 1.0/3.0)
	require.NoError(t, err)
	assert.Equal(t, "0,33 dl", got)
}
