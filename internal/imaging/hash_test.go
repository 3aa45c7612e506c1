package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashToBucket_KnownValues(t *testing.T) {
	tests := []struct {
		key    string
		modulo int
		want   int
	}{
		{"a", 6, 2},
		{"p1", 6, 6},
		{"classic-denim-shorts", 6, 1},
		{"gallery-product", 6, 3},
		// accumulates past int32 and wraps negative
		{"cotton-chinos", 6, 5},
		{"linen-dress-pants", 10, 6},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HashToBucket(tt.key, tt.modulo), "key %q modulo %d", tt.key, tt.modulo)
	}
}

func TestHashToBucket_RangeAndStability(t *testing.T) {
	keys := []string{"", "a", "p1", "linen-dress-pants", "ünïcode-slug", "a-very-long-product-slug-that-keeps-going"}
	for _, key := range keys {
		for _, modulo := range []int{1, 2, 6, 7, 100} {
			first := HashToBucket(key, modulo)
			assert.GreaterOrEqual(t, first, 1)
			assert.LessOrEqual(t, first, modulo)

			// pure function: repeated calls agree
			assert.Equal(t, first, HashToBucket(key, modulo))
		}
	}
}

func TestHashToBucket_NonPositiveModulo(t *testing.T) {
	assert.Equal(t, 1, HashToBucket("anything", 0))
	assert.Equal(t, 1, HashToBucket("anything", -3))
}
