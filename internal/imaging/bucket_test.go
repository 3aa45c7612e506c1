package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferBucket(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Cargo Shorts", BucketBrandedShorts},
		{"Linen Dress Pants", BucketLinenTrousers},
		{"Branded Formal Trousers", BucketBrandedTrousers},
		{"Cotton Chinos", BucketCottonPants},
		{"Slim Fit Pants", BucketCottonPants},
		{"Silk Tie", BucketLinenTrousers}, // default
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, InferBucket(tt.name), "name %q", tt.name)
	}
}

func TestInferBucket_FirstMatchWins(t *testing.T) {
	// "short" is checked before "cotton": Cotton Shorts are shorts
	assert.Equal(t, BucketBrandedShorts, InferBucket("Cotton Shorts"))
	// "linen" is checked before "pant"
	assert.Equal(t, BucketLinenTrousers, InferBucket("Linen Pants"))
	// "branded"+"trouser" is checked before "pant"
	assert.Equal(t, BucketBrandedTrousers, InferBucket("Branded Trouser Pants"))
}

func TestInferBucket_CaseInsensitive(t *testing.T) {
	assert.Equal(t, BucketBrandedShorts, InferBucket("BEACH SHORTS"))
	assert.Equal(t, BucketCottonPants, InferBucket("cotton work pants"))
}
