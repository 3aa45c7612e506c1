package imaging

import "strings"

// Blob-store bucket names. These match the category values the upload
// tool writes, not the catalog's category entities.
const (
	BucketBrandedShorts   = "Branded shorts"
	BucketLinenTrousers   = "Linen trousers"
	BucketBrandedTrousers = "Branded trousers"
	BucketCottonPants     = "cotton pants"
)

// InferBucket classifies a product name into an image bucket. Rules are
// ordered and first match wins: a product named "Cotton Shorts" lands in
// the shorts bucket, not the cotton one. Keep the order stable.
func InferBucket(name string) string {
	lower := strings.ToLower(name)

	if strings.Contains(lower, "short") {
		return BucketBrandedShorts
	}
	if strings.Contains(lower, "linen") {
		return BucketLinenTrousers
	}
	if strings.Contains(lower, "branded") && strings.Contains(lower, "trouser") {
		return BucketBrandedTrousers
	}
	if strings.Contains(lower, "cotton") || strings.Contains(lower, "pant") {
		return BucketCottonPants
	}

	// default to trousers
	return BucketLinenTrousers
}
