package imaging

import "unicode/utf16"

// HashToBucket deterministically maps a key to a bucket in [1, modulo].
// The hash accumulates h = h*31 + code over the key's UTF-16 code units
// with 32-bit signed wraparound, matching the historical image
// assignment, so existing products keep their images across releases.
func HashToBucket(key string, modulo int) int {
	if modulo < 1 {
		return 1
	}

	var h int32
	for _, code := range utf16.Encode([]rune(key)) {
		h = h*31 + int32(code)
	}

	// widen before negating: -MinInt32 does not fit in int32
	positive := int64(h)
	if positive < 0 {
		positive = -positive
	}

	return int(positive%int64(modulo)) + 1
}
