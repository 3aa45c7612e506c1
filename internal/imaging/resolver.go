package imaging

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hsapparel/storefront/internal/domain"
)

// Placeholder is the terminal fallback shown when resolution fails: a
// small inline SVG reading "Image not available". It never fails.
const Placeholder = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMzAwIiBoZWlnaHQ9IjQwMCIgeG1sbnM9Imh0dHA6Ly93d3cudzMub3JnLzIwMDAvc3ZnIj48cmVjdCB3aWR0aD0iMTAwJSIgaGVpZ2h0PSIxMDAlIiBmaWxsPSIjZjNmNGY2Ii8+PHRleHQgeD0iNTAlIiB5PSI1MCUiIGZvbnQtZmFtaWx5PSJBcmlhbCIgZm9udC1zaXplPSIxNCIgZmlsbD0iIzk5YTNhZiIgdGV4dC1hbmNob3I9Im1pZGRsZSIgZHk9Ii4zZW0iPkltYWdlIG5vdCBhdmFpbGFibGU8L3RleHQ+PC9zdmc+"

const (
	// GalleryCount is the default number of gallery slots per product
	GalleryCount = 4

	// hashModulo spreads products across the six base positions of a
	// bucket
	hashModulo = 6
)

// SlotState tracks one image slot through its lifecycle
type SlotState int

const (
	SlotLoading SlotState = iota
	SlotResolved
	SlotFailed
)

// Slot is one independently resolving image position. It starts in
// SlotLoading and settles exactly once, to SlotResolved with a real
// source or to SlotFailed with the placeholder.
type Slot struct {
	mu    sync.Mutex
	state SlotState
	src   string
	done  chan struct{}
}

func newSlot() *Slot {
	return &Slot{done: make(chan struct{})}
}

// State returns the slot's current lifecycle state
func (s *Slot) State() SlotState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Src returns the displayable image source. Empty while loading; the
// placeholder after a failed resolution.
func (s *Slot) Src() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.src
}

// Done is closed once the slot has settled
func (s *Slot) Done() <-chan struct{} {
	return s.done
}

func (s *Slot) settle(state SlotState, src string) {
	s.mu.Lock()
	s.state = state
	s.src = src
	s.mu.Unlock()
	close(s.done)
}

// Resolution holds the in-flight image slots for one product. Primary
// and gallery slots are independent requests and may settle in any
// order.
type Resolution struct {
	Primary *Slot
	Gallery []*Slot
}

// Resolver turns products into displayable image sources. Failures are
// logged and downgraded to the placeholder, never surfaced as errors.
type Resolver struct {
	source Source
	logger *zap.Logger
}

// NewResolver creates a new image resolver
func NewResolver(source Source, logger *zap.Logger) *Resolver {
	return &Resolver{
		source: source,
		logger: logger,
	}
}

// imageAt resolves the image at the product's hashed base position plus
// offset, wrapping cyclically over the bucket's contents
func (r *Resolver) imageAt(ctx context.Context, product domain.Product, offset int) (string, error) {
	bucket := InferBucket(product.Name)

	images, err := r.source.ImagesByCategory(ctx, bucket)
	if err != nil {
		return "", fmt.Errorf("failed to fetch bucket %q: %w", bucket, err)
	}
	if len(images) == 0 {
		return "", fmt.Errorf("no images in bucket %q", bucket)
	}

	base := HashToBucket(product.ImageKey(), hashModulo)
	idx := (base - 1 + offset) % len(images)

	return images[idx].DataURI(), nil
}

// PrimaryImage resolves the product's single display image. Returns the
// placeholder on any failure.
func (r *Resolver) PrimaryImage(ctx context.Context, product domain.Product) string {
	src, err := r.imageAt(ctx, product, 0)
	if err != nil {
		r.logger.Warn("Image resolution failed",
			zap.String("product", product.ImageKey()),
			zap.Error(err),
		)
		return Placeholder
	}
	return src
}

// Gallery resolves count gallery images, wrapping over the bucket when
// it holds fewer images than requested. On failure every position is
// the placeholder.
func (r *Resolver) Gallery(ctx context.Context, product domain.Product, count int) []string {
	if count <= 0 {
		count = GalleryCount
	}

	srcs := make([]string, count)
	for offset := range srcs {
		src, err := r.imageAt(ctx, product, offset)
		if err != nil {
			r.logger.Warn("Gallery resolution failed",
				zap.String("product", product.ImageKey()),
				zap.Int("offset", offset),
				zap.Error(err),
			)
			src = Placeholder
		}
		srcs[offset] = src
	}

	return srcs
}

// Resolve starts asynchronous resolution of the product's primary image
// and gallery. Each slot is its own request to the blob store; callers
// observe loading state per slot and must tolerate any settle order.
func (r *Resolver) Resolve(ctx context.Context, product domain.Product) *Resolution {
	res := &Resolution{
		Primary: newSlot(),
		Gallery: make([]*Slot, GalleryCount),
	}
	for i := range res.Gallery {
		res.Gallery[i] = newSlot()
	}

	resolve := func(slot *Slot, offset int) {
		src, err := r.imageAt(ctx, product, offset)
		if err != nil {
			r.logger.Warn("Image resolution failed",
				zap.String("product", product.ImageKey()),
				zap.Int("offset", offset),
				zap.Error(err),
			)
			slot.settle(SlotFailed, Placeholder)
			return
		}
		slot.settle(SlotResolved, src)
	}

	go resolve(res.Primary, 0)
	for i, slot := range res.Gallery {
		go resolve(slot, i)
	}

	return res
}
