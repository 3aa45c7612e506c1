package cart

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Line is one (product, size, quantity) entry in a cart
type Line struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	Size      string    `json:"size"`
	ImageURL  string    `json:"image_url"`
}

// Store holds one session's cart lines. All surfaces (navbar badge,
// drawer, checkout) share the same Store, so every reader observes a
// single consistent state. Mutations persist immediately.
type Store struct {
	mu          sync.Mutex
	lines       []Line
	persistence Persistence
}

// NewStore creates a cart store, loading any previously persisted
// lines. A fresh session starts empty.
func NewStore(persistence Persistence) (*Store, error) {
	if persistence == nil {
		persistence = NopPersistence{}
	}

	lines, err := persistence.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	return &Store{
		lines:       lines,
		persistence: persistence,
	}, nil
}

// AddItem merges the line into the cart: an existing (product, size)
// line has its quantity incremented, otherwise the line is appended.
// Non-positive quantities are rejected.
func (s *Store) AddItem(line Line) error {
	if line.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", line.Quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == line.ProductID && s.lines[i].Size == line.Size {
			s.lines[i].Quantity += line.Quantity
			return s.save()
		}
	}

	s.lines = append(s.lines, line)
	return s.save()
}

// RemoveItem deletes the matching line. Absent lines are a no-op.
func (s *Store) RemoveItem(productID uuid.UUID, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID && s.lines[i].Size == size {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return s.save()
		}
	}

	return nil
}

// SetQuantity sets the matching line's quantity exactly. A quantity of
// zero or less removes the line.
func (s *Store) SetQuantity(productID uuid.UUID, size string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.lines {
		if s.lines[i].ProductID == productID && s.lines[i].Size == size {
			if quantity <= 0 {
				s.lines = append(s.lines[:i], s.lines[i+1:]...)
			} else {
				s.lines[i].Quantity = quantity
			}
			return s.save()
		}
	}

	return nil
}

// Clear empties the cart. Called after a successful order placement.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	return s.save()
}

// TotalItems is the sum of quantities across all lines
func (s *Store) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, line := range s.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice is the sum of unit price times quantity across all lines
func (s *Store) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, line := range s.lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// Lines returns a copy of the cart's lines
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]Line, len(s.lines))
	copy(lines, s.lines)
	return lines
}

// save persists the current lines. Callers hold s.mu.
func (s *Store) save() error {
	if err := s.persistence.Save(s.lines); err != nil {
		return fmt.Errorf("failed to persist cart: %w", err)
	}
	return nil
}
