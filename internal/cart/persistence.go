package cart

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Persistence stores a cart's lines between requests
type Persistence interface {
	// Load returns the persisted lines, or nil when nothing was saved yet
	Load() ([]Line, error)
	Save(lines []Line) error
}

// NopPersistence keeps the cart in memory only
type NopPersistence struct{}

func (NopPersistence) Load() ([]Line, error) { return nil, nil }

func (NopPersistence) Save([]Line) error { return nil }

// FilePersistence stores a cart as a JSON file. Writes go through a
// temp file and rename so a crash never leaves a partial cart.
type FilePersistence struct {
	path string
}

// NewFilePersistence creates a file-backed persistence at path
func NewFilePersistence(path string) *FilePersistence {
	return &FilePersistence{path: path}
}

func (p *FilePersistence) Load() ([]Line, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read cart file: %w", err)
	}

	var lines []Line
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to parse cart file: %w", err)
	}

	return lines, nil
}

func (p *FilePersistence) Save(lines []Line) error {
	if lines == nil {
		lines = []Line{}
	}

	data, err := json.MarshalIndent(lines, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cart directory: %w", err)
	}

	tmp := p.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write cart file: %w", err)
	}
	if err := os.Rename(tmp, p.path); err != nil {
		return fmt.Errorf("failed to replace cart file: %w", err)
	}

	return nil
}
