package cart

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Storage is the durable slot a Store saves into after every mutation.
type Storage interface {
	Save(items []Item) error
	Load() ([]Item, error)
}

// FileStorage keeps the serialized cart in a single JSON file. A missing or
// unparsable file loads as an empty cart; corruption never reaches callers.
type FileStorage struct {
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Save(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}

	// Write-then-rename so a crash mid-save leaves the previous slot intact.
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("replace cart slot: %w", err)
	}
	return nil
}

func (f *FileStorage) Load() ([]Item, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart slot: %w", err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		slog.Warn("cart slot unparsable, treating as empty", "path", f.path, "error", err)
		return nil, nil
	}
	return items, nil
}
