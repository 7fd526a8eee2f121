package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Storage persists the cart lines. There is a single cart per storage,
// shared by whoever uses the client.
type Storage interface {
	Load() ([]Item, error)
	Save(items []Item) error
}

type MemoryStorage struct {
	mu    sync.Mutex
	items []Item
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (m *MemoryStorage) Load() ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Item(nil), m.items...), nil
}

func (m *MemoryStorage) Save(items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]Item(nil), items...)
	return nil
}

// storageKey mirrors the browser's localStorage key.
const storageKey = "cart"

// FileStorage keeps the cart in a JSON file of the form {"cart": [...]}.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) Load() ([]Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	var doc map[string][]Item
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return doc[storageKey], nil
}

func (f *FileStorage) Save(items []Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if items == nil {
		items = []Item{}
	}
	data, err := json.MarshalIndent(map[string][]Item{storageKey: items}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("create cart dir: %w", err)
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write cart: %w", err)
	}
	return os.Rename(tmp, f.path)
}
