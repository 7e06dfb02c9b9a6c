// Package assets resolves model and texture paths to renderer handles.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/basic3d/internal/logger"
)

// ErrNotFound is returned when a path is neither registered nor on disk.
var ErrNotFound = errors.New("asset not found")

// Handle identifies a loaded asset. Zero means no asset.
type Handle uint32

// Clip describes one animation stored in a model file.
type Clip struct {
	Name  string  `yaml:"name" toml:"name"`
	Total float64 `yaml:"total" toml:"total"` // length in frames
}

// ModelEntry registers a model file and its animation clips.
type ModelEntry struct {
	Path  string `yaml:"path" toml:"path"`
	Clips []Clip `yaml:"clips" toml:"clips"`
}

// Manifest lists the assets a scene may load.
type Manifest struct {
	Root     string       `yaml:"root" toml:"root"`
	Models   []ModelEntry `yaml:"models" toml:"models"`
	Textures []string     `yaml:"textures" toml:"textures"`
}

// ModelAsset is a loaded model.
type ModelAsset struct {
	Handle Handle
	Path   string
	Clips  []Clip
}

// Loader turns paths into handles. Failure is an initialization error.
type Loader interface {
	LoadModel(path string) (ModelAsset, error)
	LoadTexture(path string) (Handle, error)
}

// Catalog is a Loader backed by a Manifest. When Root is set every file
// must also exist under it.
type Catalog struct {
	manifest Manifest
	models   map[string]ModelEntry
	textures map[string]bool
	cache    *Cache
	next     Handle
	mu       sync.Mutex
}

// NewCatalog creates a catalog from a manifest.
func NewCatalog(m Manifest) *Catalog {
	c := &Catalog{
		manifest: m,
		models:   make(map[string]ModelEntry, len(m.Models)),
		textures: make(map[string]bool, len(m.Textures)),
		cache:    NewCache(),
	}
	for _, e := range m.Models {
		c.models[e.Path] = e
	}
	for _, p := range m.Textures {
		c.textures[p] = true
	}
	return c
}

// LoadManifest reads a YAML manifest file.
func LoadManifest(path string) (Manifest, error) {
	var m Manifest
	data, err := os.ReadFile(path)
	if err != nil {
		return m, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}

// LoadModel implements Loader.
func (c *Catalog) LoadModel(path string) (ModelAsset, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.models[path]
	if !ok {
		return ModelAsset{}, fmt.Errorf("model %s: %w", path, ErrNotFound)
	}
	h, err := c.resolve(path)
	if err != nil {
		return ModelAsset{}, err
	}
	return ModelAsset{Handle: h, Path: path, Clips: entry.Clips}, nil
}

// LoadTexture implements Loader.
func (c *Catalog) LoadTexture(path string) (Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.textures[path] {
		return 0, fmt.Errorf("texture %s: %w", path, ErrNotFound)
	}
	return c.resolve(path)
}

// resolve returns the cached handle for path, checking the file on first use.
func (c *Catalog) resolve(path string) (Handle, error) {
	if h, ok := c.cache.Get(path); ok {
		return h, nil
	}

	if c.manifest.Root != "" {
		full := filepath.Join(c.manifest.Root, path)
		if _, err := os.Stat(full); err != nil {
			return 0, fmt.Errorf("%s: %w", full, ErrNotFound)
		}
	}

	c.next++
	c.cache.Set(path, c.next)
	logger.Debug("asset loaded", zap.String("path", path), zap.Uint32("handle", uint32(c.next)))
	return c.next, nil
}

// Stats returns cache statistics.
func (c *Catalog) Stats() (hits, misses int) {
	return c.cache.Stats()
}

// Cache maps asset paths to handles.
type Cache struct {
	data map[string]Handle
	mu   sync.RWMutex

	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]Handle),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (Handle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	h, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return h, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, h Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = h
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]Handle)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
