// Package assets fetches viewer assets by URL or local path.
package assets

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Loader fetches asset bytes over HTTP or from the local filesystem,
// with an optional in-memory cache.
type Loader struct {
	client *http.Client
	cache  *Cache
}

// NewLoader creates a loader. A zero timeout means no HTTP timeout.
// Pass cache=false to fetch every reference fresh.
func NewLoader(timeout time.Duration, cache bool) *Loader {
	l := &Loader{
		client: &http.Client{Timeout: timeout},
	}
	if cache {
		l.cache = NewCache()
	}
	return l
}

// Fetch retrieves the bytes behind ref. http(s) references are fetched
// with a GET; anything else is read as a local file path. A non-2xx
// response is a fetch failure.
func (l *Loader) Fetch(ref string) ([]byte, error) {
	if l.cache != nil {
		if data, ok := l.cache.Get(ref); ok {
			return data, nil
		}
	}

	var data []byte
	var err error
	if IsURL(ref) {
		data, err = l.fetchHTTP(ref)
	} else {
		data, err = readFile(ref)
	}
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		l.cache.Set(ref, data)
	}
	return data, nil
}

func (l *Loader) fetchHTTP(ref string) ([]byte, error) {
	resp, err := l.client.Get(ref)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetching %s: status %s", ref, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	return data, nil
}

func readFile(ref string) ([]byte, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ref, err)
	}
	return data, nil
}

// IsURL reports whether ref is an http or https reference.
func IsURL(ref string) bool {
	return strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://")
}

// Resolve interprets ref relative to the document at base, following
// the same-directory convention: a material sits next to its mesh, a
// texture next to its material. Absolute refs pass through unchanged.
func Resolve(base, ref string) string {
	if ref == "" || IsURL(ref) {
		return ref
	}

	if IsURL(base) {
		b, err := url.Parse(base)
		if err != nil {
			return ref
		}
		r, err := url.Parse(ref)
		if err != nil {
			return ref
		}
		return b.ResolveReference(r).String()
	}

	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(filepath.Dir(base), ref)
}

// BaseName returns the last path element of a URL or file reference,
// for window titles and log lines.
func BaseName(ref string) string {
	if IsURL(ref) {
		if u, err := url.Parse(ref); err == nil {
			return path.Base(u.Path)
		}
	}
	return filepath.Base(ref)
}

// Cache is a simple in-memory cache for fetched assets.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.data[key]
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
}
