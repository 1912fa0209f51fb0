// Package cache provides a TTL cache for API responses. Entries live in an
// in-memory LRU and are mirrored to disk so fresh data survives restarts,
// which matters on a device that renders once every few minutes.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/inkdash/inkdash/utils"
)

const memoryEntries = 64

type entry struct {
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// FetchFunc produces fresh data on a cache miss.
type FetchFunc func() ([]byte, error)

type Cache struct {
	dir string
	mem *lru.Cache[string, entry]
	now func() time.Time
}

// New creates a cache rooted at dir, creating it if necessary.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	mem, err := lru.New[string, entry](memoryEntries)
	if err != nil {
		return nil, err
	}
	return &Cache{dir: dir, mem: mem, now: time.Now}, nil
}

// Get returns cached data for key if it is younger than ttl, otherwise
// calls fetch and stores the result. A fetch failure with a stale cache
// entry on disk returns the stale data rather than nothing: an outdated
// headline beats an empty widget.
func (c *Cache) Get(key string, ttl time.Duration, fetch FetchFunc) ([]byte, error) {
	if e, ok := c.lookup(key); ok && c.fresh(e, ttl) {
		return e.Data, nil
	}

	data, err := fetch()
	if err != nil {
		if e, ok := c.lookup(key); ok {
			utils.Verbose("cache: fetch for %s failed (%v), serving stale entry", key, err)
			return e.Data, nil
		}
		return nil, err
	}

	e := entry{Timestamp: c.now().Unix(), Data: data}
	c.mem.Add(key, e)
	c.persist(key, e)
	return data, nil
}

// Invalidate drops the entry for key from memory and disk.
func (c *Cache) Invalidate(key string) {
	c.mem.Remove(key)
	_ = os.Remove(c.file(key))
}

// Clear drops every entry.
func (c *Cache) Clear() error {
	c.mem.Purge()
	files, err := filepath.Glob(filepath.Join(c.dir, "*.json"))
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return err
		}
	}
	return nil
}

func (c *Cache) fresh(e entry, ttl time.Duration) bool {
	return c.now().Sub(time.Unix(e.Timestamp, 0)) < ttl
}

func (c *Cache) lookup(key string) (entry, bool) {
	if e, ok := c.mem.Get(key); ok {
		return e, true
	}
	data, err := os.ReadFile(c.file(key))
	if err != nil {
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		// corrupt cache file, treat as a miss
		return entry{}, false
	}
	c.mem.Add(key, e)
	return e, true
}

func (c *Cache) persist(key string, e entry) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := os.WriteFile(c.file(key), data, 0o644); err != nil {
		utils.Verbose("cache: failed to persist %s: %v", key, err)
	}
}

func (c *Cache) file(key string) string {
	safe := strings.NewReplacer("/", "_", ":", "_", " ", "_").Replace(key)
	return filepath.Join(c.dir, safe+".json")
}
