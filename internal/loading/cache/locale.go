package cache

import (
	"context"
	"sync"
	"time"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
)

// DefaultLocaleTTL bounds how long a language's dataset is served without
// refetching.
const DefaultLocaleTTL = time.Hour

// LocaleCache is a TTL-bounded cache of per-language datasets. Expired
// entries are treated as absent; expiry is lazy, on read.
type LocaleCache interface {
	// Get returns the cached dataset for a language code, if present and
	// within its TTL.
	Get(ctx context.Context, languageCode string) (*domain.GameData, bool)
	// Put stores a dataset under a language code with the given TTL.
	Put(ctx context.Context, languageCode string, data *domain.GameData, ttl time.Duration) error
	// Invalidate clears the given language codes, or every entry when
	// called with none.
	Invalidate(ctx context.Context, languageCodes ...string) error
}

type localeEntry struct {
	data     *domain.GameData
	cachedAt time.Time
	ttl      time.Duration
}

// MemoryLocaleCache is the in-process LocaleCache implementation.
type MemoryLocaleCache struct {
	mu      sync.Mutex
	entries map[string]localeEntry

	now func() time.Time
}

// NewMemoryLocaleCache creates an empty in-process locale cache.
func NewMemoryLocaleCache() *MemoryLocaleCache {
	return &MemoryLocaleCache{
		entries: make(map[string]localeEntry),
		now:     time.Now,
	}
}

// Get returns the cached dataset for a language. Entries past their TTL
// are evicted on the spot and reported as absent.
func (c *MemoryLocaleCache) Get(_ context.Context, languageCode string) (*domain.GameData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[languageCode]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.cachedAt) > entry.ttl {
		delete(c.entries, languageCode)
		return nil, false
	}
	return entry.data, true
}

// Put stores a dataset under a language code. A non-positive TTL gets the
// default one hour.
func (c *MemoryLocaleCache) Put(_ context.Context, languageCode string, data *domain.GameData, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultLocaleTTL
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[languageCode] = localeEntry{data: data, cachedAt: c.now(), ttl: ttl}
	return nil
}

// Invalidate clears the given languages, or everything when none given.
func (c *MemoryLocaleCache) Invalidate(_ context.Context, languageCodes ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(languageCodes) == 0 {
		c.entries = make(map[string]localeEntry)
		return nil
	}
	for _, code := range languageCodes {
		delete(c.entries, code)
	}
	return nil
}

// Len returns the number of entries held, expired or not.
func (c *MemoryLocaleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
