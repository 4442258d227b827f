package scraper

import (
	"sync"

	"leadforge-worker/pkg/models"
)

// cache is a URL→ScrapedData map, concurrent-safe for many readers and
// occasional writers. It never evicts and never caches a negative
// result; a job's lead set is expected to bound its size.
type cache struct {
	mu   sync.RWMutex
	data map[string]*models.ScrapedData
}

func newCache() *cache {
	return &cache{data: make(map[string]*models.ScrapedData)}
}

func (c *cache) get(url string) (*models.ScrapedData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.data[url]
	return v, ok
}

func (c *cache) put(url string, data *models.ScrapedData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[url] = data
}
