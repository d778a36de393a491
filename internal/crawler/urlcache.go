package crawler

import (
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// URLCache maps a repository name to its shortened URL. Entries never
// expire: a repository is shortened successfully at most once.
type URLCache struct {
	items *expirable.LRU[string, string]
}

func NewURLCache() *URLCache {
	// Zero size and zero ttl: unbounded, no expiry, no sweeper goroutine.
	return &URLCache{items: expirable.NewLRU[string, string](0, nil, 0)}
}

// Get returns the cached URL for repo.
func (c *URLCache) Get(repo string) (string, bool) {
	return c.items.Get(repo)
}

// Set stores url for repo.
func (c *URLCache) Set(repo, url string) {
	c.items.Add(repo, url)
}

func (c *URLCache) Len() int {
	return c.items.Len()
}
