package app

import (
	"sync"

	"github.com/blogmates/blogmates-tui/domain"
)

// ProfileCache is a read-through cache of user records keyed by username.
// There is no invalidation beyond an explicit refetch overwriting an entry.
// It is read from command goroutines, hence the mutex.
type ProfileCache struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewProfileCache() *ProfileCache {
	return &ProfileCache{users: make(map[string]domain.User)}
}

// Get returns the cached record for username, if present.
func (c *ProfileCache) Get(username string) (domain.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[username]
	return u, ok
}

// Put stores or overwrites a record.
func (c *ProfileCache) Put(u domain.User) {
	if u.Username == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[u.Username] = u
}

// Missing returns the unique usernames from the input that have no cached
// record yet, preserving first-seen order.
func (c *ProfileCache) Missing(usernames []string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]struct{}, len(usernames))
	var out []string
	for _, name := range usernames {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		if _, ok := c.users[name]; ok {
			continue
		}
		out = append(out, name)
	}
	return out
}
