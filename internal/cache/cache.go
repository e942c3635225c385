// Package cache holds the most recent selection results so repeated analysis
// of the same file within a process run skips redundant probing. Entries have
// no TTL; the cache lives and dies with the process.
package cache

import (
	"sync"

	"github.com/mkrylatov/cutplan/internal/types"
)

// Key identifies one selection request.
type Key struct {
	Media    string
	Segments int
}

// Cache is the injected collaborator. Implementations must be safe for
// concurrent use if shared across goroutines.
type Cache interface {
	Get(k Key) (types.CutPointResult, bool)
	Put(k Key, res types.CutPointResult)
}

// Memory is a mutex-guarded in-memory cache.
type Memory struct {
	mu sync.Mutex
	m  map[Key]types.CutPointResult
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{m: make(map[Key]types.CutPointResult)}
}

func (c *Memory) Get(k Key) (types.CutPointResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.m[k]
	return res, ok
}

func (c *Memory) Put(k Key, res types.CutPointResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[k] = res
}

// Nop stores nothing.
type Nop struct{}

func (Nop) Get(Key) (types.CutPointResult, bool) { return types.CutPointResult{}, false }
func (Nop) Put(Key, types.CutPointResult)        {}
