package testutil

import (
	"fmt"
	"sync"
)

// SequenceGenerator mints "<prefix>1", "<prefix>2", ... in order.
//
// Unlike model.UUIDv7Generator the output is predictable, so posted object
// IRIs can be asserted on and written to golden files.
//
// Thread-safety: SequenceGenerator is safe for concurrent use via internal mutex.
type SequenceGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequenceGenerator returns a generator using prefix. An empty prefix
// defaults to "id-".
func NewSequenceGenerator(prefix string) *SequenceGenerator {
	if prefix == "" {
		prefix = "id-"
	}
	return &SequenceGenerator{prefix: prefix}
}

// Generate returns the next identifier.
func (g *SequenceGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s%d", g.prefix, g.n)
}

// FixedGenerator returns predetermined identifiers in order.
//
// Panics when exhausted: a test that mints more identities than it listed
// is wrong.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	i   int
}

// NewFixedGenerator creates a generator that returns ids in order.
//
// Example:
//
//	gen := NewFixedGenerator("a1", "a2", "c1")
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.i >= len(g.ids) {
		panic("FixedGenerator: all identifiers exhausted")
	}
	id := g.ids[g.i]
	g.i++
	return id
}
