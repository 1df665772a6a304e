// Package cache stores rendered artifacts keyed by a hash of their input.
//
// Rendering a hierarchy diagram runs Graphviz, which dominates the cost of
// the render command. The CLI keeps the SVG for each distinct DOT source in
// a [FileCache] under the user cache directory; [NullCache] disables it.
//
//	c, _ := cache.NewFileCache(dir)
//	key := cache.Key("tree-svg", dot)
//	if svg, ok, _ := c.Get(ctx, key); ok {
//	    return svg
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A missing or expired entry is a miss,
	// not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
