// Package cache provides the caching layer for pipeline runs.
//
// The [Cache] interface abstracts over backends: [FileCache] for CLI usage,
// [RedisCache] for server deployments, and [NullCache] to disable caching.
// Keys are produced by a [Keyer] so that every pipeline stage (build, layout,
// export) caches under a stable, collision-resistant name.
package cache

import (
	"context"
	"time"
)

// TTLs per pipeline stage. Graphs depend on upstream publication data and
// expire daily; layouts and artifacts are pure functions of their inputs
// and can live longer.
const (
	TTLGraph    = 24 * time.Hour
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key-value store with per-entry TTL.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found; an expired or missing entry is (nil, false, nil), not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts captures the build inputs that affect graph identity.
type GraphKeyOpts struct {
	Topics []string // taxonomy names in declaration order
}

// LayoutKeyOpts captures the layout inputs that affect node positions.
type LayoutKeyOpts struct {
	Width      float64
	Height     float64
	Iterations int
	Seed       uint64
}

// ArtifactKeyOpts captures the export inputs that affect artifact bytes.
type ArtifactKeyOpts struct {
	Format   string
	Detailed bool
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// GraphKey generates a key for a built graph from the hash of the raw
	// publication inputs.
	GraphKey(inputHash string, opts GraphKeyOpts) string

	// LayoutKey generates a key for a laid-out graph from the graph hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey generates a key for an exported artifact from the
	// laid-out graph hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes options into hierarchical keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for dependency-free graph caching.
func (k *DefaultKeyer) GraphKey(inputHash string, opts GraphKeyOpts) string {
	return hashKey("graph", inputHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
