// Package cache stores computed charts so repeated requests for the same
// GEDCOM file and options skip the decode, build and layout stages.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for API deployments
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: caching disabled
//
// # Keys
//
// Keys are derived by a [Keyer] from the SHA-256 of the GEDCOM bytes and the
// options that influence the result. [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiration.
type Cache interface {
	// Get returns the cached value and whether it was found.
	// Expired entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A zero ttl means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// Expiration of cached results.
const (
	TTLChart       = 7 * 24 * time.Hour
	TTLIndividuals = 24 * time.Hour
)

// =============================================================================
// Keyer
// =============================================================================

// Keyer builds cache keys.
type Keyer interface {
	// ChartKey identifies a laid out chart.
	ChartKey(gedcomHash string, opts ChartKeyOpts) string

	// IndividualsKey identifies the individuals list of a file.
	IndividualsKey(gedcomHash string) string
}

// ChartKeyOpts lists every option that changes a chart.
type ChartKeyOpts struct {
	Root                 string
	Generations          int
	AngleDeg             int
	ShowMissing          bool
	ShowMarriages        bool
	SubstituteEvents     bool
	ComputeChildrenCount bool
	Policy               string
	Weights              [4]float64
	ReferenceYear        int
	ShowInvalidDates     bool
	ShowYearsOnly        bool
	ShowPlaces           bool
	// PlaceSchema is the canonical form of an explicit schema override.
	PlaceSchema string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ChartKey returns "chart:<hash>".
func (DefaultKeyer) ChartKey(gedcomHash string, opts ChartKeyOpts) string {
	return hashKey("chart", gedcomHash, opts)
}

// IndividualsKey returns "individuals:<hash>".
func (DefaultKeyer) IndividualsKey(gedcomHash string) string {
	return hashKey("individuals", gedcomHash)
}
