// Package cache models direct-mapped, fully-associative and set-associative
// caches that track tags only.
//
// A model is built once per simulation from a validated geometry and starts
// empty. Every call to Access mutates at most one line or one set. Models
// are not safe for concurrent use.
package cache

import (
	"errors"
	"fmt"

	"github.com/sarchlab/cachesim/geometry"
)

// Kind names a cache organization.
type Kind int

const (
	// KindDirectMapped places every block in exactly one line.
	KindDirectMapped Kind = iota
	// KindFullyAssociative places any block in any line.
	KindFullyAssociative
	// KindSetAssociative places a block in any way of its indexed set.
	KindSetAssociative
)

// Kinds lists the organizations in the order they are reported.
var Kinds = []Kind{KindDirectMapped, KindFullyAssociative, KindSetAssociative}

func (k Kind) String() string {
	switch k {
	case KindDirectMapped:
		return "Direct-Mapped"
	case KindFullyAssociative:
		return "Fully Associative"
	case KindSetAssociative:
		return "Set-Associative"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Key returns a short lowercase identifier for the kind.
func (k Kind) Key() string {
	switch k {
	case KindDirectMapped:
		return "direct"
	case KindFullyAssociative:
		return "fully"
	case KindSetAssociative:
		return "set"
	default:
		return "unknown"
	}
}

// Shape returns the geometry this kind of cache uses when built from g.
// Cache and block size are kept; only the associativity changes.
func (k Kind) Shape(g geometry.Geometry) geometry.Geometry {
	switch k {
	case KindDirectMapped:
		return g.DirectMapped()
	case KindFullyAssociative:
		return g.FullyAssociative()
	default:
		return g
	}
}

// AccessRecord is the outcome of one access.
type AccessRecord struct {
	Address uint32
	geometry.Fields

	// Hit indicates whether the tag was resident before the access.
	Hit bool
	// Evicted is true if a resident tag was replaced to make room.
	Evicted bool
	// EvictedTag is the replaced tag (if Evicted is true).
	EvictedTag uint32
}

// Outcome returns "Hit" or "Miss".
func (r AccessRecord) Outcome() string {
	if r.Hit {
		return "Hit"
	}
	return "Miss"
}

// Statistics holds cache access statistics.
type Statistics struct {
	Accesses  uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits over accesses, or 0 before the first access.
func (s Statistics) HitRate() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Accesses)
}

func (s *Statistics) record(r AccessRecord) {
	s.Accesses++
	if r.Hit {
		s.Hits++
	} else {
		s.Misses++
	}
	if r.Evicted {
		s.Evictions++
	}
}

// Model is a tag-only cache that can replay addresses.
type Model interface {
	// Access looks up addr, updates the occupancy state and reports the
	// outcome as seen before the update.
	Access(addr uint32) AccessRecord
	Kind() Kind
	Geometry() geometry.Geometry
	Stats() Statistics
	// Reset empties the cache and clears its statistics.
	Reset()
}

// New builds the native model of the given kind from g.
func New(kind Kind, g geometry.Geometry) Model {
	switch kind {
	case KindDirectMapped:
		return NewDirectMapped(g)
	case KindFullyAssociative:
		return NewFullyAssociative(g)
	default:
		return NewSetAssociative(g)
	}
}

// Engine selects the implementation behind a Model.
type Engine string

const (
	// EngineNative uses DirectMapped, FullyAssociative and SetAssociative.
	EngineNative Engine = "native"
	// EngineAkita uses DirectoryCache for every kind.
	EngineAkita Engine = "akita"
)

// ErrUnknownEngine is returned by ParseEngine for unrecognized names.
var ErrUnknownEngine = errors.New("unknown cache engine")

// ParseEngine converts a name into an Engine. The empty string selects
// EngineNative.
func ParseEngine(name string) (Engine, error) {
	switch Engine(name) {
	case "", EngineNative:
		return EngineNative, nil
	case EngineAkita:
		return EngineAkita, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// Build creates a model of the given kind using engine.
func Build(engine Engine, kind Kind, g geometry.Geometry) Model {
	if engine == EngineAkita {
		return NewDirectoryCache(kind, g)
	}
	return New(kind, g)
}
