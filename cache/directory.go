package cache

import (
	akitacache "github.com/sarchlab/akita/v4/mem/cache"

	"github.com/sarchlab/cachesim/geometry"
)

// DirectoryCache is a tag-only cache backed by an Akita cache directory with
// an LRU victim finder. It follows the same placement and replacement rules
// as the native models and is used to cross-check them.
type DirectoryCache struct {
	kind     Kind
	geometry geometry.Geometry

	// Akita cache directory for tag/state management
	directory *akitacache.DirectoryImpl

	stats Statistics
}

// NewDirectoryCache creates an empty directory-backed cache of the given
// kind, shaped from g as Kind.Shape describes.
func NewDirectoryCache(kind Kind, g geometry.Geometry) *DirectoryCache {
	g = kind.Shape(g)

	return &DirectoryCache{
		kind:     kind,
		geometry: g,
		directory: akitacache.NewDirectory(
			g.NumSets(),
			g.Associativity,
			g.BlockSize,
			akitacache.NewLRUVictimFinder(),
		),
	}
}

// Access looks up addr in the directory.
func (c *DirectoryCache) Access(addr uint32) AccessRecord {
	f := geometry.Decode(addr, c.geometry)

	// The directory tags blocks by their block-aligned address.
	blockAddr := uint64(geometry.BlockAddress(addr, c.geometry))

	r := AccessRecord{
		Address: addr,
		Fields:  f,
	}

	block := c.directory.Lookup(0, blockAddr)
	if block != nil && block.IsValid {
		r.Hit = true
		c.directory.Visit(block) // Update LRU
		c.stats.record(r)
		return r
	}

	victim := c.directory.FindVictim(blockAddr)
	if victim == nil {
		// Every way is locked; tag-only caches never lock blocks.
		c.stats.record(r)
		return r
	}

	if victim.IsValid {
		r.Evicted = true
		r.EvictedTag = geometry.Decode(uint32(victim.Tag), c.geometry).Tag
	}

	victim.Tag = blockAddr
	victim.IsValid = true
	victim.IsDirty = false
	c.directory.Visit(victim)

	c.stats.record(r)

	return r
}

// Kind returns the organization this directory models.
func (c *DirectoryCache) Kind() Kind {
	return c.kind
}

// Geometry returns the geometry in use.
func (c *DirectoryCache) Geometry() geometry.Geometry {
	return c.geometry
}

// Stats returns cache statistics.
func (c *DirectoryCache) Stats() Statistics {
	return c.stats
}

// Reset invalidates every block and clears statistics.
func (c *DirectoryCache) Reset() {
	c.directory.Reset()
	c.stats = Statistics{}
}
