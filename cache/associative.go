package cache

import "github.com/sarchlab/cachesim/geometry"

// FullyAssociative is a single LRU pool holding every block.
type FullyAssociative struct {
	geometry geometry.Geometry
	pool     *RecencySet[uint32]
	stats    Statistics
}

// NewFullyAssociative creates an empty fully-associative cache with the
// cache and block size of g.
func NewFullyAssociative(g geometry.Geometry) *FullyAssociative {
	g = g.FullyAssociative()
	return &FullyAssociative{
		geometry: g,
		pool:     NewRecencySet[uint32](g.NumBlocks()),
	}
}

// Access looks up addr in the pool. A hit promotes the tag to most recently
// used; a miss in a full pool evicts the least recently used tag.
func (c *FullyAssociative) Access(addr uint32) AccessRecord {
	r := touch(c.pool, addr, geometry.Decode(addr, c.geometry))
	c.stats.record(r)
	return r
}

// Resident returns the resident tags from least to most recently used.
func (c *FullyAssociative) Resident() []uint32 {
	return c.pool.Items()
}

// Kind returns KindFullyAssociative.
func (c *FullyAssociative) Kind() Kind {
	return KindFullyAssociative
}

// Geometry returns the single-set geometry in use.
func (c *FullyAssociative) Geometry() geometry.Geometry {
	return c.geometry
}

// Stats returns cache statistics.
func (c *FullyAssociative) Stats() Statistics {
	return c.stats
}

// Reset empties the pool and clears statistics.
func (c *FullyAssociative) Reset() {
	c.pool.Clear()
	c.stats = Statistics{}
}

// SetAssociative is an array of independent LRU sets.
type SetAssociative struct {
	geometry geometry.Geometry
	sets     []*RecencySet[uint32]
	stats    Statistics
}

// NewSetAssociative creates an empty set-associative cache shaped by g.
func NewSetAssociative(g geometry.Geometry) *SetAssociative {
	sets := make([]*RecencySet[uint32], g.NumSets())
	for i := range sets {
		sets[i] = NewRecencySet[uint32](g.Associativity)
	}

	return &SetAssociative{
		geometry: g,
		sets:     sets,
	}
}

// Access looks up addr in its indexed set with the same LRU rules as
// FullyAssociative.
func (c *SetAssociative) Access(addr uint32) AccessRecord {
	f := geometry.Decode(addr, c.geometry)
	r := touch(c.sets[f.Index], addr, f)
	c.stats.record(r)
	return r
}

// Set returns the resident tags of set i from least to most recently used.
func (c *SetAssociative) Set(i int) []uint32 {
	return c.sets[i].Items()
}

// NumSets returns the number of sets.
func (c *SetAssociative) NumSets() int {
	return len(c.sets)
}

// Kind returns KindSetAssociative.
func (c *SetAssociative) Kind() Kind {
	return KindSetAssociative
}

// Geometry returns the geometry in use.
func (c *SetAssociative) Geometry() geometry.Geometry {
	return c.geometry
}

// Stats returns cache statistics.
func (c *SetAssociative) Stats() Statistics {
	return c.stats
}

// Reset empties every set and clears statistics.
func (c *SetAssociative) Reset() {
	for _, s := range c.sets {
		s.Clear()
	}
	c.stats = Statistics{}
}

func touch(set *RecencySet[uint32], addr uint32, f geometry.Fields) AccessRecord {
	hit, victim, evicted := set.Touch(f.Tag)

	return AccessRecord{
		Address:    addr,
		Fields:     f,
		Hit:        hit,
		Evicted:    evicted,
		EvictedTag: victim,
	}
}
