package cache

import "github.com/sarchlab/cachesim/geometry"

// Line is one direct-mapped slot.
type Line struct {
	Tag   uint32
	Valid bool
}

// DirectMapped is a cache with one line per index.
type DirectMapped struct {
	geometry geometry.Geometry
	lines    []Line
	stats    Statistics
}

// NewDirectMapped creates an empty direct-mapped cache with the cache and
// block size of g. The associativity of g is ignored.
func NewDirectMapped(g geometry.Geometry) *DirectMapped {
	g = g.DirectMapped()
	return &DirectMapped{
		geometry: g,
		lines:    make([]Line, g.NumBlocks()),
	}
}

// Access looks up addr. On a miss the indexed line is overwritten, whether
// it was empty or held another tag.
func (c *DirectMapped) Access(addr uint32) AccessRecord {
	f := geometry.Decode(addr, c.geometry)
	line := &c.lines[f.Index]

	r := AccessRecord{
		Address: addr,
		Fields:  f,
		Hit:     line.Valid && line.Tag == f.Tag,
	}

	if !r.Hit {
		if line.Valid {
			r.Evicted = true
			r.EvictedTag = line.Tag
		}
		line.Tag = f.Tag
		line.Valid = true
	}

	c.stats.record(r)

	return r
}

// Lines returns a copy of every line, ordered by index.
func (c *DirectMapped) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Kind returns KindDirectMapped.
func (c *DirectMapped) Kind() Kind {
	return KindDirectMapped
}

// Geometry returns the direct-mapped geometry in use.
func (c *DirectMapped) Geometry() geometry.Geometry {
	return c.geometry
}

// Stats returns cache statistics.
func (c *DirectMapped) Stats() Statistics {
	return c.stats
}

// Reset invalidates every line and clears statistics.
func (c *DirectMapped) Reset() {
	for i := range c.lines {
		c.lines[i] = Line{}
	}
	c.stats = Statistics{}
}
