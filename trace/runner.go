// Package trace replays address sequences through cache models.
package trace

import (
	"github.com/sirupsen/logrus"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/geometry"
)

// Result holds the per-access records and tallies of one replay.
type Result struct {
	Kind     cache.Kind
	Geometry geometry.Geometry
	Records  []cache.AccessRecord
	Hits     uint64
	Misses   uint64
}

// Accesses returns the number of replayed addresses.
func (r Result) Accesses() uint64 {
	return r.Hits + r.Misses
}

// HitRate returns hits over accesses, or 0 for an empty trace.
func (r Result) HitRate() float64 {
	if r.Accesses() == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Accesses())
}

// Run feeds addrs through m strictly in order and collects one record per
// address. addrs is only read.
func Run(m cache.Model, addrs []uint32) Result {
	res := Result{
		Kind:     m.Kind(),
		Geometry: m.Geometry(),
		Records:  make([]cache.AccessRecord, 0, len(addrs)),
	}

	for i, addr := range addrs {
		r := m.Access(addr)
		res.Records = append(res.Records, r)

		if r.Hit {
			res.Hits++
		} else {
			res.Misses++
		}

		logrus.Debugf("[%s %05d] addr=%d tag=%#x index=%d offset=%d %s",
			res.Kind.Key(), i, addr, r.Tag, r.Index, r.Offset, r.Outcome())
	}

	logrus.Infof("%s: %d accesses, %d hits, %d misses",
		res.Kind, res.Accesses(), res.Hits, res.Misses)

	return res
}

// Compare builds one fresh model per organization from g with engine and
// replays the same addresses through each. Results follow cache.Kinds.
func Compare(engine cache.Engine, g geometry.Geometry, addrs []uint32) []Result {
	results := make([]Result, 0, len(cache.Kinds))
	for _, kind := range cache.Kinds {
		results = append(results, Run(cache.Build(engine, kind, g), addrs))
	}
	return results
}
