// Package report formats trace results as fixed-width tables, CSV and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sarchlab/cachesim/trace"
)

const ruleWidth = 97

// Printer writes results to an output stream.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer writing to w (default: os.Stdout).
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{out: w}
}

// PrintTable outputs one row per access under a heading naming the
// organization. The valid-bit column shows Y for hits.
func (p *Printer) PrintTable(r trace.Result) {
	rule := strings.Repeat("_", ruleWidth)

	_, _ = fmt.Fprintf(p.out, "%s Cache\n", r.Kind)
	_, _ = fmt.Fprintln(p.out, rule)
	_, _ = fmt.Fprintln(p.out, "")
	_, _ = fmt.Fprintf(p.out, " %-12s %-32s %-8s %-8s %-8s %-11s %s\n",
		"Word Addr.", "Bin Addr.", "Tag", "Index", "Offset", "Hit/Miss", "Valid Bit")
	_, _ = fmt.Fprintln(p.out, rule)
	_, _ = fmt.Fprintln(p.out, "")

	for _, rec := range r.Records {
		b := rec.Binary(rec.Address, r.Geometry)
		valid := "N"
		if rec.Hit {
			valid = "Y"
		}

		_, _ = fmt.Fprintf(p.out, " %-12d %-32s %-8s %-8s %-8s %-11s %s\n",
			rec.Address, b.Address, b.Tag, b.Index, b.Offset, rec.Outcome(), valid)
	}
}

// PrintTables outputs a table per result separated by blank lines.
func (p *Printer) PrintTables(results []trace.Result) {
	for i, r := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(p.out, "")
		}
		p.PrintTable(r)
	}
}

// PrintSummary outputs the hit and miss tallies of every result.
func (p *Printer) PrintSummary(results []trace.Result) {
	_, _ = fmt.Fprintln(p.out, "=== Hit/Miss Summary ===")
	for _, r := range results {
		_, _ = fmt.Fprintf(p.out, "%-18s hits: %-6d misses: %-6d hit rate: %.1f%%\n",
			r.Kind, r.Hits, r.Misses, 100*r.HitRate())
	}
}

// PrintCSV outputs one line per access for all results.
func (p *Printer) PrintCSV(results []trace.Result) {
	_, _ = fmt.Fprintln(p.out, "organization,address,tag,index,offset,hit,evicted")

	for _, r := range results {
		for _, rec := range r.Records {
			index := ""
			if rec.HasIndex {
				index = fmt.Sprintf("%d", rec.Index)
			}
			_, _ = fmt.Fprintf(p.out, "%s,%d,%d,%s,%d,%t,%t\n",
				r.Kind.Key(), rec.Address, rec.Tag, index, rec.Offset, rec.Hit, rec.Evicted)
		}
	}
}

// Tally is the hit and miss count of one organization.
type Tally struct {
	Hit  uint64 `json:"hit"`
	Miss uint64 `json:"miss"`
}

// GeometryInfo describes the shape a model ran with.
type GeometryInfo struct {
	CacheSize     int `json:"cache_size"`
	BlockSize     int `json:"block_size"`
	Associativity int `json:"associativity"`
	NumSets       int `json:"num_sets"`
	TagBits       int `json:"tag_bits"`
	IndexBits     int `json:"index_bits"`
	OffsetBits    int `json:"offset_bits"`
}

// ModelSummary is the JSON form of one result.
type ModelSummary struct {
	Organization string       `json:"organization"`
	Geometry     GeometryInfo `json:"geometry"`
	Accesses     uint64       `json:"accesses"`
	Hits         uint64       `json:"hits"`
	Misses       uint64       `json:"misses"`
	HitRate      float64      `json:"hit_rate"`
}

// Summary is the JSON document written by PrintJSON. HitMiss is keyed by
// the organization key (direct, fully, set).
type Summary struct {
	HitMiss map[string]Tally `json:"hit_miss"`
	Models  []ModelSummary   `json:"models"`
}

// Summarize builds the JSON document for results.
func Summarize(results []trace.Result) Summary {
	s := Summary{
		HitMiss: make(map[string]Tally, len(results)),
		Models:  make([]ModelSummary, 0, len(results)),
	}

	for _, r := range results {
		s.HitMiss[r.Kind.Key()] = Tally{Hit: r.Hits, Miss: r.Misses}
		s.Models = append(s.Models, ModelSummary{
			Organization: r.Kind.String(),
			Geometry: GeometryInfo{
				CacheSize:     r.Geometry.CacheSize,
				BlockSize:     r.Geometry.BlockSize,
				Associativity: r.Geometry.Associativity,
				NumSets:       r.Geometry.NumSets(),
				TagBits:       r.Geometry.TagBits(),
				IndexBits:     r.Geometry.IndexBits(),
				OffsetBits:    r.Geometry.OffsetBits(),
			},
			Accesses: r.Accesses(),
			Hits:     r.Hits,
			Misses:   r.Misses,
			HitRate:  r.HitRate(),
		})
	}

	return s
}

// PrintJSON outputs the summary of results as indented JSON.
func (p *Printer) PrintJSON(results []trace.Result) error {
	encoder := json.NewEncoder(p.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(Summarize(results)); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
