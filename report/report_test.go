package report_test

import (
	"bytes"
	"encoding/json"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/cache"
	"github.com/sarchlab/cachesim/geometry"
	"github.com/sarchlab/cachesim/report"
	"github.com/sarchlab/cachesim/trace"
)

var _ = Describe("Printer", func() {
	var (
		buf     *bytes.Buffer
		printer *report.Printer
		results []trace.Result
	)

	BeforeEach(func() {
		buf = new(bytes.Buffer)
		printer = report.NewPrinter(buf)

		g, err := geometry.New(1024, 16, 2)
		Expect(err).NotTo(HaveOccurred())
		results = trace.Compare(cache.EngineNative, g, []uint32{0, 16, 0, 512})
	})

	It("should print a table per organization", func() {
		printer.PrintTables(results)
		out := buf.String()

		Expect(out).To(ContainSubstring("Direct-Mapped Cache"))
		Expect(out).To(ContainSubstring("Fully Associative Cache"))
		Expect(out).To(ContainSubstring("Set-Associative Cache"))
		Expect(out).To(ContainSubstring("Word Addr."))
	})

	It("should render binary fields and outcomes", func() {
		printer.PrintTable(results[2])
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		rows := lines[len(lines)-4:]

		Expect(strings.Fields(rows[1])).To(Equal([]string{
			"16", "00000000000000000000000000010000", "0", "00001", "0000", "Miss", "N",
		}))
		Expect(strings.Fields(rows[2])).To(ContainElements("Hit", "Y"))
		Expect(strings.Fields(rows[3])[2]).To(Equal("1"))
	})

	It("should print a dash for the fully-associative index", func() {
		printer.PrintTable(results[1])
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		Expect(strings.Fields(lines[len(lines)-1])[3]).To(Equal("-"))
	})

	It("should summarize tallies", func() {
		printer.PrintSummary(results)
		Expect(buf.String()).To(ContainSubstring("Set-Associative    hits: 1"))
	})

	It("should print CSV rows for every access", func() {
		printer.PrintCSV(results)
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

		Expect(lines).To(HaveLen(1 + 3*4))
		Expect(lines[0]).To(Equal("organization,address,tag,index,offset,hit,evicted"))
		Expect(lines[5]).To(Equal("fully,0,0,,0,false,false"))
		Expect(lines[12]).To(Equal("set,512,1,0,0,false,false"))
	})

	It("should print the hit/miss map as JSON", func() {
		Expect(printer.PrintJSON(results)).To(Succeed())

		var s report.Summary
		Expect(json.Unmarshal(buf.Bytes(), &s)).To(Succeed())
		Expect(s.HitMiss).To(HaveKeyWithValue("direct", report.Tally{Hit: 1, Miss: 3}))
		Expect(s.HitMiss).To(HaveKeyWithValue("fully", report.Tally{Hit: 1, Miss: 3}))
		Expect(s.HitMiss).To(HaveKeyWithValue("set", report.Tally{Hit: 1, Miss: 3}))
		Expect(s.Models).To(HaveLen(3))
		Expect(s.Models[2].Geometry.IndexBits).To(Equal(5))
		Expect(s.Models[1].Geometry.NumSets).To(Equal(1))
	})
})
