package geometry_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/geometry"
)

var _ = Describe("Geometry", func() {
	Describe("New", func() {
		It("should derive the field widths", func() {
			g, err := geometry.New(1024, 16, 2)
			Expect(err).NotTo(HaveOccurred())

			Expect(g.NumBlocks()).To(Equal(64))
			Expect(g.NumSets()).To(Equal(32))
			Expect(g.OffsetBits()).To(Equal(4))
			Expect(g.IndexBits()).To(Equal(5))
			Expect(g.TagBits()).To(Equal(23))
		})

		DescribeTable("should reject invalid shapes",
			func(cacheSize, blockSize, ways int) {
				_, err := geometry.New(cacheSize, blockSize, ways)
				Expect(err).To(MatchError(geometry.ErrInvalidGeometry))
			},
			Entry("zero cache size", 0, 16, 1),
			Entry("negative block size", 1024, -16, 1),
			Entry("block size not a power of two", 1024, 12, 1),
			Entry("associativity not a power of two", 1024, 16, 3),
			Entry("zero associativity", 1024, 16, 0),
			Entry("cache size not a multiple of block size", 1000, 16, 1),
			Entry("cache size not a multiple of set size", 48, 16, 2),
			Entry("set count not a power of two", 96, 16, 2),
		)
	})

	Describe("Derived organizations", func() {
		var g geometry.Geometry

		BeforeEach(func() {
			var err error
			g, err = geometry.New(256, 16, 4)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should build a direct-mapped twin", func() {
			dm := g.DirectMapped()
			Expect(dm.IsDirectMapped()).To(BeTrue())
			Expect(dm.NumSets()).To(Equal(16))
			Expect(dm.IndexBits()).To(Equal(4))
		})

		It("should build a fully-associative twin", func() {
			fa := g.FullyAssociative()
			Expect(fa.IsFullyAssociative()).To(BeTrue())
			Expect(fa.Associativity).To(Equal(16))
			Expect(fa.IndexBits()).To(Equal(0))
			Expect(fa.TagBits()).To(Equal(28))
		})

		It("should match the dedicated constructors", func() {
			dm, err := geometry.NewDirectMapped(256, 16)
			Expect(err).NotTo(HaveOccurred())
			Expect(dm).To(Equal(g.DirectMapped()))

			fa, err := geometry.NewFullyAssociative(256, 16)
			Expect(err).NotTo(HaveOccurred())
			Expect(fa).To(Equal(g.FullyAssociative()))
		})
	})

	Describe("FromWords", func() {
		It("should convert words to bytes", func() {
			g, err := geometry.FromWords(64, 2, geometry.DefaultWordSize, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(g.BlockSize).To(Equal(8))
			Expect(g.NumBlocks()).To(Equal(8))
		})

		It("should reject a zero word count", func() {
			_, err := geometry.FromWords(64, 0, 4, 1)
			Expect(err).To(MatchError(geometry.ErrInvalidGeometry))
		})
	})
})
