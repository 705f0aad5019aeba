package loader_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/cachesim/geometry"
	"github.com/sarchlab/cachesim/loader"
)

var _ = Describe("Trace Loader", func() {
	Describe("ParseString", func() {
		It("should parse space separated decimal addresses", func() {
			addrs, err := loader.ParseString("0 16 0 512")
			Expect(err).NotTo(HaveOccurred())
			Expect(addrs).To(Equal([]uint32{0, 16, 0, 512}))
		})

		It("should accept commas, hex and extra whitespace", func() {
			addrs, err := loader.ParseString("  0x10,\t32 ,0XfF  ")
			Expect(err).NotTo(HaveOccurred())
			Expect(addrs).To(Equal([]uint32{16, 32, 255}))
		})

		It("should read leading zeros as decimal", func() {
			addrs, err := loader.ParseString("010")
			Expect(err).NotTo(HaveOccurred())
			Expect(addrs).To(Equal([]uint32{10}))
		})

		It("should return nothing for an empty string", func() {
			addrs, err := loader.ParseString("")
			Expect(err).NotTo(HaveOccurred())
			Expect(addrs).To(BeEmpty())
		})

		It("should reject negative addresses", func() {
			_, err := loader.ParseString("4 -1")
			Expect(err).To(MatchError(loader.ErrMalformedAddress))
		})

		It("should reject garbage", func() {
			_, err := loader.ParseString("12 abc")
			Expect(err).To(MatchError(loader.ErrMalformedAddress))
			Expect(err.Error()).To(ContainSubstring("line 1"))
		})

		It("should reject addresses wider than 32 bits", func() {
			_, err := loader.ParseString("4294967296")
			Expect(err).To(MatchError(geometry.ErrAddressOutOfRange))
		})

		It("should reject addresses that overflow 64 bits", func() {
			_, err := loader.ParseString("0x1FFFFFFFFFFFFFFFF")
			Expect(err).To(MatchError(geometry.ErrAddressOutOfRange))
		})

		It("should accept the largest 32-bit address", func() {
			addrs, err := loader.ParseString("4294967295")
			Expect(err).NotTo(HaveOccurred())
			Expect(addrs).To(Equal([]uint32{0xFFFFFFFF}))
		})
	})

	Describe("Load", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "trace-loader-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should read a multi-line file with comments", func() {
			path := filepath.Join(tempDir, "trace.txt")
			content := "# warm-up\n0 4 8\n\n12 16 # evicts 0\n0\n"
			Expect(os.WriteFile(path, []byte(content), 0644)).To(Succeed())

			addrs, err := loader.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(addrs).To(Equal([]uint32{0, 4, 8, 12, 16, 0}))
		})

		It("should report the failing line", func() {
			path := filepath.Join(tempDir, "bad.txt")
			Expect(os.WriteFile(path, []byte("1 2\n3 x\n"), 0644)).To(Succeed())

			_, err := loader.Load(path)
			Expect(err).To(MatchError(loader.ErrMalformedAddress))
			Expect(err.Error()).To(ContainSubstring("line 2"))
		})

		It("should fail on a missing file", func() {
			_, err := loader.Load(filepath.Join(tempDir, "missing.txt"))
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("failed to open trace file"))
		})
	})
})
