// Package geometry describes the shape of a cache and decodes addresses
// against it.
package geometry

import (
	"errors"
	"fmt"
	"math/bits"
)

// AddressWidth is the number of bits in a simulated address.
const AddressWidth = 32

// DefaultWordSize is the number of bytes in a word. Block sizes given in
// words are converted with it.
const DefaultWordSize = 4

var (
	// ErrInvalidGeometry is returned when a cache shape violates the
	// power-of-two or divisibility rules.
	ErrInvalidGeometry = errors.New("invalid cache geometry")

	// ErrAddressOutOfRange is returned for addresses that do not fit in
	// AddressWidth bits.
	ErrAddressOutOfRange = errors.New("address out of range")
)

// Geometry holds the shape of a cache. The zero value is not usable; build
// one with New, NewDirectMapped, NewFullyAssociative or FromWords.
type Geometry struct {
	// CacheSize in bytes
	CacheSize int
	// BlockSize in bytes (cache line size)
	BlockSize int
	// Associativity (number of ways per set)
	Associativity int
}

// New validates and returns a set-associative geometry.
func New(cacheSize, blockSize, associativity int) (Geometry, error) {
	g := Geometry{
		CacheSize:     cacheSize,
		BlockSize:     blockSize,
		Associativity: associativity,
	}

	if err := g.Validate(); err != nil {
		return Geometry{}, err
	}

	return g, nil
}

// NewDirectMapped returns a geometry with one block per set.
func NewDirectMapped(cacheSize, blockSize int) (Geometry, error) {
	return New(cacheSize, blockSize, 1)
}

// NewFullyAssociative returns a geometry with a single set holding every
// block.
func NewFullyAssociative(cacheSize, blockSize int) (Geometry, error) {
	if blockSize <= 0 {
		return Geometry{}, fmt.Errorf("%w: block size %d must be positive",
			ErrInvalidGeometry, blockSize)
	}

	return New(cacheSize, blockSize, cacheSize/blockSize)
}

// FromWords builds a geometry whose block size is given in words of
// wordSize bytes.
func FromWords(cacheSize, wordsPerBlock, wordSize, associativity int) (Geometry, error) {
	if wordsPerBlock <= 0 || wordSize <= 0 {
		return Geometry{}, fmt.Errorf(
			"%w: words per block (%d) and word size (%d) must be positive",
			ErrInvalidGeometry, wordsPerBlock, wordSize)
	}

	return New(cacheSize, wordsPerBlock*wordSize, associativity)
}

// Validate checks the geometry invariants.
func (g Geometry) Validate() error {
	switch {
	case g.CacheSize <= 0:
		return fmt.Errorf("%w: cache size %d must be positive",
			ErrInvalidGeometry, g.CacheSize)
	case !isPowerOfTwo(g.BlockSize):
		return fmt.Errorf("%w: block size %d must be a positive power of two",
			ErrInvalidGeometry, g.BlockSize)
	case !isPowerOfTwo(g.Associativity):
		return fmt.Errorf("%w: associativity %d must be a positive power of two",
			ErrInvalidGeometry, g.Associativity)
	case g.CacheSize%g.BlockSize != 0:
		return fmt.Errorf("%w: cache size %d is not a multiple of block size %d",
			ErrInvalidGeometry, g.CacheSize, g.BlockSize)
	case g.CacheSize%(g.BlockSize*g.Associativity) != 0:
		return fmt.Errorf("%w: cache size %d is not a multiple of set size %d",
			ErrInvalidGeometry, g.CacheSize, g.BlockSize*g.Associativity)
	case !isPowerOfTwo(g.NumSets()):
		return fmt.Errorf("%w: set count %d must be a power of two",
			ErrInvalidGeometry, g.NumSets())
	case g.OffsetBits()+g.IndexBits() > AddressWidth:
		return fmt.Errorf("%w: %d offset and index bits exceed the %d-bit address",
			ErrInvalidGeometry, g.OffsetBits()+g.IndexBits(), AddressWidth)
	}

	return nil
}

// NumBlocks returns the number of blocks the cache holds.
func (g Geometry) NumBlocks() int {
	return g.CacheSize / g.BlockSize
}

// NumSets returns the number of sets.
func (g Geometry) NumSets() int {
	return g.NumBlocks() / g.Associativity
}

// OffsetBits returns the width of the block-offset field.
func (g Geometry) OffsetBits() int {
	return log2(g.BlockSize)
}

// IndexBits returns the width of the set-index field. It is zero for a
// fully-associative geometry.
func (g Geometry) IndexBits() int {
	return log2(g.NumSets())
}

// TagBits returns the width of the tag field.
func (g Geometry) TagBits() int {
	return AddressWidth - g.IndexBits() - g.OffsetBits()
}

// IsDirectMapped reports whether every set holds exactly one block.
func (g Geometry) IsDirectMapped() bool {
	return g.Associativity == 1
}

// IsFullyAssociative reports whether the cache is a single set.
func (g Geometry) IsFullyAssociative() bool {
	return g.NumSets() == 1
}

// DirectMapped returns the direct-mapped geometry with the same cache and
// block size.
func (g Geometry) DirectMapped() Geometry {
	g.Associativity = 1
	return g
}

// FullyAssociative returns the single-set geometry with the same cache and
// block size.
func (g Geometry) FullyAssociative() Geometry {
	g.Associativity = g.NumBlocks()
	return g
}

// String formats the geometry for logs.
func (g Geometry) String() string {
	return fmt.Sprintf("%dB cache, %dB blocks, %d-way (%d sets, %d/%d/%d tag/index/offset bits)",
		g.CacheSize, g.BlockSize, g.Associativity, g.NumSets(),
		g.TagBits(), g.IndexBits(), g.OffsetBits())
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

func log2(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.Len(uint(n)) - 1
}
