package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Fields are the tag, index and offset parts of an address.
type Fields struct {
	Tag    uint32
	Index  uint32
	Offset uint32

	// HasIndex is false when the geometry has no index bits, which is the
	// fully-associative case.
	HasIndex bool
}

// Decode splits addr into its tag, index and offset fields.
func Decode(addr uint32, g Geometry) Fields {
	offsetBits := uint(g.OffsetBits())
	indexBits := uint(g.IndexBits())

	f := Fields{
		Offset: addr & mask(offsetBits),
		Tag:    uint32(uint64(addr) >> (offsetBits + indexBits)),
	}

	if indexBits > 0 {
		f.Index = (addr >> offsetBits) & mask(indexBits)
		f.HasIndex = true
	}

	return f
}

// Compose rebuilds the address that decodes to f. It is the inverse of
// Decode.
func Compose(f Fields, g Geometry) uint32 {
	offsetBits := uint(g.OffsetBits())
	indexBits := uint(g.IndexBits())

	addr := uint64(f.Tag)<<(offsetBits+indexBits) |
		uint64(f.Index&mask(indexBits))<<offsetBits |
		uint64(f.Offset&mask(offsetBits))

	return uint32(addr)
}

// BlockAddress clears the offset bits of addr.
func BlockAddress(addr uint32, g Geometry) uint32 {
	return addr &^ mask(uint(g.OffsetBits()))
}

// CheckAddress narrows a raw address to the simulated address width.
func CheckAddress(addr uint64) (uint32, error) {
	if addr>>AddressWidth != 0 {
		return 0, fmt.Errorf("%w: %d (0x%X) needs more than %d bits",
			ErrAddressOutOfRange, addr, addr, AddressWidth)
	}
	return uint32(addr), nil
}

// BinaryFields is the binary rendering of an address and its fields.
type BinaryFields struct {
	Address string
	Tag     string
	Index   string
	Offset  string
}

// Binary renders the fields of addr in base two. The address is padded to
// AddressWidth, index and offset to their field widths, and the tag is left
// unpadded. A missing index renders as "-".
func (f Fields) Binary(addr uint32, g Geometry) BinaryFields {
	b := BinaryFields{
		Address: pad(strconv.FormatUint(uint64(addr), 2), AddressWidth),
		Tag:     strconv.FormatUint(uint64(f.Tag), 2),
		Index:   "-",
		Offset:  pad(strconv.FormatUint(uint64(f.Offset), 2), g.OffsetBits()),
	}

	if f.HasIndex {
		b.Index = pad(strconv.FormatUint(uint64(f.Index), 2), g.IndexBits())
	}

	return b
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func mask(n uint) uint32 {
	if n >= AddressWidth {
		return ^uint32(0)
	}
	return uint32(1)<<n - 1
}
