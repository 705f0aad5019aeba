// Package loader reads address traces for the cache simulator.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/sarchlab/cachesim/geometry"
)

// ErrMalformedAddress is returned for tokens that are not non-negative
// integers.
var ErrMalformedAddress = errors.New("malformed address")

// CommentPrefix starts a comment that runs to the end of the line.
const CommentPrefix = "#"

// Parse reads word addresses from r. Addresses are separated by whitespace
// or commas and are decimal unless prefixed with 0x. Every address must fit
// in geometry.AddressWidth bits.
func Parse(r io.Reader) ([]uint32, error) {
	var addrs []uint32

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if i := strings.Index(line, CommentPrefix); i >= 0 {
			line = line[:i]
		}

		for _, tok := range strings.FieldsFunc(line, isSeparator) {
			addr, err := parseAddress(tok)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			addrs = append(addrs, addr)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	return addrs, nil
}

// ParseString parses addresses from a single string such as "0 16 0 512".
func ParseString(s string) ([]uint32, error) {
	return Parse(strings.NewReader(s))
}

// Load reads a trace file.
func Load(path string) ([]uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer func() { _ = f.Close() }()

	addrs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return addrs, nil
}

func parseAddress(tok string) (uint32, error) {
	base := 10
	digits := tok
	if strings.HasPrefix(tok, "0x") || strings.HasPrefix(tok, "0X") {
		base = 16
		digits = tok[2:]
	}

	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %s", geometry.ErrAddressOutOfRange, tok)
		}
		return 0, fmt.Errorf("%w: %q", ErrMalformedAddress, tok)
	}

	return geometry.CheckAddress(v)
}

func isSeparator(r rune) bool {
	return r == ',' || unicode.IsSpace(r)
}
