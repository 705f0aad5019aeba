// Package main provides the entry point for cachesim.
// cachesim replays word addresses through direct-mapped, fully-associative
// and set-associative caches and reports every hit and miss.
//
// For the full CLI, use: go run ./cmd/cachesim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("cachesim - Cache Organization Simulator")
	fmt.Println("")
	fmt.Println("Usage: cachesim run [options]")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  --cache-size       Cache size in bytes")
	fmt.Println("  --words-per-block  Number of 4-byte words per block")
	fmt.Println("  --ways             Set-associative ways")
	fmt.Println("  --addrs            Word addresses, e.g. \"0 16 0 512\"")
	fmt.Println("  --trace            Path to an address trace file")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/cachesim --help' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/cachesim' instead.")
	}
}
