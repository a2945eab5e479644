// Package hash provides a fast, non-cryptographic string hash used to key
// lookup maps (signal descriptions) without repeated
// string comparisons.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}
