// Package hash wraps xxHash64 for trace identifiers and checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of a name, such as a trace source or bus name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}

// Checksum computes the xxHash64 of a payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
