// Package crypto wraps the Keccak-256 hash used throughout the state cache,
// state reader, and transaction hashing. Grounded in the teacher's
// erigon-lib/common/crypto convention of wrapping golang.org/x/crypto/sha3
// (a direct teacher dependency) rather than hand-rolling a sponge.
package crypto

import "golang.org/x/crypto/sha3"

// Keccak256 returns the legacy (pre-NIST) Keccak-256 digest of data.
func Keccak256(data ...[]byte) [32]byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	var out [32]byte
	d.Sum(out[:0])
	return out
}
