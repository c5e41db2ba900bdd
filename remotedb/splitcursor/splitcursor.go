// Package splitcursor wraps a raw kv.Cursor over a composite-key table and
// projects each returned key into its labeled sub-slices, stopping as soon
// as a configured prefix/bit mask no longer matches. Grounded in Erigon's
// historical dbutils/changeset composite-key ("make_key") convention and in
// the teacher's bit-math helpers (common/mathutil, adapted from
// erigon-lib/common/math/integer.go).
package splitcursor

import (
	"github.com/erigontech/rpcgate/common/mathutil"
	"github.com/erigontech/rpcgate/kv"
)

// Cursor projects composite keys of shape (part1 || part2 || part3), with
// lengths (Len1, Len2, Len3), into labeled tuples, bounded by a prefix match
// over the first MatchBits bits of the key.
type Cursor struct {
	raw  kv.Cursor
	len1 int
	len2 int
	len3 int

	prefix     []byte
	matchBytes int
	mask       byte
}

// New builds a split cursor over raw, projecting keys of total length
// len1+len2+len3 and matching seekPrefix over its first matchBits bits.
func New(raw kv.Cursor, len1, len2, len3 int, seekPrefix []byte, matchBits int) *Cursor {
	matchBytes := mathutil.CeilDiv(matchBits, 8)
	shiftBits := matchBits % 8
	mask := byte(0xff)
	if shiftBits != 0 {
		mask = 0xff << (8 - shiftBits)
	}
	return &Cursor{
		raw:        raw,
		len1:       len1,
		len2:       len2,
		len3:       len3,
		prefix:     seekPrefix,
		matchBytes: matchBytes,
		mask:       mask,
	}
}

// Tuple is one projected composite-key entry.
type Tuple struct {
	Part1, Part2, Part3 []byte
	Value               []byte
}

// Seek issues a raw seek from the cursor's configured prefix and projects
// the result. A zero-value Tuple (nil Part1) signals either end-of-range or
// that the masked prefix no longer matches.
func (c *Cursor) Seek() (Tuple, error) {
	k, v, err := c.raw.Seek(c.prefix)
	if err != nil {
		return Tuple{}, err
	}
	return c.project(k, v), nil
}

// Next advances the raw cursor and projects the result, applying the same
// prefix-match stop rule as Seek.
func (c *Cursor) Next() (Tuple, error) {
	k, v, err := c.raw.Next()
	if err != nil {
		return Tuple{}, err
	}
	return c.project(k, v), nil
}

func (c *Cursor) project(k, v []byte) Tuple {
	if k == nil || !c.matches(k) {
		return Tuple{}
	}
	return Tuple{
		Part1: k[:c.len1],
		Part2: k[c.len1 : c.len1+c.len2],
		Part3: k[c.len1+c.len2 : c.len1+c.len2+c.len3],
		Value: v,
	}
}

func (c *Cursor) matches(k []byte) bool {
	if c.matchBytes == 0 {
		return true
	}
	if len(k) < c.matchBytes || len(c.prefix) < c.matchBytes {
		return false
	}
	for i := 0; i < c.matchBytes-1; i++ {
		if k[i] != c.prefix[i] {
			return false
		}
	}
	last := c.matchBytes - 1
	return k[last]&c.mask == c.prefix[last]&c.mask
}
