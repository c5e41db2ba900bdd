/*
   Copyright 2022 Erigon contributors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package kv defines the reduced DatabaseReader surface this gateway
// presents to method handlers, and the Cursor/Tx shapes that the remote-KV
// client and the cached-database facade both implement.
package kv

import "errors"

//Variables Naming:
//  tx - remote read transaction
//  k - key
//  v - value
//  Cursor - low-level cursor over a remote-KV table

var (
	ErrUnknownBucket = errors.New("unknown bucket. add it to ChaindataTables")
	ErrNotSupported  = errors.New("not supported")
)

// Getter is the read surface a handler sees, regardless of whether it is
// backed by a raw remote transaction or by the cached-database facade.
type Getter interface {
	// Get returns the full (key, value) pair found at or after key, table-specific.
	Get(table string, key []byte) (k, v []byte, err error)
	// GetOne returns the value stored under the exact key.
	GetOne(table string, key []byte) (val []byte, err error)
	// GetBothRange is for DupSort tables: returns the first value for key whose
	// sub-key is >= subkey, or nil if none exists.
	GetBothRange(table string, key, subkey []byte) ([]byte, error)
	// Walk iterates entries with keys greater or equal to fromPrefix, bounded by
	// a fixed-bit prefix match, calling walker for each eligible entry until it
	// returns false or the prefix is exhausted.
	Walk(table string, fromPrefix []byte, fixedBits int, walker func(k, v []byte) (bool, error)) error
	// ForPrefix iterates all entries whose key has the given prefix.
	ForPrefix(table string, prefix []byte, walker func(k, v []byte) (bool, error)) error
}

// Cursor navigates a remote-KV table. Every raw operation round-trips over
// the remote Tx stream; callers must not issue overlapping operations.
type Cursor interface {
	Seek(seek []byte) (k, v []byte, err error)
	SeekExact(key []byte) (k, v []byte, err error)
	Next() (k, v []byte, err error)
	Close()
}

// CursorDupSort additionally supports duplicate-sorted sub-key lookups.
type CursorDupSort interface {
	Cursor
	SeekBoth(key, subkey []byte) (v []byte, err error)
	SeekBothExact(key, subkey []byte) (k, v []byte, err error)
}

// Tx is a remote read view: a set of cursors multiplexed over one stream,
// bound to a single server-assigned view id.
type Tx interface {
	Getter
	// ViewID returns the view id assigned by the remote node when the
	// transaction was opened. View ids increase strictly across transactions.
	ViewID() uint64
	// Cursor opens (or returns the memoized) cursor for table on this
	// transaction.
	Cursor(table string) (Cursor, error)
	// CursorDupSort is like Cursor but for DupSort tables.
	CursorDupSort(table string) (CursorDupSort, error)
	// Rollback releases every cursor opened on this transaction and closes
	// the underlying stream. Safe to call more than once.
	Rollback()
}
