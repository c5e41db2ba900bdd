// Package remotedb is the client half of the bidirectional-stream KV
// protocol: it opens a read transaction on the remote node, multiplexes
// many named cursors over that one stream, and exposes them as lazily
// advanced key/value iterators. Grounded in the teacher's
// erigon-lib/kv.Tx/Cursor shapes (other_examples/d3229039_...kv_interface.go.go)
// and in the wire contract of spec.md §4.3.
package remotedb

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/kv"
)

// Tx is a remote read transaction: one Tx gRPC stream, multiplexing
// cursors opened on demand, fully serialized (one operation in flight at a
// time, per the ordering guarantee in spec.md §4.3/§5).
type Tx struct {
	mu      sync.Mutex
	stream  remote.KV_TxClient
	viewID  uint64
	cursors map[string]*cursor // memoized by table name
	dup     map[string]*cursorDupSort
	closed  bool
	failed  error
}

var _ kv.Tx = (*Tx)(nil)

// Open starts the Tx stream and reads the server's first reply, which
// carries the assigned view id.
func Open(ctx context.Context, client remote.KVClient) (*Tx, error) {
	stream, err := client.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("remotedb: opening tx stream: %w", err)
	}
	first, err := stream.Recv()
	if err != nil {
		return nil, fmt.Errorf("remotedb: %w: %v", ErrTransportFailed, err)
	}
	return &Tx{
		stream:  stream,
		viewID:  first.ViewID,
		cursors: make(map[string]*cursor),
		dup:     make(map[string]*cursorDupSort),
	}, nil
}

func (t *Tx) ViewID() uint64 { return t.viewID }

// roundTrip sends cmd and returns the reply, under the transaction-wide
// lock that enforces strict per-transaction serialization. Any stream error
// is sticky: it marks the transaction failed for all future operations.
func (t *Tx) roundTrip(cmd *remote.Cursor) (*remote.Pair, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, ErrTxClosed
	}
	if t.failed != nil {
		return nil, t.failed
	}
	if err := t.stream.Send(cmd); err != nil {
		t.failed = fmt.Errorf("%w: %v", ErrTransportFailed, err)
		return nil, t.failed
	}
	reply, err := t.stream.Recv()
	if err != nil {
		t.failed = fmt.Errorf("%w: %v", ErrTransportFailed, err)
		return nil, t.failed
	}
	return reply, nil
}

// Cursor opens (or returns the already-open) cursor for table on this
// transaction. Repeated opens for the same table on the same transaction
// return the same cursor, per spec.md §4.3.
func (t *Tx) Cursor(table string) (kv.Cursor, error) {
	t.mu.Lock()
	if c, ok := t.cursors[table]; ok {
		t.mu.Unlock()
		return c, nil
	}
	t.mu.Unlock()

	reply, err := t.roundTrip(&remote.Cursor{Op: remote.OpOpen, BucketName: table})
	if err != nil {
		return nil, err
	}
	c := &cursor{tx: t, id: reply.CursorID, table: table}

	t.mu.Lock()
	t.cursors[table] = c
	t.mu.Unlock()
	return c, nil
}

// CursorDupSort is like Cursor but for DupSort tables, returning a handle
// that also supports sub-key-bounded seeks.
func (t *Tx) CursorDupSort(table string) (kv.CursorDupSort, error) {
	t.mu.Lock()
	if c, ok := t.dup[table]; ok {
		t.mu.Unlock()
		return c, nil
	}
	t.mu.Unlock()

	reply, err := t.roundTrip(&remote.Cursor{Op: remote.OpOpen, BucketName: table})
	if err != nil {
		return nil, err
	}
	c := &cursorDupSort{cursor{tx: t, id: reply.CursorID, table: table}}

	t.mu.Lock()
	t.dup[table] = c
	t.mu.Unlock()
	return c, nil
}

// Rollback sends CLOSE for every live cursor, half-closes the stream, and
// marks the transaction closed. Safe to call more than once; every handler
// exit path (success or failure) must reach this exactly once.
func (t *Tx) Rollback() {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.closed = true
	cursors := make([]*cursor, 0, len(t.cursors)+len(t.dup))
	for _, c := range t.cursors {
		cursors = append(cursors, c)
	}
	for _, c := range t.dup {
		cursors = append(cursors, &c.cursor)
	}
	stream := t.stream
	failed := t.failed
	t.mu.Unlock()

	if failed == nil {
		// t.closed is already set, so the CLOSE commands go straight to the
		// stream instead of through roundTrip.
		for _, c := range cursors {
			if err := stream.Send(&remote.Cursor{Op: remote.OpClose, Cursor: c.id}); err != nil {
				break
			}
			if _, err := stream.Recv(); err != nil {
				break
			}
		}
		_ = stream.CloseSend()
		for {
			if _, err := stream.Recv(); err != nil {
				if err != io.EOF {
					// best-effort: nothing left to do with a closing error.
				}
				break
			}
		}
	}
}

// --- kv.Getter surface, built on top of Cursor ---

func (t *Tx) Get(table string, key []byte) (k, v []byte, err error) {
	c, err := t.Cursor(table)
	if err != nil {
		return nil, nil, err
	}
	return c.Seek(key)
}

func (t *Tx) GetOne(table string, key []byte) ([]byte, error) {
	c, err := t.Cursor(table)
	if err != nil {
		return nil, err
	}
	k, v, err := c.SeekExact(key)
	if err != nil || k == nil {
		return nil, err
	}
	return v, nil
}

func (t *Tx) GetBothRange(table string, key, subkey []byte) ([]byte, error) {
	c, err := t.CursorDupSort(table)
	if err != nil {
		return nil, err
	}
	return c.SeekBoth(key, subkey)
}

// Walk iterates entries with keys greater or equal to fromPrefix, invoking
// walker until it returns false, an error, or the fixedBits prefix of
// fromPrefix no longer matches the current key (spec.md §8's "prefix bound
// on walk" property).
func (t *Tx) Walk(table string, fromPrefix []byte, fixedBits int, walker func(k, v []byte) (bool, error)) error {
	c, err := t.Cursor(table)
	if err != nil {
		return err
	}
	fixedBytes, mask := bytesMask(fixedBits)
	k, v, err := c.Seek(fromPrefix)
	for ; k != nil; k, v, err = c.Next() {
		if err != nil {
			return err
		}
		if !hasPrefixMasked(k, fromPrefix, fixedBytes, mask) {
			return nil
		}
		ok, err := walker(k, v)
		if err != nil || !ok {
			return err
		}
	}
	return err
}

// ForPrefix is Walk bounded to len(prefix)*8 fixed bits.
func (t *Tx) ForPrefix(table string, prefix []byte, walker func(k, v []byte) (bool, error)) error {
	return t.Walk(table, prefix, len(prefix)*8, walker)
}

func bytesMask(fixedBits int) (int, byte) {
	fixedBytes := (fixedBits + 7) / 8
	shiftBits := fixedBits & 7
	mask := byte(0xff)
	if shiftBits != 0 {
		mask = 0xff << (8 - shiftBits)
	}
	return fixedBytes, mask
}

func hasPrefixMasked(k, prefix []byte, fixedBytes int, mask byte) bool {
	if fixedBytes == 0 {
		return true
	}
	if len(k) < fixedBytes || len(prefix) < fixedBytes {
		return false
	}
	if fixedBytes > 1 && !bytes.Equal(k[:fixedBytes-1], prefix[:fixedBytes-1]) {
		return false
	}
	return k[fixedBytes-1]&mask == prefix[fixedBytes-1]&mask
}
