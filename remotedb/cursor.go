package remotedb

import "github.com/erigontech/rpcgate/gointerfaces/remote"

// cursor is a single named cursor multiplexed over its owning Tx's stream.
// Every method round-trips through Tx.roundTrip, which holds the
// transaction-wide lock, so a cursor is safe to share only the way the
// owning Tx is shared.
type cursor struct {
	tx    *Tx
	id    uint32
	table string
}

func (c *cursor) Seek(seek []byte) (k, v []byte, err error) {
	reply, err := c.tx.roundTrip(&remote.Cursor{Op: remote.OpSeek, Cursor: c.id, K: seek})
	if err != nil {
		return nil, nil, err
	}
	return replyKV(reply)
}

func (c *cursor) SeekExact(key []byte) (k, v []byte, err error) {
	reply, err := c.tx.roundTrip(&remote.Cursor{Op: remote.OpSeekExact, Cursor: c.id, K: key})
	if err != nil {
		return nil, nil, err
	}
	return replyKV(reply)
}

func (c *cursor) Next() (k, v []byte, err error) {
	reply, err := c.tx.roundTrip(&remote.Cursor{Op: remote.OpNext, Cursor: c.id})
	if err != nil {
		return nil, nil, err
	}
	return replyKV(reply)
}

// Close is a no-op: cursors live for the lifetime of the owning
// transaction and are all released together by Tx.Rollback.
func (c *cursor) Close() {}

// cursorDupSort adds the sub-key-bounded operations DupSort tables support.
type cursorDupSort struct {
	cursor
}

func (c *cursorDupSort) SeekBoth(key, subkey []byte) (v []byte, err error) {
	reply, err := c.tx.roundTrip(&remote.Cursor{Op: remote.OpSeekBoth, Cursor: c.id, K: key, V: subkey})
	if err != nil {
		return nil, err
	}
	return reply.V, nil
}

func (c *cursorDupSort) SeekBothExact(key, subkey []byte) (k, v []byte, err error) {
	reply, err := c.tx.roundTrip(&remote.Cursor{Op: remote.OpSeekBothExact, Cursor: c.id, K: key, V: subkey})
	if err != nil {
		return nil, nil, err
	}
	return replyKV(reply)
}

// replyKV turns a Pair into the (k, v) shape kv.Cursor methods return; an
// empty key signals end-of-range, which callers see as a nil k.
func replyKV(reply *remote.Pair) (k, v []byte, err error) {
	if len(reply.K) == 0 {
		return nil, nil, nil
	}
	return reply.K, reply.V, nil
}
