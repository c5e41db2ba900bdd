package kvcache

// root is the cache's snapshot at one server-assigned view id: two LRU maps
// (state entries keyed by composite PlainState-style byte strings, code
// entries keyed by code hash) plus a ready gate so a handler racing the
// ingester can wait for its view to appear.
type root struct {
	viewID    uint64
	canonical bool
	ready     chan struct{}
	state     *lru
	code      *lru
}

func newRoot(viewID uint64, stateCap, codeCap int) *root {
	return &root{
		viewID: viewID,
		ready:  make(chan struct{}),
		state:  newLRU(stateCap),
		code:   newLRU(codeCap),
	}
}

func (r *root) markReady() { close(r.ready) }

func (r *root) isReady() bool {
	select {
	case <-r.ready:
		return true
	default:
		return false
	}
}
