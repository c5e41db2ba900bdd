package rawdb

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/kv"
)

// Block pairs a decoded header with its body, the accessor-level unit both
// block-by-hash and block-by-number resolve to.
type Block struct {
	Header *Header
	Body   *Body
}

// BlockCache is the process-wide LRU consulted by block-by-hash and
// block-by-number before falling through to the transaction, per spec.md
// §4.9's "cache-aware" accessor note. Safe for concurrent use; the
// underlying hashicorp/golang-lru/v2 cache is internally locked.
type BlockCache struct {
	byHash *lru.Cache[types.Hash, *Block]
}

// NewBlockCache builds a cache holding up to capacity entries.
func NewBlockCache(capacity int) *BlockCache {
	c, _ := lru.New[types.Hash, *Block](capacity)
	return &BlockCache{byHash: c}
}

func (bc *BlockCache) Get(hash types.Hash) (*Block, bool) {
	return bc.byHash.Get(hash)
}

func (bc *BlockCache) Add(hash types.Hash, b *Block) {
	bc.byHash.Add(hash, b)
}

// ReadBlockByHash resolves a block by hash, consulting the cache first and
// populating it on miss.
func ReadBlockByHash(tx kv.Tx, cache *BlockCache, hash types.Hash) (*Block, error) {
	if b, ok := cache.Get(hash); ok {
		return b, nil
	}
	number, ok, err := ReadHeaderNumber(tx, hash)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound{What: "header number for hash"}
	}
	return readBlockAndCache(tx, cache, number, hash)
}

// ReadBlockByNumber resolves the canonical block at number, consulting the
// cache first and populating it on miss.
func ReadBlockByNumber(tx kv.Tx, cache *BlockCache, number uint64) (*Block, error) {
	hash, err := ReadCanonicalHash(tx, number)
	if err != nil {
		return nil, err
	}
	if b, ok := cache.Get(hash); ok {
		return b, nil
	}
	return readBlockAndCache(tx, cache, number, hash)
}

func readBlockAndCache(tx kv.Tx, cache *BlockCache, number uint64, hash types.Hash) (*Block, error) {
	header, err := ReadHeader(tx, number, hash)
	if err != nil {
		return nil, err
	}
	body, err := ReadBody(tx, number, hash)
	if err != nil {
		return nil, err
	}
	block := &Block{Header: header, Body: body}
	cache.Add(hash, block)
	return block, nil
}
