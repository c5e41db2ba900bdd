package rpc

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/erigontech/rpcgate/common/mathutil"
	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/kv"
	"github.com/erigontech/rpcgate/rawdb"
)

// BlockNumber is a request's block identifier, either a literal number or
// one of the named tags. Grounded in the kept silkrpc/core/blocks.hpp/.cpp
// (kEarliestBlockId/kLatestBlockId/kPendingBlockId, get_block_number):
// "earliest" resolves to 0, "latest"/"pending" resolve to the Execution
// sync stage's current tip. "safe"/"finalized" are accepted for wire
// compatibility with newer clients but, since this gateway has no
// fork-choice state of its own, resolve to the same tip as "latest" — a
// deliberate simplification recorded in DESIGN.md.
type BlockNumber int64

const (
	EarliestBlockNumber  BlockNumber = 0
	LatestBlockNumber    BlockNumber = -1
	PendingBlockNumber   BlockNumber = -2
	SafeBlockNumber      BlockNumber = -3
	FinalizedBlockNumber BlockNumber = -4
)

func (bn *BlockNumber) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("block number must be a string: %w", err)
	}
	switch strings.ToLower(s) {
	case "earliest":
		*bn = EarliestBlockNumber
	case "latest":
		*bn = LatestBlockNumber
	case "pending":
		*bn = PendingBlockNumber
	case "safe":
		*bn = SafeBlockNumber
	case "finalized":
		*bn = FinalizedBlockNumber
	default:
		v, ok := mathutil.ParseUint64(s)
		if !ok {
			return fmt.Errorf("invalid block number %q", s)
		}
		*bn = BlockNumber(v)
	}
	return nil
}

// Resolve maps bn to a concrete block number against getter, reading the
// Execution sync stage's progress for the tag-based identifiers.
func (bn BlockNumber) Resolve(getter kv.Getter) (uint64, error) {
	switch bn {
	case EarliestBlockNumber:
		return 0, nil
	case LatestBlockNumber, PendingBlockNumber, SafeBlockNumber, FinalizedBlockNumber:
		return rawdb.ReadSyncStageProgress(getter, kv.StageExecution)
	default:
		if bn < 0 {
			return 0, fmt.Errorf("unknown block tag %d", bn)
		}
		return uint64(bn), nil
	}
}

// BlockNumberOrHash is a request's block identifier that may name a block
// by number/tag or by hash, per the kept silkrpc BlockNumberOrHash variant
// (types/block.hpp). The canonical wire shape is either the bare
// number/tag string, or an object `{blockHash, requireCanonicalHash}`.
type BlockNumberOrHash struct {
	number           *BlockNumber
	hash             *types.Hash
	requireCanonical bool
}

// BlockNumberOrHashWithNumber builds a BlockNumberOrHash naming a literal
// number or tag, for call sites that default an absent block argument.
func BlockNumberOrHashWithNumber(bn BlockNumber) BlockNumberOrHash {
	return BlockNumberOrHash{number: &bn}
}

func (b *BlockNumberOrHash) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		var bn BlockNumber
		if err := bn.UnmarshalJSON(data); err != nil {
			return err
		}
		b.number = &bn
		return nil
	}

	var obj struct {
		BlockHash        *types.Hash `json:"blockHash"`
		RequireCanonical bool        `json:"requireCanonicalHash"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid block number or hash: %w", err)
	}
	if obj.BlockHash == nil {
		return fmt.Errorf("blockHash is required when a block object is given")
	}
	b.hash = obj.BlockHash
	b.requireCanonical = obj.RequireCanonical
	return nil
}

// IsHash reports whether this identifier names a block by hash.
func (b BlockNumberOrHash) IsHash() bool { return b.hash != nil }

// Hash returns the named hash; only valid when IsHash is true.
func (b BlockNumberOrHash) Hash() types.Hash { return *b.hash }

// Number returns the named number/tag; only valid when IsHash is false.
func (b BlockNumberOrHash) Number() BlockNumber {
	if b.number == nil {
		return LatestBlockNumber
	}
	return *b.number
}

// RequireCanonical reports whether the caller asked for the hash to be
// rejected if it turns out not to be on the canonical chain.
func (b BlockNumberOrHash) RequireCanonical() bool { return b.requireCanonical }
