package jsonrpc

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/erigontech/rpcgate/corestate"
	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/kv"
	"github.com/erigontech/rpcgate/rawdb"
	"github.com/erigontech/rpcgate/rpc"
)

// DebugNamespace returns the debug_* handler table. debug_accountRange is
// the one debug method this gateway's PlainState table can genuinely
// serve; the teacher's silkrpc carries a much larger debug surface
// (storage range, trace-by-hash, ...) this gateway has no execution
// engine to back, so those stay code-500 stubs per spec.md §9.
func (a *API) DebugNamespace() rpc.Namespace {
	return rpc.Namespace{
		Name: "debug",
		Methods: map[string]rpc.HandlerFunc{
			"debug_accountRange":       a.debugAccountRange,
			"debug_storageRangeAt":     notImplemented,
			"debug_traceTransaction":   notImplemented,
			"debug_traceCall":          notImplemented,
			"debug_traceBlockByNumber": notImplemented,
			"debug_traceBlockByHash":   notImplemented,
		},
	}
}

type accountRangeParams struct {
	BlockNrOrHash rpc.BlockNumberOrHash
	StartKey      []byte
	MaxResults    int
	ExcludeCode   bool
	ExcludeStore  bool
}

func (p *accountRangeParams) UnmarshalJSON(data []byte) error {
	var raw [5]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := p.BlockNrOrHash.UnmarshalJSON(raw[0]); err != nil {
		return err
	}
	var startHex string
	if err := json.Unmarshal(raw[1], &startHex); err != nil {
		return err
	}
	key, err := decodeHexString(startHex)
	if err != nil {
		return err
	}
	p.StartKey = key
	if err := json.Unmarshal(raw[2], &p.MaxResults); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[3], &p.ExcludeCode); err != nil {
		return err
	}
	return json.Unmarshal(raw[4], &p.ExcludeStore)
}

type accountRangeResult struct {
	Root     types.Hash                    `json:"root"`
	Accounts map[string]*corestate.Account `json:"accounts"`
}

// debugAccountRange walks PlainState from startKey, decoding up to
// maxResults accounts. maxResults == 0 returns no accounts, only the
// block's state root, matching spec.md §8 scenario 4.
func (a *API) debugAccountRange(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	var p accountRangeParams
	if decErr := decodeInto(params, &p); decErr != nil {
		return nil, decErr
	}

	rctx := a.Pool.Next()
	b, number, err := a.openAt(ctx, rctx, p.BlockNrOrHash)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer b.Close()

	hash, err := rawdb.ReadCanonicalHash(b.tx, number)
	if err != nil {
		return nil, rpc.NewDecodeError("canonical hash", err)
	}
	header, err := rawdb.ReadHeader(b.tx, number, hash)
	if err != nil {
		return nil, rpc.NewDecodeError("header", err)
	}

	result := accountRangeResult{Root: header.Root, Accounts: map[string]*corestate.Account{}}
	if p.MaxResults <= 0 {
		return result, nil
	}

	count := 0
	walkErr := b.reader.Walk(kv.PlainState, p.StartKey, 0, func(k, v []byte) (bool, error) {
		if len(k) != kv.AddressLength {
			return true, nil
		}
		if count >= p.MaxResults {
			return false, nil
		}
		acc, err := corestate.DecodeAccount(v)
		if err != nil {
			return false, err
		}
		var address types.Address
		copy(address[:], k)
		result.Accounts[hexutilBytes(address[:])] = acc
		count++
		return true, nil
	})
	if walkErr != nil {
		return nil, rpc.NewDecodeError("account range", walkErr)
	}
	return result, nil
}

