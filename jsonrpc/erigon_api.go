package jsonrpc

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/rawdb"
	"github.com/erigontech/rpcgate/rpc"
)

// ErigonNamespace returns the erigon_* handler table: the two header
// accessors this gateway's rawdb component serves directly.
func (a *API) ErigonNamespace() rpc.Namespace {
	return rpc.Namespace{
		Name: "erigon",
		Methods: map[string]rpc.HandlerFunc{
			"erigon_getHeaderByNumber": a.erigonGetHeaderByNumber,
			"erigon_getHeaderByHash":   a.erigonGetHeaderByHash,
		},
	}
}

func (a *API) erigonGetHeaderByNumber(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	var args []rpc.BlockNumber
	if decErr := decodeInto(params, &args); decErr != nil {
		return nil, decErr
	}
	if len(args) < 1 {
		return nil, rpc.NewInvalidParamsError("erigon_getHeaderByNumber requires a block number")
	}

	rctx := a.Pool.Next()
	tx, err := rctx.BeginRo(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer tx.Rollback()

	number, err := args[0].Resolve(tx)
	if err != nil {
		return nil, rpc.NewInvalidParamsError(err.Error())
	}
	hash, err := rawdb.ReadCanonicalHash(tx, number)
	if err != nil {
		return nil, rpc.NewNotFoundError(err.Error())
	}
	header, err := rawdb.ReadHeader(tx, number, hash)
	if err != nil {
		return nil, rpc.NewDecodeError("header", err)
	}
	return header, nil
}

func (a *API) erigonGetHeaderByHash(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	var args []types.Hash
	if decErr := decodeInto(params, &args); decErr != nil {
		return nil, decErr
	}
	if len(args) < 1 {
		return nil, rpc.NewInvalidParamsError("erigon_getHeaderByHash requires a block hash")
	}

	rctx := a.Pool.Next()
	tx, err := rctx.BeginRo(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer tx.Rollback()

	number, ok, err := rawdb.ReadHeaderNumber(tx, args[0])
	if err != nil {
		return nil, rpc.NewDecodeError("header number", err)
	}
	if !ok {
		return nil, nil
	}
	header, err := rawdb.ReadHeader(tx, number, args[0])
	if err != nil {
		return nil, rpc.NewDecodeError("header", err)
	}
	return header, nil
}
