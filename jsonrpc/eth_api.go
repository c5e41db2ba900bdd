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

// emptyCodeHash is the hash of the empty byte string: every externally
// owned account decodes to this code hash, and it never resolves to a
// Code table row.
var emptyCodeHash = types.Hash(corestate.Keccak256Empty())

// EthNamespace returns the eth_* handler table, grounded in
// silkrpc/commands/rpc_api_table.cpp's add_eth_handlers list. Only the
// methods this gateway's cacheddb/corestate/rawdb components can genuinely
// serve are implemented; the rest (execution, filters, mining, the
// subscription surface) are intentional not-implemented stubs per
// spec.md §9.
func (a *API) EthNamespace() rpc.Namespace {
	return rpc.Namespace{
		Name: "eth",
		Methods: map[string]rpc.HandlerFunc{
			"eth_blockNumber":           a.ethBlockNumber,
			"eth_getBalance":            a.ethGetBalance,
			"eth_getTransactionCount":   a.ethGetTransactionCount,
			"eth_getCode":               a.ethGetCode,
			"eth_getStorageAt":          a.ethGetStorageAt,
			"eth_getTransactionReceipt": a.ethGetTransactionReceipt,
			"eth_getLogs":               a.ethGetLogs,
			"eth_chainId":               notImplemented,
			"eth_getBlockByNumber":      notImplemented,
			"eth_getBlockByHash":        notImplemented,
			"eth_getTransactionByHash":  notImplemented,
			"eth_call":                  notImplemented,
			"eth_estimateGas":           notImplemented,
			"eth_sendRawTransaction":    notImplemented,
			"eth_gasPrice":              notImplemented,
			"eth_feeHistory":            notImplemented,
			"eth_newFilter":             notImplemented,
			"eth_newBlockFilter":        notImplemented,
			"eth_getFilterChanges":      notImplemented,
			"eth_getFilterLogs":         notImplemented,
			"eth_uninstallFilter":       notImplemented,
			"eth_subscribe":             notImplemented,
			"eth_unsubscribe":           notImplemented,
			"eth_mining":                notImplemented,
			"eth_coinbase":              notImplemented,
			"eth_protocolVersion":       notImplemented,
			"eth_syncing":               notImplemented,
		},
	}
}

func notImplemented(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	return nil, rpc.NewNotImplementedError()
}

// ethBlockNumber returns the current Execution stage progress, per
// spec.md §8 scenario 1.
func (a *API) ethBlockNumber(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	rctx := a.Pool.Next()
	tx, err := rctx.BeginRo(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer tx.Rollback()
	tip, err := rawdb.ReadSyncStageProgress(tx, kv.StageExecution)
	if err != nil {
		return nil, rpc.NewDecodeError("sync stage progress", err)
	}
	return hexutilUint64(tip), nil
}

func (a *API) ethGetCode(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	address, bnh, decErr := decodeAddressAndBlock(params)
	if decErr != nil {
		return nil, decErr
	}

	rctx := a.Pool.Next()
	b, number, err := a.openAt(ctx, rctx, bnh)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer b.Close()

	hr := historyReaderAt(b, number)
	acc, decErr := readAccount(hr, address)
	if decErr != nil {
		return nil, decErr
	}
	codeHash := acc.CodeHash
	if codeHash == (types.Hash{}) && acc.Incarnation != 0 {
		resolved, ok, err := hr.ReadContractCodeHash(address, acc.Incarnation)
		if err != nil {
			return nil, rpc.NewDecodeError("contract code hash", err)
		}
		if ok {
			codeHash = resolved
		}
	}
	if codeHash == emptyCodeHash || codeHash == (types.Hash{}) {
		return "0x", nil
	}
	code, err := hr.ReadAccountCode(codeHash)
	if err != nil {
		return nil, rpc.NewDecodeError("code", err)
	}
	return hexutilBytes(code), nil
}

func (a *API) ethGetBalance(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	address, bnh, decErr := decodeAddressAndBlock(params)
	if decErr != nil {
		return nil, decErr
	}

	rctx := a.Pool.Next()
	b, number, err := a.openAt(ctx, rctx, bnh)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer b.Close()

	acc, decErr := readAccount(historyReaderAt(b, number), address)
	if decErr != nil {
		return nil, decErr
	}
	return hexutilBigBytes(acc.Balance), nil
}

func (a *API) ethGetTransactionCount(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	address, bnh, decErr := decodeAddressAndBlock(params)
	if decErr != nil {
		return nil, decErr
	}

	rctx := a.Pool.Next()
	b, number, err := a.openAt(ctx, rctx, bnh)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer b.Close()

	acc, decErr := readAccount(historyReaderAt(b, number), address)
	if decErr != nil {
		return nil, decErr
	}
	return hexutilUint64(acc.Nonce), nil
}

func (a *API) ethGetStorageAt(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	var args []json.RawMessage
	if decErr := decodeInto(params, &args); decErr != nil {
		return nil, decErr
	}
	if len(args) < 2 {
		return nil, rpc.NewInvalidParamsError("eth_getStorageAt requires an address and a slot")
	}
	var address types.Address
	if err := json.Unmarshal(args[0], &address); err != nil {
		return nil, rpc.NewInvalidParamsError("invalid address: " + err.Error())
	}
	var location types.Hash
	if err := json.Unmarshal(args[1], &location); err != nil {
		return nil, rpc.NewInvalidParamsError("invalid storage slot: " + err.Error())
	}
	bnh := rpc.BlockNumberOrHashWithNumber(rpc.LatestBlockNumber)
	if len(args) > 2 {
		if err := bnh.UnmarshalJSON(args[2]); err != nil {
			return nil, rpc.NewInvalidParamsError("invalid block identifier: " + err.Error())
		}
	}

	rctx := a.Pool.Next()
	b, number, err := a.openAt(ctx, rctx, bnh)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer b.Close()

	hr := historyReaderAt(b, number)
	acc, decErr := readAccount(hr, address)
	if decErr != nil {
		return nil, decErr
	}
	v, err := hr.ReadAccountStorage(address, acc.Incarnation, location)
	if err != nil {
		return nil, rpc.NewDecodeError("storage", err)
	}
	return hexutilBytes(v), nil
}

func (a *API) ethGetTransactionReceipt(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	var args []types.Hash
	if decErr := decodeInto(params, &args); decErr != nil {
		return nil, decErr
	}
	if len(args) < 1 {
		return nil, rpc.NewInvalidParamsError("eth_getTransactionReceipt requires a transaction hash")
	}
	txHash := args[0]

	rctx := a.Pool.Next()
	tx, err := rctx.BeginRo(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer tx.Rollback()

	number, ok, err := rawdb.ReadTxLookupEntry(tx, txHash)
	if err != nil {
		return nil, rpc.NewDecodeError("tx lookup", err)
	}
	if !ok {
		return nil, nil
	}
	receipts, _, err := blockReceipts(tx, number)
	if err != nil {
		return nil, rpc.NewDecodeError("receipts", err)
	}
	for _, r := range receipts {
		if r.TxHash == txHash {
			return r, nil
		}
	}
	return nil, nil
}

type getLogsFilter struct {
	FromBlock *rpc.BlockNumber `json:"fromBlock"`
	ToBlock   *rpc.BlockNumber `json:"toBlock"`
	Address   interface{}      `json:"address"`
	Topics    []interface{}    `json:"topics"`
}

// ethGetLogs supports the fromBlock/toBlock/address/topics shape of the
// standard filter object; block-hash-scoped filters are not implemented.
// Matches spec.md §8 scenario 5: an exhausted range returns an empty
// array, never an error.
func (a *API) ethGetLogs(ctx context.Context, params json.RawMessage) (interface{}, *rpc.Error) {
	var args []getLogsFilter
	if decErr := decodeInto(params, &args); decErr != nil {
		return nil, decErr
	}
	if len(args) < 1 {
		return nil, rpc.NewInvalidParamsError("eth_getLogs requires a filter object")
	}
	filter := args[0]

	rctx := a.Pool.Next()
	tx, err := rctx.BeginRo(ctx)
	if err != nil {
		return nil, rpc.NewTransportError(err)
	}
	defer tx.Rollback()

	tip, err := rawdb.ReadSyncStageProgress(tx, kv.StageExecution)
	if err != nil {
		return nil, rpc.NewDecodeError("sync stage progress", err)
	}
	from, to := tip, tip
	if filter.FromBlock != nil {
		if from, err = filter.FromBlock.Resolve(tx); err != nil {
			return nil, rpc.NewInvalidParamsError(err.Error())
		}
	}
	if filter.ToBlock != nil {
		if to, err = filter.ToBlock.Resolve(tx); err != nil {
			return nil, rpc.NewInvalidParamsError(err.Error())
		}
	}
	if from > to {
		return []corestate.DerivedLog{}, nil
	}

	addresses, decErr := decodeAddressList(filter.Address)
	if decErr != nil {
		return nil, decErr
	}
	topics, decErr := decodeTopicsList(filter.Topics)
	if decErr != nil {
		return nil, decErr
	}

	out := []corestate.DerivedLog{}
	for n := from; n <= to; n++ {
		_, logs, err := blockReceipts(tx, n)
		if err != nil {
			return nil, rpc.NewDecodeError("receipts", err)
		}
		for _, l := range logs {
			if filterLogs(l, addresses, topics) {
				out = append(out, l)
			}
		}
	}
	return out, nil
}

// decodeAddressAndBlock decodes the common (address[, blockNumberOrHash])
// params shape shared by eth_getBalance/eth_getCode/eth_getTransactionCount.
func decodeAddressAndBlock(params json.RawMessage) (types.Address, rpc.BlockNumberOrHash, *rpc.Error) {
	var args []json.RawMessage
	if decErr := decodeInto(params, &args); decErr != nil {
		return types.Address{}, rpc.BlockNumberOrHash{}, decErr
	}
	if len(args) < 1 {
		return types.Address{}, rpc.BlockNumberOrHash{}, rpc.NewInvalidParamsError("an address is required")
	}
	var address types.Address
	if err := json.Unmarshal(args[0], &address); err != nil {
		return types.Address{}, rpc.BlockNumberOrHash{}, rpc.NewInvalidParamsError("invalid address: " + err.Error())
	}
	bnh := rpc.BlockNumberOrHashWithNumber(rpc.LatestBlockNumber)
	if len(args) > 1 {
		if err := bnh.UnmarshalJSON(args[1]); err != nil {
			return types.Address{}, rpc.BlockNumberOrHash{}, rpc.NewInvalidParamsError("invalid block identifier: " + err.Error())
		}
	}
	return address, bnh, nil
}

func readAccount(hr *corestate.HistoryReader, address types.Address) (*corestate.Account, *rpc.Error) {
	enc, err := hr.ReadAccountData(address)
	if err != nil {
		return nil, rpc.NewDecodeError("account", err)
	}
	acc, err := corestate.DecodeAccount(enc)
	if err != nil {
		return nil, rpc.NewDecodeError("account", err)
	}
	return acc, nil
}

func decodeAddressList(v interface{}) ([]types.Address, *rpc.Error) {
	if v == nil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, rpc.NewInvalidParamsError("invalid address filter: " + err.Error())
	}
	var multi []types.Address
	if err := json.Unmarshal(raw, &multi); err == nil {
		return multi, nil
	}
	var single types.Address
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, rpc.NewInvalidParamsError("invalid address filter: " + err.Error())
	}
	return []types.Address{single}, nil
}

func decodeTopicsList(raw []interface{}) ([][]types.Hash, *rpc.Error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out := make([][]types.Hash, len(raw))
	for i, entry := range raw {
		if entry == nil {
			continue
		}
		encoded, err := json.Marshal(entry)
		if err != nil {
			return nil, rpc.NewInvalidParamsError("invalid topic filter: " + err.Error())
		}
		var multi []types.Hash
		if err := json.Unmarshal(encoded, &multi); err == nil {
			out[i] = multi
			continue
		}
		var single types.Hash
		if err := json.Unmarshal(encoded, &single); err != nil {
			return nil, rpc.NewInvalidParamsError("invalid topic filter: " + err.Error())
		}
		out[i] = []types.Hash{single}
	}
	return out, nil
}
