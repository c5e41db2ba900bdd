package jsonrpc

import "github.com/erigontech/rpcgate/rpc"

// ParityNamespace returns the parity_* handler table. Grounded in
// silkrpc/commands/rpc_api_table.cpp's add_parity_handlers: every method
// it names needs a state-replay/trace capability this gateway does not
// have, so each is an intentional code-500 stub per spec.md §9.
func (a *API) ParityNamespace() rpc.Namespace {
	return rpc.Namespace{
		Name: "parity",
		Methods: map[string]rpc.HandlerFunc{
			"parity_getBlockReceipts": notImplemented,
			"parity_listStorageKeys":  notImplemented,
		},
	}
}
