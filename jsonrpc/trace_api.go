package jsonrpc

import "github.com/erigontech/rpcgate/rpc"

// TraceNamespace returns the trace_* handler table. Grounded in
// silkrpc/commands/rpc_api_table.cpp's add_trace_handlers: every method
// it names requires transaction replay against an EVM this gateway does
// not embed, so each is an intentional code-500 stub per spec.md §9.
func (a *API) TraceNamespace() rpc.Namespace {
	return rpc.Namespace{
		Name: "trace",
		Methods: map[string]rpc.HandlerFunc{
			"trace_call":                   notImplemented,
			"trace_callMany":                notImplemented,
			"trace_rawTransaction":          notImplemented,
			"trace_replayBlockTransactions": notImplemented,
			"trace_replayTransaction":       notImplemented,
			"trace_block":                  notImplemented,
			"trace_filter":                 notImplemented,
			"trace_get":                    notImplemented,
			"trace_transaction":             notImplemented,
		},
	}
}
