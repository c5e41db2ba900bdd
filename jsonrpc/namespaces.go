package jsonrpc

import "github.com/erigontech/rpcgate/rpc"

// Namespaces returns every namespace this gateway knows how to serve, for
// cmd/rpcgate to hand to rpc.NewServer alongside the operator's api_spec
// flag.
func (a *API) Namespaces() []rpc.Namespace {
	return []rpc.Namespace{
		a.EthNamespace(),
		a.DebugNamespace(),
		a.EngineNamespace(),
		a.ErigonNamespace(),
		a.NetNamespace(),
		a.Web3Namespace(),
		a.TxpoolNamespace(),
		a.ParityNamespace(),
		a.TraceNamespace(),
	}
}
