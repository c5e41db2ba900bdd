package remotedb

import "errors"

// ErrTransportFailed classifies any stream-level error observed on a remote
// transaction's Tx stream. Per the transaction's failure model, every
// outstanding cursor operation aborts with this error once the stream
// breaks, and the caller must not reuse the transaction afterwards.
var ErrTransportFailed = errors.New("remotedb: transport failed")

// ErrTxClosed is returned by any cursor operation issued after the owning
// transaction has been rolled back.
var ErrTxClosed = errors.New("remotedb: transaction closed")
