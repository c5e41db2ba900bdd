// Package remote holds the wire message shapes and client-side interfaces
// for the KV and ETHBACKEND gRPC services exposed by the remote execution
// node, hand-approximated from the teacher's generated
// `erigon-lib/gointerfaces/remote` package (see
// other_examples/d3229039_..._kv_interface.go.go and
// other_examples/dbb8ba21_..._ethbackend.go.go) since no protoc step runs
// in this build. Message structs stand in for the generated protobuf types;
// the client interfaces are shaped exactly like the generated `*Client`
// interfaces so that remotedb and remoteclients consume them the same way
// hand-written callers consume real generated stubs.
package remote

import (
	"context"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"google.golang.org/grpc"
)

// Op enumerates the Cursor command discriminator sent on the Tx stream.
type Op int32

const (
	OpOpen Op = iota
	OpClose
	OpSeek
	OpSeekExact
	OpNext
	OpSeekBoth
	OpSeekBothExact
)

// Cursor is one outbound command message on the bidirectional Tx stream.
type Cursor struct {
	Op        Op
	BucketName string
	Cursor    uint32
	K         []byte
	V         []byte
}

// Pair is one inbound reply message on the Tx stream. CursorID is only
// meaningful on the reply to OpOpen; K/V carry the resulting key/value for
// data ops, with an empty K denoting end-of-range.
type Pair struct {
	// ViewID is set only on the very first Pair received after the stream
	// opens; it carries the view id assigned to this transaction.
	ViewID   uint64
	CursorID uint32
	K        []byte
	V        []byte
}

// KV_TxClient is the bidirectional-stream handle for one remote transaction.
// It mirrors grpc.ClientStream plus the typed Send/Recv pair a generated
// stub would expose.
type KV_TxClient interface {
	grpc.ClientStream
	Send(*Cursor) error
	Recv() (*Pair, error)
}

// StateChangeDirection distinguishes forward application from chain unwind.
type StateChangeDirection int32

const (
	DirectionForward StateChangeDirection = iota
	DirectionUnwind
)

// ChangeKind enumerates the per-account change shapes in a StateChange batch.
type ChangeKind int32

const (
	ChangeUpsert ChangeKind = iota
	ChangeUpsertCode
	ChangeDelete
	ChangeStorageOnly
	ChangeCodeOnly
)

// StorageChange is one slot update within an AccountChange.
type StorageChange struct {
	LocationHash types.Hash
	Value        []byte
}

// AccountChange describes one account's mutation within a block's StateChange.
type AccountChange struct {
	Address     types.Address
	Incarnation uint64 // storage-key component; 0 for EOAs that never held code
	Kind        ChangeKind
	Data        []byte // new account body (RLP/compact encoding), empty on delete
	Code        []byte // present only for ChangeUpsertCode
	Storage     []StorageChange
}

// StateChange is one block's worth of diffs within a StateChangeBatch.
type StateChange struct {
	BlockHeight uint64
	BlockHash   types.Hash
	Direction   StateChangeDirection
	Changes     []AccountChange
}

// StateChangeBatch is one server-push on the StateChanges stream.
type StateChangeBatch struct {
	StateVersionID uint64
	ChangeBatch    []StateChange
}

// KV_StateChangesClient is the server-streaming handle for state-change
// subscription.
type KV_StateChangesClient interface {
	grpc.ClientStream
	Recv() (*StateChangeBatch, error)
}

// StateChangeRequest parameterizes the StateChanges subscription (the
// starting point is implicit: the server always starts from its current tip).
type StateChangeRequest struct {
	WithStorage bool
}

// VersionRequest is the (empty) request for the Version RPC.
type VersionRequest struct{}

// KVClient is the client stub surface for the KV service's three RPCs.
type KVClient interface {
	Version(ctx context.Context, in *VersionRequest, opts ...grpc.CallOption) (*types.VersionReply, error)
	Tx(ctx context.Context, opts ...grpc.CallOption) (KV_TxClient, error)
	StateChanges(ctx context.Context, in *StateChangeRequest, opts ...grpc.CallOption) (KV_StateChangesClient, error)
}
