package remote

import (
	"context"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"google.golang.org/grpc"
)

// EngineStatusCode is the wire-level status enum from the execution node's
// Engine-API responses. Only remoteclients/engine.go is allowed to see it;
// everyone else consumes the textual remoteclients.Status sum type.
type EngineStatusCode int32

const (
	EngineStatusSyncing EngineStatusCode = iota
	EngineStatusValid
	EngineStatusInvalid
	EngineStatusAccepted
	EngineStatusInvalidBlockHash
	EngineStatusInvalidTerminalBlock
)

type EtherbaseRequest struct{}
type EtherbaseReply struct{ Address *types.H160 }

type NetVersionRequest struct{}
type NetVersionReply struct{ ID uint64 }

type NetPeerCountRequest struct{}
type NetPeerCountReply struct{ Count uint64 }

type ProtocolVersionRequest struct{}
type ProtocolVersionReply struct{ ID uint64 }

type ClientVersionRequest struct{}
type ClientVersionReply struct{ NodeName string }

// ExecutionPayload is the wire shape of an Engine-API payload, independent
// of version (V1/V2/V3 handlers populate/consume the fields they need).
type ExecutionPayload struct {
	ParentHash    *types.H256
	FeeRecipient  *types.H160
	StateRoot     *types.H256
	ReceiptsRoot  *types.H256
	LogsBloom     *types.H2048
	PrevRandao    *types.H256
	BlockNumber   uint64
	GasLimit      uint64
	GasUsed       uint64
	Timestamp     uint64
	ExtraData     []byte
	BaseFeePerGas *types.H256
	BlockHash     *types.H256
	Transactions  [][]byte
	Withdrawals   []*Withdrawal
}

type Withdrawal struct {
	Index          uint64
	ValidatorIndex uint64
	Address        *types.H160
	Amount         uint64
}

type EngineGetPayloadRequest struct{ PayloadID uint64 }

type EnginePayloadStatus struct {
	Status          EngineStatusCode
	LatestValidHash *types.H256
	ValidationError string
}

type EngineNewPayloadRequest struct{ Payload *ExecutionPayload }

type EngineForkChoiceState struct {
	HeadBlockHash      *types.H256
	SafeBlockHash      *types.H256
	FinalizedBlockHash *types.H256
}

type EnginePayloadAttributes struct {
	Timestamp             uint64
	PrevRandao            *types.H256
	SuggestedFeeRecipient *types.H160
	Withdrawals           []*Withdrawal
}

type EngineForkChoiceUpdatedRequest struct {
	ForkchoiceState *EngineForkChoiceState
	PayloadAttributes *EnginePayloadAttributes
}

type EngineForkChoiceUpdatedReply struct {
	PayloadStatus *EnginePayloadStatus
	PayloadID     *uint64
}

// ETHBACKENDClient is the client stub surface for the execution-backend
// service's unary RPCs plus the engine-API subset this gateway proxies.
type ETHBACKENDClient interface {
	Etherbase(ctx context.Context, in *EtherbaseRequest, opts ...grpc.CallOption) (*EtherbaseReply, error)
	NetVersion(ctx context.Context, in *NetVersionRequest, opts ...grpc.CallOption) (*NetVersionReply, error)
	NetPeerCount(ctx context.Context, in *NetPeerCountRequest, opts ...grpc.CallOption) (*NetPeerCountReply, error)
	ProtocolVersion(ctx context.Context, in *ProtocolVersionRequest, opts ...grpc.CallOption) (*ProtocolVersionReply, error)
	ClientVersion(ctx context.Context, in *ClientVersionRequest, opts ...grpc.CallOption) (*ClientVersionReply, error)
	EngineGetPayloadV1(ctx context.Context, in *EngineGetPayloadRequest, opts ...grpc.CallOption) (*ExecutionPayload, error)
	EngineNewPayloadV1(ctx context.Context, in *EngineNewPayloadRequest, opts ...grpc.CallOption) (*EnginePayloadStatus, error)
	EngineForkChoiceUpdatedV1(ctx context.Context, in *EngineForkChoiceUpdatedRequest, opts ...grpc.CallOption) (*EngineForkChoiceUpdatedReply, error)
}
