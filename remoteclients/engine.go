package remoteclients

import (
	"context"
	"fmt"

	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/gointerfaces/types"
)

// Status is the textual Engine-API status this gateway hands to JSON-RPC
// callers. remoteclients is the only package that sees remote.EngineStatusCode;
// everything downstream sees Status (spec.md §9: "never expose the wire
// numeric values beyond the client layer").
type Status string

const (
	StatusValid                Status = "VALID"
	StatusInvalid              Status = "INVALID"
	StatusSyncing              Status = "SYNCING"
	StatusAccepted             Status = "ACCEPTED"
	StatusInvalidBlockHash     Status = "INVALID_BLOCK_HASH"
	StatusInvalidTerminalBlock Status = "INVALID_TERMINAL_BLOCK"
)

func statusFromWire(code remote.EngineStatusCode) Status {
	switch code {
	case remote.EngineStatusValid:
		return StatusValid
	case remote.EngineStatusInvalid:
		return StatusInvalid
	case remote.EngineStatusSyncing:
		return StatusSyncing
	case remote.EngineStatusAccepted:
		return StatusAccepted
	case remote.EngineStatusInvalidBlockHash:
		return StatusInvalidBlockHash
	case remote.EngineStatusInvalidTerminalBlock:
		return StatusInvalidTerminalBlock
	default:
		return StatusSyncing
	}
}

// PayloadStatus is the Go-native shape of an Engine-API payload-status
// response (used by both newPayload and forkchoiceUpdated).
type PayloadStatus struct {
	Status          Status
	LatestValidHash types.Hash
	ValidationError string
}

// ForkChoiceState mirrors the three canonical hashes a consensus client
// reports in engine_forkchoiceUpdated.
type ForkChoiceState struct {
	HeadBlockHash      types.Hash
	SafeBlockHash      types.Hash
	FinalizedBlockHash types.Hash
}

// PayloadAttributes accompanies a forkchoice update when the execution
// layer should begin building a new payload.
type PayloadAttributes struct {
	Timestamp             uint64
	PrevRandao            types.Hash
	SuggestedFeeRecipient types.Address
}

// ForkChoiceUpdatedResult is the Go-native return shape of
// engine_forkchoiceUpdatedV1: a payload status plus an optional payload id
// when attributes were supplied.
type ForkChoiceUpdatedResult struct {
	PayloadStatus PayloadStatus
	PayloadID     *uint64
}

// Engine is the Go-native surface this gateway calls for Engine-API
// methods, translating ExecutionPayload wire structs to and from the form
// JSON-RPC handlers work with.
type Engine struct {
	client remote.ETHBACKENDClient
}

func NewEngine(client remote.ETHBACKENDClient) *Engine {
	return &Engine{client: client}
}

func (e *Engine) GetPayloadV1(ctx context.Context, payloadID uint64) (*remote.ExecutionPayload, error) {
	payload, err := e.client.EngineGetPayloadV1(ctx, &remote.EngineGetPayloadRequest{PayloadID: payloadID})
	if err != nil {
		return nil, fmt.Errorf("engine_getPayloadV1: %w", err)
	}
	return payload, nil
}

func (e *Engine) NewPayloadV1(ctx context.Context, payload *remote.ExecutionPayload) (PayloadStatus, error) {
	reply, err := e.client.EngineNewPayloadV1(ctx, &remote.EngineNewPayloadRequest{Payload: payload})
	if err != nil {
		return PayloadStatus{}, fmt.Errorf("engine_newPayloadV1: %w", err)
	}
	return PayloadStatus{
		Status:          statusFromWire(reply.Status),
		LatestValidHash: types.ConvertH256ToHash(reply.LatestValidHash),
		ValidationError: reply.ValidationError,
	}, nil
}

func (e *Engine) ForkChoiceUpdatedV1(ctx context.Context, state ForkChoiceState, attrs *PayloadAttributes) (ForkChoiceUpdatedResult, error) {
	req := &remote.EngineForkChoiceUpdatedRequest{
		ForkchoiceState: &remote.EngineForkChoiceState{
			HeadBlockHash:      types.ConvertHashToH256(state.HeadBlockHash),
			SafeBlockHash:      types.ConvertHashToH256(state.SafeBlockHash),
			FinalizedBlockHash: types.ConvertHashToH256(state.FinalizedBlockHash),
		},
	}
	if attrs != nil {
		req.PayloadAttributes = &remote.EnginePayloadAttributes{
			Timestamp:             attrs.Timestamp,
			PrevRandao:            types.ConvertHashToH256(attrs.PrevRandao),
			SuggestedFeeRecipient: types.ConvertAddressToH160(attrs.SuggestedFeeRecipient),
		}
	}
	reply, err := e.client.EngineForkChoiceUpdatedV1(ctx, req)
	if err != nil {
		return ForkChoiceUpdatedResult{}, fmt.Errorf("engine_forkchoiceUpdatedV1: %w", err)
	}
	return ForkChoiceUpdatedResult{
		PayloadStatus: PayloadStatus{
			Status:          statusFromWire(reply.PayloadStatus.Status),
			LatestValidHash: types.ConvertH256ToHash(reply.PayloadStatus.LatestValidHash),
			ValidationError: reply.PayloadStatus.ValidationError,
		},
		PayloadID: reply.PayloadID,
	}, nil
}
