package remoteclients

import (
	"context"
	"testing"

	"github.com/erigontech/rpcgate/gointerfaces/remote"
	"github.com/erigontech/rpcgate/gointerfaces/types"
)

func TestEngineNewPayloadV1MapsStatusToText(t *testing.T) {
	e := NewEngine(&fakeEthBackendClient{})
	status, err := e.NewPayloadV1(context.Background(), &remote.ExecutionPayload{})
	if err != nil {
		t.Fatalf("newPayload: %v", err)
	}
	if status.Status != StatusValid {
		t.Fatalf("expected VALID, got %s", status.Status)
	}
	if status.LatestValidHash != (types.Hash{0xAA}) {
		t.Fatalf("unexpected latest valid hash: %x", status.LatestValidHash)
	}
}

func TestStatusFromWireCoversAllSixValues(t *testing.T) {
	cases := map[remote.EngineStatusCode]Status{
		remote.EngineStatusSyncing:              StatusSyncing,
		remote.EngineStatusValid:                StatusValid,
		remote.EngineStatusInvalid:               StatusInvalid,
		remote.EngineStatusAccepted:              StatusAccepted,
		remote.EngineStatusInvalidBlockHash:      StatusInvalidBlockHash,
		remote.EngineStatusInvalidTerminalBlock:  StatusInvalidTerminalBlock,
	}
	for wire, want := range cases {
		if got := statusFromWire(wire); got != want {
			t.Fatalf("wire %d: expected %s, got %s", wire, want, got)
		}
	}
}

func TestForkChoiceUpdatedV1RoundTripsHeadHash(t *testing.T) {
	e := NewEngine(&fakeEthBackendClient{})
	head := types.Hash{0x11, 0x22}
	result, err := e.ForkChoiceUpdatedV1(context.Background(), ForkChoiceState{HeadBlockHash: head}, nil)
	if err != nil {
		t.Fatalf("forkchoiceUpdated: %v", err)
	}
	if result.PayloadStatus.LatestValidHash != head {
		t.Fatalf("expected head hash echoed back, got %x", result.PayloadStatus.LatestValidHash)
	}
	if result.PayloadStatus.Status != StatusSyncing {
		t.Fatalf("expected syncing status, got %s", result.PayloadStatus.Status)
	}
}

func TestGetPayloadV1PassesThroughPayloadID(t *testing.T) {
	e := NewEngine(&fakeEthBackendClient{})
	payload, err := e.GetPayloadV1(context.Background(), 42)
	if err != nil {
		t.Fatalf("getPayload: %v", err)
	}
	if payload.BlockNumber != 42 {
		t.Fatalf("expected echoed payload id 42, got %d", payload.BlockNumber)
	}
}
