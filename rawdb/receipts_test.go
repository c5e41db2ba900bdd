package rawdb

import (
	"testing"

	"github.com/erigontech/rpcgate/kv"
	"github.com/ugorji/go/codec"
)

func TestReadReceiptsRoundTrip(t *testing.T) {
	tx := newFakeTx()
	raw := []cborReceipt{{
		PostStateOrStatus: []byte{0x01},
		CumulativeGasUsed: 21000,
		Logs: []cborLog{{
			Address: [20]byte{0xAA},
			Topics:  [][32]byte{{0xBB}},
			Data:    []byte("hello"),
		}},
	}}
	var buf []byte
	if err := codec.NewEncoderBytes(&buf, &cborHandle).Encode(raw); err != nil {
		t.Fatalf("encode: %v", err)
	}
	tx.set(kv.BlockReceipts, numberKey(7), buf)

	got, err := ReadReceipts(tx, 7)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got) != 1 || got[0].CumulativeGasUsed != 21000 {
		t.Fatalf("unexpected receipts: %+v", got)
	}
	if len(got[0].Logs) != 1 || string(got[0].Logs[0].Data) != "hello" {
		t.Fatalf("unexpected logs: %+v", got[0].Logs)
	}
}

func TestReadReceiptsNotFound(t *testing.T) {
	tx := newFakeTx()
	if _, err := ReadReceipts(tx, 1); err == nil {
		t.Fatalf("expected not-found error")
	}
}

func TestReadLogsEmptyIsNotError(t *testing.T) {
	tx := newFakeTx()
	logs, err := ReadLogs(tx, 1, 0)
	if err != nil {
		t.Fatalf("expected no error for missing logs, got %v", err)
	}
	if logs != nil {
		t.Fatalf("expected nil logs, got %+v", logs)
	}
}
