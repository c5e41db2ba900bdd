package corestate

import (
	"testing"

	"github.com/erigontech/rpcgate/common/crypto"
	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/rawdb"
)

// rlpString encodes a single RLP byte-string item.
func rlpString(b []byte) []byte {
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	if len(b) < 56 {
		return append([]byte{0x80 + byte(len(b))}, b...)
	}
	lb := encodeRLPLength(len(b))
	return append(append([]byte{0xB7 + byte(len(lb))}, lb...), b...)
}

// rlpList wraps the concatenated encodings of items in an RLP list header.
func rlpList(items ...[]byte) []byte {
	var body []byte
	for _, it := range items {
		body = append(body, it...)
	}
	if len(body) < 56 {
		return append([]byte{0xC0 + byte(len(body))}, body...)
	}
	lb := encodeRLPLength(len(body))
	return append(append([]byte{0xF7 + byte(len(lb))}, lb...), body...)
}

func u64Bytes(v uint64) []byte {
	if v == 0 {
		return nil
	}
	var b []byte
	for v > 0 {
		b = append([]byte{byte(v)}, b...)
		v >>= 8
	}
	return b
}

// legacyCreateTx builds a legacy-shaped [nonce, gasPrice, gasLimit, to="",
// value, data, v, r, s] transaction with an empty `to`, i.e. a contract
// creation.
func legacyCreateTx(nonce uint64) []byte {
	return rlpList(
		rlpString(u64Bytes(nonce)),
		rlpString(u64Bytes(1)),
		rlpString(u64Bytes(21000)),
		rlpString(nil),
		rlpString(u64Bytes(0)),
		rlpString([]byte{0x60, 0x60}),
		rlpString(u64Bytes(27)),
		rlpString(nil),
		rlpString(nil),
	)
}

// legacyCallTx builds a legacy-shaped transaction addressed to a real
// recipient (not a contract creation).
func legacyCallTx(nonce uint64, to [20]byte) []byte {
	return rlpList(
		rlpString(u64Bytes(nonce)),
		rlpString(u64Bytes(1)),
		rlpString(u64Bytes(21000)),
		rlpString(to[:]),
		rlpString(u64Bytes(0)),
		rlpString(nil),
		rlpString(u64Bytes(27)),
		rlpString(nil),
		rlpString(nil),
	)
}

// eip1559CreateTx builds an EIP-1559-shaped [chainId, nonce,
// maxPriorityFeePerGas, maxFeePerGas, gasLimit, to="", value, data,
// accessList] list, prefixed with the 0x02 type tag, with an empty `to`.
func eip1559CreateTx(nonce uint64) []byte {
	body := rlpList(
		rlpString(u64Bytes(1)),
		rlpString(u64Bytes(nonce)),
		rlpString(u64Bytes(1)),
		rlpString(u64Bytes(2)),
		rlpString(u64Bytes(21000)),
		rlpString(nil),
		rlpString(u64Bytes(0)),
		rlpString([]byte{0x60, 0x60}),
		rlpList(),
	)
	return append([]byte{0x02}, body...)
}

func TestContractAddressDerivation(t *testing.T) {
	var sender types.Address
	sender[0] = 0x11
	addr := ContractAddress(sender, 0)
	if addr == (types.Address{}) {
		t.Fatalf("expected non-zero derived address")
	}
	// deterministic: same inputs produce the same address.
	addr2 := ContractAddress(sender, 0)
	if addr != addr2 {
		t.Fatalf("expected deterministic derivation")
	}
	// different nonce produces a different address.
	addr3 := ContractAddress(sender, 1)
	if addr == addr3 {
		t.Fatalf("expected nonce to change the derived address")
	}
}

func TestDeriveReceiptsLegacyContractCreation(t *testing.T) {
	var sender types.Address
	sender[0] = 0x22
	var blockHash types.Hash
	blockHash[0] = 0x33

	tx := legacyCreateTx(5)
	receipts := []rawdb.Receipt{
		{CumulativeGasUsed: 21000},
	}

	out, logs, err := DeriveReceipts(receipts, [][]byte{tx}, []types.Address{sender}, blockHash, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 receipt, got %d", len(out))
	}
	if len(logs) != 0 {
		t.Fatalf("expected 0 logs, got %d", len(logs))
	}
	r := out[0]
	if r.TxHash != types.Hash(crypto.Keccak256(tx)) {
		t.Fatalf("tx hash mismatch")
	}
	if r.GasUsed != 21000 {
		t.Fatalf("expected gas used 21000, got %d", r.GasUsed)
	}
	if r.ContractAddress == nil {
		t.Fatalf("expected contract address to be derived for a create tx")
	}
	want := ContractAddress(sender, 5)
	if *r.ContractAddress != want {
		t.Fatalf("contract address mismatch: got %x want %x", *r.ContractAddress, want)
	}
}

func TestDeriveReceiptsLegacyCallIsNotContractCreation(t *testing.T) {
	var sender types.Address
	sender[0] = 0x44
	var to [20]byte
	to[0] = 0x55
	var blockHash types.Hash

	tx := legacyCallTx(1, to)
	receipts := []rawdb.Receipt{{CumulativeGasUsed: 21000}}

	out, _, err := DeriveReceipts(receipts, [][]byte{tx}, []types.Address{sender}, blockHash, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].ContractAddress != nil {
		t.Fatalf("expected no contract address for a call to an existing recipient")
	}
}

func TestDeriveReceiptsTypedContractCreation(t *testing.T) {
	var sender types.Address
	sender[0] = 0x66
	var blockHash types.Hash

	tx := eip1559CreateTx(9)
	receipts := []rawdb.Receipt{{CumulativeGasUsed: 21000}}

	out, _, err := DeriveReceipts(receipts, [][]byte{tx}, []types.Address{sender}, blockHash, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].ContractAddress == nil {
		t.Fatalf("expected contract address to be derived for an EIP-1559 create tx")
	}
	want := ContractAddress(sender, 9)
	if *out[0].ContractAddress != want {
		t.Fatalf("contract address mismatch for typed tx: got %x want %x", *out[0].ContractAddress, want)
	}
}

func TestDeriveReceiptsGasUsedIsDiffOfCumulative(t *testing.T) {
	var sender types.Address
	var blockHash types.Hash
	to := [20]byte{0x01}

	tx0 := legacyCallTx(0, to)
	tx1 := legacyCallTx(1, to)
	receipts := []rawdb.Receipt{
		{CumulativeGasUsed: 21000},
		{CumulativeGasUsed: 50000},
	}

	out, _, err := DeriveReceipts(receipts, [][]byte{tx0, tx1}, []types.Address{sender, sender}, blockHash, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out[0].GasUsed != 21000 {
		t.Fatalf("expected first receipt gas used 21000, got %d", out[0].GasUsed)
	}
	if out[1].GasUsed != 29000 {
		t.Fatalf("expected second receipt gas used 29000, got %d", out[1].GasUsed)
	}
}

func TestDeriveReceiptsLogIndexIsSequentialAcrossBlock(t *testing.T) {
	var sender types.Address
	var blockHash types.Hash
	to := [20]byte{0x01}

	tx0 := legacyCallTx(0, to)
	tx1 := legacyCallTx(1, to)
	receipts := []rawdb.Receipt{
		{CumulativeGasUsed: 21000, Logs: []rawdb.Log{{}, {}}},
		{CumulativeGasUsed: 42000, Logs: []rawdb.Log{{}}},
	}

	_, logs, err := DeriveReceipts(receipts, [][]byte{tx0, tx1}, []types.Address{sender, sender}, blockHash, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	for i, l := range logs {
		if l.LogIndex != uint32(i) {
			t.Fatalf("expected sequential log index %d, got %d", i, l.LogIndex)
		}
		if l.Removed {
			t.Fatalf("expected Removed=false")
		}
		if l.BlockNumber != 7 {
			t.Fatalf("expected block number 7, got %d", l.BlockNumber)
		}
	}
	if logs[0].TxIndex != 0 || logs[2].TxIndex != 1 {
		t.Fatalf("expected logs to carry their owning tx index")
	}
}
