package corestate

import (
	"github.com/erigontech/rpcgate/common/crypto"
	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/rawdb"
)

// DerivedReceipt augments a raw rawdb.Receipt with the fields the JSON-RPC
// surface needs but the wire encoding doesn't carry: tx/block identity,
// per-transaction gas used, and (for contract creation) the deployed
// address. Grounded in spec.md §4.8.
type DerivedReceipt struct {
	rawdb.Receipt

	TxHash          types.Hash
	TxIndex         uint32
	BlockHash       types.Hash
	BlockNumber     uint64
	ContractAddress *types.Address
	GasUsed         uint64
}

// DerivedLog augments a rawdb.Log with its position in the block.
type DerivedLog struct {
	rawdb.Log

	BlockHash   types.Hash
	BlockNumber uint64
	TxHash      types.Hash
	TxIndex     uint32
	LogIndex    uint32
	Removed     bool
}

// DeriveReceipts assigns tx_hash/tx_index/block_hash/block_number/
// contract_address/gas_used to each raw receipt, and returns alongside it
// every log in the block with a sequential log_index. txRLPs and senders
// must align positionally with receipts.
func DeriveReceipts(receipts []rawdb.Receipt, txRLPs [][]byte, senders []types.Address, blockHash types.Hash, blockNumber uint64) ([]DerivedReceipt, []DerivedLog, error) {
	out := make([]DerivedReceipt, len(receipts))
	var logs []DerivedLog
	logIndex := uint32(0)
	var prevCumulative uint64
	for i, r := range receipts {
		txHash := types.Hash(crypto.Keccak256(txRLPs[i]))
		d := DerivedReceipt{
			Receipt:     r,
			TxHash:      txHash,
			TxIndex:     uint32(i),
			BlockHash:   blockHash,
			BlockNumber: blockNumber,
			GasUsed:     r.CumulativeGasUsed - prevCumulative,
		}
		prevCumulative = r.CumulativeGasUsed

		if isContractCreation(txRLPs[i]) {
			addr := ContractAddress(senders[i], txNonce(txRLPs[i]))
			d.ContractAddress = &addr
		}

		for _, l := range r.Logs {
			logs = append(logs, DerivedLog{
				Log:         l,
				BlockHash:   blockHash,
				BlockNumber: blockNumber,
				TxHash:      txHash,
				TxIndex:     uint32(i),
				LogIndex:    logIndex,
				Removed:     false,
			})
			logIndex++
		}
		out[i] = d
	}
	return out, logs, nil
}

// ContractAddress derives the CREATE-style deployed contract address:
// keccak256(rlp([sender, nonce]))[12:].
func ContractAddress(sender types.Address, nonce uint64) types.Address {
	encoded := encodeCreateAddressInput(sender, nonce)
	hash := crypto.Keccak256(encoded)
	var addr types.Address
	copy(addr[:], hash[12:])
	return addr
}

// encodeCreateAddressInput RLP-encodes the fixed two-element list
// [sender-address, nonce] used for CREATE address derivation, without
// pulling in a general-purpose RLP encoder for this one call site.
func encodeCreateAddressInput(sender types.Address, nonce uint64) []byte {
	addrItem := append([]byte{0x80 + byte(len(sender))}, sender[:]...)
	nonceItem := encodeRLPUint(nonce)
	body := append(addrItem, nonceItem...)
	if len(body) < 56 {
		return append([]byte{0xC0 + byte(len(body))}, body...)
	}
	lenBytes := encodeRLPLength(len(body))
	return append(append([]byte{0xF7 + byte(len(lenBytes))}, lenBytes...), body...)
}

func encodeRLPUint(v uint64) []byte {
	if v == 0 {
		return []byte{0x80}
	}
	b := encodeRLPLength(int(v))
	// encodeRLPLength produces the minimal big-endian bytes of v already
	// for values that fit in a machine int; reuse it for the integer body.
	if len(b) == 1 && b[0] < 0x80 {
		return b
	}
	return append([]byte{0x80 + byte(len(b))}, b...)
}

func encodeRLPLength(v int) []byte {
	if v == 0 {
		return []byte{0}
	}
	var b []byte
	for v > 0 {
		b = append([]byte{byte(v)}, b...)
		v >>= 8
	}
	return b
}

// isContractCreation reports whether a raw transaction's `to` field is
// empty.
func isContractCreation(rawTx []byte) bool {
	to, ok := decodeTxField(rawTx, fieldTo)
	return ok && len(to) == 0
}

func txNonce(rawTx []byte) uint64 {
	nonce, ok := decodeTxField(rawTx, fieldNonce)
	if !ok {
		return 0
	}
	var v uint64
	for _, b := range nonce {
		v = v<<8 | uint64(b)
	}
	return v
}

type txField int

const (
	fieldNonce txField = iota
	fieldTo
)

// legacy envelope: nonce, gasPrice, gasLimit, to, value, data, v, r, s.
// EIP-2930 envelopes prepend chainId ahead of nonce, shifting `to` one slot
// later; EIP-1559/4844 envelopes also replace gasPrice with a
// priority/fee-cap pair, shifting `to` two slots later.
var (
	fieldIndexLegacy     = map[txField]int{fieldNonce: 0, fieldTo: 3}
	fieldIndexAccessList = map[txField]int{fieldNonce: 1, fieldTo: 4}
	fieldIndexTyped      = map[txField]int{fieldNonce: 1, fieldTo: 5}
)

// decodeTxField decodes just enough of a transaction's RLP envelope to
// return the byte string at the given logical field, accounting for the
// one-byte EIP-2718 type tag and the resulting field-index shift.
func decodeTxField(rawTx []byte, field txField) ([]byte, bool) {
	if len(rawTx) == 0 {
		return nil, false
	}
	body := rawTx
	indices := fieldIndexLegacy
	if rawTx[0] <= 0x7f {
		body = rawTx[1:]
		indices = fieldIndexTyped
		if rawTx[0] == 0x01 {
			indices = fieldIndexAccessList
		}
	}
	items, err := rawdb.DecodeList(body)
	if err != nil {
		return nil, false
	}
	idx, ok := indices[field]
	if !ok || idx >= len(items) {
		return nil, false
	}
	return items[idx].Bytes, true
}
