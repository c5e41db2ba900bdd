package rawdb

import (
	"fmt"

	"github.com/erigontech/rpcgate/gointerfaces/types"
	"github.com/erigontech/rpcgate/kv"
	"github.com/ugorji/go/codec"
)

var cborHandle codec.CborHandle

// cborReceipt/cborLog mirror Receipt/Log with exported fields the codec can
// see without depending on the fixed-width gointerfaces.types wire layout.
type cborReceipt struct {
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Logs              []cborLog
}

type cborLog struct {
	Address [20]byte
	Topics  [][32]byte
	Data    []byte
}

// ReadReceipts reads and CBOR-decodes the receipt array stored for number.
func ReadReceipts(tx kv.Tx, number uint64) ([]Receipt, error) {
	v, err := tx.GetOne(kv.BlockReceipts, numberKey(number))
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, ErrNotFound{What: fmt.Sprintf("receipts at %d", number)}
	}
	var raw []cborReceipt
	if err := codec.NewDecoderBytes(v, &cborHandle).Decode(&raw); err != nil {
		return nil, fmt.Errorf("rawdb: receipts decode failed: %w", err)
	}
	out := make([]Receipt, len(raw))
	for i, r := range raw {
		out[i] = Receipt{
			PostStateOrStatus: r.PostStateOrStatus,
			CumulativeGasUsed: r.CumulativeGasUsed,
			Logs:              convertLogs(r.Logs),
		}
	}
	return out, nil
}

func txIndexKey(number uint64, txIndex uint32) []byte {
	k := numberKey(number)
	k = append(k, 0, 0, 0, 0)
	k[8] = byte(txIndex >> 24)
	k[9] = byte(txIndex >> 16)
	k[10] = byte(txIndex >> 8)
	k[11] = byte(txIndex)
	return k
}

// ReadLogs reads and CBOR-decodes the log array for one transaction.
func ReadLogs(tx kv.Tx, number uint64, txIndex uint32) ([]Log, error) {
	v, err := tx.GetOne(kv.Logs, txIndexKey(number, txIndex))
	if err != nil {
		return nil, err
	}
	if len(v) == 0 {
		return nil, nil // a transaction with no logs is not an error
	}
	var raw []cborLog
	if err := codec.NewDecoderBytes(v, &cborHandle).Decode(&raw); err != nil {
		return nil, fmt.Errorf("rawdb: logs decode failed: %w", err)
	}
	return convertLogs(raw), nil
}

func convertLogs(raw []cborLog) []Log {
	out := make([]Log, len(raw))
	for i, l := range raw {
		topics := make([]types.Hash, len(l.Topics))
		for j, t := range l.Topics {
			topics[j] = types.Hash(t)
		}
		out[i] = Log{Address: types.Address(l.Address), Topics: topics, Data: l.Data}
	}
	return out
}
