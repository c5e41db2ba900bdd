package rawdb

import "github.com/erigontech/rpcgate/gointerfaces/types"

// Header is the decoded RLP block header. Field order matches the wire RLP
// sequence (see decodeHeaderItems in header.go): the pre-Cancun 15 fields plus
// the EIP-1559/4895/4844/4788 extensions, all optional and applied in
// order as present.
type Header struct {
	ParentHash      types.Hash
	UncleHash       types.Hash
	Coinbase        types.Address
	Root            types.Hash
	TxHash          types.Hash
	ReceiptHash     types.Hash
	Bloom           types.Bloom
	Difficulty      []byte // big-endian, variable width
	Number          uint64
	GasLimit        uint64
	GasUsed         uint64
	Time            uint64
	Extra           []byte
	MixDigest       types.Hash
	Nonce           uint64
	BaseFee          []byte // nil if absent (pre-London)
	WithdrawalsHash  *types.Hash
	BlobGasUsed      *uint64
	ExcessBlobGas    *uint64
	ParentBeaconRoot *types.Hash
}

// Body is the stored block body: a base tx id into EthTx, the tx count, and
// uncle headers. Transactions are fetched from EthTx by base+offset rather
// than embedded, matching Erigon's storage layout.
type Body struct {
	BaseTxID uint64
	TxAmount uint32
	Uncles   []Header
}

// Receipt is one decoded transaction receipt as stored (pre-derivation):
// the derived fields (TxHash, TxIndex, BlockHash, ...) are filled in by
// corestate, not stored on the wire.
type Receipt struct {
	PostStateOrStatus []byte
	CumulativeGasUsed uint64
	Logs              []Log
}

// Log is one decoded event log as stored (pre-derivation).
type Log struct {
	Address types.Address
	Topics  []types.Hash
	Data    []byte
}
