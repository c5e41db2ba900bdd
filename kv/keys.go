package kv

import "encoding/binary"

// Composite-key builders for the PlainState family of tables (see SPEC_FULL.md
// §6 table schema). Kept alongside the Tx/Cursor shapes since both the
// remote-KV client and the cached-database facade build and parse these keys.

const (
	AddressLength     = 20
	IncarnationLength = 8
	LocationLength    = 32
)

// AccountKey is the PlainState key for an account entry: the bare address.
func AccountKey(address [20]byte) []byte {
	k := make([]byte, AddressLength)
	copy(k, address[:])
	return k
}

// StorageKey is the PlainState key for a storage slot:
// address ‖ incarnation ‖ location-hash.
func StorageKey(address [20]byte, incarnation uint64, location [32]byte) []byte {
	k := make([]byte, AddressLength+IncarnationLength+LocationLength)
	copy(k, address[:])
	binary.BigEndian.PutUint64(k[AddressLength:], incarnation)
	copy(k[AddressLength+IncarnationLength:], location[:])
	return k
}

// PlainContractCodeKey is the key into the PlainContractCode table:
// address ‖ incarnation.
func PlainContractCodeKey(address [20]byte, incarnation uint64) []byte {
	k := make([]byte, AddressLength+IncarnationLength)
	copy(k, address[:])
	binary.BigEndian.PutUint64(k[AddressLength:], incarnation)
	return k
}

// AccountHistoryKey is the key into AccountHistory: address ‖ target-block.
func AccountHistoryKey(address [20]byte, targetBlock uint64) []byte {
	k := make([]byte, AddressLength+8)
	copy(k, address[:])
	binary.BigEndian.PutUint64(k[AddressLength:], targetBlock)
	return k
}

// StorageHistoryKey is the key into StorageHistory: address ‖ location-hash ‖ target-block.
func StorageHistoryKey(address [20]byte, location [32]byte, targetBlock uint64) []byte {
	k := make([]byte, AddressLength+LocationLength+8)
	copy(k, address[:])
	copy(k[AddressLength:], location[:])
	binary.BigEndian.PutUint64(k[AddressLength+LocationLength:], targetBlock)
	return k
}

// AccountChangeSetKey is the key into PlainAccountChangeSet: change-block ‖ address.
func AccountChangeSetKey(changeBlock uint64, address [20]byte) []byte {
	k := make([]byte, 8+AddressLength)
	binary.BigEndian.PutUint64(k, changeBlock)
	copy(k[8:], address[:])
	return k
}

// StorageChangeSetKey is the key into PlainStorageChangeSet:
// change-block ‖ address ‖ incarnation ‖ location-hash.
func StorageChangeSetKey(changeBlock uint64, address [20]byte, incarnation uint64, location [32]byte) []byte {
	k := make([]byte, 8+AddressLength+IncarnationLength+LocationLength)
	binary.BigEndian.PutUint64(k, changeBlock)
	copy(k[8:], address[:])
	binary.BigEndian.PutUint64(k[8+AddressLength:], incarnation)
	copy(k[8+AddressLength+IncarnationLength:], location[:])
	return k
}
