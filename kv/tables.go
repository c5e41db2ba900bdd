// Copyright 2021 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

package kv

// Table name constants for the remote-KV schema this gateway reads. Keys are
// documented here rather than scattered across accessor call sites, the way
// the teacher repo documents its bucket layout next to the name constant.
const (
	// Headers: blockNum(8B BE) ++ blockHash(32B) -> RLP header
	Headers = "Headers"
	// BlockBodies: blockNum ++ blockHash -> stored body (base tx id, tx count, ommers)
	BlockBodies = "BlockBodies"
	// BlockReceipts: blockNum(8B BE) -> CBOR array of raw receipts
	BlockReceipts = "BlockReceipts"
	// Logs: blockNum ++ txIndex(4B BE) -> CBOR array of logs
	Logs = "Logs"
	// HeaderNumbers: blockHash -> blockNum(8B BE)
	HeaderNumbers = "HeaderNumbers"
	// CanonicalHashes: blockNum(8B BE) -> canonical blockHash(32B)
	CanonicalHashes = "CanonicalHashes"
	// Difficulty: blockNum ++ blockHash -> RLP(uint256 total difficulty)
	Difficulty = "Difficulty"
	// Senders: blockNum ++ blockHash -> concatenated 20B sender addresses
	Senders = "Senders"
	// EthTx: txId(8B BE) -> RLP transaction
	EthTx = "EthTx"
	// Config: genesisHash -> JSON chain config
	Config = "Config"
	// SyncStageProgress: stageName -> blockNum(8B BE)
	SyncStageProgress = "SyncStage"
	// PlainState: address, or address++incarnation(8B BE)++locationHash(32B) -> encoded account/storage value
	PlainState = "PlainState"
	// PlainContractCode: address ++ incarnation(8B BE) -> codeHash(32B)
	PlainContractCode = "PlainCodeHash"
	// Code: codeHash(32B) -> contract bytecode
	Code = "Code"
	// AccountHistory: address ++ targetBlock(8B BE) -> roaring bitmap of change-blocks
	AccountHistory = "AccountHistory"
	// StorageHistory: address ++ locationHash(32B) ++ targetBlock(8B BE) -> roaring bitmap
	StorageHistory = "StorageHistory"
	// PlainAccountChangeSet: changeBlock(8B BE) ++ address -> prior account encoding
	PlainAccountChangeSet = "PlainAccountChangeSet"
	// PlainStorageChangeSet: changeBlock ++ address ++ incarnation ++ locationHash -> prior storage value
	PlainStorageChangeSet = "PlainStorageChangeSet"
	// LogTopicIndex: topic(32B) -> roaring bitmap of block numbers
	LogTopicIndex = "LogTopicIndex"
	// LogAddressIndex: address(20B) -> roaring bitmap of block numbers
	LogAddressIndex = "LogAddressIndex"
	// TxLookup: txHash(32B) -> blockNum(8B BE)
	TxLookup = "BlockTransactionLookup"
)

// SyncStage names understood by SyncStageProgress.
const (
	StageExecution = "Execution"
	StageFinish    = "Finish"
	StageHeaders   = "Headers"
)

// Dup-sort tables: PlainState stores storage as a DupSort sub-table keyed by
// (address++incarnation) with sub-key (locationHash++value).
var DupSortTables = map[string]bool{
	PlainState: true,
}

func IsDupSort(table string) bool { return DupSortTables[table] }
