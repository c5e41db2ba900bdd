package jsonrpc

import (
	"testing"

	"github.com/erigontech/rpcgate/corestate"
	"github.com/erigontech/rpcgate/gointerfaces/types"
)

func TestFilterLogsMatchesAddressAndTopics(t *testing.T) {
	addr := types.Address{1}
	topic0 := types.Hash{0xaa}
	l := corestate.DerivedLog{}
	l.Address = addr
	l.Topics = []types.Hash{topic0, {0xbb}}

	if !filterLogs(l, []types.Address{addr}, [][]types.Hash{{topic0}}) {
		t.Fatalf("expected a match")
	}
	if filterLogs(l, []types.Address{{2}}, nil) {
		t.Fatalf("expected address mismatch to exclude the log")
	}
	if filterLogs(l, nil, [][]types.Hash{{{0xcc}}}) {
		t.Fatalf("expected topic mismatch to exclude the log")
	}
}

func TestFilterLogsEmptyFilterMatchesEverything(t *testing.T) {
	l := corestate.DerivedLog{}
	l.Address = types.Address{9}
	if !filterLogs(l, nil, nil) {
		t.Fatalf("expected an empty filter to match")
	}
}

func TestFilterLogsTopicsLongerThanLogTopicsExcludes(t *testing.T) {
	l := corestate.DerivedLog{}
	l.Topics = []types.Hash{{0x01}}
	if filterLogs(l, nil, [][]types.Hash{{{0x01}}, {{0x02}}}) {
		t.Fatalf("expected a filter naming more topic positions than the log has to exclude it")
	}
}
