package rpc

import (
	"testing"

	"github.com/goccy/go-json"

	"github.com/erigontech/rpcgate/kv"
)

type fakeTipGetter struct{ tip uint64 }

func (f fakeTipGetter) Get(table string, key []byte) ([]byte, []byte, error) { return nil, nil, nil }
func (f fakeTipGetter) GetOne(table string, key []byte) ([]byte, error) {
	if table != kv.SyncStageProgress {
		return nil, nil
	}
	return encodeBE8(f.tip), nil
}
func (f fakeTipGetter) GetBothRange(table string, key, subkey []byte) ([]byte, error) {
	return nil, nil
}
func (f fakeTipGetter) Walk(table string, fromPrefix []byte, fixedBits int, walker func(k, v []byte) (bool, error)) error {
	return nil
}
func (f fakeTipGetter) ForPrefix(table string, prefix []byte, walker func(k, v []byte) (bool, error)) error {
	return nil
}

var _ kv.Getter = fakeTipGetter{}

func encodeBE8(v uint64) []byte {
	b := make([]byte, 8)
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
	return b
}

func TestBlockNumberUnmarshalTags(t *testing.T) {
	cases := map[string]BlockNumber{
		`"earliest"`:        EarliestBlockNumber,
		`"latest"`:          LatestBlockNumber,
		`"pending"`:         PendingBlockNumber,
		`"safe"`:            SafeBlockNumber,
		`"finalized"`:       FinalizedBlockNumber,
		`"0xddff12121212"`:  BlockNumber(0xddff12121212),
		`"100"`:             BlockNumber(100),
		`"0"`:               EarliestBlockNumber,
	}
	for raw, want := range cases {
		var bn BlockNumber
		if err := bn.UnmarshalJSON([]byte(raw)); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if bn != want {
			t.Fatalf("%s: got %d want %d", raw, bn, want)
		}
	}
}

func TestBlockNumberUnmarshalDecimalIsNotHex(t *testing.T) {
	var bn BlockNumber
	if err := bn.UnmarshalJSON([]byte(`"100"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bn != 100 {
		t.Fatalf("decimal \"100\" must not be read as hex: got %d, want 100", bn)
	}
}

func TestBlockNumberResolveEarliestIsZero(t *testing.T) {
	n, err := EarliestBlockNumber.Resolve(fakeTipGetter{tip: 999})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected 0, got %d", n)
	}
}

func TestBlockNumberResolveLatestUsesExecutionStage(t *testing.T) {
	n, err := LatestBlockNumber.Resolve(fakeTipGetter{tip: 0xddff12121212})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0xddff12121212 {
		t.Fatalf("got %d", n)
	}
}

func TestBlockNumberResolveLiteralNumber(t *testing.T) {
	n, err := BlockNumber(42).Resolve(fakeTipGetter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Fatalf("got %d", n)
	}
}

func TestBlockNumberOrHashUnmarshalsBareTag(t *testing.T) {
	var b BlockNumberOrHash
	if err := json.Unmarshal([]byte(`"latest"`), &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.IsHash() {
		t.Fatalf("expected a number/tag identifier")
	}
	if b.Number() != LatestBlockNumber {
		t.Fatalf("expected latest")
	}
}

func TestBlockNumberOrHashUnmarshalsHashObject(t *testing.T) {
	var b BlockNumberOrHash
	raw := `{"blockHash":"0x` + hash64() + `","requireCanonicalHash":true}`
	if err := json.Unmarshal([]byte(raw), &b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.IsHash() {
		t.Fatalf("expected a hash identifier")
	}
	if !b.RequireCanonical() {
		t.Fatalf("expected requireCanonicalHash to round-trip true")
	}
}

func hash64() string {
	s := ""
	for i := 0; i < 64; i++ {
		s += "a"
	}
	return s
}
