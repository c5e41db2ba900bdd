package jsonrpc

import "testing"

func TestHexutilUint64(t *testing.T) {
	if got := hexutilUint64(0xddff12121212); got != "0xddff12121212" {
		t.Fatalf("got %q", got)
	}
	if got := hexutilUint64(0); got != "0x0" {
		t.Fatalf("got %q", got)
	}
}

func TestHexutilBytesEmpty(t *testing.T) {
	if got := hexutilBytes(nil); got != "0x" {
		t.Fatalf("got %q", got)
	}
}

func TestHexutilBigBytesTrimsLeadingZeros(t *testing.T) {
	if got := hexutilBigBytes([]byte{0x00, 0x01, 0x00}); got != "0x100" {
		t.Fatalf("got %q", got)
	}
	if got := hexutilBigBytes(nil); got != "0x0" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeHexStringRoundTrip(t *testing.T) {
	b, err := decodeHexString("0x00")
	if err != nil || len(b) != 1 || b[0] != 0 {
		t.Fatalf("unexpected decode: %v %v", b, err)
	}
	empty, err := decodeHexString("0x")
	if err != nil || len(empty) != 0 {
		t.Fatalf("unexpected decode of empty: %v %v", empty, err)
	}
}
