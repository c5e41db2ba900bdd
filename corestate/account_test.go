package corestate

import "testing"

func encodeField(fieldSet *byte, bit byte, buf []byte, v []byte) []byte {
	*fieldSet |= bit
	buf = append(buf, byte(len(v)))
	buf = append(buf, v...)
	return buf
}

func TestDecodeAccountEmptyIsZeroValue(t *testing.T) {
	a, err := DecodeAccount(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Nonce != 0 || a.Incarnation != 0 || len(a.Balance) != 0 {
		t.Fatalf("expected zero-value account, got %+v", a)
	}
}

func TestDecodeAccountAllFieldsRoundTrip(t *testing.T) {
	var fieldSet byte
	var body []byte
	body = encodeField(&fieldSet, 1, body, []byte{0x2a})
	body = encodeField(&fieldSet, 2, body, []byte{0x01, 0x00})
	body = encodeField(&fieldSet, 4, body, []byte{0x03})
	codeHash := make([]byte, 32)
	codeHash[31] = 0xff
	body = encodeField(&fieldSet, 8, body, codeHash)

	enc := append([]byte{fieldSet}, body...)
	a, err := DecodeAccount(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Nonce != 0x2a {
		t.Fatalf("nonce = %d, want 42", a.Nonce)
	}
	if a.Incarnation != 3 {
		t.Fatalf("incarnation = %d, want 3", a.Incarnation)
	}
	if len(a.Balance) != 2 || a.Balance[0] != 0x01 || a.Balance[1] != 0x00 {
		t.Fatalf("unexpected balance: %x", a.Balance)
	}
	if a.CodeHash[31] != 0xff {
		t.Fatalf("unexpected code hash: %x", a.CodeHash)
	}
}

func TestDecodeAccountNonceOnly(t *testing.T) {
	enc := []byte{1, 1, 0x07}
	a, err := DecodeAccount(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Nonce != 7 || a.Incarnation != 0 || len(a.Balance) != 0 {
		t.Fatalf("unexpected account: %+v", a)
	}
}

func TestDecodeAccountIncarnationWithoutCodeHash(t *testing.T) {
	// fieldSet bits 1|4: nonce and incarnation present, codeHash absent —
	// the shape a self-destructed-and-recreated contract's account row can
	// take; callers must recover the code hash via PlainContractCode
	// instead of trusting a zero Account.CodeHash.
	enc := []byte{1 | 4, 1, 0x01, 1, 0x02}
	a, err := DecodeAccount(enc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Incarnation != 2 {
		t.Fatalf("incarnation = %d, want 2", a.Incarnation)
	}
	if a.CodeHash != ([32]byte{}) {
		t.Fatalf("expected zero code hash, got %x", a.CodeHash)
	}
}

func TestDecodeAccountTruncatedIsError(t *testing.T) {
	if _, err := DecodeAccount([]byte{1, 4, 0x01}); err == nil {
		t.Fatalf("expected an error for a truncated field value")
	}
}
