package rpc

import (
	"errors"
	"testing"
)

func TestErrorConstructorsSetCodes(t *testing.T) {
	cases := []struct {
		err      *Error
		wantCode int
	}{
		{NewInvalidParamsError("bad"), CodeHandlerException},
		{NewNotFoundError("gone"), CodeDomainError},
		{NewDecodeError("rlp", errors.New("truncated")), CodeHandlerException},
		{NewTransportError(errors.New("peer down")), CodeHandlerException},
		{NewNotImplementedError(), CodeNotImplemented},
	}
	for _, c := range cases {
		if c.err.Code != c.wantCode {
			t.Fatalf("expected code %d, got %d (%s)", c.wantCode, c.err.Code, c.err.Message)
		}
	}
}

func TestAsErrorPassesThroughExistingError(t *testing.T) {
	orig := NewNotFoundError("missing")
	if got := asError(orig); got != orig {
		t.Fatalf("expected the same *Error instance to pass through")
	}
}

func TestAsErrorWrapsPlainError(t *testing.T) {
	got := asError(errors.New("plain"))
	if got.Code != CodeHandlerException || got.Message != "plain" {
		t.Fatalf("unexpected wrap: %+v", got)
	}
}

func TestAsErrorNilIsNil(t *testing.T) {
	if asError(nil) != nil {
		t.Fatalf("expected nil")
	}
}
