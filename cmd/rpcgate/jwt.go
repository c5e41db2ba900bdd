package main

import (
	"encoding/hex"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// readJWTSecret reads a 32-byte hex secret from path, the same format the
// teacher's engine-API JWT auth consumes (optional "0x" prefix, trailing
// newline tolerated).
func readJWTSecret(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := strings.TrimSpace(string(raw))
	s = strings.TrimPrefix(s, "0x")
	secret, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "decoding jwt secret hex")
	}
	if len(secret) != 32 {
		return nil, errors.Errorf("jwt secret must be 32 bytes, got %d", len(secret))
	}
	return secret, nil
}
