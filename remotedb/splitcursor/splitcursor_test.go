package splitcursor

import "testing"

// fakeCursor replays a fixed sequence of (k, v) pairs, ignoring the seek key.
type fakeCursor struct {
	entries [][2][]byte
	pos     int
}

func (f *fakeCursor) Seek(seek []byte) ([]byte, []byte, error) {
	if f.pos >= len(f.entries) {
		return nil, nil, nil
	}
	e := f.entries[f.pos]
	return e[0], e[1], nil
}

func (f *fakeCursor) SeekExact(key []byte) ([]byte, []byte, error) { return f.Seek(key) }

func (f *fakeCursor) Next() ([]byte, []byte, error) {
	f.pos++
	if f.pos >= len(f.entries) {
		return nil, nil, nil
	}
	e := f.entries[f.pos]
	return e[0], e[1], nil
}

func (f *fakeCursor) Close() {}

func key(addr byte, loc byte, block uint32) []byte {
	k := make([]byte, 20+32+4)
	k[0] = addr
	k[20] = loc
	k[len(k)-1] = byte(block)
	k[len(k)-2] = byte(block >> 8)
	return k
}

func TestSplitCursorStopsOnPrefixMismatch(t *testing.T) {
	raw := &fakeCursor{entries: [][2][]byte{
		{key(0xAA, 0x01, 0), []byte("v0")},
		{key(0xAA, 0x01, 1), []byte("v1")},
		{key(0xBB, 0x01, 0), []byte("v2")},
	}}
	c := New(raw, 20, 32, 4, key(0xAA, 0x01, 0), 20*8)

	tup, err := c.Seek()
	if err != nil {
		t.Fatalf("seek: %v", err)
	}
	if tup.Part1 == nil || tup.Part1[0] != 0xAA {
		t.Fatalf("unexpected first tuple: %+v", tup)
	}

	tup, err = c.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tup.Part1 == nil || tup.Part1[0] != 0xAA {
		t.Fatalf("expected second AA entry, got %+v", tup)
	}

	tup, err = c.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tup.Part1 != nil {
		t.Fatalf("expected stop tuple once prefix no longer matches, got %+v", tup)
	}
}

func TestSplitCursorEndOfRange(t *testing.T) {
	raw := &fakeCursor{entries: [][2][]byte{
		{key(0xAA, 0x01, 0), []byte("v0")},
	}}
	c := New(raw, 20, 32, 4, key(0xAA, 0x01, 0), 20*8)

	if _, err := c.Seek(); err != nil {
		t.Fatalf("seek: %v", err)
	}
	tup, err := c.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tup.Part1 != nil {
		t.Fatalf("expected empty tuple at end of range, got %+v", tup)
	}
}

func TestSplitCursorSubByteMask(t *testing.T) {
	// match_bits not a multiple of 8: only the high nibble of the 21st byte matters.
	a := key(0xAA, 0x01, 0)
	b := key(0xAA, 0x01, 0)
	b[20] = 0x0F // low nibble differs, high nibble (0x0) matches a's 0x01 high nibble

	raw := &fakeCursor{entries: [][2][]byte{
		{a, []byte("va")},
		{b, []byte("vb")},
	}}
	c := New(raw, 20, 32, 4, a, 20*8+4)

	if _, err := c.Seek(); err != nil {
		t.Fatalf("seek: %v", err)
	}
	tup, err := c.Next()
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if tup.Part1 == nil {
		t.Fatalf("expected high-nibble match to keep matching, got empty tuple")
	}
}
