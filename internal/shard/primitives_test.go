package shard

import "testing"

func TestVarint(t *testing.T) {
	// 0xAC 0x02 decodes to 300: a two-byte varint with the continuation bit
	// set on the first byte.
	r := newReader([]byte{0xAC, 0x02})
	v, err := r.varint()
	if err != nil {
		t.Fatalf("varint: %v", err)
	}
	if v != 300 {
		t.Errorf("varint = %d, want 300", v)
	}
	if r.off != 2 {
		t.Errorf("offset = %d, want 2", r.off)
	}
}

func TestVarintTruncated(t *testing.T) {
	r := newReader([]byte{0xAC})
	if _, err := r.varint(); err == nil {
		t.Fatal("expected error for truncated varint")
	}
}

func TestInt24LE(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want int32
	}{
		{"min", []byte{0x00, 0x00, 0x80}, -8388608},
		{"zero", []byte{0x00, 0x00, 0x00}, 0},
		{"max", []byte{0xFF, 0xFF, 0x7F}, 8388607},
		{"minus-one", []byte{0xFF, 0xFF, 0xFF}, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newReader(tc.in)
			got, err := r.int24LE()
			if err != nil {
				t.Fatalf("int24LE: %v", err)
			}
			if got != tc.want {
				t.Errorf("int24LE = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLengthPrefixedUTF8(t *testing.T) {
	buf := []byte{5, 'h', 'e', 'l', 'l', 'o'}
	r := newReader(buf)
	s, err := r.lengthPrefixedUTF8()
	if err != nil {
		t.Fatalf("lengthPrefixedUTF8: %v", err)
	}
	if s != "hello" {
		t.Errorf("s = %q, want %q", s, "hello")
	}
}

func TestLengthPrefixedUTF8Invalid(t *testing.T) {
	buf := []byte{2, 0xFF, 0xFE}
	r := newReader(buf)
	if _, err := r.lengthPrefixedUTF8(); err == nil {
		t.Fatal("expected BadFormatError for invalid UTF-8")
	}
}

// TestPrefixTable exercises the prefix-compressed encoding: entries
// [(0,3,"abc"),(2,1,"d"),(3,0,"")] decode to ["abc","abd","abd"], each
// entry's prefix taken from the previous decoded entry.
func TestPrefixTable(t *testing.T) {
	var buf []byte
	appendEntry := func(prefixLen, suffixLen byte, suffix string) {
		buf = append(buf, prefixLen, suffixLen)
		buf = append(buf, []byte(suffix)...)
	}
	appendEntry(0, 3, "abc")
	appendEntry(2, 1, "d")
	appendEntry(3, 0, "")

	r := newReader(buf)
	got, err := r.prefixTable(3)
	if err != nil {
		t.Fatalf("prefixTable: %v", err)
	}
	want := []string{"abc", "abd", "abd"}
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}
