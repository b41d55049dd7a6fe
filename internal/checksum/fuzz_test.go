package checksum

import (
	"hash/crc32"
	"testing"
)

// FuzzChecksum compares the bitwise engine against the standard library.
func FuzzChecksum(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("a"))
	f.Add([]byte("123456789"))
	f.Add(make([]byte, 2048))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1024*1024 {
			t.Skip()
		}

		got := Checksum(data)
		if want := crc32.ChecksumIEEE(data); got != want {
			t.Fatalf("Checksum = %s, want %s", Format(got), Format(want))
		}
		if table := EngineTable.Sum(data); table != got {
			t.Fatalf("EngineTable.Sum = %s, want %s", Format(table), Format(got))
		}
	})
}
