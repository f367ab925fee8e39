package block

import (
	"testing"

	"github.com/nodecore/powchain/foundation/blockchain/hash"
)

func expectDifficulty(t *testing.T, n int, zeroBytes int, boundary byte) {
	t.Helper()

	got := DifficultyFromBits(n)

	for i := 0; i < zeroBytes; i++ {
		if got[i] != 0x00 {
			t.Fatalf("n=%d byte[%d] = %#x, want 0x00", n, i, got[i])
		}
	}
	if zeroBytes < hash.Size {
		if got[zeroBytes] != boundary {
			t.Fatalf("n=%d byte[%d] = %#x, want %#x", n, zeroBytes, got[zeroBytes], boundary)
		}
	}
	for i := zeroBytes + 1; i < hash.Size; i++ {
		if got[i] != 0xFF {
			t.Fatalf("n=%d byte[%d] = %#x, want 0xFF", n, i, got[i])
		}
	}
}

func TestDifficultyFromBits(t *testing.T) {
	cases := []struct {
		n         int
		zeroBytes int
		boundary  byte
	}{
		{n: 8, zeroBytes: 1, boundary: 0xFF},
		{n: 9, zeroBytes: 1, boundary: 0x7F},
		{n: 10, zeroBytes: 1, boundary: 0x3F},
		{n: 15, zeroBytes: 1, boundary: 0x01},
		{n: 21, zeroBytes: 2, boundary: 0x07},
	}

	for _, c := range cases {
		expectDifficulty(t, c.n, c.zeroBytes, c.boundary)
	}
}

func TestDifficultyFromBitsEdgeCases(t *testing.T) {
	easiest := DifficultyFromBits(0)
	for i, b := range easiest {
		if b != 0xFF {
			t.Fatalf("n=0 byte[%d] = %#x, want 0xFF (easiest: any hash satisfies)", i, b)
		}
	}

	impossible := DifficultyFromBits(256)
	if impossible != hash.Zero {
		t.Fatalf("n=256 = %s, want the all-zero hash (impossible)", impossible)
	}
}
