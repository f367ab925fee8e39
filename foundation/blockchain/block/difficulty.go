package block

import "github.com/nodecore/powchain/foundation/blockchain/hash"

// DifficultyFromBits builds a 32-byte big-endian target representing
// 2^(256-n) - 1, for a bit-width n in [0, 256]: the first n/8 bytes are
// zero, the next is 0xFF >> (n mod 8), and the rest are 0xFF. n=0
// yields all 0xFF (easiest: any hash satisfies it); n=256 yields all 0x00
// (impossible: no hash is strictly less than zero).
func DifficultyFromBits(n int) hash.Hash {
	var out hash.Hash
	if n < 0 {
		n = 0
	}
	if n > 256 {
		n = 256
	}

	zeroBytes := n / 8
	rem := n % 8

	for i := 0; i < zeroBytes && i < hash.Size; i++ {
		out[i] = 0x00
	}

	for i := zeroBytes + 1; i < hash.Size; i++ {
		out[i] = 0xFF
	}

	if zeroBytes < hash.Size {
		out[zeroBytes] = byte(0xFF >> uint(rem))
	}

	return out
}
