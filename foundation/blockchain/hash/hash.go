// Package hash provides the 32-byte content-addressed digest used
// throughout the blockchain and a Merkle tree built on top of it.
package hash

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var errInvalidLength = errors.New("hash: text is not 32 bytes of hex")

// Size is the number of bytes in a Hash.
const Size = 32

// Hash is a 32-byte digest, ordered as a single big-endian unsigned integer.
// The all-zero value is a sentinel used only by the genesis block and as the
// Merkle root of empty content.
type Hash [Size]byte

// Zero is the all-zero sentinel hash.
var Zero = Hash{}

// FromBytes builds a Hash from a 32-byte slice. It panics if b is not
// exactly Size bytes long; callers own that invariant.
func FromBytes(b []byte) Hash {
	var h Hash
	if len(b) != Size {
		panic("hash: FromBytes: input is not 32 bytes")
	}
	copy(h[:], b)
	return h
}

// Sum256 returns the SHA-256 digest of data as a Hash.
func Sum256(data []byte) Hash {
	return Hash(sha256.Sum256(data))
}

// Bytes returns the hash as a byte slice.
func (h Hash) Bytes() []byte {
	return h[:]
}

// IsZero reports whether h is the all-zero sentinel.
func (h Hash) IsZero() bool {
	return h == Zero
}

// Less compares two hashes as big-endian unsigned 256-bit integers.
func (h Hash) Less(other Hash) bool {
	return bytes.Compare(h[:], other[:]) < 0
}

// String renders the hash as lowercase hex, matching the wire display used
// by every peer and the CLI.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText implements encoding.TextMarshaler so Hash round-trips cleanly
// through JSON as lowercase hex rather than a base64 byte array.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hash) UnmarshalText(text []byte) error {
	b, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}
	if len(b) != Size {
		return errInvalidLength
	}
	copy(h[:], b)
	return nil
}
