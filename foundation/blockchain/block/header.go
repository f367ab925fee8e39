// Package block implements the header/content/block data model: the
// content-addressed identity of a block and its 108-byte header pre-image.
package block

import (
	"encoding/binary"

	"github.com/nodecore/powchain/foundation/blockchain/hash"
)

// Header carries everything that is hashed to produce a block's identity.
// The byte layout fed to SHA-256 is a wire contract: parent | nonce (4 BE
// bytes) | difficulty | timestamp (8 BE bytes) | merkle_root, with no length
// prefixes or separators. Changing this layout breaks cross-node agreement.
type Header struct {
	Parent     hash.Hash `json:"parent"`
	Nonce      uint32    `json:"nonce"`
	Difficulty hash.Hash `json:"difficulty"`
	Timestamp  uint64    `json:"timestamp"` // milliseconds since Unix epoch
	MerkleRoot hash.Hash `json:"merkle_root"`
}

// preimageSize is 32 (parent) + 4 (nonce) + 32 (difficulty) + 8 (timestamp)
// + 32 (merkle root) = 108 bytes.
const preimageSize = hash.Size + 4 + hash.Size + 8 + hash.Size

// Hash returns SHA-256 of the header's 108-byte pre-image in the exact field
// order parent|nonce|difficulty|timestamp|merkle_root.
func (h Header) Hash() hash.Hash {
	buf := make([]byte, 0, preimageSize)
	buf = append(buf, h.Parent.Bytes()...)

	var nonceBE [4]byte
	binary.BigEndian.PutUint32(nonceBE[:], h.Nonce)
	buf = append(buf, nonceBE[:]...)

	buf = append(buf, h.Difficulty.Bytes()...)

	var tsBE [8]byte
	binary.BigEndian.PutUint64(tsBE[:], h.Timestamp)
	buf = append(buf, tsBE[:]...)

	buf = append(buf, h.MerkleRoot.Bytes()...)

	return hash.Sum256(buf)
}

// IncrementNonce advances the nonce by one, wrapping at 2^32 the way an
// unsigned 32-bit add naturally does.
func (h *Header) IncrementNonce() {
	h.Nonce++
}
