package block

import (
	"encoding/json"

	"github.com/nodecore/powchain/foundation/blockchain/hash"
	"github.com/nodecore/powchain/foundation/blockchain/transaction"
)

// Content is an ordered sequence of signed transactions bundled into a
// block.
type Content struct {
	Trans []transaction.SignedTransaction `json:"trans"`
}

// NewContent builds a Content over trans in the given order.
func NewContent(trans []transaction.SignedTransaction) Content {
	return Content{Trans: trans}
}

// MerkleRoot is the Merkle root of the transaction hashes in their content
// order.
func (c Content) MerkleRoot() hash.Hash {
	items := make([]hashableTx, len(c.Trans))
	for i, t := range c.Trans {
		items[i] = hashableTx{t}
	}
	tree := hash.NewMerkleTree(items)
	return tree.Root()
}

// TransHashes returns the hash of every transaction in the content, in
// order.
func (c Content) TransHashes() []hash.Hash {
	hashes := make([]hash.Hash, len(c.Trans))
	for i, t := range c.Trans {
		hashes[i] = t.Hash()
	}
	return hashes
}

// hashableTx adapts transaction.SignedTransaction to hash.Hashable.
type hashableTx struct {
	t transaction.SignedTransaction
}

func (h hashableTx) Hash() hash.Hash { return h.t.Hash() }

// Block is a header plus its content; the block's identity is its header
// hash. Index is the distance from genesis and is assigned by the chain on
// insert, never by the miner.
type Block struct {
	Hash    hash.Hash `json:"hash"`
	Index   uint64    `json:"index"`
	Header  Header    `json:"header"`
	Content Content   `json:"content"`
}

// New builds a block whose Hash is header.Hash(). Index is left at zero;
// the owning chain assigns it on insert.
func New(header Header, content Content) Block {
	return Block{
		Hash:    header.Hash(),
		Header:  header,
		Content: content,
	}
}

// Genesis returns the chain's root block: index 0, the zero hash, an
// all-zero header except for difficulty, and empty content.
func Genesis(difficulty hash.Hash) Block {
	return Block{
		Hash:  hash.Zero,
		Index: 0,
		Header: Header{
			Parent:     hash.Zero,
			Nonce:      0,
			Difficulty: difficulty,
			Timestamp:  0,
			MerkleRoot: hash.Zero,
		},
		Content: Content{Trans: nil},
	}
}

// ValidateTrans reports whether every transaction in the block's content
// passes its own signature check; if any fails, the whole block fails.
func (b Block) ValidateTrans() bool {
	for _, t := range b.Content.Trans {
		if !t.SignCheck() {
			return false
		}
	}
	return true
}

// Equal reports structural equality over the full serialized
// representation: two blocks with the same header but different content
// are unequal, and vice versa.
func (b Block) Equal(other Block) bool {
	selfBytes, err := json.Marshal(b)
	if err != nil {
		return false
	}
	otherBytes, err := json.Marshal(other)
	if err != nil {
		return false
	}
	return string(selfBytes) == string(otherBytes)
}
