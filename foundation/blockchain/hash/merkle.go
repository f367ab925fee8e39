package hash

// Hashable is implemented by anything a MerkleTree can summarize: block
// content (signed transactions) in practice, but kept generic the way the
// teacher's merkle package is generic over BlockTx.
type Hashable interface {
	Hash() Hash
}

// MerkleTree summarizes an ordered sequence of hashable items into a single
// root digest, pairing adjacent nodes left-to-right at each level and
// duplicating the last node when a level has an odd count.
type MerkleTree struct {
	root Hash
}

// NewMerkleTree builds the tree over items in their given order. An empty
// input yields the zero hash as the root.
func NewMerkleTree[T Hashable](items []T) MerkleTree {
	if len(items) == 0 {
		return MerkleTree{root: Zero}
	}

	// Leaves are the SHA-256 of each item's hash, not the raw item hash
	// itself: a single-item tree's root is SHA-256(item.hash()), not the
	// item hash unmodified.
	level := make([]Hash, len(items))
	for i, item := range items {
		level[i] = Sum256(item.Hash().Bytes())
	}

	for len(level) > 1 {
		if len(level)%2 != 0 {
			level = append(level, level[len(level)-1])
		}

		next := make([]Hash, 0, len(level)/2)
		for i := 0; i < len(level); i += 2 {
			next = append(next, pairHash(level[i], level[i+1]))
		}
		level = next
	}

	return MerkleTree{root: level[0]}
}

// Root returns the tree's root digest.
func (t MerkleTree) Root() Hash {
	return t.root
}

// pairHash hashes two sibling nodes by byte-exact concatenation, matching
// the header-hashing discipline: no length prefixes, no separators.
func pairHash(left, right Hash) Hash {
	buf := make([]byte, 0, Size*2)
	buf = append(buf, left.Bytes()...)
	buf = append(buf, right.Bytes()...)
	return Sum256(buf)
}
