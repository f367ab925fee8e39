// Package chain implements the content-addressed blockchain: storage of
// blocks by hash, tip selection, and the two insertion paths the miner and
// network workers use.
package chain

import (
	"sync"

	"github.com/nodecore/powchain/foundation/blockchain/block"
	"github.com/nodecore/powchain/foundation/blockchain/hash"
)

// Blockchain is a content-addressed store of blocks with a notion of tip,
// length, and a chain-wide difficulty target. Every non-genesis block's
// parent must resolve to a known block; the tip is the known block of
// greatest length from genesis, ties broken by first-seen.
type Blockchain struct {
	mu sync.Mutex

	blocks     map[hash.Hash]block.Block
	tip        hash.Hash
	difficulty hash.Hash
	checkTrans bool
}

// New constructs a chain seeded with a genesis block at the given
// difficulty.
func New(difficulty hash.Hash) *Blockchain {
	genesis := block.Genesis(difficulty)

	return &Blockchain{
		blocks:     map[hash.Hash]block.Block{genesis.Hash: genesis},
		tip:        genesis.Hash,
		difficulty: difficulty,
		checkTrans: true,
	}
}

// Tip returns the current longest-chain head hash.
func (c *Blockchain) Tip() hash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tip
}

// Difficulty returns the current target: a header hash strictly below this
// value satisfies proof-of-work.
func (c *Blockchain) Difficulty() hash.Hash {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.difficulty
}

// Length returns the number of blocks from genesis to tip inclusive.
func (c *Blockchain) Length() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.blocks[c.tip].Index + 1
}

// GetBlock looks up a block by hash.
func (c *Blockchain) GetBlock(h hash.Hash) (block.Block, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.blocks[h]
	return b, ok
}

// ChangeDifficulty is a test/admin hook; in production difficulty is fixed
// at construction.
func (c *Blockchain) ChangeDifficulty(d hash.Hash) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.difficulty = d
}

// SetCheckTrans is a test hook controlling whether insert_with_check
// verifies transaction signatures.
func (c *Blockchain) SetCheckTrans(check bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checkTrans = check
}

// Insert unconditionally stores b, used when the caller already trusts it
// (a block this node just mined). The block's index is assigned from its
// parent the same way InsertWithCheck does; the block itself is not
// revalidated.
func (c *Blockchain) Insert(b block.Block) {
	c.mu.Lock()
	defer c.mu.Unlock()

	parent, ok := c.blocks[b.Header.Parent]
	if ok {
		b.Index = parent.Index + 1
	}

	c.store(b)
}

// InsertWithCheck validates b before storing it: the parent must be known;
// if transaction checking is enabled, every transaction must pass
// SignCheck; the declared hash must equal the header hash; the header hash
// must satisfy proof-of-work against the header's own difficulty; and that
// difficulty must match the chain's current difficulty. It returns false on
// any violation with no side effects.
func (c *Blockchain) InsertWithCheck(b block.Block) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	parent, ok := c.blocks[b.Header.Parent]
	if !ok {
		return false
	}

	if c.checkTrans && !b.ValidateTrans() {
		return false
	}

	if b.Hash != b.Header.Hash() {
		return false
	}

	if !b.Hash.Less(b.Header.Difficulty) {
		return false
	}

	if b.Header.Difficulty != c.difficulty {
		return false
	}

	b.Index = parent.Index + 1
	c.store(b)
	return true
}

// store places b in the block map and updates the tip if b strictly
// extends the longest chain. Ties are broken by first-seen: a block that
// only matches, not exceeds, the current tip's length never displaces it.
func (c *Blockchain) store(b block.Block) {
	c.blocks[b.Hash] = b

	if b.Index > c.blocks[c.tip].Index {
		c.tip = b.Hash
	}
}
