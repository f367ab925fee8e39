package chain

import (
	"testing"

	"github.com/nodecore/powchain/foundation/blockchain/block"
	"github.com/nodecore/powchain/foundation/blockchain/hash"
)

func easiest() hash.Hash {
	return block.DifficultyFromBits(0)
}

func mineOne(t *testing.T, parent hash.Hash, difficulty hash.Hash) block.Block {
	t.Helper()
	header := block.Header{
		Parent:     parent,
		Difficulty: difficulty,
		MerkleRoot: hash.Zero,
	}
	for i := 0; i < 1_000_000; i++ {
		if header.Hash().Less(difficulty) {
			return block.New(header, block.NewContent(nil))
		}
		header.IncrementNonce()
	}
	t.Fatal("could not mine a block at the easiest difficulty; something is very wrong")
	return block.Block{}
}

func TestInsertWithCheckRejectsUnknownParent(t *testing.T) {
	c := New(easiest())

	orphan := mineOne(t, hash.Sum256([]byte("nonexistent parent")), easiest())
	if c.InsertWithCheck(orphan) {
		t.Fatal("expected rejection of a block whose parent is unknown")
	}
}

func TestInsertWithCheckAcceptsValidChild(t *testing.T) {
	c := New(easiest())

	child := mineOne(t, c.Tip(), c.Difficulty())
	if !c.InsertWithCheck(child) {
		t.Fatal("expected a validly mined child of the tip to be accepted")
	}
	if c.Tip() != child.Hash {
		t.Fatalf("tip = %s, want %s", c.Tip(), child.Hash)
	}
	if c.Length() != 2 {
		t.Fatalf("length = %d, want 2", c.Length())
	}
}

func TestInsertWithCheckRejectsWrongDifficulty(t *testing.T) {
	c := New(easiest())

	wrongDifficulty := block.DifficultyFromBits(200)
	header := block.Header{Parent: c.Tip(), Difficulty: wrongDifficulty}
	b := block.New(header, block.NewContent(nil))

	if c.InsertWithCheck(b) {
		t.Fatal("expected rejection of a block whose declared difficulty differs from the chain's")
	}
}

func TestInsertIsUnconditional(t *testing.T) {
	c := New(easiest())

	// A block that would fail every InsertWithCheck rule still lands via
	// Insert, since the caller (the local miner) already trusts it.
	header := block.Header{Parent: hash.Sum256([]byte("unknown")), Difficulty: hash.Zero}
	b := block.New(header, block.NewContent(nil))

	c.Insert(b)

	got, ok := c.GetBlock(b.Hash)
	if !ok {
		t.Fatal("Insert did not store the block")
	}
	if got.Hash != b.Hash {
		t.Fatalf("stored block hash mismatch")
	}
}

func TestTipTiesBrokenByFirstSeen(t *testing.T) {
	c := New(easiest())

	a := mineOne(t, c.Tip(), c.Difficulty())
	c.Insert(a)
	firstTip := c.Tip()

	// b also extends genesis directly, at the same index as a, but arrives
	// second: it must not displace the existing tip.
	header := block.Header{Parent: hash.Zero, Difficulty: c.Difficulty(), MerkleRoot: hash.Sum256([]byte("b"))}
	for i := 0; i < 1_000_000 && !header.Hash().Less(c.Difficulty()); i++ {
		header.IncrementNonce()
	}
	b := block.New(header, block.NewContent(nil))
	c.Insert(b)

	if c.Tip() != firstTip {
		t.Fatalf("tip changed to a same-length, later-seen block: got %s, want %s", c.Tip(), firstTip)
	}
}
