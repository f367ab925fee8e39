package network

import (
	"crypto/ecdsa"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/nodecore/powchain/foundation/blockchain/block"
	"github.com/nodecore/powchain/foundation/blockchain/chain"
	"github.com/nodecore/powchain/foundation/blockchain/hash"
	"github.com/nodecore/powchain/foundation/blockchain/mempool"
	"github.com/nodecore/powchain/foundation/blockchain/transaction"
)

func mustKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return key
}

func mustTx(t *testing.T) transaction.SignedTransaction {
	t.Helper()
	from, to := mustKey(t), mustKey(t)
	tx, err := transaction.New(transaction.AddressFromKey(from), transaction.AddressFromKey(to), 1, 1, nil, from)
	if err != nil {
		t.Fatalf("New transaction: %v", err)
	}
	return tx
}

func mineChild(t *testing.T, c *chain.Blockchain, content block.Content) block.Block {
	t.Helper()
	header := block.Header{
		Parent:     c.Tip(),
		Difficulty: c.Difficulty(),
		MerkleRoot: content.MerkleRoot(),
	}
	for i := 0; i < 1_000_000; i++ {
		if header.Hash().Less(c.Difficulty()) {
			return block.New(header, content)
		}
		header.IncrementNonce()
	}
	t.Fatal("could not mine a test block")
	return block.Block{}
}

// TestThreeNodeRelay reproduces the scenario where node A mines a block
// containing a transaction, announces it, and both B and C fetch, validate
// and adopt it, clearing the transaction from their own mempools.
func TestThreeNodeRelay(t *testing.T) {
	difficulty := block.DifficultyFromBits(0)

	chainA := chain.New(difficulty)
	chainB := chain.New(difficulty)
	chainC := chain.New(difficulty)

	poolA := mempool.New(10, 10)
	poolB := mempool.New(10, 10)
	poolC := mempool.New(10, 10)

	hub := NewHub(nil)
	handleA := hub.Register("A", chainA, poolA)
	hub.Register("B", chainB, poolB)
	hub.Register("C", chainC, poolC)

	tx := mustTx(t)
	poolA.AddWithCheck(tx)
	poolB.AddWithCheck(tx)
	poolC.AddWithCheck(tx)

	content := block.NewContent([]transaction.SignedTransaction{tx})
	b := mineChild(t, chainA, content)

	chainA.Insert(b)
	poolA.RemoveTrans(b.Content.TransHashes())

	handleA.Broadcast(NewBlockHashes([]hash.Hash{b.Hash}))

	for _, c := range []*chain.Blockchain{chainB, chainC} {
		if _, ok := c.GetBlock(b.Hash); !ok {
			t.Fatal("peer did not adopt the announced block")
		}
		if c.Tip() != b.Hash {
			t.Fatalf("peer tip = %s, want %s", c.Tip(), b.Hash)
		}
	}

	for _, p := range []*mempool.MemPool{poolB, poolC} {
		if !p.Empty() {
			t.Fatal("peer mempool was not cleared of the relayed block's transactions")
		}
	}
}

func TestBroadcastSkipsAlreadyKnownBlocks(t *testing.T) {
	difficulty := block.DifficultyFromBits(0)

	chainA := chain.New(difficulty)
	chainB := chain.New(difficulty)

	poolA := mempool.New(10, 10)
	poolB := mempool.New(10, 10)

	hub := NewHub(nil)
	handleA := hub.Register("A", chainA, poolA)
	hub.Register("B", chainB, poolB)

	b := mineChild(t, chainA, block.NewContent(nil))
	chainA.Insert(b)
	chainB.Insert(b)

	// B already has the block; broadcasting it again must not panic or
	// error, it should simply be a no-op.
	handleA.Broadcast(NewBlockHashes([]hash.Hash{b.Hash}))

	if chainB.Tip() != b.Hash {
		t.Fatalf("tip changed unexpectedly: %s", chainB.Tip())
	}
}
