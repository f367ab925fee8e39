package block

import (
	"testing"

	"github.com/nodecore/powchain/foundation/blockchain/hash"
	"github.com/nodecore/powchain/foundation/blockchain/transaction"
)

func TestGenesisBlock(t *testing.T) {
	difficulty := DifficultyFromBits(8)
	g := Genesis(difficulty)

	if g.Hash != hash.Zero {
		t.Fatalf("genesis hash = %s, want zero", g.Hash)
	}
	if g.Index != 0 {
		t.Fatalf("genesis index = %d, want 0", g.Index)
	}
	if g.Header.Difficulty != difficulty {
		t.Fatalf("genesis difficulty = %s, want %s", g.Header.Difficulty, difficulty)
	}
	if len(g.Content.Trans) != 0 {
		t.Fatalf("genesis content has %d transactions, want 0", len(g.Content.Trans))
	}
}

func TestNewBlockHashMatchesHeader(t *testing.T) {
	header := Header{
		Parent:     hash.Sum256([]byte("parent")),
		Nonce:      42,
		Difficulty: DifficultyFromBits(8),
		Timestamp:  1000,
		MerkleRoot: hash.Zero,
	}

	b := New(header, NewContent(nil))

	if b.Hash != header.Hash() {
		t.Fatalf("block hash %s != header.Hash() %s", b.Hash, header.Hash())
	}
}

func TestEqualDiffersOnContent(t *testing.T) {
	header := Header{Parent: hash.Sum256([]byte("p"))}
	b1 := New(header, NewContent(nil))

	b2 := b1
	b2.Content = Content{Trans: nil}

	if !b1.Equal(b2) {
		t.Fatal("identical blocks reported as unequal")
	}

	// Changing the content while the header and Hash stay the same must
	// break equality.
	b3 := b1
	b3.Content = NewContent([]transaction.SignedTransaction{{}})
	if b1.Equal(b3) {
		t.Fatal("blocks differing in content reported as equal")
	}

	// Changing any other serialized field, here Index, breaks it too.
	b4 := b1
	b4.Index = b1.Index + 1
	if b1.Equal(b4) {
		t.Fatal("blocks differing in Index reported as equal")
	}
}

func TestHeaderIncrementNonceWraps(t *testing.T) {
	h := Header{Nonce: 0xFFFFFFFF}
	h.IncrementNonce()
	if h.Nonce != 0 {
		t.Fatalf("nonce after wraparound = %d, want 0", h.Nonce)
	}
}
