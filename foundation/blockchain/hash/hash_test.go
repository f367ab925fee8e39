package hash

import "testing"

func TestLess(t *testing.T) {
	a := Hash{0x00, 0x01}
	b := Hash{0x00, 0x02}

	if !a.Less(b) {
		t.Fatalf("expected %x < %x", a, b)
	}
	if b.Less(a) {
		t.Fatalf("expected %x not < %x", b, a)
	}
	if a.Less(a) {
		t.Fatalf("expected a hash is never less than itself")
	}
}

func TestIsZero(t *testing.T) {
	if !Zero.IsZero() {
		t.Fatal("Zero.IsZero() should be true")
	}
	if Sum256([]byte("x")).IsZero() {
		t.Fatal("a non-zero digest reported as zero")
	}
}

func TestTextRoundTrip(t *testing.T) {
	h := Sum256([]byte("round trip me"))

	text, err := h.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}

	var got Hash
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}

	if got != h {
		t.Fatalf("round trip mismatch: got %s want %s", got, h)
	}
}

func TestUnmarshalTextRejectsWrongLength(t *testing.T) {
	var h Hash
	if err := h.UnmarshalText([]byte("deadbeef")); err == nil {
		t.Fatal("expected an error unmarshaling a short hex string")
	}
}

type fakeItem struct {
	h Hash
}

func (f fakeItem) Hash() Hash { return f.h }

func TestMerkleTreeEmpty(t *testing.T) {
	tree := NewMerkleTree[fakeItem](nil)
	if tree.Root() != Zero {
		t.Fatalf("empty tree root = %s, want zero", tree.Root())
	}
}

func TestMerkleTreeSingleItem(t *testing.T) {
	item := fakeItem{h: Sum256([]byte("only item"))}
	tree := NewMerkleTree([]fakeItem{item})

	want := Sum256(item.Hash().Bytes())
	if tree.Root() != want {
		t.Fatalf("single-item root = %s, want SHA256(item.hash()) = %s", tree.Root(), want)
	}
}

func TestMerkleTreeOddCountDuplicatesLast(t *testing.T) {
	items := []fakeItem{
		{h: Sum256([]byte("a"))},
		{h: Sum256([]byte("b"))},
		{h: Sum256([]byte("c"))},
	}

	tree := NewMerkleTree(items)

	leaves := make([]Hash, len(items))
	for i, it := range items {
		leaves[i] = Sum256(it.Hash().Bytes())
	}
	l01 := pairHash(leaves[0], leaves[1])
	l22 := pairHash(leaves[2], leaves[2])
	want := pairHash(l01, l22)

	if tree.Root() != want {
		t.Fatalf("odd-count root = %s, want %s", tree.Root(), want)
	}
}

func TestMerkleTreeDeterministic(t *testing.T) {
	items := []fakeItem{
		{h: Sum256([]byte("x"))},
		{h: Sum256([]byte("y"))},
	}

	r1 := NewMerkleTree(items).Root()
	r2 := NewMerkleTree(items).Root()

	if r1 != r2 {
		t.Fatalf("same input produced different roots: %s vs %s", r1, r2)
	}
}
