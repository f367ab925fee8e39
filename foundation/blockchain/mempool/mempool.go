// Package mempool implements the bounded, duplicate-free pool of signed
// transactions awaiting inclusion in a block.
package mempool

import (
	"sync"

	"github.com/nodecore/powchain/foundation/blockchain/hash"
	"github.com/nodecore/powchain/foundation/blockchain/transaction"
)

// DefaultPoolSizeLimit and DefaultBlockSizeLimit hold the same values as the
// genesis package's defaults. The node process takes its limits from the
// genesis configuration, not from these constants.
const (
	DefaultPoolSizeLimit  = 5_000
	DefaultBlockSizeLimit = 50
)

// MemPool is a bounded mapping from transaction hash to signed transaction.
// Keys are unique; no ordering is preserved across inserts and callers must
// not depend on iteration order.
type MemPool struct {
	mu             sync.Mutex
	transactions   map[hash.Hash]transaction.SignedTransaction
	poolSizeLimit  int
	blockSizeLimit int
}

// New returns an empty mempool bounded by poolSizeLimit entries, whose
// CreateContent selects at most blockSizeLimit transactions.
func New(poolSizeLimit, blockSizeLimit int) *MemPool {
	return &MemPool{
		transactions:   make(map[hash.Hash]transaction.SignedTransaction),
		poolSizeLimit:  poolSizeLimit,
		blockSizeLimit: blockSizeLimit,
	}
}

// AddWithCheck inserts t and returns true, unless a transaction with the
// same hash already exists, t.SignCheck() is false, or the pool is already
// at its size limit, in which case it returns false with no side effects.
func (p *MemPool) AddWithCheck(t transaction.SignedTransaction) bool {
	h := t.Hash()

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.transactions[h]; exists {
		return false
	}
	if !t.SignCheck() {
		return false
	}
	if len(p.transactions) >= p.poolSizeLimit {
		return false
	}

	p.transactions[h] = t
	return true
}

// RemoveTrans removes every listed hash that is present, silently ignoring
// misses.
func (p *MemPool) RemoveTrans(hashes []hash.Hash) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, h := range hashes {
		delete(p.transactions, h)
	}
}

// Exist reports whether h is present in the pool.
func (p *MemPool) Exist(h hash.Hash) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, exists := p.transactions[h]
	return exists
}

// Size returns the number of transactions currently held.
func (p *MemPool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.transactions)
}

// Empty reports whether the pool holds no transactions.
func (p *MemPool) Empty() bool {
	return p.Size() == 0
}

// GetTrans returns the subset of present transactions in the order of the
// input hashes; missing entries are skipped.
func (p *MemPool) GetTrans(hashes []hash.Hash) []transaction.SignedTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	trans := make([]transaction.SignedTransaction, 0, len(hashes))
	for _, h := range hashes {
		if t, ok := p.transactions[h]; ok {
			trans = append(trans, t)
		}
	}
	return trans
}

// All returns every transaction currently held, in no particular order.
func (p *MemPool) All() []transaction.SignedTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	trans := make([]transaction.SignedTransaction, 0, len(p.transactions))
	for _, t := range p.transactions {
		trans = append(trans, t)
	}
	return trans
}

// CreateContent returns up to min(blockSizeLimit, Size()) transactions as an
// arbitrary subset of the pool; no ordering guarantee is made and the pool
// is not mutated. Two honest nodes mining from the same mempool may
// therefore build different candidate blocks; that is intentional.
func (p *MemPool) CreateContent() []transaction.SignedTransaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := len(p.transactions)
	if n > p.blockSizeLimit {
		n = p.blockSizeLimit
	}

	trans := make([]transaction.SignedTransaction, 0, n)
	for _, t := range p.transactions {
		if len(trans) >= n {
			break
		}
		trans = append(trans, t)
	}
	return trans
}
