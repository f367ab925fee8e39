// Package public maintains the group of handlers reachable without any
// node-to-node trust: chain status, mempool listing, and transaction
// submission.
package public

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/nodecore/powchain/foundation/blockchain/chain"
	"github.com/nodecore/powchain/foundation/blockchain/hash"
	"github.com/nodecore/powchain/foundation/blockchain/mempool"
	"github.com/nodecore/powchain/foundation/blockchain/transaction"
	"github.com/nodecore/powchain/foundation/web"
)

// Handlers manages the set of publicly reachable endpoints.
type Handlers struct {
	Log     *zap.SugaredLogger
	Chain   *chain.Blockchain
	MemPool *mempool.MemPool
}

// Status returns the current tip hash, chain length and difficulty.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	status := struct {
		Tip        string `json:"tip"`
		Length     uint64 `json:"length"`
		Difficulty string `json:"difficulty"`
		MemPool    int    `json:"mempool_size"`
	}{
		Tip:        h.Chain.Tip().String(),
		Length:     h.Chain.Length(),
		Difficulty: h.Chain.Difficulty().String(),
		MemPool:    h.MemPool.Size(),
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// Mempool returns the hashes of the transactions currently held by the
// local node's mempool.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	hashes := make([]string, 0)
	for _, t := range h.MemPool.All() {
		hashes = append(hashes, t.Hash().String())
	}

	return web.Respond(ctx, w, hashes, http.StatusOK)
}

// SubmitTransaction decodes a signed transaction from the request body and
// adds it to the local mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var t transaction.SignedTransaction
	if err := web.Decode(r, &t); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if !h.MemPool.AddWithCheck(t) {
		return web.NewRequestError(fmt.Errorf("transaction rejected: %s", t.Hash()), http.StatusBadRequest)
	}

	h.Log.Infow("submit tx", "traceid", web.TraceID(ctx), "hash", t.Hash(), "from", t.From(), "to", t.To())

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "transaction added to mempool",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Block returns a single block by hash.
func (h Handlers) Block(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	hashStr := web.Param(ctx, "hash")

	var hsh hash.Hash
	if err := hsh.UnmarshalText([]byte(hashStr)); err != nil {
		return web.NewRequestError(fmt.Errorf("malformed hash: %s", hashStr), http.StatusBadRequest)
	}

	b, ok := h.Chain.GetBlock(hsh)
	if !ok {
		return web.NewRequestError(fmt.Errorf("block not found: %s", hashStr), http.StatusNotFound)
	}

	return web.Respond(ctx, w, b, http.StatusOK)
}
