// Package private maintains the group of handlers reachable only from
// other nodes: block propagation and direct block submission.
package private

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/nodecore/powchain/foundation/blockchain/block"
	"github.com/nodecore/powchain/foundation/blockchain/chain"
	"github.com/nodecore/powchain/foundation/blockchain/hash"
	"github.com/nodecore/powchain/foundation/web"
)

// Handlers manages the set of node-to-node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	Chain *chain.Blockchain
}

// Block returns a single block by hash, for peers fetching a block they
// only learned the hash of.
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

// ProposeBlock takes a block from a peer, validates it against the local
// chain's state and difficulty, and if valid adds it to the local chain.
func (h Handlers) ProposeBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var b block.Block
	if err := web.Decode(r, &b); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	if !h.Chain.InsertWithCheck(b) {
		return web.NewRequestError(errors.New("block not accepted"), http.StatusNotAcceptable)
	}

	h.Log.Infow("propose block", "traceid", web.TraceID(ctx), "hash", b.Hash, "index", b.Index)

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "block accepted",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
