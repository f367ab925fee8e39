// Package miner implements the cooperatively controlled proof-of-work
// worker: it repeatedly assembles a candidate block from the mempool and
// probes nonces until the header hash satisfies the chain's difficulty,
// then commits the block and announces it to the network.
package miner

import (
	"time"

	"github.com/nodecore/powchain/foundation/blockchain/block"
	"github.com/nodecore/powchain/foundation/blockchain/chain"
	"github.com/nodecore/powchain/foundation/blockchain/hash"
	"github.com/nodecore/powchain/foundation/blockchain/mempool"
	"github.com/nodecore/powchain/foundation/blockchain/network"
)

// EventHandler is called with a printf-style message for every notable
// mining event, the logging seam the teacher's worker/state packages use
// throughout.
type EventHandler func(v string, args ...any)

// Context is the miner's worker state. Nonce and MinedNum are miner-local:
// only the goroutine running Start's loop ever touches them, so no lock
// guards them.
type Context struct {
	controlChan <-chan controlSignal
	state       operatingState

	chain   *chain.Blockchain
	mempool *mempool.MemPool
	network network.Handle

	miningStep int
	evHandler  EventHandler

	nonce    uint32
	minedNum uint64
}

// New constructs a miner bound to chain, mempool and network, returning the
// worker Context (pass to Start on its own goroutine) and the Handle used
// to control it. The miner starts Paused.
func New(c *chain.Blockchain, m *mempool.MemPool, net network.Handle, miningStep int, evHandler EventHandler) (*Context, Handle) {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}

	ch := make(chan controlSignal, 8)

	ctx := &Context{
		controlChan: ch,
		state:       operatingState{kind: statePaused},
		chain:       c,
		mempool:     m,
		network:     net,
		miningStep:  miningStep,
		evHandler:   evHandler,
	}

	return ctx, Handle{controlChan: ch}
}

// Nonce returns the miner's current rolling nonce cursor. Like the rest of
// Context's miner-local fields, it is safe to read only from the goroutine
// running Start, or synchronously before Start is ever called (as this
// package's tests do by calling mining directly).
func (c *Context) Nonce() uint32 {
	return c.nonce
}

// MinedNum returns the number of blocks this miner has successfully mined.
func (c *Context) MinedNum() uint64 {
	return c.minedNum
}

// Start runs the miner loop on the calling goroutine: spawn it with
// `go ctx.Start()`. It returns once the miner reaches ShutDown.
func (c *Context) Start() {
	c.evHandler("miner: initialized into paused mode")
	c.loop()
}

// loop is the main mining loop: react to control signals, mine, sleep.
func (c *Context) loop() {
	for {
		switch c.state.kind {
		case statePaused:
			sig, ok := <-c.controlChan
			if !ok {
				panic("miner: control channel detached")
			}
			c.state = c.state.apply(sig)
			continue

		case stateShutDown:
			return

		default: // stateRun
			select {
			case sig, ok := <-c.controlChan:
				if !ok {
					panic("miner: control channel detached")
				}
				c.state = c.state.apply(sig)
			default:
			}
		}

		if c.state.kind == stateShutDown {
			return
		}

		c.mining()

		if c.state.kind == stateRun && c.state.lambda != 0 {
			time.Sleep(time.Duration(c.state.lambda) * time.Microsecond)
		}
	}
}

// mining performs one mining burst: snapshot tip/difficulty, snapshot a
// mempool content batch, probe nonces, and commit on success. It returns
// true iff a block was found. No block is ever produced with zero
// transactions.
func (c *Context) mining() bool {
	tip := c.chain.Tip()
	difficulty := c.chain.Difficulty()

	if c.mempool.Empty() {
		return false
	}
	trans := c.mempool.CreateContent()

	content := block.NewContent(trans)
	header := block.Header{
		Parent:     tip,
		Nonce:      c.nonce,
		Difficulty: difficulty,
		Timestamp:  nowMillis(),
		MerkleRoot: content.MerkleRoot(),
	}

	if miningBase(&header, difficulty, c.miningStep) {
		b := block.New(header, content)
		c.Found(b)
		c.nonce = 0
		return true
	}

	c.nonce = header.Nonce
	return false
}

// Found commits a newly mined (or, for tests, externally constructed)
// block: insert it (already trusted), clear its transactions from the
// local mempool, bump the mined count, and broadcast its hash. Locks are
// always released before the broadcast to avoid deadlock with inbound
// network workers.
func (c *Context) Found(b block.Block) {
	c.evHandler("miner: found: block %s: %d transactions", b.Hash, len(b.Content.Trans))

	c.chain.Insert(b)
	c.mempool.RemoveTrans(b.Content.TransHashes())

	c.minedNum++
	c.evHandler("miner: found: mined %d blocks so far", c.minedNum)

	c.network.Broadcast(network.NewBlockHashes([]hash.Hash{b.Hash}))
}

// miningBase probes up to miningStep nonces, returning true and leaving
// header at the winning nonce the instant header.Hash() satisfies
// difficulty, or false with header.Nonce left at its value after exactly
// miningStep probes (wrapping) if the budget is exhausted.
func miningBase(header *block.Header, difficulty hash.Hash, miningStep int) bool {
	for i := 0; i < miningStep; i++ {
		if header.Hash().Less(difficulty) {
			return true
		}
		header.IncrementNonce()
	}
	return false
}

// nowMillis returns the current time as milliseconds since the Unix epoch.
func nowMillis() uint64 {
	return uint64(time.Now().UnixMilli())
}

// changeDifficultyForTest is a test hook that sets the bound chain's
// difficulty. No test in this package calls it.
func (c *Context) changeDifficultyForTest(d hash.Hash) {
	c.chain.ChangeDifficulty(d)
}
