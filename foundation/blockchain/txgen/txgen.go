// Package txgen implements the transaction generator: a background worker
// that manufactures random signed transactions and inserts them into the
// mempool, standing in for the wallets and peers that would otherwise
// supply them. Grounded on the transaction_generator referenced throughout
// original_source/src/miner.rs's test helpers.
package txgen

import (
	"crypto/ecdsa"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/nodecore/powchain/foundation/blockchain/mempool"
	"github.com/nodecore/powchain/foundation/blockchain/transaction"
)

// EventHandler is called with a printf-style message for every generated or
// rejected transaction.
type EventHandler func(v string, args ...any)

// Context is the generator's worker state, controlled the same
// Start/Pause/Exit way the miner is (they share the shape even though each
// keeps its own control channel and goroutine).
type Context struct {
	controlChan chan signal
	state       state
	mempool     *mempool.MemPool
	accounts    []*ecdsa.PrivateKey
	nonce       uint64
	evHandler   EventHandler
}

type signalKind int

const (
	sigStart signalKind = iota
	sigPause
	sigExit
)

type signal struct {
	kind     signalKind
	interval time.Duration
}

type stateKind int

const (
	stPaused stateKind = iota
	stRun
	stShutDown
)

type state struct {
	kind     stateKind
	interval time.Duration
}

// Handle lets callers drive a running generator.
type Handle struct {
	controlChan chan<- signal
}

// Start moves the generator into Run mode, emitting one transaction per
// interval.
func (h Handle) Start(interval time.Duration) {
	h.controlChan <- signal{kind: sigStart, interval: interval}
}

// Pause moves the generator back to idle.
func (h Handle) Pause() {
	h.controlChan <- signal{kind: sigPause}
}

// Exit shuts the generator down for good.
func (h Handle) Exit() {
	h.controlChan <- signal{kind: sigExit}
}

// New constructs a generator over numAccounts throwaway ECDSA identities
// that will send each other transactions, bound to m. It starts Paused.
func New(m *mempool.MemPool, numAccounts int, evHandler EventHandler) (*Context, Handle, error) {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}
	if numAccounts < 2 {
		numAccounts = 2
	}

	accounts := make([]*ecdsa.PrivateKey, numAccounts)
	for i := range accounts {
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, Handle{}, fmt.Errorf("txgen: generate account: %w", err)
		}
		accounts[i] = key
	}

	ch := make(chan signal, 8)

	ctx := &Context{
		controlChan: ch,
		state:       state{kind: stPaused},
		mempool:     m,
		accounts:    accounts,
		evHandler:   evHandler,
	}

	return ctx, Handle{controlChan: ch}, nil
}

// Start runs the generator loop on the calling goroutine.
func (c *Context) Start() {
	for {
		switch c.state.kind {
		case stPaused:
			sig, ok := <-c.controlChan
			if !ok {
				panic("txgen: control channel detached")
			}
			c.state = c.applySignal(sig)
			continue

		case stShutDown:
			return

		default:
			select {
			case sig, ok := <-c.controlChan:
				if !ok {
					panic("txgen: control channel detached")
				}
				c.state = c.applySignal(sig)
			default:
			}
		}

		if c.state.kind == stShutDown {
			return
		}

		c.generateOne()

		if c.state.kind == stRun && c.state.interval != 0 {
			time.Sleep(c.state.interval)
		}
	}
}

func (c *Context) applySignal(sig signal) state {
	switch sig.kind {
	case sigExit:
		return state{kind: stShutDown}
	case sigStart:
		return state{kind: stRun, interval: sig.interval}
	case sigPause:
		return state{kind: stPaused}
	default:
		return c.state
	}
}

// generateOne manufactures one random signed transaction between two
// distinct throwaway accounts and inserts it into the mempool.
func (c *Context) generateOne() {
	t, err := c.randomSignedTransaction()
	if err != nil {
		c.evHandler("txgen: generateOne: ERROR: %s", err)
		return
	}

	if !c.mempool.AddWithCheck(t) {
		c.evHandler("txgen: generateOne: rejected by mempool: %s", t)
		return
	}

	c.evHandler("txgen: generateOne: added: %s", t)
}

// RandomSignedTransaction is exported so tests and other callers (the node
// process seeding an empty mempool, for instance) can generate a single
// valid transaction without driving the full Start loop.
func (c *Context) RandomSignedTransaction() (transaction.SignedTransaction, error) {
	return c.randomSignedTransaction()
}

func (c *Context) randomSignedTransaction() (transaction.SignedTransaction, error) {
	fromIdx, err := randIndex(len(c.accounts))
	if err != nil {
		return transaction.SignedTransaction{}, err
	}
	toIdx, err := randIndex(len(c.accounts))
	if err != nil {
		return transaction.SignedTransaction{}, err
	}
	if toIdx == fromIdx {
		toIdx = (toIdx + 1) % len(c.accounts)
	}

	from := c.accounts[fromIdx]
	to := c.accounts[toIdx]

	value, err := rand.Int(rand.Reader, big.NewInt(1_000))
	if err != nil {
		return transaction.SignedTransaction{}, err
	}

	c.nonce++
	return transaction.New(
		transaction.AddressFromKey(from),
		transaction.AddressFromKey(to),
		value.Uint64(),
		c.nonce,
		nil,
		from,
	)
}

func randIndex(n int) (int, error) {
	i, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(i.Int64()), nil
}
