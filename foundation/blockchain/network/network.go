// Package network implements the narrow broadcast interface the core
// depends on, plus an in-process Hub that stands in for the real
// peer-to-peer transport (framing, dialing, gossip discovery), which is
// explicitly out of scope for this core.
package network

import (
	"github.com/nodecore/powchain/foundation/blockchain/hash"
)

// MessageKind identifies the variant carried by a Message. Only
// NewBlockHashes is mandated by this core; the network layer may define
// more.
type MessageKind int

// NewBlockHashesKind is the only message variant this core emits or
// consumes.
const NewBlockHashesKind MessageKind = iota

// Message is the tagged gossip message this core can send and receive.
type Message struct {
	Kind   MessageKind
	Hashes []hash.Hash
}

// NewBlockHashes builds a Message announcing newly mined or received block
// hashes.
func NewBlockHashes(hashes []hash.Hash) Message {
	return Message{Kind: NewBlockHashesKind, Hashes: hashes}
}

// Handle is the narrow interface the miner depends on: it only ever needs
// to announce block hashes to the rest of the network.
type Handle interface {
	Broadcast(msg Message)
}
