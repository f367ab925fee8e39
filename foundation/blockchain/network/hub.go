package network

import (
	"sync"

	"github.com/nodecore/powchain/foundation/blockchain/chain"
	"github.com/nodecore/powchain/foundation/blockchain/mempool"
)

// EventHandler is called with a printf-style message for every notable hub
// event, the same logging seam the teacher's state/worker packages use.
type EventHandler func(v string, args ...any)

// node is everything the hub needs to deliver a gossiped block to a peer
// and clear it from that peer's mempool.
type node struct {
	chain   *chain.Blockchain
	mempool *mempool.MemPool
}

// Hub fans a block-hash announcement out to every other registered node,
// the in-process analogue of the teacher's state.NetSendBlockToPeers, minus
// any real transport: delivery is synchronous and in-memory.
type Hub struct {
	mu        sync.Mutex
	nodes     map[string]node
	evHandler EventHandler
}

// NewHub returns an empty hub. evHandler may be nil.
func NewHub(evHandler EventHandler) *Hub {
	if evHandler == nil {
		evHandler = func(string, ...any) {}
	}
	return &Hub{
		nodes:     make(map[string]node),
		evHandler: evHandler,
	}
}

// Register connects a node's chain and mempool to the hub under id and
// returns the network.Handle that node's miner should broadcast through.
func (h *Hub) Register(id string, c *chain.Blockchain, m *mempool.MemPool) Handle {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nodes[id] = node{chain: c, mempool: m}
	return &peerHandle{hub: h, self: id}
}

// Remove disconnects a node from the hub; it stops receiving and sending
// announcements.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.nodes, id)
}

// peerHandle is the per-node Handle implementation bound to a sender
// identity, since Handle.Broadcast itself carries no sender argument.
type peerHandle struct {
	hub  *Hub
	self string
}

// Broadcast implements Handle by fanning the message out via the hub.
func (p *peerHandle) Broadcast(msg Message) {
	p.hub.broadcastFrom(p.self, msg)
}

// broadcastFrom delivers msg from senderID to every other registered node:
// for each hash the receiving node doesn't already know, it fetches the
// full block from the sender's chain, validates it with InsertWithCheck,
// and on success removes its transactions from the receiver's mempool.
func (h *Hub) broadcastFrom(senderID string, msg Message) {
	if msg.Kind != NewBlockHashesKind {
		return
	}

	h.mu.Lock()
	sender, known := h.nodes[senderID]
	receivers := make([]node, 0, len(h.nodes))
	for id, n := range h.nodes {
		if id == senderID {
			continue
		}
		receivers = append(receivers, n)
	}
	h.mu.Unlock()

	if !known {
		return
	}

	for _, receiver := range receivers {
		for _, blockHash := range msg.Hashes {
			if _, have := receiver.chain.GetBlock(blockHash); have {
				continue
			}

			b, ok := sender.chain.GetBlock(blockHash)
			if !ok {
				h.evHandler("hub: broadcastFrom: sender %s missing announced block %s", senderID, blockHash)
				continue
			}

			if !receiver.chain.InsertWithCheck(b) {
				h.evHandler("hub: broadcastFrom: block %s rejected by a peer", blockHash)
				continue
			}

			receiver.mempool.RemoveTrans(b.Content.TransHashes())
		}
	}
}
