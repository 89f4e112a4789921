package network

import (
	"github.com/libp2p/go-libp2p/core/peer"
)

// Event is the tagged union of everything the transport can report to the
// node's event loop. Each concrete event names the collaborator that
// produced it: gossip messages come from the pubsub substrate, peer
// lifecycle events from the discovery substrate.
type Event interface {
	event()
}

// MessageEvent is an inbound gossip message from a remote peer.
type MessageEvent struct {
	From peer.ID
	ID   string
	Data []byte
}

// PeerDiscoveredEvent reports a peer newly announced on the local segment.
type PeerDiscoveredEvent struct {
	Peer peer.AddrInfo
}

// PeerExpiredEvent reports a previously discovered peer that has not been
// re-announced within the discovery TTL.
type PeerExpiredEvent struct {
	Peer peer.ID
}

func (MessageEvent) event()        {}
func (PeerDiscoveredEvent) event() {}
func (PeerExpiredEvent) event()    {}
