package network

import (
	"sync"
	"time"

	"github.com/libp2p/go-libp2p/core/peer"
)

// peerTracker records when each discovered peer was last announced. mDNS in
// go-libp2p only reports peer-found, so expiry is derived here: a peer not
// re-announced within the TTL is swept out and reported as expired.
type peerTracker struct {
	mu    sync.Mutex
	ttl   time.Duration
	peers map[peer.ID]time.Time
}

func newPeerTracker(ttl time.Duration) *peerTracker {
	return &peerTracker{
		ttl:   ttl,
		peers: make(map[peer.ID]time.Time),
	}
}

// observe records an announcement for id and reports whether the peer was
// previously unknown. A swept peer that re-announces counts as new again.
func (t *peerTracker) observe(id peer.ID, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, known := t.peers[id]
	t.peers[id] = now
	return !known
}

// forget drops id without reporting it as expired.
func (t *peerTracker) forget(id peer.ID) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.peers, id)
}

// sweep removes and returns every peer whose last announcement is older
// than the TTL.
func (t *peerTracker) sweep(now time.Time) []peer.ID {
	t.mu.Lock()
	defer t.mu.Unlock()

	cutoff := now.Add(-t.ttl)
	var expired []peer.ID
	for id, seen := range t.peers {
		if seen.Before(cutoff) {
			delete(t.peers, id)
			expired = append(expired, id)
		}
	}
	return expired
}

// size returns the number of currently tracked peers.
func (t *peerTracker) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.peers)
}

// discoveryNotifee receives mDNS peer-found callbacks and turns first
// sightings into PeerDiscoveredEvents.
type discoveryNotifee struct {
	g *Gossip
}

func (n *discoveryNotifee) HandlePeerFound(pi peer.AddrInfo) {
	if pi.ID == n.g.host.ID() {
		return // skip self
	}
	if n.g.tracker.observe(pi.ID, time.Now()) {
		n.g.emit(PeerDiscoveredEvent{Peer: pi})
	}
}
