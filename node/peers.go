package node

import (
	"log/slog"

	"github.com/libp2p/go-libp2p/core/peer"

	"github.com/tchain/go-tchain/api"
	"github.com/tchain/go-tchain/network"
)

// peerRegistry is the explicit-peer half of the transport collaborator as
// the lifecycle handler sees it.
type peerRegistry interface {
	AddExplicitPeer(pi peer.AddrInfo) error
	RemoveExplicitPeer(id peer.ID)
	KnownPeers() int
}

// PeerLifecycleHandler reacts to discovery events by updating the
// transport's explicit-peer set. These are best-effort bookkeeping calls;
// failures are reported, never fatal.
type PeerLifecycleHandler struct {
	registry peerRegistry
	metrics  *api.Metrics
	log      *slog.Logger
}

// NewPeerLifecycleHandler creates a handler over the given registry.
func NewPeerLifecycleHandler(registry peerRegistry, metrics *api.Metrics, log *slog.Logger) *PeerLifecycleHandler {
	return &PeerLifecycleHandler{
		registry: registry,
		metrics:  metrics,
		log:      log,
	}
}

// HandleDiscovered registers a newly announced peer so gossip flows to it
// before any topic-based grouping converges.
func (h *PeerLifecycleHandler) HandleDiscovered(ev network.PeerDiscoveredEvent) {
	h.log.Info("peer discovered", "peer", ev.Peer.ID.String())
	if err := h.registry.AddExplicitPeer(ev.Peer); err != nil {
		h.log.Warn("failed to register peer", "peer", ev.Peer.ID.String(), "error", err)
	}
	h.metrics.KnownPeers.Set(float64(h.registry.KnownPeers()))
}

// HandleExpired deregisters a peer that has stopped announcing.
func (h *PeerLifecycleHandler) HandleExpired(ev network.PeerExpiredEvent) {
	h.log.Info("peer expired", "peer", ev.Peer.String())
	h.registry.RemoveExplicitPeer(ev.Peer)
	h.metrics.KnownPeers.Set(float64(h.registry.KnownPeers()))
}
