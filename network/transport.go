// Package network provides the peer-to-peer transport for a t-chain node.
//
// This package implements:
//   - Gossip: a libp2p host with gossipsub publish/subscribe
//   - mDNS-based local peer discovery with TTL expiry
//   - a tagged event union delivered to the node's event loop
package network

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	libp2p "github.com/libp2p/go-libp2p"
	pubsub "github.com/libp2p/go-libp2p-pubsub"
	"github.com/libp2p/go-libp2p/core/crypto"
	"github.com/libp2p/go-libp2p/core/host"
	"github.com/libp2p/go-libp2p/core/peer"
	mdns "github.com/libp2p/go-libp2p/p2p/discovery/mdns"
	connmgr "github.com/libp2p/go-libp2p/p2p/net/connmgr"
	noise "github.com/libp2p/go-libp2p/p2p/security/noise"
	ma "github.com/multiformats/go-multiaddr"
)

// Common errors for transport operations
var (
	ErrNotSubscribed     = errors.New("not subscribed to a topic")
	ErrAlreadySubscribed = errors.New("already subscribed to a topic")
)

// tagExplicit marks peers registered through AddExplicitPeer so the
// connection manager keeps them connected.
const tagExplicit = "explicit-peer"

// connectTimeout bounds the dial performed by AddExplicitPeer.
const connectTimeout = 10 * time.Second

// Gossip aggregates the two transport collaborators of a node: the
// gossipsub publish/subscribe substrate and the mDNS discovery substrate.
// Both report into a single event channel via the Event union.
type Gossip struct {
	cfg Config
	log *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	host    host.Host
	ps      *pubsub.PubSub
	mdns    mdns.Service
	tracker *peerTracker
	events  chan Event

	mu    sync.Mutex
	topic *pubsub.Topic
	sub   *pubsub.Subscription

	wg sync.WaitGroup
}

// New creates a gossip transport: a libp2p host bound to the configured
// listen addresses (TCP and QUIC by default), a gossipsub router with
// signed messages, and an mDNS discovery service. Discovery does not run
// until Start is called.
func New(parent context.Context, cfg Config, log *slog.Logger) (*Gossip, error) {
	ctx, cancel := context.WithCancel(parent)

	priv, _, err := crypto.GenerateEd25519Key(rand.Reader)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("generate identity: %w", err)
	}

	cm, err := connmgr.NewConnManager(cfg.ConnLow, cfg.ConnHigh,
		connmgr.WithGracePeriod(time.Minute))
	if err != nil {
		cancel()
		return nil, fmt.Errorf("connection manager: %w", err)
	}

	h, err := libp2p.New(
		libp2p.Identity(priv),
		libp2p.ListenAddrStrings(cfg.ListenAddrs...),
		libp2p.ConnectionManager(cm),
		libp2p.Security(noise.ID, noise.New),
	)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("libp2p host: %w", err)
	}

	params := pubsub.DefaultGossipSubParams()
	if cfg.Heartbeat > 0 {
		params.HeartbeatInterval = cfg.Heartbeat
	}
	ps, err := pubsub.NewGossipSub(ctx, h,
		pubsub.WithMessageSigning(true),
		pubsub.WithStrictSignatureVerification(true),
		pubsub.WithGossipSubParams(params),
	)
	if err != nil {
		_ = h.Close()
		cancel()
		return nil, fmt.Errorf("gossipsub: %w", err)
	}

	g := &Gossip{
		cfg:     cfg,
		log:     log,
		ctx:     ctx,
		cancel:  cancel,
		host:    h,
		ps:      ps,
		tracker: newPeerTracker(cfg.PeerTTL),
		events:  make(chan Event, 256),
	}
	g.mdns = mdns.NewMdnsService(h, cfg.ServiceTag, &discoveryNotifee{g: g})

	return g, nil
}

// Start begins mDNS discovery and the peer expiry sweeper.
func (g *Gossip) Start() error {
	if err := g.mdns.Start(); err != nil {
		return fmt.Errorf("mdns: %w", err)
	}

	g.wg.Add(1)
	go g.sweepLoop()

	return nil
}

// Subscribe joins the given topic and starts delivering its messages as
// MessageEvents. A node subscribes exactly once, at startup.
func (g *Gossip) Subscribe(topic string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.topic != nil {
		return ErrAlreadySubscribed
	}

	t, err := g.ps.Join(topic)
	if err != nil {
		return fmt.Errorf("join topic %s: %w", topic, err)
	}
	sub, err := t.Subscribe()
	if err != nil {
		return fmt.Errorf("subscribe topic %s: %w", topic, err)
	}
	g.topic = t
	g.sub = sub

	g.wg.Add(1)
	go g.consume(sub)

	return nil
}

// Publish broadcasts payload to the subscribed topic.
func (g *Gossip) Publish(payload []byte) error {
	g.mu.Lock()
	t := g.topic
	g.mu.Unlock()

	if t == nil {
		return ErrNotSubscribed
	}
	return t.Publish(g.ctx, payload)
}

// AddExplicitPeer connects to a discovered peer and protects the connection
// so gossip flows to it even before the topic mesh converges.
func (g *Gossip) AddExplicitPeer(pi peer.AddrInfo) error {
	ctx, cancel := context.WithTimeout(g.ctx, connectTimeout)
	defer cancel()

	if err := g.host.Connect(ctx, pi); err != nil {
		return fmt.Errorf("connect %s: %w", pi.ID, err)
	}
	g.host.ConnManager().TagPeer(pi.ID, tagExplicit, 100)
	g.host.ConnManager().Protect(pi.ID, tagExplicit)
	return nil
}

// RemoveExplicitPeer drops the protection added by AddExplicitPeer.
func (g *Gossip) RemoveExplicitPeer(id peer.ID) {
	g.host.ConnManager().Unprotect(id, tagExplicit)
	g.host.ConnManager().UntagPeer(id, tagExplicit)
	g.tracker.forget(id)
}

// Events returns the channel of transport events.
func (g *Gossip) Events() <-chan Event {
	return g.events
}

// ID returns the local peer ID.
func (g *Gossip) ID() peer.ID {
	return g.host.ID()
}

// ListenAddrs returns the addresses the host is listening on.
func (g *Gossip) ListenAddrs() []ma.Multiaddr {
	return g.host.Addrs()
}

// KnownPeers returns the number of currently tracked discovered peers.
func (g *Gossip) KnownPeers() int {
	return g.tracker.size()
}

// Close shuts the transport down: discovery first, then the subscription
// and the host.
func (g *Gossip) Close() error {
	g.cancel()

	var errs []error
	if err := g.mdns.Close(); err != nil {
		errs = append(errs, fmt.Errorf("mdns: %w", err))
	}

	g.mu.Lock()
	if g.sub != nil {
		g.sub.Cancel()
	}
	if g.topic != nil {
		if err := g.topic.Close(); err != nil {
			errs = append(errs, fmt.Errorf("topic: %w", err))
		}
	}
	g.mu.Unlock()

	if err := g.host.Close(); err != nil {
		errs = append(errs, fmt.Errorf("host: %w", err))
	}

	g.wg.Wait()
	close(g.events)

	return errors.Join(errs...)
}

// emit delivers an event without blocking the producer. The channel is
// buffered; if the event loop has fallen this far behind, the event is
// dropped.
func (g *Gossip) emit(ev Event) {
	select {
	case g.events <- ev:
	default:
		g.log.Warn("event channel full, dropping event", "event", fmt.Sprintf("%T", ev))
	}
}

// consume delivers inbound gossip messages as MessageEvents. Messages that
// originated locally are filtered so a local publish never loops back.
func (g *Gossip) consume(sub *pubsub.Subscription) {
	defer g.wg.Done()

	for {
		msg, err := sub.Next(g.ctx)
		if err != nil {
			if !errors.Is(err, context.Canceled) && !errors.Is(err, pubsub.ErrSubscriptionCancelled) {
				g.log.Warn("subscription closed", "error", err)
			}
			return
		}
		if msg.GetFrom() == g.host.ID() {
			continue
		}
		g.emit(MessageEvent{
			From: msg.ReceivedFrom,
			ID:   msg.ID,
			Data: msg.GetData(),
		})
	}
}

// sweepLoop periodically expires peers that have stopped announcing.
func (g *Gossip) sweepLoop() {
	defer g.wg.Done()

	interval := g.cfg.PeerTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.ctx.Done():
			return
		case now := <-ticker.C:
			for _, id := range g.tracker.sweep(now) {
				g.emit(PeerExpiredEvent{Peer: id})
			}
		}
	}
}
