package node

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/tchain/go-tchain/api"
	"github.com/tchain/go-tchain/chain"
	"github.com/tchain/go-tchain/miner"
	"github.com/tchain/go-tchain/network"
)

// Config defines configuration for a node.
type Config struct {
	// Topic is the gossip topic joined at startup.
	Topic string `json:"topic"`
	// MineInterval is the delay between drain cycles.
	MineInterval time.Duration `json:"mine_interval"`
	// Transport configures the gossip transport.
	Transport network.Config `json:"transport"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Topic:        "t-chain-test-net",
		MineInterval: miner.DefaultInterval,
		Transport:    network.DefaultConfig(),
	}
}

// Node is a single t-chain process: the shared pool and ledger, the miner
// draining one into the other, and the event loop multiplexing operator
// input and transport events onto them. Dependencies are injected once at
// construction and shared by handle.
type Node struct {
	cfg       Config
	pool      *chain.TransactionPool
	ledger    *chain.Ledger
	miner     *miner.Miner
	transport *network.Gossip
	router    *CommandRouter
	peers     *PeerLifecycleHandler
	metrics   *api.Metrics
	log       *slog.Logger

	// In and Out are the operator channel; they default to stdin/stdout
	// and are settable for tests.
	In  io.Reader
	Out io.Writer
}

// New assembles a node around an already-constructed transport.
func New(cfg Config, transport *network.Gossip, metrics *api.Metrics, log *slog.Logger) *Node {
	pool := chain.NewTransactionPool()
	ledger := chain.NewLedger()

	n := &Node{
		cfg:       cfg,
		pool:      pool,
		ledger:    ledger,
		miner:     miner.New(pool, ledger, cfg.MineInterval, metrics, log),
		transport: transport,
		metrics:   metrics,
		log:       log,
		In:        os.Stdin,
		Out:       os.Stdout,
	}
	n.router = NewCommandRouter(pool, ledger, transport, n.Out, metrics, log)
	n.peers = NewPeerLifecycleHandler(transport, metrics, log)
	return n
}

// Pool returns the shared transaction pool.
func (n *Node) Pool() *chain.TransactionPool { return n.pool }

// Ledger returns the shared ledger.
func (n *Node) Ledger() *chain.Ledger { return n.ledger }

// Run subscribes to the gossip topic, starts discovery and the miner, and
// drives the event loop until ctx is cancelled or operator input ends.
// Startup errors are returned; per-iteration errors are handled in place
// and never terminate the loop.
func (n *Node) Run(ctx context.Context) error {
	if err := n.transport.Subscribe(n.cfg.Topic); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	if err := n.transport.Start(); err != nil {
		return fmt.Errorf("start transport: %w", err)
	}

	// Router writes go wherever Out points at Run time.
	n.router.out = n.Out

	n.log.Info("node started", "peer", n.transport.ID().String(), "topic", n.cfg.Topic)
	for _, addr := range n.transport.ListenAddrs() {
		n.log.Info("listening", "address", addr.String())
	}
	fmt.Fprintln(n.Out, "Available commands: 'ADD_TRANSACTION', 'FETCH_BLOCKCHAIN'")

	go n.miner.Run(ctx)

	lines := readLines(ctx, n.In)
	events := n.transport.Events()

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				// Operator channel closed; the node keeps serving the
				// network until cancelled.
				lines = nil
				continue
			}
			n.router.HandleLocal(line)

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case network.MessageEvent:
				n.router.HandleNetwork(ev)
			case network.PeerDiscoveredEvent:
				n.peers.HandleDiscovered(ev)
			case network.PeerExpiredEvent:
				n.peers.HandleExpired(ev)
			}
		}
	}
}

// readLines pumps lines of operator input into a channel so the event loop
// can select over them. The channel closes on EOF.
func readLines(ctx context.Context, r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case ch <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return ch
}
