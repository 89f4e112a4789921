// Package node wires a t-chain process together: the command router
// multiplexing operator and network input onto the shared pool and ledger,
// the peer lifecycle handler, and the event loop that drives both.
package node

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/tchain/go-tchain/api"
	"github.com/tchain/go-tchain/chain"
	"github.com/tchain/go-tchain/network"
)

// Command vocabulary. Matching is exact and case-sensitive; the identical
// literal strings are reused verbatim as gossip payloads.
const (
	CmdAddTransaction  = "ADD_TRANSACTION"
	CmdFetchBlockchain = "FETCH_BLOCKCHAIN"
)

// Command sources, as reported in metrics and diagnostics.
const (
	sourceLocal   = "local"
	sourceNetwork = "network"
)

// publisher is the outbound half of the transport collaborator as the
// router sees it.
type publisher interface {
	Publish(payload []byte) error
}

// CommandRouter interprets short text commands from the local operator
// channel and the network channel and applies them to the shared pool and
// ledger. Each command is processed to completion before the next starts.
type CommandRouter struct {
	pool    *chain.TransactionPool
	ledger  *chain.Ledger
	pub     publisher
	out     io.Writer
	metrics *api.Metrics
	log     *slog.Logger
}

// NewCommandRouter creates a router over the shared containers. out receives
// the operator-facing output; diagnostics go to the logger.
func NewCommandRouter(pool *chain.TransactionPool, ledger *chain.Ledger, pub publisher, out io.Writer, metrics *api.Metrics, log *slog.Logger) *CommandRouter {
	return &CommandRouter{
		pool:    pool,
		ledger:  ledger,
		pub:     pub,
		out:     out,
		metrics: metrics,
		log:     log,
	}
}

// HandleLocal processes one line of operator input.
func (r *CommandRouter) HandleLocal(line string) {
	switch line {
	case CmdAddTransaction:
		r.addTransaction()
		r.metrics.RecordCommand(sourceLocal, CmdAddTransaction)

		// Local adds are re-broadcast so peers stage their own copy. The
		// pool append above is not rolled back on failure; local state and
		// network propagation are not transactional.
		if err := r.pub.Publish([]byte(line)); err != nil {
			r.metrics.PublishFailures.Inc()
			r.log.Warn("publish failed", "command", line, "error", err)
		}

	case CmdFetchBlockchain:
		fmt.Fprintln(r.out, r.ledger.Dump())
		r.metrics.RecordCommand(sourceLocal, CmdFetchBlockchain)

	default:
		r.metrics.RecordInvalidCommand(sourceLocal)
		r.log.Error("invalid command", "input", line)
	}
}

// HandleNetwork processes one inbound gossip message. Receipt is terminal:
// a network-sourced ADD_TRANSACTION is never re-broadcast, which is what
// keeps the relay from looping forever.
func (r *CommandRouter) HandleNetwork(ev network.MessageEvent) {
	switch string(ev.Data) {
	case CmdAddTransaction:
		r.addTransaction()
		r.metrics.RecordCommand(sourceNetwork, CmdAddTransaction)

	default:
		r.metrics.RecordInvalidCommand(sourceNetwork)
		r.log.Error("invalid node command",
			"command", string(ev.Data),
			"peer", ev.From.String(),
			"id", ev.ID)
	}
}

// addTransaction stages a placeholder transaction and acknowledges it on
// the operator output.
func (r *CommandRouter) addTransaction() {
	r.pool.Add(chain.NewTransaction())
	r.metrics.UpdatePoolSize(r.pool.Size())
	fmt.Fprintln(r.out, "Transaction Added to MemPool/TransactionPool")
}
