// Package miner implements the periodic task that drains the transaction
// pool into new ledger blocks on a fixed cadence.
package miner

import (
	"context"
	"log/slog"
	"time"

	"github.com/tchain/go-tchain/api"
	"github.com/tchain/go-tchain/chain"
)

// DefaultInterval is the default delay between drain cycles.
const DefaultInterval = 10 * time.Second

// Miner drains the transaction pool into a new block on every tick. A cycle
// with an empty pool appends nothing; no empty blocks are ever created.
type Miner struct {
	pool     *chain.TransactionPool
	ledger   *chain.Ledger
	interval time.Duration
	metrics  *api.Metrics
	log      *slog.Logger
}

// New creates a miner over the given pool and ledger. A non-positive
// interval falls back to DefaultInterval.
func New(pool *chain.TransactionPool, ledger *chain.Ledger, interval time.Duration, metrics *api.Metrics, log *slog.Logger) *Miner {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Miner{
		pool:     pool,
		ledger:   ledger,
		interval: interval,
		metrics:  metrics,
		log:      log,
	}
}

// Run executes drain cycles until ctx is cancelled. A cycle never fails;
// there is nothing fallible in the drain itself.
func (m *Miner) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.mineOnce()
		}
	}
}

// mineOnce performs a single drain cycle. The pool swap is a single locked
// step, so no concurrent add can fall between the snapshot and the reset.
func (m *Miner) mineOnce() {
	last, hasLast := m.ledger.LastBlockNumber()

	if !m.pool.HasPending() {
		return
	}

	txs := m.pool.Drain()
	if len(txs) == 0 {
		// Another drain emptied the pool between the check and the swap.
		return
	}

	block := chain.NewBlock(last, hasLast, txs)
	m.ledger.Append(block)

	m.metrics.RecordBlock(len(block.Transactions))
	m.metrics.UpdatePoolSize(m.pool.Size())
	m.log.Info("block mined",
		"number", block.Number,
		"transactions", len(block.Transactions))
}
