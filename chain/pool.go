package chain

import "sync"

// TransactionPool is a thread-safe FIFO staging buffer for transactions
// that have not yet been committed to a block. Insertion order is preserved.
//
// The pool is guarded by a single mutex; each operation holds the lock for
// its own duration only. Composing Transactions followed by Clear is NOT
// atomic — an Add landing between the two calls is discarded by the Clear.
// Drain exists for callers that need the read-and-reset to be a single
// locked step.
type TransactionPool struct {
	mu  sync.RWMutex
	txs []Transaction
}

// NewTransactionPool creates an empty pool.
func NewTransactionPool() *TransactionPool {
	return &TransactionPool{}
}

// Add appends a transaction to the pool. It always succeeds.
func (p *TransactionPool) Add(tx Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.txs = append(p.txs, tx)
}

// HasPending reports whether the pool currently holds any transactions.
func (p *TransactionPool) HasPending() bool {
	return p.Size() > 0
}

// Size returns the current number of staged transactions.
func (p *TransactionPool) Size() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return len(p.txs)
}

// Transactions returns a point-in-time copy of the staged transactions.
// The copy is safe to hold and use after the call returns.
func (p *TransactionPool) Transactions() []Transaction {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return append([]Transaction(nil), p.txs...)
}

// Clear discards whatever the pool holds at the instant of the call.
func (p *TransactionPool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.txs = nil
}

// Drain atomically removes and returns all staged transactions, leaving the
// pool empty. Swapping the backing slice under one lock acquisition closes
// the window in which an Add could land between a snapshot and a Clear.
func (p *TransactionPool) Drain() []Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()

	txs := p.txs
	p.txs = nil
	return txs
}
