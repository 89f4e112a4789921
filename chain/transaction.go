// Package chain provides the core ledger state for a t-chain node:
// transactions, blocks, the staging pool and the append-only block sequence.
//
// This package implements:
//   - Transaction: the minimal unit of pending work
//   - TransactionPool: thread-safe staging buffer for uncommitted transactions
//   - Block: an immutable, numbered batch of transactions
//   - Ledger: thread-safe, append-only sequence of blocks
package chain

// Placeholder endpoint identifiers used for every transaction. The wire
// protocol carries no transaction payload, so each node constructs its own.
const (
	PlaceholderFrom uint64 = 0x000
	PlaceholderTo   uint64 = 0x123
)

// Transaction is a transfer between two endpoint identifiers. Immutable
// once created.
type Transaction struct {
	From uint64 `json:"from"`
	To   uint64 `json:"to"`
}

// NewTransaction creates a transaction with the placeholder endpoints.
func NewTransaction() Transaction {
	return Transaction{
		From: PlaceholderFrom,
		To:   PlaceholderTo,
	}
}
