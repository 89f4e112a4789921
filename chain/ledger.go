package chain

import (
	"fmt"
	"strings"
	"sync"
)

// Ledger is the local append-only sequence of committed blocks. Only the
// miner appends; the ledger itself does not re-validate block numbering.
type Ledger struct {
	mu     sync.RWMutex
	blocks []Block
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds a block to the end of the ledger. The caller is responsible
// for number-sequencing correctness.
func (l *Ledger) Append(b Block) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.blocks = append(l.blocks, b)
}

// LastBlock returns the most recently appended block, if any.
func (l *Ledger) LastBlock() (Block, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if len(l.blocks) == 0 {
		return Block{}, false
	}
	return l.blocks[len(l.blocks)-1], true
}

// LastBlockNumber returns the number of the most recently appended block,
// if any.
func (l *Ledger) LastBlockNumber() (uint64, bool) {
	b, ok := l.LastBlock()
	if !ok {
		return 0, false
	}
	return b.Number, true
}

// Length returns the number of committed blocks.
func (l *Ledger) Length() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.blocks)
}

// Blocks returns a point-in-time copy of the committed blocks.
func (l *Ledger) Blocks() []Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]Block(nil), l.blocks...)
}

// Dump renders the ledger as a human-readable multi-line string for the
// operator-facing FETCH_BLOCKCHAIN output.
func (l *Ledger) Dump() string {
	blocks := l.Blocks()
	if len(blocks) == 0 {
		return "Blockchain: empty"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Blockchain: %d block(s)\n", len(blocks))
	for _, b := range blocks {
		fmt.Fprintf(&sb, "  Block %d (%d transaction(s))\n", b.Number, len(b.Transactions))
		for i, tx := range b.Transactions {
			fmt.Fprintf(&sb, "    tx[%d] from=%#x to=%#x\n", i, tx.From, tx.To)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}
