package chain

import (
	"strings"
	"testing"
)

func TestNewLedgerEmpty(t *testing.T) {
	l := NewLedger()

	if _, ok := l.LastBlock(); ok {
		t.Error("empty ledger should have no last block")
	}
	if _, ok := l.LastBlockNumber(); ok {
		t.Error("empty ledger should have no last block number")
	}
	if l.Length() != 0 {
		t.Errorf("Expected length 0, got %d", l.Length())
	}
}

func TestLedgerAppend(t *testing.T) {
	l := NewLedger()
	l.Append(Block{Number: 1})
	l.Append(Block{Number: 2})

	if l.Length() != 2 {
		t.Fatalf("Expected length 2, got %d", l.Length())
	}

	last, ok := l.LastBlock()
	if !ok {
		t.Fatal("LastBlock should exist")
	}
	if last.Number != 2 {
		t.Errorf("Expected last number 2, got %d", last.Number)
	}

	n, ok := l.LastBlockNumber()
	if !ok || n != 2 {
		t.Errorf("Expected last number 2, got %d (ok=%v)", n, ok)
	}
}

func TestLedgerBlocksIsCopy(t *testing.T) {
	l := NewLedger()
	l.Append(Block{Number: 1})

	blocks := l.Blocks()
	blocks[0].Number = 42

	last, _ := l.LastBlock()
	if last.Number != 1 {
		t.Error("ledger contents changed through snapshot")
	}
}

func TestLedgerDumpEmpty(t *testing.T) {
	l := NewLedger()
	if got := l.Dump(); got != "Blockchain: empty" {
		t.Errorf("unexpected dump for empty ledger: %q", got)
	}
}

func TestLedgerDump(t *testing.T) {
	l := NewLedger()
	l.Append(Block{Number: 1, Transactions: []Transaction{{From: 0x000, To: 0x123}}})

	dump := l.Dump()
	if !strings.Contains(dump, "1 block(s)") {
		t.Errorf("dump missing block count: %q", dump)
	}
	if !strings.Contains(dump, "Block 1") {
		t.Errorf("dump missing block header: %q", dump)
	}
	if !strings.Contains(dump, "from=0x0 to=0x123") {
		t.Errorf("dump missing transaction line: %q", dump)
	}
}
