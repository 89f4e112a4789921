package chain

// GenesisBlockNumber is the number assigned to the first block of a ledger.
const GenesisBlockNumber uint64 = 1

// Block is an immutable, numbered batch of transactions committed at one
// mining tick. Blocks are created exclusively by the miner.
type Block struct {
	Number       uint64        `json:"number"`
	Transactions []Transaction `json:"transactions"`
}

// NewBlock builds the successor of the block numbered last, or the genesis
// block when hasLast is false. The transaction slice is copied so the block
// does not alias the caller's buffer.
func NewBlock(last uint64, hasLast bool, txs []Transaction) Block {
	number := GenesisBlockNumber
	if hasLast {
		number = last + 1
	}
	return Block{
		Number:       number,
		Transactions: append([]Transaction(nil), txs...),
	}
}
