package arrow

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/tchain/go-tchain/chain"
)

// LedgerSchema returns the Arrow schema for the flattened ledger: one row
// per committed transaction.
//
// Fields:
//   - block_number: uint64 - number of the containing block
//   - tx_index: uint32 - position of the transaction within its block
//   - from: uint64 - sender endpoint identifier
//   - to: uint64 - receiver endpoint identifier
func LedgerSchema() *arrow.Schema {
	return arrow.NewSchema(
		[]arrow.Field{
			{Name: "block_number", Type: arrow.PrimitiveTypes.Uint64},
			{Name: "tx_index", Type: arrow.PrimitiveTypes.Uint32},
			{Name: "from", Type: arrow.PrimitiveTypes.Uint64},
			{Name: "to", Type: arrow.PrimitiveTypes.Uint64},
		},
		nil,
	)
}

// LedgerRecord converts a ledger snapshot into an Arrow Record following
// LedgerSchema. The caller owns the returned record and must Release it.
func LedgerRecord(blocks []chain.Block) arrow.Record {
	builder := array.NewRecordBuilder(memory.DefaultAllocator, LedgerSchema())
	defer builder.Release()

	numbers := builder.Field(0).(*array.Uint64Builder)
	indexes := builder.Field(1).(*array.Uint32Builder)
	froms := builder.Field(2).(*array.Uint64Builder)
	tos := builder.Field(3).(*array.Uint64Builder)

	for _, b := range blocks {
		for i, tx := range b.Transactions {
			numbers.Append(b.Number)
			indexes.Append(uint32(i))
			froms.Append(tx.From)
			tos.Append(tx.To)
		}
	}

	return builder.NewRecord()
}
