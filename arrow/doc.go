// Package arrow provides Apache Arrow serialization of the ledger.
// This package implements:
// - the flattened ledger schema (one row per committed transaction)
// - ledger to Arrow Record conversion
// - Arrow IPC stream serialization
package arrow
