// Package assignment contains the append-only assignment ledger entry —
// the audit record of every attempt to match an order with a partner —
// and the Metrics summary derived from the ledger.
package assignment
