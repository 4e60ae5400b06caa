// Package services contains stateless domain services: partner selection
// for incoming orders and the ledger-wide metrics computation. Services
// operate purely on aggregates passed in by use case handlers and never
// touch storage themselves.
package services
