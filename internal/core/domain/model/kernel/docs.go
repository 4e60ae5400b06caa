// Package kernel contains shared value objects used across all aggregates
// of the dispatch domain: validated identities (UUID) and wall-clock times
// (TimeOfDay). Kernel types are immutable, constructor-guarded, and carry
// no behavior specific to any single aggregate.
package kernel
