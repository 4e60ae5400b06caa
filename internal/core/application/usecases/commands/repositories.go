// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends on the narrowest composition covering the
// repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PartnerRepoFactory provides access to the partner repository within a transaction.
	PartnerRepoFactory interface {
		PartnerRepository() ports.PartnerRepository
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// AssignmentRepoFactory provides access to the assignment ledger within a transaction.
	AssignmentRepoFactory interface {
		AssignmentRepository() ports.AssignmentRepository
	}

	// MetricsRepoFactory provides access to the metrics store within a transaction.
	MetricsRepoFactory interface {
		MetricsRepository() ports.MetricsRepository
	}

	// PartnerUoW manages transactions for partner-only operations.
	PartnerUoW interface {
		TxManager
		PartnerRepoFactory
	}

	// PartnerUoWFactory creates new partner unit of work instances.
	PartnerUoWFactory interface {
		Create() PartnerUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// AssignmentUoW manages the assignment workflow's transaction: the
	// ledger entry, the order update, and the partner load update commit
	// or roll back together.
	AssignmentUoW interface {
		TxManager
		PartnerRepoFactory
		OrderRepoFactory
		AssignmentRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// MetricsUoW manages the metrics evaluation transaction: one
	// consistent read of the ledger and order history plus the replace
	// of the stored metrics document.
	MetricsUoW interface {
		TxManager
		AssignmentRepoFactory
		OrderRepoFactory
		MetricsRepoFactory
	}

	// MetricsUoWFactory creates new metrics unit of work instances.
	MetricsUoWFactory interface {
		Create() MetricsUoW
	}

	// DashboardUoW manages the partner dashboard computation, which reads
	// order history and writes the refreshed partner metrics.
	DashboardUoW interface {
		TxManager
		PartnerRepoFactory
		OrderRepoFactory
	}

	// DashboardUoWFactory creates new dashboard unit of work instances.
	DashboardUoWFactory interface {
		Create() DashboardUoW
	}
)
