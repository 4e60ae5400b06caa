package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrEvaluateMetricsCommandIsNotConstructed = errors.New(
	"EvaluateMetricsCommand must be created via NewEvaluateMetricsCommand constructor",
)

// EvaluateMetricsCommand triggers a wholesale recompute of the global
// assignment metrics from the ledger and the delivered-order history.
// It is parameterless: every run reads everything and replaces the single
// stored metrics document.
type EvaluateMetricsCommand struct {
	guard guard.ConstructorGuard
}

// NewEvaluateMetricsCommand creates a command to trigger metrics evaluation.
func NewEvaluateMetricsCommand() EvaluateMetricsCommand {
	return EvaluateMetricsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *EvaluateMetricsCommand) Validate() error {
	return c.guard.Validate(ErrEvaluateMetricsCommandIsNotConstructed)
}
