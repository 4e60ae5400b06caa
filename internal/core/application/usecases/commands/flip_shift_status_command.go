package commands

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrFlipShiftStatusCommandIsNotConstructed = errors.New(
	"FlipShiftStatusCommand must be created via NewFlipShiftStatusCommand constructor",
)

// FlipShiftStatusCommand triggers one sweep over the schedulable partners,
// reconciling their on/off-shift status with the wall clock and their
// shift windows. Runs on a schedule; a manual trigger uses the same command.
type FlipShiftStatusCommand struct {
	guard guard.ConstructorGuard
}

// NewFlipShiftStatusCommand creates a command to trigger a shift sweep.
func NewFlipShiftStatusCommand() FlipShiftStatusCommand {
	return FlipShiftStatusCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *FlipShiftStatusCommand) Validate() error {
	return c.guard.Validate(ErrFlipShiftStatusCommandIsNotConstructed)
}
