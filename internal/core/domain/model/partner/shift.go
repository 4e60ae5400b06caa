package partner

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrShiftWindowIsNotConstructed is returned when using an improperly
	// initialized ShiftWindow.
	ErrShiftWindowIsNotConstructed = errors.New(
		"ShiftWindow must be created via NewShiftWindow or ParseShiftSlot")

	// ErrShiftSlotIsInvalid is returned when a shift slot string does not
	// match the expected "HH:mm - HH:mm" format.
	ErrShiftSlotIsInvalid = errs.NewValueIsInvalidError(
		"shift slot, expected format: 'HH:mm - HH:mm'")
)

// ShiftWindow is the daily working window of a partner, bounded by two
// wall-clock times. Containment uses an inclusive comparison on the
// canonical "HH:mm" forms: start <= t <= end. A window whose end precedes
// its start (a shift wrapping past midnight, e.g. 20:00-04:00) therefore
// contains no time at all. That matches the production assignment filter,
// which runs the same comparison inside the database; the quirk is kept
// deliberately rather than silently repaired.
type ShiftWindow struct { //nolint:recvcheck //using for validation
	start kernel.TimeOfDay
	end   kernel.TimeOfDay
	guard guard.ConstructorGuard
}

// NewShiftWindow creates a shift window from two validated times of day.
func NewShiftWindow(start, end kernel.TimeOfDay) (ShiftWindow, error) {
	if err := errors.Join(start.Validate(), end.Validate()); err != nil {
		return ShiftWindow{}, err
	}

	return ShiftWindow{
		start: start,
		end:   end,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// ParseShiftSlot parses the registration payload form "HH:mm - HH:mm"
// into a ShiftWindow.
func ParseShiftSlot(slot string) (ShiftWindow, error) {
	parts := strings.Split(slot, "-")
	if len(parts) != 2 {
		return ShiftWindow{}, ErrShiftSlotIsInvalid
	}

	start, err := kernel.NewTimeOfDay(strings.TrimSpace(parts[0]))
	if err != nil {
		return ShiftWindow{}, err
	}

	end, err := kernel.NewTimeOfDay(strings.TrimSpace(parts[1]))
	if err != nil {
		return ShiftWindow{}, err
	}

	return NewShiftWindow(start, end)
}

// Validate checks that the window was created through a constructor.
func (w ShiftWindow) Validate() error {
	return w.guard.Validate(ErrShiftWindowIsNotConstructed)
}

// Start returns the window's opening time.
func (w ShiftWindow) Start() kernel.TimeOfDay {
	return w.start
}

// End returns the window's closing time.
func (w ShiftWindow) End() kernel.TimeOfDay {
	return w.end
}

// Contains reports whether t falls inside the window, bounds inclusive.
// Windows that wrap past midnight never contain any time (see type doc).
func (w ShiftWindow) Contains(t kernel.TimeOfDay) bool {
	return w.start.Compare(t) <= 0 && w.end.Compare(t) >= 0
}

// String renders the window in the registration slot format.
func (w ShiftWindow) String() string {
	return w.start.String() + " - " + w.end.String()
}
