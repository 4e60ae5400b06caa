package kernel

import (
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// timeOfDayLayout is the wall-clock format used throughout the system for
// shift boundaries and order scheduling ("HH:mm", 24-hour).
const timeOfDayLayout = "15:04"

// ErrTimeOfDayIsNotConstructed is returned when using an improperly
// initialized TimeOfDay. Use NewTimeOfDay or TimeOfDayFromTime.
var ErrTimeOfDayIsNotConstructed = errs.NewValueIsRequiredError(
	"time of day must be created via NewTimeOfDay or TimeOfDayFromTime constructors")

// TimeOfDay is an immutable value object for a wall-clock moment with minute
// precision, carrying no date or zone. Its canonical form is a zero-padded
// "HH:mm" string, which makes the chronological order of two values within
// one day identical to the lexicographic order of their string forms — the
// property the shift-window containment check relies on.
//
// Example:
//
//	t, err := kernel.NewTimeOfDay("09:30")
//	if err != nil {
//	    // not a valid HH:mm value
//	}
type TimeOfDay struct { //nolint:recvcheck //using for validation
	value string
	guard guard.ConstructorGuard
}

// NewTimeOfDay parses a "HH:mm" string into a TimeOfDay.
// Returns an error for values that are not a valid 24-hour wall-clock time.
func NewTimeOfDay(value string) (TimeOfDay, error) {
	parsed, err := time.Parse(timeOfDayLayout, value)
	if err != nil {
		return TimeOfDay{}, errs.NewValueIsInvalidErrorWithCause("time of day", err)
	}

	return TimeOfDay{
		// Re-format so "9:30" style input normalizes to "09:30".
		value: parsed.Format(timeOfDayLayout),
		guard: guard.NewConstructorGuard(),
	}, nil
}

// TimeOfDayFromTime extracts the wall-clock component of an absolute
// timestamp in the timestamp's own location. Convert to UTC first when the
// reference time zone matters, e.g. TimeOfDayFromTime(order.ScheduledFor().UTC()).
func TimeOfDayFromTime(t time.Time) TimeOfDay {
	return TimeOfDay{
		value: t.Format(timeOfDayLayout),
		guard: guard.NewConstructorGuard(),
	}
}

// Validate checks that the TimeOfDay was created through a constructor.
func (t TimeOfDay) Validate() error {
	return t.guard.Validate(ErrTimeOfDayIsNotConstructed)
}

// String returns the canonical zero-padded "HH:mm" representation.
func (t TimeOfDay) String() string {
	return t.value
}

// IsEqual compares two TimeOfDay values minute for minute.
func (t TimeOfDay) IsEqual(other TimeOfDay) bool {
	return t.value == other.value
}

// Compare orders two TimeOfDay values lexicographically, which for the
// canonical form equals chronological order within a single day.
// Returns -1 if t is earlier than other, 0 if equal, +1 if later.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	switch {
	case t.value < other.value:
		return -1
	case t.value > other.value:
		return 1
	default:
		return 0
	}
}
