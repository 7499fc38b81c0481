package brightness

import (
	"errors"
	"fmt"
)

// MaxPercent is the upper bound of the logical brightness domain.
// Every computed value is clamped into [0, MaxPercent] before use.
const MaxPercent uint16 = 100

// ErrOutOfRange is returned when a requested change cannot be
// represented in the 0-100 percent domain.
var ErrOutOfRange = errors.New("brightness out of range")

// Change is a single requested brightness adjustment, either relative
// ("move by N percentage points") or absolute ("set to exactly N").
// It is created once per invocation and never mutated.
type Change struct {
	absolute bool
	offset   int16
	value    uint16
}

// Relative returns a change that moves the current value by offset
// percentage points. Relative(0) is the query-only request shape.
func Relative(offset int16) Change {
	return Change{offset: offset}
}

// Absolute returns a change that sets the value to exactly value
// percent, ignoring the current value.
func Absolute(value uint16) Change {
	return Change{absolute: true, value: value}
}

// IsNoop reports whether the change is the query-only shape,
// Relative(0). An absolute change is never a no-op at this level even
// if it later turns out to equal the current value; that equality is
// detected per display.
func (c Change) IsNoop() bool {
	return !c.absolute && c.offset == 0
}

// Validate rejects changes whose magnitude cannot be meaningful in the
// percent domain, before any device I/O happens.
func (c Change) Validate() error {
	if c.absolute {
		if c.value > MaxPercent {
			return fmt.Errorf("%w: %d%% (must be 0-100)", ErrOutOfRange, c.value)
		}
		return nil
	}
	if c.offset < -int16(MaxPercent) || c.offset > int16(MaxPercent) {
		return fmt.Errorf("%w: offset %d (must be -100..100)", ErrOutOfRange, c.offset)
	}
	return nil
}

// Apply computes the new brightness for a given current value. The
// arithmetic is done in a widened signed representation so a relative
// change can never wrap around; it saturates at the domain bounds
// instead. The final clamp is unconditional to guard against a device
// reporting a value above 100.
func (c Change) Apply(current uint16) uint16 {
	next := int32(c.value)
	if !c.absolute {
		next = int32(current) + int32(c.offset)
	}
	if next < 0 {
		return 0
	}
	if next > int32(MaxPercent) {
		return MaxPercent
	}
	return uint16(next)
}

// String renders the change the way it was asked for on the command
// line: "+10", "-5" or "=70". Used in verbose logging only.
func (c Change) String() string {
	if c.absolute {
		return fmt.Sprintf("=%d", c.value)
	}
	return fmt.Sprintf("%+d", c.offset)
}
