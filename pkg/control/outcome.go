package control

import "fmt"

// OutcomeKind classifies how one display's cycle ended.
type OutcomeKind int

const (
	// Unresponsive: the display never answered the brightness read.
	Unresponsive OutcomeKind = iota
	// Reported: query-only request; current value printed, no write.
	Reported
	// NoChange: the computed value equals the current one, no write.
	NoChange
	// Changed: the new value was written successfully.
	Changed
	// ChangeFailed: the write was attempted and rejected.
	ChangeFailed
)

// Outcome is the result of one display's read/apply/write cycle. It
// exists only for reporting and exit-code aggregation.
type Outcome struct {
	Ordinal int
	Label   string
	Kind    OutcomeKind
	Old     uint16
	New     uint16
	Err     error
}

// Failure reports whether this outcome should render on the error
// stream.
func (o Outcome) Failure() bool {
	return o.Kind == Unresponsive || o.Kind == ChangeFailed
}

// String renders the human-readable status line for this display.
func (o Outcome) String() string {
	switch o.Kind {
	case Unresponsive:
		return fmt.Sprintf("Timed out waiting for response from %s", o.Label)
	case Reported:
		return fmt.Sprintf("%s is set to %d%% brightness", o.Label, o.Old)
	case NoChange:
		return fmt.Sprintf("No change needed for %s", o.Label)
	case Changed:
		return fmt.Sprintf("Changed brightness of %s from %d to %d", o.Label, o.Old, o.New)
	case ChangeFailed:
		return fmt.Sprintf("Failed to set brightness for %s: %v", o.Label, o.Err)
	}
	return fmt.Sprintf("unknown outcome for %s", o.Label)
}

// Result aggregates the outcomes of one run.
type Result struct {
	Outcomes []Outcome

	// targeted is set when a single display was explicitly requested,
	// which makes its read timeout fatal rather than a reported skip.
	targeted bool
}

// Failed reports whether the run as a whole should exit nonzero.
//
// A rejected write always fails the run. A read timeout is fatal for
// an explicitly targeted display, but within an all-displays sweep it
// is a reported skip; the sweep only fails when no display responded
// at all. An empty sweep is a success.
func (r Result) Failed() bool {
	if len(r.Outcomes) == 0 {
		return false
	}
	responded := false
	for _, o := range r.Outcomes {
		switch o.Kind {
		case ChangeFailed:
			return true
		case Unresponsive:
			if r.targeted {
				return true
			}
		default:
			responded = true
		}
	}
	return !responded
}
