package control

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/hoppxi/lumactl/pkg/brightness"
	"github.com/hoppxi/lumactl/pkg/monitor"
)

// Sentinel errors for the pre-flight failures that abort a run before
// any device I/O happens.
var (
	ErrNoSuchDisplay = errors.New("no such display")
)

// Target selects which enumerated displays a run operates on.
type Target struct {
	index int
	all   bool
}

// AllDisplays targets every enumerated display in order.
func AllDisplays() Target {
	return Target{all: true}
}

// DisplayIndex targets the single display at ordinal position n.
func DisplayIndex(n int) Target {
	return Target{index: n}
}

// Index returns the requested ordinal and whether a single display
// was requested at all.
func (t Target) Index() (int, bool) {
	if t.all {
		return 0, false
	}
	return t.index, true
}

// Runner executes a brightness request against the displays of one
// backend, one display at a time. Displays are never touched
// concurrently; the control channel is a shared low-bandwidth bus and
// each device needs its settle interval between commands.
type Runner struct {
	backend monitor.Backend
	log     zerolog.Logger
}

func NewRunner(backend monitor.Backend, log zerolog.Logger) *Runner {
	return &Runner{backend: backend, log: log}
}

// Run resolves the target set and executes the per-display cycle,
// aggregating the outcomes. A returned error means the run aborted
// before any device I/O (bad index, enumeration failure); per-display
// failures are reported through the Result instead.
func (r *Runner) Run(change brightness.Change, target Target) (Result, error) {
	if err := change.Validate(); err != nil {
		return Result{}, err
	}

	displays, err := r.backend.Enumerate()
	if err != nil {
		return Result{}, fmt.Errorf("enumerate displays: %w", err)
	}

	if n, ok := target.Index(); ok {
		if n < 0 || n >= len(displays) {
			closeAll(displays)
			return Result{}, fmt.Errorf("%w: %d", ErrNoSuchDisplay, n)
		}
		for i, d := range displays {
			if i != n {
				d.Close()
			}
		}
		out := r.runOne(change, n, displays[n])
		displays[n].Close()
		return Result{Outcomes: []Outcome{out}, targeted: true}, nil
	}

	res := Result{Outcomes: make([]Outcome, 0, len(displays))}
	for i, d := range displays {
		res.Outcomes = append(res.Outcomes, r.runOne(change, i, d))
		d.Close()
	}
	return res, nil
}

// runOne is the per-display state machine: identify, read, settle,
// decide, write, settle. Any device error ends this display's cycle
// without affecting its siblings.
func (r *Runner) runOne(change brightness.Change, ordinal int, d monitor.Display) Outcome {
	out := Outcome{
		Ordinal: ordinal,
		Label:   monitor.Label(ordinal, d.Info()),
	}

	old, err := d.ReadValue()
	if err != nil {
		r.log.Debug().Err(err).Str("display", out.Label).Msg("brightness read failed")
		out.Kind = Unresponsive
		out.Err = err
		return out
	}
	d.Settle()
	out.Old = old
	r.log.Debug().Str("display", out.Label).Uint16("current", old).
		Stringer("change", change).Msg("read brightness")

	if change.IsNoop() {
		out.Kind = Reported
		out.New = old
		return out
	}

	next := change.Apply(old)
	out.New = next
	if next == old {
		out.Kind = NoChange
		return out
	}

	// Settle after the write attempt regardless of its outcome, so
	// pacing holds even when a later command on this handle is skipped.
	err = d.WriteValue(next)
	d.Settle()
	if err != nil {
		r.log.Debug().Err(err).Str("display", out.Label).Msg("brightness write failed")
		out.Kind = ChangeFailed
		out.Err = err
		return out
	}
	out.Kind = Changed
	return out
}

func closeAll(displays []monitor.Display) {
	for _, d := range displays {
		d.Close()
	}
}
