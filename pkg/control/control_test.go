package control_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoppxi/lumactl/pkg/brightness"
	"github.com/hoppxi/lumactl/pkg/control"
	"github.com/hoppxi/lumactl/pkg/monitor"
)

var errTimeout = errors.New("i2c transaction timed out")

// fakeDisplay records every call made against it so tests can assert
// the exact per-display sequence the runner performed.
type fakeDisplay struct {
	model    string
	value    uint16
	readErr  error
	writeErr error

	reads   int
	writes  []uint16
	settles int
	closed  bool
}

func (d *fakeDisplay) Info() monitor.Info { return monitor.Info{ModelName: d.model} }

func (d *fakeDisplay) ReadValue() (uint16, error) {
	d.reads++
	if d.readErr != nil {
		return 0, d.readErr
	}
	return d.value, nil
}

func (d *fakeDisplay) WriteValue(v uint16) error {
	d.writes = append(d.writes, v)
	if d.writeErr != nil {
		return d.writeErr
	}
	d.value = v
	return nil
}

func (d *fakeDisplay) Settle()      { d.settles++ }
func (d *fakeDisplay) Close() error { d.closed = true; return nil }

type fakeBackend struct {
	displays []*fakeDisplay
	err      error
}

func (b *fakeBackend) Name() string { return "fake" }

func (b *fakeBackend) Enumerate() ([]monitor.Display, error) {
	if b.err != nil {
		return nil, b.err
	}
	out := make([]monitor.Display, len(b.displays))
	for i, d := range b.displays {
		out[i] = d
	}
	return out, nil
}

func newRunner(b *fakeBackend) *control.Runner {
	return control.NewRunner(b, zerolog.Nop())
}

func TestRelativeChange(t *testing.T) {
	d := &fakeDisplay{model: "DELL U2720Q", value: 50}
	b := &fakeBackend{displays: []*fakeDisplay{d}}

	res, err := newRunner(b).Run(brightness.Relative(10), control.AllDisplays())
	require.NoError(t, err)
	require.Len(t, res.Outcomes, 1)

	out := res.Outcomes[0]
	assert.Equal(t, control.Changed, out.Kind)
	assert.Equal(t, uint16(50), out.Old)
	assert.Equal(t, uint16(60), out.New)
	assert.Equal(t, []uint16{60}, d.writes, "exactly one write issued")
	assert.Equal(t, 2, d.settles, "settle after read and after write")
	assert.True(t, d.closed)
	assert.False(t, res.Failed())
	assert.Equal(t, "Changed brightness of display 0 (DELL U2720Q) from 50 to 60", out.String())
}

func TestRelativeChangeSaturates(t *testing.T) {
	d := &fakeDisplay{model: "LG HDR 4K", value: 95}
	b := &fakeBackend{displays: []*fakeDisplay{d}}

	res, err := newRunner(b).Run(brightness.Relative(10), control.AllDisplays())
	require.NoError(t, err)

	out := res.Outcomes[0]
	assert.Equal(t, control.Changed, out.Kind)
	assert.Equal(t, uint16(95), out.Old)
	assert.Equal(t, uint16(100), out.New)
	assert.Equal(t, []uint16{100}, d.writes)
}

func TestAbsoluteNoChangeNeeded(t *testing.T) {
	d := &fakeDisplay{model: "BenQ PD2700U", value: 40}
	b := &fakeBackend{displays: []*fakeDisplay{d}}

	res, err := newRunner(b).Run(brightness.Absolute(40), control.AllDisplays())
	require.NoError(t, err)

	out := res.Outcomes[0]
	assert.Equal(t, control.NoChange, out.Kind)
	assert.Empty(t, d.writes, "no write issued")
	assert.Equal(t, 1, d.settles, "only the post-read settle")
	assert.False(t, res.Failed())
	assert.Equal(t, "No change needed for display 0 (BenQ PD2700U)", out.String())
}

func TestQueryReportsWithoutWriting(t *testing.T) {
	d := &fakeDisplay{model: "DELL U2720Q", value: 62}
	b := &fakeBackend{displays: []*fakeDisplay{d}}

	res, err := newRunner(b).Run(brightness.Relative(0), control.AllDisplays())
	require.NoError(t, err)

	out := res.Outcomes[0]
	assert.Equal(t, control.Reported, out.Kind)
	assert.Equal(t, uint16(62), out.Old)
	assert.Empty(t, d.writes)
	assert.False(t, res.Failed())
	assert.Equal(t, "display 0 (DELL U2720Q) is set to 62% brightness", out.String())
}

func TestDisplayIndexOutOfRange(t *testing.T) {
	displays := []*fakeDisplay{{value: 10}, {value: 20}, {value: 30}}
	b := &fakeBackend{displays: displays}

	_, err := newRunner(b).Run(brightness.Relative(10), control.DisplayIndex(5))
	assert.ErrorIs(t, err, control.ErrNoSuchDisplay)

	for i, d := range displays {
		assert.Zero(t, d.reads, "display %d must see no I/O", i)
		assert.Empty(t, d.writes, "display %d must see no I/O", i)
		assert.True(t, d.closed, "display %d handle released", i)
	}
}

func TestSingleDisplayTargeted(t *testing.T) {
	displays := []*fakeDisplay{{value: 10}, {value: 20}, {value: 30}}
	b := &fakeBackend{displays: displays}

	res, err := newRunner(b).Run(brightness.Absolute(70), control.DisplayIndex(1))
	require.NoError(t, err)
	require.Len(t, res.Outcomes, 1)

	assert.Equal(t, control.Changed, res.Outcomes[0].Kind)
	assert.Equal(t, 1, res.Outcomes[0].Ordinal)
	assert.Zero(t, displays[0].reads)
	assert.Zero(t, displays[2].reads)
	assert.Equal(t, []uint16{70}, displays[1].writes)
	for i, d := range displays {
		assert.True(t, d.closed, "display %d handle released", i)
	}
}

func TestTargetedReadTimeoutIsFatal(t *testing.T) {
	d := &fakeDisplay{readErr: errTimeout}
	b := &fakeBackend{displays: []*fakeDisplay{d}}

	res, err := newRunner(b).Run(brightness.Relative(10), control.DisplayIndex(0))
	require.NoError(t, err)

	assert.Equal(t, control.Unresponsive, res.Outcomes[0].Kind)
	assert.Zero(t, d.settles, "no settle after a failed read")
	assert.True(t, res.Failed())
}

func TestSweepContinuesPastReadTimeout(t *testing.T) {
	displays := []*fakeDisplay{
		{model: "A", value: 50},
		{model: "B", readErr: errTimeout},
		{model: "C", value: 80},
	}
	b := &fakeBackend{displays: displays}

	res, err := newRunner(b).Run(brightness.Relative(10), control.AllDisplays())
	require.NoError(t, err)
	require.Len(t, res.Outcomes, 3)

	assert.Equal(t, control.Changed, res.Outcomes[0].Kind)
	assert.Equal(t, control.Unresponsive, res.Outcomes[1].Kind)
	assert.Equal(t, control.Changed, res.Outcomes[2].Kind)
	assert.Equal(t, []uint16{60}, displays[0].writes)
	assert.Equal(t, []uint16{90}, displays[2].writes)

	failures := 0
	for _, o := range res.Outcomes {
		if o.Failure() {
			failures++
		}
	}
	assert.Equal(t, 1, failures)

	// A read timeout inside a sweep is a reported skip, not a batch
	// failure, as long as some display responded.
	assert.False(t, res.Failed())
}

func TestSweepFailsWhenNoDisplayResponds(t *testing.T) {
	displays := []*fakeDisplay{
		{readErr: errTimeout},
		{readErr: errTimeout},
	}
	b := &fakeBackend{displays: displays}

	res, err := newRunner(b).Run(brightness.Relative(10), control.AllDisplays())
	require.NoError(t, err)
	assert.True(t, res.Failed())
}

func TestWriteFailureFailsSweepButContinues(t *testing.T) {
	rejected := errors.New("DDC null response")
	displays := []*fakeDisplay{
		{model: "A", value: 50, writeErr: rejected},
		{model: "B", value: 50},
	}
	b := &fakeBackend{displays: displays}

	res, err := newRunner(b).Run(brightness.Relative(10), control.AllDisplays())
	require.NoError(t, err)

	first := res.Outcomes[0]
	assert.Equal(t, control.ChangeFailed, first.Kind)
	assert.Equal(t, uint16(50), first.Old)
	assert.Equal(t, uint16(60), first.New)
	assert.ErrorIs(t, first.Err, rejected)
	assert.Equal(t, 2, displays[0].settles, "settle still runs after a failed write")

	assert.Equal(t, control.Changed, res.Outcomes[1].Kind, "sweep continues past the failure")
	assert.True(t, res.Failed())
}

func TestInvalidChangeRejectedBeforeIO(t *testing.T) {
	d := &fakeDisplay{value: 50}
	b := &fakeBackend{displays: []*fakeDisplay{d}}

	_, err := newRunner(b).Run(brightness.Absolute(150), control.AllDisplays())
	assert.ErrorIs(t, err, brightness.ErrOutOfRange)
	assert.Zero(t, d.reads)
}

func TestEnumerationFailure(t *testing.T) {
	boom := errors.New("no buses")
	_, err := newRunner(&fakeBackend{err: boom}).Run(brightness.Relative(0), control.AllDisplays())
	assert.ErrorIs(t, err, boom)
}

func TestEmptySweepSucceeds(t *testing.T) {
	res, err := newRunner(&fakeBackend{}).Run(brightness.Relative(10), control.AllDisplays())
	require.NoError(t, err)
	assert.Empty(t, res.Outcomes)
	assert.False(t, res.Failed())
}
