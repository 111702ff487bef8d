package pe200_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wfriedl/PE200"
)

const (
	idleRecord  = "A,0.00,0.01,0.0,0.0,0.0,100.0,0\n"
	limitRecord = "B,0,300,999\n"
	shutdownRpt = ",0,0,0,0.00,0,0,0,100,0"
	readyRpt    = ",3,120,30,1.0,25,25,25,25,850"
)

func newTestController(f *fakePort) *pe200.Controller {
	return pe200.New(f, pe200.DefaultLimits, nil)
}

func TestUploadPadsToTenStepsPlusLimits(t *testing.T) {
	f := &fakePort{}
	ctrl := newTestController(f)

	transcript, err := ctrl.Upload(pe200.Isocratic(1.0, pe200.Proportions{25, 25, 25, 25}))
	require.NoError(t, err)
	require.NotEmpty(t, transcript)

	// seize, 10 steps, limits, time base, load, halt
	require.Len(t, f.writes, 15)
	require.Equal(t, "P\n", f.writes[0])
	for i := 1; i <= 10; i++ {
		require.True(t, strings.HasPrefix(f.writes[i], "A,"), "write %d: %q", i, f.writes[i])
	}
	require.Equal(t, "A,1.00,1.00,25.0,25.0,25.0,25.0,0\n", f.writes[1])
	for i := 2; i <= 10; i++ {
		require.Equal(t, idleRecord, f.writes[i])
	}
	require.Equal(t, limitRecord, f.writes[11])
	require.Equal(t, []string{"t\n", "l\n", "H\n"}, f.writes[12:])
}

func TestUploadRejectsElevenSteps(t *testing.T) {
	f := &fakePort{}
	ctrl := newTestController(f)

	steps := make([]pe200.Step, 11)
	for i := range steps {
		steps[i] = pe200.NewStep(float64(i), 1.0, pe200.Proportions{0, 0, 0, 100}, 0)
	}
	_, err := ctrl.Upload(steps)
	require.ErrorIs(t, err, pe200.ErrMethod)
	require.Empty(t, f.writes, "nothing may be transmitted")
}

func TestUploadResetsAndRetriesOnce(t *testing.T) {
	// reject the 3rd step record on the first pass, accept everything after
	f := &fakePort{replies: []string{"ok", "ok", "ok", "9"}}
	ctrl := newTestController(f)

	_, err := ctrl.Upload(pe200.Gradient(10, 1.0, pe200.Proportions{0, 0, 0, 100}, pe200.Proportions{100, 0, 0, 0}, 1))
	require.NoError(t, err)

	require.Equal(t, 1, f.countWrites("\n\n\n"), "exactly one reset")
	require.Equal(t, 2, f.countWrites("P\n"), "control seized once per attempt")
	// first pass: P + 3 records; reset: break + r + H; second pass: P + 11 records + t,l,H
	require.Len(t, f.writes, 22)
	require.Equal(t, []string{"t\n", "l\n", "H\n"}, f.writes[19:])
}

func TestUploadPropagatesSecondRejection(t *testing.T) {
	f := &fakePort{replies: []string{
		"ok", "3", // first pass: seize ok, first record rejected
		"ok", "ok", // reset: release, halt
		"ok", "3", // retry: seize ok, rejected again
		"ok", "ok", // reset: release, halt
	}}
	ctrl := newTestController(f)

	_, err := ctrl.Upload(nil)
	require.ErrorIs(t, err, pe200.ErrBadParam)
	require.Equal(t, 2, f.countWrites("P\n"), "no third attempt")
	require.Equal(t, 0, f.countWrites("t\n"), "trailing commands skipped on failure")
}

func TestStartOnlyFromShutdown(t *testing.T) {
	f := &fakePort{replies: []string{readyRpt}}
	ctrl := newTestController(f)

	require.NoError(t, ctrl.Start())
	require.Equal(t, []string{"e\n"}, f.writes, "start must be skipped outside SHTDN")

	f = &fakePort{replies: []string{shutdownRpt}}
	ctrl = newTestController(f)
	require.NoError(t, ctrl.Start())
	require.Equal(t, []string{"e\n", "S\n"}, f.writes)
}

func TestGradientStopsActiveRun(t *testing.T) {
	replies := []string{readyRpt, "ok"} // state query, stop
	for i := 0; i < 15; i++ {           // seize + 11 records + t,l,H
		replies = append(replies, "ok")
	}
	replies = append(replies, shutdownRpt) // state query inside Start
	f := &fakePort{replies: replies}
	ctrl := newTestController(f)

	err := ctrl.Gradient(10, 1.0, pe200.Proportions{0, 0, 0, 100}, pe200.Proportions{100, 0, 0, 0}, 1)
	require.NoError(t, err)
	require.Equal(t, "e\n", f.writes[0])
	require.Equal(t, "s\n", f.writes[1], "active run must be stopped before programming")
	require.Equal(t, "j\n", f.writes[len(f.writes)-1], "gradient ends with inject")
	require.Contains(t, f.writes, "S\n")
}

func TestFlowProgramsAndStarts(t *testing.T) {
	replies := make([]string, 0, 16)
	for i := 0; i < 15; i++ {
		replies = append(replies, "ok")
	}
	replies = append(replies, shutdownRpt)
	f := &fakePort{replies: replies}
	ctrl := newTestController(f)

	require.NoError(t, ctrl.Flow(1.5, pe200.Proportions{50, 50, 0, 0}))
	require.Equal(t, "S\n", f.writes[len(f.writes)-1])
}

func TestResetSequence(t *testing.T) {
	f := &fakePort{}
	ctrl := newTestController(f)

	require.NoError(t, ctrl.Reset(false))
	require.Equal(t, []string{"\n\n\n", "r\n", "H\n"}, f.writes)
	require.Equal(t, 1, f.drains)

	f = &fakePort{}
	ctrl = newTestController(f)
	require.NoError(t, ctrl.Reset(true))
	require.Equal(t, []string{"\n\n\n", "r\n", "P\n", "H\n"}, f.writes)
}

func TestResetFailureIsFatal(t *testing.T) {
	f := &fakePort{replies: []string{"9"}}
	ctrl := newTestController(f)

	err := ctrl.Reset(false)
	require.ErrorIs(t, err, pe200.ErrFatalReset)
}

func TestStatusIsNeverCached(t *testing.T) {
	f := &fakePort{replies: []string{readyRpt, shutdownRpt}}
	ctrl := newTestController(f)

	state, err := ctrl.State()
	require.NoError(t, err)
	require.Equal(t, pe200.Ready, state)

	state, err = ctrl.State()
	require.NoError(t, err)
	require.Equal(t, pe200.Shutdown, state)
	require.Equal(t, 2, f.countWrites("e\n"))
}
