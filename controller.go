package pe200

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// DefaultLimits are the pressure limits programmed when the caller does
// not configure any.
var DefaultLimits = Limits{Min: 0, Max: 300, Ready: 999}

// Controller drives one Perkin Elmer 200-series quaternary LC pump.
// It owns its Transport exclusively and issues commands one at a time;
// it must not be shared across goroutines without an external lock.
type Controller struct {
	exec   *Executor
	tr     Transport
	limits Limits
	logger *zap.Logger
}

func New(tr Transport, limits Limits, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		exec:   NewExecutor(tr, logger),
		tr:     tr,
		limits: limits,
		logger: logger,
	}
}

// Info queries the pump's version/identity line.
func (c *Controller) Info() (string, error) {
	return c.exec.Execute(cmdInfo, "")
}

// Status queries and parses a fresh status report. Nothing is cached;
// every call goes to the pump.
func (c *Controller) Status() (Report, error) {
	resp, err := c.exec.Execute(cmdStatus, "")
	if err != nil {
		return nil, err
	}
	return ParseReport(resp)
}

// State returns the pump's current run-state code.
func (c *Controller) State() (State, error) {
	report, err := c.Status()
	if err != nil {
		return 0, err
	}
	return report.State()
}

// Pressure returns the current working pressure.
func (c *Controller) Pressure() (int, error) {
	report, err := c.Status()
	if err != nil {
		return 0, err
	}
	return report.Pressure()
}

// RawPressure reads the raw pressure telemetry line.
func (c *Controller) RawPressure() (string, error) {
	return c.exec.Execute(cmdRawPressure, "")
}

// RawRatio reads the raw ratio telemetry line.
func (c *Controller) RawRatio() (string, error) {
	return c.exec.Execute(cmdRawRatio, "")
}

// Start begins executing the loaded method. Only valid from SHTDN;
// in any other state the command is skipped.
func (c *Controller) Start() error {
	state, err := c.State()
	if err != nil {
		return err
	}
	if state != Shutdown {
		c.logger.Debug("start skipped", zap.Stringer("state", state))
		return nil
	}
	_, err = c.exec.Execute(cmdStart, "")
	return err
}

// Inject advances from step 0 to step 1. Valid from EQUIL or READY.
func (c *Controller) Inject() error {
	_, err := c.exec.Execute(cmdInject, "")
	return err
}

// Stop halts flow immediately.
func (c *Controller) Stop() error {
	_, err := c.exec.Execute(cmdStop, "")
	return err
}

// Seize acquires external control of the pump.
func (c *Controller) Seize() error {
	_, err := c.exec.Execute(cmdSeize, "")
	return err
}

// Release relinquishes external control of the pump.
func (c *Controller) Release() error {
	_, err := c.exec.Execute(cmdRelease, "")
	return err
}

// Advance steps forward sequentially through RUN01..RUN19.
func (c *Controller) Advance() error {
	_, err := c.exec.Execute(cmdAdvance, "")
	return err
}

// Resume continues the current method from HLD. From SHTDN it instead
// transitions the pump to EQUIL without starting flow.
func (c *Controller) Resume() error {
	_, err := c.exec.Execute(cmdResume, "")
	return err
}

// Restart safely halts the current method.
func (c *Controller) Restart() error {
	_, err := c.exec.Execute(cmdHalt, "")
	return err
}

// Quit resets the current method to step 0, time 0. Only valid from a
// run state.
func (c *Controller) Quit() error {
	_, err := c.exec.Execute(cmdQuit, "")
	return err
}

// Hold pauses time and gradient for the current method without
// stopping flow. Fails when in SHTDN, EQUIL or READY.
func (c *Controller) Hold() error {
	_, err := c.exec.Execute(cmdHold, "")
	return err
}

// Reset interrupts any in-progress response with a burst of line
// terminators, drains stale input, releases control, optionally
// re-seizes it, and halts the method. A protocol error during this
// sequence is fatal; the pump needs a power cycle.
func (c *Controller) Reset(seize bool) error {
	if _, err := c.tr.Write([]byte("\n\n\n")); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	_ = c.tr.Drain()
	sequence := []byte{cmdRelease}
	if seize {
		sequence = append(sequence, cmdSeize)
	}
	sequence = append(sequence, cmdHalt)
	for _, code := range sequence {
		if _, err := c.exec.Execute(code, ""); err != nil {
			if errors.Is(err, ErrBadCmd) || errors.Is(err, ErrBadParam) {
				return fmt.Errorf("%w: %v", ErrFatalReset, err)
			}
			return err
		}
	}
	return nil
}

// send executes one command and appends its annotated response to the
// upload transcript.
func (c *Controller) send(transcript *strings.Builder, code byte, arg string) error {
	resp, err := c.exec.Execute(code, arg)
	if err != nil {
		return err
	}
	fmt.Fprintf(transcript, "%c: %s\n", code, resp)
	return nil
}

// Upload transfers a full method to the pump: the given steps padded
// with idle filler to exactly MaxSteps, then the pressure-limit record.
// Control is seized first. If the pump rejects any record the pump is
// reset and the whole transfer is retried exactly once; a second
// rejection propagates. After a successful transfer the time base is
// set, the method loaded, and the pump halted ready to run. The
// accumulated command transcript is returned for logging.
func (c *Controller) Upload(steps []Step) (string, error) {
	if len(steps) > MaxSteps {
		return "", fmt.Errorf("%w: got %d", ErrMethod, len(steps))
	}
	records := make([]string, 0, MaxSteps+1)
	for _, s := range steps {
		records = append(records, s.record())
	}
	for len(records) < MaxSteps {
		records = append(records, fillerStep().record())
	}
	records = append(records, c.limits.record())

	var transcript strings.Builder
	var uploadErr error
attempts:
	for attempt := 0; attempt <= 1; attempt++ {
		uploadErr = nil
		if err := c.send(&transcript, cmdSeize, ""); err != nil {
			return transcript.String(), err
		}
		for _, rec := range records {
			err := c.send(&transcript, rec[0], rec[1:])
			if err == nil {
				continue
			}
			if !errors.Is(err, ErrBadCmd) && !errors.Is(err, ErrBadParam) {
				return transcript.String(), err
			}
			c.logger.Warn("method rejected, resetting pump",
				zap.Int("attempt", attempt), zap.Error(err))
			if rerr := c.Reset(false); rerr != nil {
				return transcript.String(), rerr
			}
			uploadErr = err
			continue attempts
		}
		break
	}
	if uploadErr != nil {
		return transcript.String(), uploadErr
	}
	for _, code := range []byte{cmdTimeBase, cmdLoad, cmdHalt} {
		if err := c.send(&transcript, code, ""); err != nil {
			return transcript.String(), err
		}
	}
	return transcript.String(), nil
}

// Flow programs and starts an isocratic method at the given flow rate
// and composition.
func (c *Controller) Flow(rate float64, mix Proportions) error {
	if _, err := c.Upload(Isocratic(rate, mix)); err != nil {
		return err
	}
	return c.Start()
}

// Gradient programs and starts a composition ramp over t minutes. A
// run already in progress is stopped first; after the upload the pump
// is started and injected past the initial hold step.
func (c *Controller) Gradient(t, rate float64, initial, final Proportions, curve int) error {
	state, err := c.State()
	if err != nil {
		return err
	}
	if state != Shutdown {
		if err := c.Stop(); err != nil {
			return err
		}
	}
	if _, err := c.Upload(Gradient(t, rate, initial, final, curve)); err != nil {
		return err
	}
	if err := c.Start(); err != nil {
		return err
	}
	return c.Inject()
}
