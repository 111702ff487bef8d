package pe200

import (
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Transport is the line-delimited serial channel to the pump. ReadLine
// returns the next response line, or an empty string when the read
// times out. Drain discards any buffered unread input.
type Transport interface {
	io.Writer
	ReadLine() (string, error)
	Drain() error
}

// Protocol command codes.
const (
	cmdInfo        = 'I'
	cmdSeize       = 'P'
	cmdRelease     = 'r'
	cmdStatus      = 'e'
	cmdStart       = 'S'
	cmdInject      = 'j'
	cmdStop        = 's'
	cmdAdvance     = 'K'
	cmdResume      = 'J'
	cmdHalt        = 'H'
	cmdQuit        = 'Q'
	cmdHold        = 'k'
	cmdTimeBase    = 't'
	cmdLoad        = 'l'
	cmdRawPressure = 'a'
	cmdRawRatio    = 'c'
)

// Device response codes.
const (
	respBadParam = "3"
	respBadCmd   = "9"
)

// settleDelay is the pump's protocol settle time between writing a
// command and reading its response.
const settleDelay = 10 * time.Millisecond

// telemetry reports whether code is one of the raw telemetry queries,
// for which a literal 3 response is data rather than an error.
func telemetry(code byte) bool {
	return code == cmdRawPressure || code == cmdRawRatio
}

// Executor sends single commands to the pump and classifies responses.
type Executor struct {
	tr     Transport
	logger *zap.Logger
}

func NewExecutor(tr Transport, logger *zap.Logger) *Executor {
	return &Executor{tr: tr, logger: logger}
}

// Execute writes code+arg as one line, waits out the settle delay, and
// reads the response, retrying the read once if the first window comes
// back empty. On an error response any buffered input is drained so
// stale bytes cannot corrupt the next exchange.
func (e *Executor) Execute(code byte, arg string) (string, error) {
	if _, err := fmt.Fprintf(e.tr, "%c%s\n", code, arg); err != nil {
		return "", fmt.Errorf("write %c command: %w", code, err)
	}
	time.Sleep(settleDelay)
	resp, err := e.tr.ReadLine()
	if err != nil {
		return "", fmt.Errorf("read %c response: %w", code, err)
	}
	resp = strings.TrimSpace(resp)
	if resp == "" {
		// slow responses sometimes miss the first read window
		resp, err = e.tr.ReadLine()
		if err != nil {
			return "", fmt.Errorf("read %c response: %w", code, err)
		}
		resp = strings.TrimSpace(resp)
	}
	switch {
	case resp == respBadCmd:
		_ = e.tr.Drain()
		return "", fmt.Errorf("%c%s: %w", code, arg, ErrBadCmd)
	case resp == respBadParam && !telemetry(code):
		_ = e.tr.Drain()
		return "", fmt.Errorf("%c%s: %w", code, arg, ErrBadParam)
	}
	e.logger.Debug("pump response",
		zap.String("cmd", fmt.Sprintf("%c%s", code, arg)),
		zap.String("resp", resp))
	return resp, nil
}
