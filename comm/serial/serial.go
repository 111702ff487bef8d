package serial

import (
	"errors"
	"strings"
	"time"

	"go.bug.st/serial"
)

// Line settings for the 200-series pump. The protocol runs at a fixed
// 2400 baud with one stop bit.
const (
	Baud        = 2400
	readTimeout = 250 * time.Millisecond
)

var NoPump = errors.New("no pump found on any serial port")

// Port is a line-oriented serial connection to the pump. The protocol
// is strictly half duplex: one command line out, one response line
// back, so reads block at most one timeout window.
type Port struct {
	port serial.Port
}

func ListPorts() ([]string, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}
	return ports, nil
}

func OpenPort(port string, baud int) (*Port, error) {
	p, err := serial.Open(port, &serial.Mode{
		BaudRate: baud,
		Parity:   serial.NoParity,
		DataBits: 8,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}

	err = p.SetReadTimeout(readTimeout)
	if err != nil {
		return nil, err
	}
	return &Port{port: p}, nil
}

func (p *Port) Close() error {
	return p.port.Close()
}

func (p *Port) Write(data []byte) (int, error) {
	return p.port.Write(data)
}

// ReadLine accumulates bytes until a newline arrives or the read
// timeout elapses. On timeout whatever arrived so far is returned,
// which is the empty string when the pump stayed silent.
func (p *Port) ReadLine() (string, error) {
	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := p.port.Read(buf)
		if err != nil {
			return "", err
		}
		if n == 0 {
			return line.String(), nil
		}
		if buf[0] == '\n' {
			return line.String(), nil
		}
		line.WriteByte(buf[0])
	}
}

// Drain discards any unread input buffered on the port.
func (p *Port) Drain() error {
	return p.port.ResetInputBuffer()
}

// Probe opens a candidate device at the pump's line settings, sends an
// identity query and keeps the port open if the reply looks like a
// 200-series pump.
func Probe(name string) (*Port, error) {
	p, err := OpenPort(name, Baud)
	if err != nil {
		return nil, err
	}
	if _, err := p.Write([]byte("I\n")); err != nil {
		_ = p.Close()
		return nil, err
	}
	line, err := p.ReadLine()
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	if !strings.Contains(line, "Version") {
		_ = p.Close()
		return nil, NoPump
	}
	return p, nil
}

// Find probes every serial port on the host and returns the first one
// that identifies as a pump, along with its device name.
func Find() (*Port, string, error) {
	ports, err := ListPorts()
	if err != nil {
		return nil, "", err
	}
	for _, name := range ports {
		p, err := Probe(name)
		if err != nil {
			continue
		}
		return p, name, nil
	}
	return nil, "", NoPump
}
