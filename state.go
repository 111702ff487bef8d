package pe200

import "fmt"

// State is the pump's run-state code as reported in field 1 of the
// status report. The pump moves through these itself; the driver only
// ever reads them back, so the value is re-queried on every call and
// never cached.
type State int

const (
	Shutdown State = 0
	Equil    State = 2
	Ready    State = 3
	Run01    State = 4
	Run19    State = 22
	Hold     State = 24
)

var stateNames = map[State]string{
	Shutdown: "SHTDN",
	Equil:    "EQUIL",
	Ready:    "READY",
	Hold:     "HLD",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	if s >= Run01 && s <= Run19 {
		return fmt.Sprintf("RUN%02d", int(s)-int(Run01)+1)
	}
	// codes 1 and 23 are reserved by the protocol and carry no name
	return "UNKNOWN"
}

// Running reports whether the code is one of the RUN01..RUN19 states.
func (s State) Running() bool {
	return s >= Run01 && s <= Run19
}
