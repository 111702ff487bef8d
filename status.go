package pe200

import (
	"fmt"
	"strconv"
	"strings"
)

// Report field positions in the comma-separated status response.
// Fields 0 and beyond 9 are reserved by the protocol and left unparsed.
const (
	fieldState     = 1
	fieldTotalTime = 2
	fieldStepTime  = 3
	fieldFlow      = 4
	fieldPctA      = 5
	fieldPctB      = 6
	fieldPctC      = 7
	fieldPctD      = 8
	fieldPressure  = 9

	reportFields = 10
)

// Report is one status response from the pump, split into its fixed
// comma-separated fields.
type Report []string

// ParseReport splits a raw status line into its fields.
func ParseReport(line string) (Report, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < reportFields {
		return nil, fmt.Errorf("status report has %d fields, want %d: %q", len(fields), reportFields, line)
	}
	return Report(fields), nil
}

func (r Report) intField(i int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(r[i]))
	if err != nil {
		return 0, fmt.Errorf("status field %d: %w", i, err)
	}
	return v, nil
}

// State returns the run-state code from field 1.
func (r Report) State() (State, error) {
	v, err := r.intField(fieldState)
	return State(v), err
}

// Pressure returns the working pressure from field 9.
func (r Report) Pressure() (int, error) {
	return r.intField(fieldPressure)
}

// TotalTime returns the total elapsed method time from field 2.
func (r Report) TotalTime() string { return r[fieldTotalTime] }

// StepTime returns the elapsed time within the current step from field 3.
func (r Report) StepTime() string { return r[fieldStepTime] }

// Flow returns the flow rate field.
func (r Report) Flow() string { return r[fieldFlow] }

// Proportions returns the %A..%D composition fields.
func (r Report) Proportions() [4]string {
	return [4]string{r[fieldPctA], r[fieldPctB], r[fieldPctC], r[fieldPctD]}
}
