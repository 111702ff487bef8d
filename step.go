package pe200

import "fmt"

// MaxSteps is the number of step slots in a pump method. The pump
// always stores exactly this many; unused slots are filled with idle
// steps before transmission.
const MaxSteps = 10

// Proportions is the solvent composition %A, %B, %C, %D of a step.
type Proportions [4]float64

// Step is one timed flow/composition record of a method. Curve is the
// composition ramp shape index, 1-9 on the wire (transmitted x10);
// 0 means no curve.
type Step struct {
	Time  float64
	Flow  float64
	Mix   Proportions
	Curve int
}

// NewStep builds a step, recomputing %D so the composition always sums
// to 100 when the supplied proportions do not. Curve is passed through
// untouched; only Gradient clamps it.
func NewStep(t, flow float64, mix Proportions, curve int) Step {
	if mix[0]+mix[1]+mix[2]+mix[3] != 100 {
		mix[3] = 100 - (mix[0] + mix[1] + mix[2])
	}
	return Step{Time: t, Flow: flow, Mix: mix, Curve: curve}
}

// record renders the step as an A command for the wire.
func (s Step) record() string {
	return fmt.Sprintf("A,%.2f,%.2f,%.1f,%.1f,%.1f,%.1f,%d",
		s.Time, s.Flow, s.Mix[0], s.Mix[1], s.Mix[2], s.Mix[3], s.Curve*10)
}

// fillerStep is the idle record used to pad a method to MaxSteps.
func fillerStep() Step {
	return Step{Time: 0.0, Flow: 0.01, Mix: Proportions{0, 0, 0, 100}}
}

// Limits is the trailing pressure-limit record of a method. Ready is
// the threshold the pump uses to judge system readiness before a run.
type Limits struct {
	Min   int
	Max   int
	Ready int
}

func (l Limits) record() string {
	return fmt.Sprintf("B,%d,%d,%d", l.Min, l.Max, l.Ready)
}

// Isocratic builds a single constant-composition step program in slot 1.
func Isocratic(rate float64, mix Proportions) []Step {
	return []Step{NewStep(1.0, rate, mix, 0)}
}

func clampCurve(c int) int {
	if c < 1 {
		return 1
	}
	if c > 9 {
		return 9
	}
	return c
}

// Gradient builds a three-step ramp program: hold the initial
// composition, ramp to the final composition at time t with the given
// curve, then hold the final composition from time 999 onward.
func Gradient(t, rate float64, initial, final Proportions, curve int) []Step {
	return []Step{
		NewStep(1.0, rate, initial, 0),
		NewStep(t, rate, final, clampCurve(curve)),
		NewStep(999, rate, final, 0),
	}
}
