package interaction

import (
	"math"
	"strconv"
)

// Signal marks that an event occurred. It carries no payload.
type Signal struct{}

// EventID selects which class of occurrence on an EventSource to observe.
type EventID string

const (
	PrimaryActivation EventID = "primary-activation"
	ValueChanged      EventID = "value-changed"
	EditingDidEnd     EventID = "editing-did-end"
)

// Demand is the hint a Subscriber returns to say how many more signals it wants.
// Publishers in this package are push-only and never gate delivery on it.
type Demand struct {
	n int
}

var (
	// Unlimited asks for every signal the source will ever produce.
	Unlimited = Demand{n: math.MaxInt}

	// None asks for no additional signals.
	None = Demand{}
)

// Max returns a demand for at most n signals. Negative values are treated as zero.
func Max(n int) Demand {
	if n < 0 {
		n = 0
	}
	return Demand{n: n}
}

// Unlimited reports whether d has no upper bound.
func (d Demand) Unlimited() bool {
	return d.n == math.MaxInt
}

// Count returns the bounded count, or math.MaxInt when unlimited.
func (d Demand) Count() int {
	return d.n
}

// Add combines two demands, saturating at Unlimited.
func (d Demand) Add(o Demand) Demand {
	if d.Unlimited() || o.Unlimited() || d.n > math.MaxInt-o.n {
		return Unlimited
	}
	return Demand{n: d.n + o.n}
}

func (d Demand) String() string {
	if d.Unlimited() {
		return "unlimited"
	}
	return "max(" + strconv.Itoa(d.n) + ")"
}
