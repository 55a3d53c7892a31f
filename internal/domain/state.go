package domain

// Step is the current phase of the multi-turn order flow.
type Step int

const (
	StepOrdering Step = iota
	StepConfirmation
	StepAwaitingName
	StepAwaitingAddress
)

// String returns the wire name of the step.
func (s Step) String() string {
	switch s {
	case StepConfirmation:
		return "confirmation"
	case StepAwaitingName:
		return "awaiting_name"
	case StepAwaitingAddress:
		return "awaiting_address"
	default:
		return "ordering"
	}
}

// stepNames maps wire names to Step values.
var stepNames = map[string]Step{
	"ordering":         StepOrdering,
	"confirmation":     StepConfirmation,
	"awaiting_name":    StepAwaitingName,
	"awaiting_address": StepAwaitingAddress,
}

// StepFromString converts a wire name to a Step. The boolean is false for
// unrecognized names, in which case StepOrdering is returned.
func StepFromString(name string) (Step, bool) {
	s, ok := stepNames[name]
	if !ok {
		return StepOrdering, false
	}
	return s, true
}

// CartEntry is one (item id, quantity) pair of the order in progress.
type CartEntry struct {
	ID       string
	Quantity int
}

// CustomerInfo holds delivery details collected during the conversation.
// Every field is optional and filled incrementally.
type CustomerInfo struct {
	Name          string
	Address       string
	Phone         string
	Notes         string
	PaymentMethod string
}

// State is the conversation state carried by the caller between turns.
// The engine treats it as a value: it receives one and returns a new one.
type State struct {
	Cart            []CartEntry
	Customer        CustomerInfo
	Step            Step
	PendingFinalize bool
	// Extra holds blob keys the engine does not understand. They are
	// handed back untouched.
	Extra map[string]any
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := s
	if s.Cart != nil {
		out.Cart = make([]CartEntry, len(s.Cart))
		copy(out.Cart, s.Cart)
	}
	if s.Extra != nil {
		out.Extra = make(map[string]any, len(s.Extra))
		for k, v := range s.Extra {
			out.Extra[k] = v
		}
	}
	return out
}

// Reply is the outcome of one conversation turn.
type Reply struct {
	Text  string
	State State
	// HandoffLink is set only when checkout succeeded on this turn.
	HandoffLink string
}
