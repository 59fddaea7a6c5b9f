package simplex

import "fmt"

// State is the pivot engine's state. Every state but StateIterating is terminal.
type State int

const (
	StateIterating State = iota
	// StateOptimal is Optimal-Feasible.
	StateOptimal
	// StateInfeasible is Optimal-Infeasible: optimal for the Big-M problem with artificial mass left in the basis.
	StateInfeasible
	StateUnbounded
	StateIterationLimit
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIterating:
		return "iterating"
	case StateOptimal:
		return "optimal"
	case StateInfeasible:
		return "infeasible"
	case StateUnbounded:
		return "unbounded"
	case StateIterationLimit:
		return "iteration limit exceeded"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Err maps terminal states to their sentinel error; nil for StateOptimal.
func (s State) Err() error {
	switch s {
	case StateOptimal:
		return nil
	case StateInfeasible:
		return ErrInfeasible
	case StateUnbounded:
		return ErrUnbounded
	case StateIterationLimit:
		return ErrNonConvergent
	}
	return ErrInternal
}
