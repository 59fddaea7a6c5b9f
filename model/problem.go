package model

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidProblem is returned when a problem is structurally unusable.
var ErrInvalidProblem = errors.New("model: invalid problem")

// Relation is the comparison of a constraint's left side with its RHS.
type Relation int

const (
	LE Relation = iota
	EQ
	GE
)

func (r Relation) String() string {
	switch r {
	case LE:
		return "<="
	case EQ:
		return "="
	case GE:
		return ">="
	}
	return fmt.Sprintf("Relation(%d)", int(r))
}

// ParseRelation accepts the symbolic and mnemonic spellings of a relation.
func ParseRelation(s string) (Relation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "<=", "≤", "le", "l":
		return LE, nil
	case "=", "==", "eq", "e":
		return EQ, nil
	case ">=", "≥", "ge", "g":
		return GE, nil
	}
	return 0, fmt.Errorf("%w: unknown relation %q", ErrInvalidProblem, s)
}

// Coefficient is one objective term. Index is 1-based.
type Coefficient struct {
	Index int
	Value float64
}

type Constraint struct {
	Name         string
	Coefficients []float64
	Relation     Relation
	RHS          float64
}

// Problem is a linear program over non-negative variables.
type Problem struct {
	Maximize    bool
	Objective   []Coefficient
	Constraints []Constraint
}

// NewProblem returns a problem with the given objective coefficients, x1 first.
func NewProblem(maximize bool, objective ...float64) *Problem {
	p := &Problem{Maximize: maximize}
	for i, v := range objective {
		p.Objective = append(p.Objective, Coefficient{Index: i + 1, Value: v})
	}
	return p
}

// AddConstraint appends a constraint. An empty name is replaced by "Constraint k".
func (p *Problem) AddConstraint(name string, coefficients []float64, rel Relation, rhs float64) {
	if name == "" {
		name = fmt.Sprintf("Constraint %d", len(p.Constraints)+1)
	}
	p.Constraints = append(p.Constraints, Constraint{
		Name:         name,
		Coefficients: append([]float64(nil), coefficients...),
		Relation:     rel,
		RHS:          rhs,
	})
}

func (p *Problem) NumVariables() int {
	return len(p.Objective)
}

// ObjectiveValues returns the objective coefficients in variable order.
func (p *Problem) ObjectiveValues() []float64 {
	out := make([]float64, len(p.Objective))
	for i, c := range p.Objective {
		out[i] = c.Value
	}
	return out
}

// Validate checks the structural invariants the solver relies on.
func (p *Problem) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil problem", ErrInvalidProblem)
	}
	n := len(p.Objective)
	if n == 0 {
		return fmt.Errorf("%w: objective has no variables", ErrInvalidProblem)
	}
	for i, c := range p.Objective {
		if c.Index != i+1 {
			return fmt.Errorf("%w: objective term %d has index %d", ErrInvalidProblem, i+1, c.Index)
		}
		if !finite(c.Value) {
			return fmt.Errorf("%w: objective coefficient x%d is not finite", ErrInvalidProblem, i+1)
		}
	}
	for i, c := range p.Constraints {
		if len(c.Coefficients) != n {
			return fmt.Errorf("%w: constraint %d (%s) has %d coefficients, objective has %d",
				ErrInvalidProblem, i+1, c.Name, len(c.Coefficients), n)
		}
		if c.Relation < LE || c.Relation > GE {
			return fmt.Errorf("%w: constraint %d (%s) has unknown relation %d", ErrInvalidProblem, i+1, c.Name, int(c.Relation))
		}
		if !finite(c.RHS) {
			return fmt.Errorf("%w: constraint %d (%s) has non-finite rhs", ErrInvalidProblem, i+1, c.Name)
		}
		for j, v := range c.Coefficients {
			if !finite(v) {
				return fmt.Errorf("%w: constraint %d (%s) coefficient x%d is not finite", ErrInvalidProblem, i+1, c.Name, j+1)
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
