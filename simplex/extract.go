package simplex

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"q.log/bigm/model"
)

// BindingTolerance is the slack below which a constraint counts as binding.
const BindingTolerance = 1e-6

type ResourceStatus int

const (
	Binding ResourceStatus = iota
	// Under means the left side is below the RHS.
	Under
	// Over means the left side is above the RHS.
	Over
)

func (s ResourceStatus) String() string {
	switch s {
	case Binding:
		return "binding"
	case Under:
		return "under"
	case Over:
		return "over"
	}
	return fmt.Sprintf("ResourceStatus(%d)", int(s))
}

// ResourceUsage reports how much of a constraint's RHS the solution uses.
type ResourceUsage struct {
	Name      string
	Relation  model.Relation
	RHS       float64
	Used      float64
	Remaining float64
	Status    ResourceStatus
}

// extract reads the terminal tableau into sol. Only Optimal-Feasible runs
// carry values; basic artificial variables are ignored.
func (e *engine) extract(p *model.Problem, sol *Solution) {
	if e.state != StateOptimal {
		e.tr.add(PhaseExtraction, "no solution extracted: %s", e.state)
		return
	}

	sol.DecisionValues = make([]float64, e.cf.NumDecision)
	sol.SlackValues = make([]float64, e.cf.NumSlack)
	for i, col := range e.basis {
		v := e.cf.V[col]
		value := e.rhs[i]
		if value < 0 {
			if value < -e.opts.Epsilon {
				e.tr.add(PhaseExtraction, "basic %s has negative value %g, clamped to 0", v.Name, value)
			}
			value = 0
		}
		switch v.Kind {
		case model.Decision:
			sol.DecisionValues[v.Ordinal] = value
		case model.Slack:
			sol.SlackValues[v.Ordinal] = value
		}
	}

	sol.OptimalValue = floats.Dot(p.ObjectiveValues(), sol.DecisionValues)
	e.tr.add(PhaseExtraction, "optimal value F = %g", sol.OptimalValue)
	for j, x := range sol.DecisionValues {
		e.tr.add(PhaseExtraction, "x%d = %g", j+1, x)
	}
	for j, s := range sol.SlackValues {
		e.tr.add(PhaseExtraction, "s%d = %g", j+1, s)
	}

	sol.Resources = Resources(p, sol.DecisionValues)
	for _, r := range sol.Resources {
		e.tr.add(PhaseExtraction, "%s: used %g of %g (%s)", r.Name, r.Used, r.RHS, r.Status)
	}
}

// Resources evaluates every constraint of p at x.
func Resources(p *model.Problem, x []float64) []ResourceUsage {
	out := make([]ResourceUsage, len(p.Constraints))
	for i, c := range p.Constraints {
		used := floats.Dot(c.Coefficients, x)
		remaining := c.RHS - used
		status := Binding
		switch {
		case math.Abs(remaining) <= BindingTolerance:
		case remaining > 0:
			status = Under
		default:
			status = Over
		}
		out[i] = ResourceUsage{
			Name:      c.Name,
			Relation:  c.Relation,
			RHS:       c.RHS,
			Used:      used,
			Remaining: remaining,
			Status:    status,
		}
	}
	return out
}
