// Package simplex solves linear programs with the tableau simplex method,
// using Big-M artificial variables for equality and >= constraints.
package simplex

import (
	"github.com/pkg/errors"

	"q.log/bigm/model"
)

// Solution is the result of one Solve call. It is never mutated after Solve returns.
type Solution struct {
	Status      State
	IsOptimal   bool
	IsFeasible  bool
	IsUnbounded bool

	// DecisionValues, SlackValues, OptimalValue and Resources are only set
	// when Status is StateOptimal.
	DecisionValues []float64
	SlackValues    []float64
	OptimalValue   float64
	Resources      []ResourceUsage

	// Iterations is the number of pivots performed.
	Iterations int
	History    []*Tableau
	Canonical  *model.CanonicalForm
	Trace      Trace
}

// Err returns nil for an Optimal-Feasible run and the matching sentinel otherwise.
func (s *Solution) Err() error {
	return s.Status.Err()
}

// Final returns the last tableau, or nil if none was built.
func (s *Solution) Final() *Tableau {
	if len(s.History) == 0 {
		return nil
	}
	return s.History[len(s.History)-1]
}

var canonicalize = model.Canonicalize

// Solve runs the full pipeline on p. The only error it returns is
// model.ErrInvalidProblem; every other outcome is reported by the Solution.
func Solve(p *model.Problem, opts ...Option) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return solve(p, newOptions(opts)), nil
}

func solve(p *model.Problem, opts Options) (sol *Solution) {
	tr := newTracer(opts.Logger)
	sol = &Solution{}
	var e *engine

	defer func() {
		r := recover()
		if r == nil {
			return
		}
		sol = failed(sol, e, tr, errors.Wrapf(ErrInternal, "%v", r))
	}()

	cf, err := canonicalize(p, opts.BigM)
	if err != nil {
		return failed(sol, nil, tr, errors.Wrap(err, ErrInternal.Error()))
	}
	sol.Canonical = cf
	tr.add(PhaseCanonical, "%d variables: %d decision, %d slack/surplus, %d artificial",
		cf.NumCols, cf.NumDecision, cf.NumSlack, cf.NumArtificial)
	for c := cf.NumDecision; c < cf.NumCols; c++ {
		v := cf.V[c]
		tr.add(PhaseCanonical, "constraint %d (%s): added %s variable %s with coefficient %g",
			v.Row+1, p.Constraints[v.Row].Relation, v.Kind, v.Name, cf.A.At(v.Row, c))
	}
	for r, c := range p.Constraints {
		if c.RHS < 0 {
			tr.add(PhaseCanonical, "constraint %d (%s) has negative rhs %g; the initial basis is not feasible", r+1, c.Name, c.RHS)
		}
	}

	e = newEngine(cf, opts, tr)
	e.run()
	e.extract(p, sol)

	sol.Status = e.state
	sol.IsOptimal = e.state == StateOptimal || e.state == StateInfeasible
	sol.IsFeasible = e.state == StateOptimal
	sol.IsUnbounded = e.state == StateUnbounded
	sol.Iterations = e.iterations
	sol.History = e.history
	sol.Trace = tr.entries
	return sol
}

// failed builds the Solution of an aborted run, keeping whatever history exists.
func failed(sol *Solution, e *engine, tr *tracer, err error) *Solution {
	tr.add(PhaseFailure, "%+v", err)
	out := &Solution{Status: StateFailed, Canonical: sol.Canonical, Trace: tr.entries}
	if e != nil {
		out.History = e.history
		out.Iterations = e.iterations
	}
	return out
}
