package simplex

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"q.log/bigm/model"
)

// run pivots until the engine reaches a terminal state. Every tableau it
// visits is appended to the history, including the terminal one.
func (e *engine) run() {
	pivotRow, pivotCol := -1, -1
	for iter := 0; ; iter++ {
		e.tr.add(PhaseIteration, "iteration %d: F = %g", iter+1, e.value)

		col := e.entering()
		if col < 0 {
			e.history = append(e.history, e.snapshot(pivotRow, pivotCol, true, nil))
			e.classify()
			return
		}
		e.tr.add(PhaseIteration, "entering column %s (estimate %g)", e.cf.V[col].Name, e.reduced[col])

		row, theta := e.leaving(col)
		e.history = append(e.history, e.snapshot(pivotRow, pivotCol, false, theta))
		if row < 0 {
			e.state = StateUnbounded
			e.tr.add(PhaseTermination, "no positive coefficient in column %s: problem is unbounded", e.cf.V[col].Name)
			return
		}
		if iter >= e.opts.MaxIterations {
			e.state = StateIterationLimit
			e.tr.add(PhaseTermination, "iteration limit %d exceeded", e.opts.MaxIterations)
			return
		}

		e.tr.add(PhaseIteration, "leaving row %d (%s), theta = %g, pivot element %g",
			row+1, e.cf.V[e.basis[row]].Name, *theta[row], e.rows[row][col])
		e.pivot(row, col)
		e.iterations++
		pivotRow, pivotCol = row, col
	}
}

// entering returns the improving column, or -1 when the tableau is optimal.
// Artificial columns are never candidates, so an artificial variable that
// left the basis stays out. Ties within epsilon keep the first column found.
func (e *engine) entering() int {
	eps := e.opts.Epsilon
	limit := e.cf.NumDecision + e.cf.NumSlack
	col := -1
	best := 0.0
	for j := range limit {
		v := e.reduced[j]
		if e.cf.Maximize {
			if v > eps && (col < 0 || v > best+eps) {
				col, best = j, v
			}
		} else if v < -eps && (col < 0 || v < best-eps) {
			col, best = j, v
		}
	}
	return col
}

// leaving runs the minimum ratio test on column col. It returns -1 when no
// row has a positive coefficient. The ratio of each eligible row is returned
// for display.
func (e *engine) leaving(col int) (int, []*float64) {
	eps := e.opts.Epsilon
	theta := make([]*float64, len(e.rows))
	row := -1
	best := math.Inf(1)
	for i, r := range e.rows {
		a := r[col]
		if a <= eps {
			continue
		}
		ratio := e.rhs[i] / a
		theta[i] = &ratio
		if row < 0 || ratio < best-eps {
			row, best = i, ratio
		}
	}
	return row, theta
}

// pivot performs Gauss-Jordan elimination on (row, col) and reprices the
// objective row from the new basis instead of eliminating through it.
func (e *engine) pivot(row, col int) {
	pr := e.rows[row]
	p := pr[col]
	floats.Scale(1/p, pr)
	e.rhs[row] /= p
	pr[col] = 1

	for i, r := range e.rows {
		if i == row {
			continue
		}
		factor := r[col]
		if factor == 0 {
			continue
		}
		floats.AddScaled(r, -factor, pr)
		e.rhs[i] -= factor * e.rhs[row]
		r[col] = 0
	}

	e.basis[row] = col
	e.cost[row] = e.c[col]
	e.price()
}

// classify decides between Optimal-Feasible and Optimal-Infeasible.
func (e *engine) classify() {
	for i, col := range e.basis {
		if e.cf.V[col].Kind == model.Artificial && math.Abs(e.rhs[i]) > e.opts.Epsilon {
			e.state = StateInfeasible
			e.tr.add(PhaseTermination, "optimal, but artificial %s = %g is still basic: no feasible point", e.cf.V[col].Name, e.rhs[i])
			return
		}
	}
	e.state = StateOptimal
	e.tr.add(PhaseTermination, "optimal after %d iterations, F = %g", e.iterations, e.value)
}
