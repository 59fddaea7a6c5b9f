package simplex

import (
	"gonum.org/v1/gonum/floats"

	"q.log/bigm/model"
)

// engine holds the working tableau of one solve.
type engine struct {
	cf   *model.CanonicalForm
	opts Options
	tr   *tracer

	c     []float64
	rows  [][]float64
	rhs   []float64
	basis []int
	cost  []float64

	// reduced and value are the stored objective row and its RHS.
	reduced []float64
	value   float64

	history    []*Tableau
	state      State
	iterations int
}

// newEngine builds the initial basic feasible tableau. Each row starts with
// its artificial column if it has one, its slack column otherwise.
func newEngine(cf *model.CanonicalForm, opts Options, tr *tracer) *engine {
	e := &engine{
		cf:    cf,
		opts:  opts,
		tr:    tr,
		c:     cf.Costs(),
		rows:  make([][]float64, cf.NumRows),
		rhs:   make([]float64, cf.NumRows),
		basis: make([]int, cf.NumRows),
		cost:  make([]float64, cf.NumRows),
	}

	for r := range cf.NumRows {
		e.rows[r] = cf.Row(r)
		e.rhs[r] = cf.RHS(r)

		col := cf.RowColumn(r, model.Artificial)
		if col < 0 {
			col = cf.RowColumn(r, model.Slack)
		}
		if col < 0 {
			panic("simplex: constraint row without slack or artificial column")
		}
		e.basis[r] = col
		e.cost[r] = e.c[col]
		tr.add(PhaseInitial, "row %d: basic variable %s with cost %g", r+1, cf.V[col].Name, e.cost[r])
	}

	e.price()
	tr.add(PhaseInitial, "tableau %dx%d, initial F = %g", cf.NumRows, cf.NumCols, e.value)
	return e
}

// price recomputes the objective row from the current basis:
// Δj = c[j] − Σ cost[i]*a[i][j], stored as −Δj when maximizing and Δj when
// minimizing, so both the row and its RHS read in the original objective's sense.
func (e *engine) price() {
	delta := append([]float64(nil), e.c...)
	for i, r := range e.rows {
		floats.AddScaled(delta, -e.cost[i], r)
	}
	value := floats.Dot(e.cost, e.rhs)
	if e.cf.Maximize {
		floats.Scale(-1, delta)
		value = -value
	}
	e.reduced = delta
	e.value = value
}
