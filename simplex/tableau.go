package simplex

import (
	"fmt"

	"q.log/bigm/model"
)

// ObjectiveTag is the basis label of the objective row.
const ObjectiveTag = "F"

// Row is one line of a tableau.
type Row struct {
	// Basis is the name of the basic variable, or ObjectiveTag.
	Basis string
	// Column is the basic variable's column, -1 on the objective row.
	Column    int
	Kind      model.ColumnKind
	Objective bool
	// Cost is the basic variable's cost; zero on the objective row.
	Cost         float64
	Coefficients []float64
	RHS          float64
	// Theta is the ratio-test value shown for the row, if any.
	Theta *float64
}

// Tableau is an immutable snapshot of one simplex iteration.
type Tableau struct {
	Name    string
	Rows    []Row
	Columns []string
	// PivotRow and PivotColumn locate the pivot in the previous tableau that
	// produced this one; both are -1 for the initial tableau.
	PivotRow    int
	PivotColumn int
	Optimal     bool
}

// Objective returns the objective row, always the last one.
func (t *Tableau) Objective() Row {
	return t.Rows[len(t.Rows)-1]
}

// Constraints returns the constraint rows.
func (t *Tableau) Constraints() []Row {
	return t.Rows[:len(t.Rows)-1]
}

// Basis lists the basic variable names row by row.
func (t *Tableau) Basis() []string {
	rows := t.Constraints()
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Basis
	}
	return out
}

func tableauName(k int) string {
	if k == 0 {
		return "Initial tableau"
	}
	return fmt.Sprintf("Tableau %d", k+1)
}

// snapshot copies the working state into a new Tableau.
func (e *engine) snapshot(pivotRow, pivotCol int, optimal bool, theta []*float64) *Tableau {
	t := &Tableau{
		Name:        tableauName(len(e.history)),
		Columns:     e.cf.Names(),
		PivotRow:    pivotRow,
		PivotColumn: pivotCol,
		Optimal:     optimal,
		Rows:        make([]Row, 0, len(e.rows)+1),
	}
	for i, r := range e.rows {
		col := e.basis[i]
		row := Row{
			Basis:        e.cf.V[col].Name,
			Column:       col,
			Kind:         e.cf.V[col].Kind,
			Cost:         e.cost[i],
			Coefficients: append([]float64(nil), r...),
			RHS:          e.rhs[i],
		}
		if theta != nil {
			row.Theta = theta[i]
		}
		t.Rows = append(t.Rows, row)
	}
	t.Rows = append(t.Rows, Row{
		Basis:        ObjectiveTag,
		Column:       -1,
		Objective:    true,
		Coefficients: append([]float64(nil), e.reduced...),
		RHS:          e.value,
	})
	return t
}
