package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"q.log/bigm/model"
	"q.log/bigm/simplex"
)

// WriteCanonical prints c, A and b of the canonical form.
func WriteCanonical(w io.Writer, cf *model.CanonicalForm) error {
	if _, err := fmt.Fprintf(w, "variables: %s\n", strings.Join(cf.Names(), " ")); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "c = %v\n", mat.Formatted(cf.C.T(), mat.Prefix("    "), mat.Squeeze())); err != nil {
		return err
	}
	if cf.A == nil {
		_, err := fmt.Fprintln(w, "no constraints")
		return err
	}
	if _, err := fmt.Fprintf(w, "A = %v\n", mat.Formatted(cf.A, mat.Prefix("    "), mat.Squeeze())); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "b = %v\n", mat.Formatted(cf.B, mat.Prefix("    "), mat.Squeeze()))
	return err
}

// WriteTableaux prints every tableau of the history as an aligned grid.
// The pivot chosen on a tableau is marked with brackets.
func WriteTableaux(w io.Writer, history []*simplex.Tableau, places int32) error {
	for k, t := range history {
		pivotRow, pivotCol := -1, -1
		if k+1 < len(history) {
			pivotRow, pivotCol = history[k+1].PivotRow, history[k+1].PivotColumn
		}
		if err := writeTableau(w, t, pivotRow, pivotCol, places); err != nil {
			return err
		}
	}
	return nil
}

func writeTableau(w io.Writer, t *simplex.Tableau, pivotRow, pivotCol int, places int32) error {
	title := t.Name
	if t.Optimal {
		title += " (optimal)"
	}
	if _, err := fmt.Fprintf(w, "%s\n", title); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	header := append([]string{"basis", "cost"}, t.Columns...)
	header = append(header, "rhs", "theta")
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for i, r := range t.Rows {
		cells := make([]string, 0, len(header))
		cost := ""
		if !r.Objective {
			cost = Number(r.Cost, places)
		}
		cells = append(cells, r.Basis, cost)
		for j, v := range r.Coefficients {
			cell := Number(v, places)
			if i == pivotRow && j == pivotCol {
				cell = "[" + cell + "]"
			}
			cells = append(cells, cell)
		}
		theta := ""
		if r.Theta != nil {
			theta = Number(*r.Theta, places)
		}
		cells = append(cells, Number(r.RHS, places), theta)
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

// Outcome is a one-line description of how the solve ended.
func Outcome(sol *simplex.Solution) string {
	switch sol.Status {
	case simplex.StateOptimal:
		return "optimal solution found"
	case simplex.StateInfeasible:
		return "no feasible solution: artificial variables remain in the optimal basis"
	case simplex.StateUnbounded:
		return "objective is unbounded"
	case simplex.StateIterationLimit:
		return fmt.Sprintf("no convergence after %d iterations", sol.Iterations)
	}
	return "solver failed: " + sol.Status.String()
}

// WriteSummary prints the outcome, variable values and resource usage.
func WriteSummary(w io.Writer, p *model.Problem, sol *simplex.Solution, places int32) error {
	direction := "minimize"
	if p.Maximize {
		direction = "maximize"
	}
	if _, err := fmt.Fprintf(w, "%s: %s\n", direction, Outcome(sol)); err != nil {
		return err
	}
	if sol.Status != simplex.StateOptimal {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "F\t%s\n", Number(sol.OptimalValue, places))
	for j, x := range sol.DecisionValues {
		fmt.Fprintf(tw, "x%d\t%s\n", j+1, Number(x, places))
	}
	for j, s := range sol.SlackValues {
		fmt.Fprintf(tw, "s%d\t%s\n", j+1, Number(s, places))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "constraint\trelation\tused\trhs\tremaining\tstatus")
	for _, r := range sol.Resources {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", r.Name, r.Relation,
			Number(r.Used, places), Number(r.RHS, places), Number(r.Remaining, places), r.Status)
	}
	return tw.Flush()
}
