package report

import (
	"encoding/csv"
	"fmt"
	"io"

	"q.log/bigm/model"
	"q.log/bigm/simplex"
)

// WriteCSV exports a whole run: problem, tableaux, solution and resource usage.
// Sections are separated by an empty record.
func WriteCSV(w io.Writer, p *model.Problem, sol *simplex.Solution, places int32) error {
	cw := csv.NewWriter(w)
	num := func(v float64) string { return Number(v, places) }

	direction := "min"
	if p.Maximize {
		direction = "max"
	}
	obj := []string{"objective", direction}
	for _, c := range p.Objective {
		obj = append(obj, num(c.Value))
	}
	records := [][]string{obj}
	for _, c := range p.Constraints {
		rec := []string{"constraint", c.Name}
		for _, v := range c.Coefficients {
			rec = append(rec, num(v))
		}
		records = append(records, append(rec, c.Relation.String(), num(c.RHS)))
	}
	records = append(records, nil)

	for _, t := range sol.History {
		header := append([]string{t.Name, "cost"}, t.Columns...)
		records = append(records, append(header, "rhs", "theta"))
		for _, r := range t.Rows {
			rec := []string{r.Basis, ""}
			if !r.Objective {
				rec[1] = num(r.Cost)
			}
			for _, v := range r.Coefficients {
				rec = append(rec, num(v))
			}
			theta := ""
			if r.Theta != nil {
				theta = num(*r.Theta)
			}
			records = append(records, append(rec, num(r.RHS), theta))
		}
		records = append(records, nil)
	}

	records = append(records, []string{"status", sol.Status.String()})
	if sol.Status == simplex.StateOptimal {
		records = append(records, []string{"F", num(sol.OptimalValue)})
		for j, x := range sol.DecisionValues {
			records = append(records, []string{fmt.Sprintf("x%d", j+1), num(x)})
		}
		for j, s := range sol.SlackValues {
			records = append(records, []string{fmt.Sprintf("s%d", j+1), num(s)})
		}
		records = append(records, nil, []string{"constraint", "relation", "used", "rhs", "remaining", "status"})
		for _, r := range sol.Resources {
			records = append(records, []string{
				r.Name, r.Relation.String(), num(r.Used), num(r.RHS), num(r.Remaining), r.Status.String(),
			})
		}
	}

	for _, rec := range records {
		if rec == nil {
			rec = []string{""}
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
