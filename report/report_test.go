package report_test

import (
	"bytes"
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/bigm/instance"
	"q.log/bigm/model"
	"q.log/bigm/report"
	"q.log/bigm/simplex"
)

func solved(t *testing.T) (*model.Problem, *simplex.Solution) {
	t.Helper()
	p := instance.Example()
	sol, err := simplex.Solve(p)
	require.NoError(t, err)
	require.Equal(t, simplex.StateOptimal, sol.Status)
	return p, sol
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "2.5", report.Number(2.5, 4))
	assert.Equal(t, "0.33", report.Number(1.0/3, 2))
	assert.Equal(t, "0", report.Number(math.Copysign(0, -1), 2))
	assert.Equal(t, "140.1176", report.Number(2382.0/17, 4))
	assert.Equal(t, "NaN", report.Number(math.NaN(), 2))
	assert.Equal(t, "+Inf", report.Number(math.Inf(1), 2))
}

func TestWriteTableaux(t *testing.T) {
	_, sol := solved(t)
	var buf bytes.Buffer
	require.NoError(t, report.WriteTableaux(&buf, sol.History, report.DefaultPrecision))

	out := buf.String()
	assert.Contains(t, out, "Initial tableau")
	assert.Contains(t, out, "Tableau 4 (optimal)")
	// x3 enters on resource 5, whose coefficient is 4.
	assert.Contains(t, out, "[4]")
	assert.Contains(t, out, "theta")
	assert.Contains(t, out, "140.1176")
}

func TestWriteCanonical(t *testing.T) {
	_, sol := solved(t)
	var buf bytes.Buffer
	require.NoError(t, report.WriteCanonical(&buf, sol.Canonical))
	assert.Contains(t, buf.String(), "variables: x1 x2 x3 s1 s2 s3 s4 s5")
	assert.Contains(t, buf.String(), "A = ")

	cf, err := model.Canonicalize(model.NewProblem(true, 1), 1e6)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, report.WriteCanonical(&buf, cf))
	assert.Contains(t, buf.String(), "no constraints")
}

func TestWriteSummary(t *testing.T) {
	p, sol := solved(t)
	var buf bytes.Buffer
	require.NoError(t, report.WriteSummary(&buf, p, sol, 2))
	out := buf.String()
	assert.Contains(t, out, "maximize: optimal solution found")
	assert.Contains(t, out, "140.12")
	assert.Contains(t, out, "Resource 3")
	assert.Contains(t, out, "binding")
}

func TestOutcomeDistinguishesFailures(t *testing.T) {
	seen := map[string]bool{}
	for _, st := range []simplex.State{
		simplex.StateOptimal, simplex.StateInfeasible, simplex.StateUnbounded,
		simplex.StateIterationLimit, simplex.StateFailed,
	} {
		msg := report.Outcome(&simplex.Solution{Status: st})
		assert.False(t, seen[msg], msg)
		seen[msg] = true
	}
}

func TestWriteCSV(t *testing.T) {
	p, sol := solved(t)
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, p, sol, report.DefaultPrecision))

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"objective", "max", "6", "5", "7"}, records[0])
	assert.Equal(t, []string{"constraint", "Resource 1", "2", "3", "2", "<=", "60"}, records[1])

	values := map[string]string{}
	for _, rec := range records {
		if len(rec) == 2 {
			values[rec[0]] = rec[1]
		}
	}
	assert.Equal(t, "optimal", values["status"])
	assert.Equal(t, "140.1176", values["F"])
	assert.Equal(t, "12.2353", values["x1"])

	var tableaux int
	for _, rec := range records {
		if len(rec) > 0 && rec[len(rec)-1] == "theta" {
			tableaux++
		}
	}
	assert.Equal(t, len(sol.History), tableaux)
}

func TestWriteCSVUnbounded(t *testing.T) {
	p := model.NewProblem(true, 1)
	p.AddConstraint("", []float64{1}, model.GE, 0)
	sol, err := simplex.Solve(p)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, p, sol, 2))
	assert.Contains(t, buf.String(), "status,unbounded")
	assert.NotContains(t, buf.String(), "remaining")
}

func TestPlotObjective(t *testing.T) {
	_, sol := solved(t)
	path := filepath.Join(t.TempDir(), "objective.png")
	require.NoError(t, report.PlotObjective(sol.History, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	require.Error(t, report.PlotObjective(nil, path))
}
