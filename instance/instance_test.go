package instance_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"q.log/bigm/instance"
	"q.log/bigm/model"
	"q.log/bigm/simplex"
)

const yamlProblem = `
maximize: true
objective: [3, 2]
constraints:
  - name: capacity
    coefficients: [1, 1]
    relation: "<="
    rhs: 4
  - name: demand
    coefficients: [1, 3]
    relation: ">="
    rhs: 6
  - coefficients: [1, 0]
    relation: "="
    rhs: 1
`

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mixed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlProblem), 0o644))

	p, err := instance.Load(path)
	require.NoError(t, err)
	assert.True(t, p.Maximize)
	assert.Equal(t, []float64{3, 2}, p.ObjectiveValues())
	require.Len(t, p.Constraints, 3)
	assert.Equal(t, "capacity", p.Constraints[0].Name)
	assert.Equal(t, model.GE, p.Constraints[1].Relation)
	assert.Equal(t, model.EQ, p.Constraints[2].Relation)
	assert.Equal(t, "Constraint 3", p.Constraints[2].Name)
	assert.Equal(t, 6.0, p.Constraints[1].RHS)

	sol, err := simplex.Solve(p)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, sol.OptimalValue, 1e-6)
}

func TestDecodeJSON(t *testing.T) {
	const doc = `{
	  "maximize": false,
	  "objective": [2, 3],
	  "constraints": [
	    {"coefficients": [1, 1], "relation": "ge", "rhs": 4},
	    {"coefficients": [1, 3], "relation": "ge", "rhs": 6}
	  ]
	}`
	p, err := instance.Decode(strings.NewReader(doc), "json")
	require.NoError(t, err)
	assert.False(t, p.Maximize)
	require.Len(t, p.Constraints, 2)
	assert.Equal(t, []float64{1, 3}, p.Constraints[1].Coefficients)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	_, err := instance.Decode(strings.NewReader(`{"objective": [1], "constraints": [{"coefficients": [1], "relation": "<>", "rhs": 1}]}`), "json")
	require.ErrorIs(t, err, model.ErrInvalidProblem)

	_, err = instance.Decode(strings.NewReader(`{"objective": [1, 2], "constraints": [{"coefficients": [1], "relation": "<=", "rhs": 1}]}`), "json")
	require.ErrorIs(t, err, model.ErrInvalidProblem)

	_, err = instance.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestExample(t *testing.T) {
	p := instance.Example()
	require.NoError(t, p.Validate())
	assert.Len(t, p.Constraints, 5)

	sol, err := simplex.Solve(p)
	require.NoError(t, err)
	assert.InDelta(t, 2382.0/17, sol.OptimalValue, 1e-6)
}

func TestIsMPS(t *testing.T) {
	assert.True(t, instance.IsMPS("afiro.MPS"))
	assert.False(t, instance.IsMPS("plan.yaml"))
}
