package model_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"q.log/bigm/model"
)

func mixedProblem(maximize bool) *model.Problem {
	p := model.NewProblem(maximize, 3, 2)
	p.AddConstraint("", []float64{1, 1}, model.LE, 4)
	p.AddConstraint("", []float64{1, 3}, model.GE, 6)
	p.AddConstraint("", []float64{1, 0}, model.EQ, 1)
	return p
}

func TestCanonicalizeLayout(t *testing.T) {
	cf, err := model.Canonicalize(mixedProblem(true), 1e6)
	require.NoError(t, err)

	assert.Equal(t, 3, cf.NumRows)
	assert.Equal(t, 2, cf.NumDecision)
	assert.Equal(t, 2, cf.NumSlack)
	assert.Equal(t, 2, cf.NumArtificial)
	assert.Equal(t, cf.NumDecision+cf.NumSlack+cf.NumArtificial, cf.NumCols)
	assert.Equal(t, []string{"x1", "x2", "s1", "s2", "a1", "a2"}, cf.Names())

	want := mat.NewDense(3, 6, []float64{
		1, 1, 1, 0, 0, 0,
		1, 3, 0, -1, 1, 0,
		1, 0, 0, 0, 0, 1,
	})
	assert.True(t, mat.Equal(want, cf.A), "A = %v", mat.Formatted(cf.A))
	assert.Equal(t, []float64{4, 6, 1}, mat.Col(nil, 0, cf.B))

	for c := range cf.NumCols {
		assert.Equal(t, c >= 4, cf.IsArtificial(c), "column %d", c)
	}
	assert.Equal(t, 3, cf.RowColumn(1, model.Slack))
	assert.Equal(t, 4, cf.RowColumn(1, model.Artificial))
	assert.Equal(t, 5, cf.RowColumn(2, model.Artificial))
	assert.Equal(t, -1, cf.RowColumn(2, model.Slack))
	assert.Equal(t, 1, cf.V[3].Row)
}

func TestCanonicalizeCosts(t *testing.T) {
	maxForm, err := model.Canonicalize(mixedProblem(true), 1e6)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, -2, 0, 0, 1e6, 1e6}, maxForm.Costs())

	minForm, err := model.Canonicalize(mixedProblem(false), 1e6)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 2, 0, 0, 1e6, 1e6}, minForm.Costs())
}

func TestCanonicalizeWithoutConstraints(t *testing.T) {
	cf, err := model.Canonicalize(model.NewProblem(true, 1), 1e6)
	require.NoError(t, err)
	assert.Nil(t, cf.A)
	assert.Nil(t, cf.B)
	assert.Equal(t, 1, cf.NumCols)
	assert.Equal(t, []float64{-1}, cf.Costs())
}

func TestCanonicalizeRejectsBadBigM(t *testing.T) {
	_, err := model.Canonicalize(mixedProblem(true), 0)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	p := model.NewProblem(true, 1, 2)
	p.AddConstraint("short", []float64{1}, model.LE, 3)
	require.ErrorIs(t, p.Validate(), model.ErrInvalidProblem)

	_, err := model.Canonicalize(p, 1e6)
	require.ErrorIs(t, err, model.ErrInvalidProblem)

	empty := model.NewProblem(false)
	require.ErrorIs(t, empty.Validate(), model.ErrInvalidProblem)

	nan := model.NewProblem(true, math.NaN())
	require.ErrorIs(t, nan.Validate(), model.ErrInvalidProblem)

	shuffled := &model.Problem{Objective: []model.Coefficient{{Index: 2, Value: 1}, {Index: 1, Value: 1}}}
	require.ErrorIs(t, shuffled.Validate(), model.ErrInvalidProblem)

	badRel := model.NewProblem(true, 1)
	badRel.AddConstraint("", []float64{1}, model.Relation(7), 1)
	require.ErrorIs(t, badRel.Validate(), model.ErrInvalidProblem)

	var nilProblem *model.Problem
	require.ErrorIs(t, nilProblem.Validate(), model.ErrInvalidProblem)

	require.NoError(t, mixedProblem(true).Validate())
}

func TestAddConstraintNamesAndCopies(t *testing.T) {
	coefs := []float64{1, 2}
	p := model.NewProblem(true, 1, 1)
	p.AddConstraint("", coefs, model.LE, 1)
	p.AddConstraint("labour", coefs, model.GE, 2)
	coefs[0] = 99

	assert.Equal(t, "Constraint 1", p.Constraints[0].Name)
	assert.Equal(t, "labour", p.Constraints[1].Name)
	assert.Equal(t, 1.0, p.Constraints[0].Coefficients[0])
	assert.Equal(t, []float64{1, 1}, p.ObjectiveValues())
	assert.Equal(t, 2, p.Objective[1].Index)
}

func TestParseRelation(t *testing.T) {
	for in, want := range map[string]model.Relation{
		"<=": model.LE, " le ": model.LE, "≤": model.LE,
		"=": model.EQ, "EQ": model.EQ,
		">=": model.GE, "g": model.GE, "≥": model.GE,
	} {
		got, err := model.ParseRelation(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := model.ParseRelation("<>")
	require.ErrorIs(t, err, model.ErrInvalidProblem)

	assert.Equal(t, ">=", model.GE.String())
	assert.Equal(t, "artificial", model.Artificial.String())
}
