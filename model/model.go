package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ColumnKind tags the role of a canonical column.
type ColumnKind int

const (
	Decision ColumnKind = iota
	Slack
	Artificial
)

func (k ColumnKind) String() string {
	switch k {
	case Decision:
		return "decision"
	case Slack:
		return "slack"
	case Artificial:
		return "artificial"
	}
	return fmt.Sprintf("ColumnKind(%d)", int(k))
}

type Variable struct {
	Name string
	Kind ColumnKind
	// Row is the constraint that introduced a slack or artificial column, -1 for decision variables.
	Row int
	// Ordinal is the 0-based position among the columns of the same kind.
	Ordinal int
}

// CanonicalForm is the standard-form image of a Problem:
// decision columns first, then slack/surplus, then artificial.
// A and B are nil when the problem has no constraints.
type CanonicalForm struct {
	//V variables, one per column
	V []*Variable

	//C cost coefficients in the minimization convention
	C *mat.VecDense

	//A constraints matrix
	A *mat.Dense

	//B constraints rhs
	B *mat.VecDense

	Maximize bool

	NumRows int
	NumCols int

	NumDecision   int
	NumSlack      int
	NumArtificial int
}

// Canonicalize converts p into standard form. Artificial columns cost bigM,
// which punishes them under the internal minimization whatever the direction.
func Canonicalize(p *Problem, bigM float64) (*CanonicalForm, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if bigM <= 0 {
		return nil, errors.New("model: big M must be positive")
	}

	nd := p.NumVariables()
	m := &CanonicalForm{
		Maximize:    p.Maximize,
		NumRows:     len(p.Constraints),
		NumCols:     nd,
		NumDecision: nd,
	}

	costs := make([]float64, 0, nd+2*m.NumRows)
	for i, c := range p.Objective {
		if p.Maximize {
			costs = append(costs, -c.Value)
		} else {
			costs = append(costs, c.Value)
		}
		m.V = append(m.V, &Variable{Name: fmt.Sprintf("x%d", i+1), Kind: Decision, Row: -1, Ordinal: i})
	}

	if m.NumRows > 0 {
		aVec := make([]float64, 0, m.NumRows*nd)
		bVec := make([]float64, m.NumRows)
		for r, c := range p.Constraints {
			aVec = append(aVec, c.Coefficients...)
			bVec[r] = c.RHS
		}
		m.A = mat.NewDense(m.NumRows, nd, aVec)
		m.B = mat.NewVecDense(m.NumRows, bVec)
	}

	//slack and surplus columns
	for r, c := range p.Constraints {
		var coef float64
		switch c.Relation {
		case LE:
			coef = 1
		case GE:
			coef = -1
		default:
			continue
		}
		colVec := make([]float64, m.NumRows)
		colVec[r] = coef
		m.addCol(colVec, &Variable{Name: fmt.Sprintf("s%d", m.NumSlack+1), Kind: Slack, Row: r, Ordinal: m.NumSlack})
		costs = append(costs, 0)
		m.NumSlack++
	}

	//artificial columns
	for r, c := range p.Constraints {
		if c.Relation == LE {
			continue
		}
		colVec := make([]float64, m.NumRows)
		colVec[r] = 1
		m.addCol(colVec, &Variable{Name: fmt.Sprintf("a%d", m.NumArtificial+1), Kind: Artificial, Row: r, Ordinal: m.NumArtificial})
		costs = append(costs, bigM)
		m.NumArtificial++
	}

	m.C = mat.NewVecDense(m.NumCols, costs)
	return m, nil
}

func (m *CanonicalForm) addCol(cVec []float64, v *Variable) {
	m.A = mat.DenseCopyOf(m.A.Grow(0, 1))
	m.A.SetCol(m.NumCols, cVec)
	m.V = append(m.V, v)
	m.NumCols++
}

// Row returns a copy of constraint row r of A.
func (m *CanonicalForm) Row(r int) []float64 {
	return mat.Row(nil, r, m.A)
}

// RHS returns b[r].
func (m *CanonicalForm) RHS(r int) float64 {
	return m.B.AtVec(r)
}

// Costs returns a copy of the cost vector.
func (m *CanonicalForm) Costs() []float64 {
	return mat.Col(nil, 0, m.C)
}

func (m *CanonicalForm) Cost(c int) float64 {
	return m.C.AtVec(c)
}

func (m *CanonicalForm) IsArtificial(c int) bool {
	return m.V[c].Kind == Artificial
}

// Names returns the column names in layout order.
func (m *CanonicalForm) Names() []string {
	names := make([]string, len(m.V))
	for i, v := range m.V {
		names[i] = v.Name
	}
	return names
}

// RowColumn returns the column of the given kind introduced by row r, or -1.
func (m *CanonicalForm) RowColumn(r int, kind ColumnKind) int {
	for c, v := range m.V {
		if v.Kind == kind && v.Row == r {
			return c
		}
	}
	return -1
}
