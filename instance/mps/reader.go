// Package mps reads free-format MPS files through GLPK.
package mps

import (
	"fmt"
	"math"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"

	"q.log/bigm/model"
)

// Reader reads a mps file to construct a problem
type Reader struct {
	filename string
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
	}
}

// Read is NewReader(filename).Problem().
func Read(filename string) (*model.Problem, error) {
	return NewReader(filename).Problem()
}

// Problem returns the file's linear program. Finite column bounds become
// extra constraint rows, and rows with a negative rhs are negated with their
// relation flipped.
func (r *Reader) Problem() (*model.Problem, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, r.filename); err != nil {
		return nil, errors.Wrapf(err, "mps: read %s", r.filename)
	}

	numCols := lp.NumCols()
	//populate obj function
	cVec := make([]float64, numCols)
	for c := range numCols {
		cVec[c] = lp.ObjCoef(c + 1)
	}
	p := model.NewProblem(lp.ObjDir() == glpk.MAX, cVec...)

	//populate constraints
	for r := 1; r <= lp.NumRows(); r++ {
		rowVec := make([]float64, numCols)
		idxs, row := lp.MatRow(r)
		for i, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = row[i]
		}

		name := lp.RowName(r)
		lb, ub := lp.RowLB(r), lp.RowUB(r)
		switch {
		case lb == -math.MaxFloat64 && ub == math.MaxFloat64:
			// free row, no restriction
			continue
		case lb == -math.MaxFloat64:
			addRow(p, name, rowVec, model.LE, ub)
		case ub == math.MaxFloat64:
			addRow(p, name, rowVec, model.GE, lb)
		case lb == ub:
			addRow(p, name, rowVec, model.EQ, lb)
		default:
			addRow(p, name+".lo", rowVec, model.GE, lb)
			addRow(p, name+".up", append([]float64(nil), rowVec...), model.LE, ub)
		}
	}

	//column bounds
	for c := range numCols {
		lb, ub := lp.ColLB(c+1), lp.ColUB(c+1)
		name := lp.ColName(c + 1)
		if lb < 0 {
			return nil, fmt.Errorf("mps: %s: column %s has negative lower bound %g: %w",
				r.filename, name, lb, model.ErrInvalidProblem)
		}
		if lb > 0 {
			rowVec := make([]float64, numCols)
			rowVec[c] = 1
			addRow(p, name+".lb", rowVec, model.GE, lb)
		}
		if ub != math.MaxFloat64 {
			rowVec := make([]float64, numCols)
			rowVec[c] = 1
			addRow(p, name+".ub", rowVec, model.LE, ub)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, errors.Wrapf(err, "mps: %s", r.filename)
	}
	return p, nil
}

// addRow appends a constraint, negating it first when rhs is negative.
func addRow(p *model.Problem, name string, coefs []float64, rel model.Relation, rhs float64) {
	if rhs < 0 {
		for i := range coefs {
			coefs[i] = -coefs[i]
		}
		rhs = -rhs
		switch rel {
		case model.LE:
			rel = model.GE
		case model.GE:
			rel = model.LE
		}
	}
	p.AddConstraint(name, coefs, rel, rhs)
}
