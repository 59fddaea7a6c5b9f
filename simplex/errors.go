package simplex

import "github.com/pkg/errors"

var (
	ErrUnbounded     = errors.New("simplex: problem is unbounded")
	ErrInfeasible    = errors.New("simplex: problem is infeasible")
	ErrNonConvergent = errors.New("simplex: iteration limit exceeded")
	ErrInternal      = errors.New("simplex: internal failure")
)
