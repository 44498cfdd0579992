package mip

import "context"

// A Solver declares and solves a complete instance. Solve returns a value
// per variable handle if the instance is feasible, or nil (with a nil error)
// if it is provably infeasible. The search is synchronous and potentially
// long-running; ctx bounds it.
type Solver interface {
	Solve(ctx context.Context, instance Instance) (Solution, error)
}
