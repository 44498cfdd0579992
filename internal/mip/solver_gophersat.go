package mip

import (
	"context"
	"errors"
	"fmt"

	"github.com/crillab/gophersat/solver"
)

// ErrObjectiveUnsupported is returned by the gophersat backend when the
// instance carries a non-empty objective: the backend answers pure
// feasibility questions only.
var ErrObjectiveUnsupported = errors.New("gophersat backend does not support objectives")

type gophersatSolver struct{}

// NewGophersatSolver returns an in-process backend that translates bounded
// linear rows over binary variables into pseudo-boolean constraints.
func NewGophersatSolver() Solver {
	return &gophersatSolver{}
}

func (gs *gophersatSolver) Solve(ctx context.Context, instance Instance) (Solution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(instance.Objective.Coeffs) > 0 {
		return nil, ErrObjectiveUnsupported
	}

	constrs := make([]solver.PBConstr, 0, 2*len(instance.Constraints))

	for handle, variable := range instance.Vars {
		if variable.Lower < 0 || variable.Upper > 1 || variable.Lower > variable.Upper {
			return nil, fmt.Errorf("variable %q: bounds [%d, %d] are not binary", variable.Name, variable.Lower, variable.Upper)
		}
		// Fixed variables become unit constraints.
		if variable.Lower == 1 {
			constrs = append(constrs, solver.PropClause(handle+1))
		}
		if variable.Upper == 0 {
			constrs = append(constrs, solver.PropClause(-(handle + 1)))
		}
	}

	for _, constraint := range instance.Constraints {
		translated, err := translatePB(constraint, len(instance.Vars))
		if err != nil {
			return nil, err
		}
		constrs = append(constrs, translated...)
	}

	type solveResult struct {
		solution Solution
		err      error
	}
	results := make(chan solveResult, 1)

	go func() {
		s := solver.New(solver.ParsePBConstrs(constrs))
		status := s.Solve()

		switch status {
		case solver.Unsat:
			results <- solveResult{}
		case solver.Sat:
			model := s.Model()
			solution := make(Solution, len(instance.Vars))
			for handle := range solution {
				if handle < len(model) && model[handle] {
					solution[handle] = 1
				}
			}
			results <- solveResult{solution: solution}
		default:
			results <- solveResult{err: fmt.Errorf("unexpected solver status %v", status)}
		}
	}()

	// The library exposes no interrupt for Solve, so on cancellation the
	// search goroutine is abandoned and its result discarded.
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		return result.solution, result.err
	}
}

// translatePB rewrites one bounded row as ">="-form pseudo-boolean
// constraints. A negative coefficient -w on variable x is moved onto the
// negated literal (+w on !x) and both bounds are shifted by w.
func translatePB(constraint Constraint, totalVars int) ([]solver.PBConstr, error) {
	if len(constraint.Vars) != len(constraint.Coeffs) {
		return nil, fmt.Errorf("constraint %q: %d handles but %d coefficients", constraint.Name, len(constraint.Vars), len(constraint.Coeffs))
	}

	lits := make([]int, 0, len(constraint.Vars))
	weights := make([]int, 0, len(constraint.Vars))
	lower, upper := constraint.Lower, constraint.Upper
	weightSum := 0

	for i, handle := range constraint.Vars {
		if handle < 0 || handle >= totalVars {
			return nil, fmt.Errorf("constraint %q: unknown variable handle %d", constraint.Name, handle)
		}
		coeff := constraint.Coeffs[i]
		switch {
		case coeff > 0:
			lits = append(lits, handle+1)
			weights = append(weights, coeff)
			weightSum += coeff
		case coeff < 0:
			lits = append(lits, -(handle + 1))
			weights = append(weights, -coeff)
			weightSum += -coeff
			lower += -coeff
			upper += -coeff
		}
	}

	if lower > weightSum || upper < 0 {
		return nil, fmt.Errorf("constraint %q: bounds [%d, %d] are unsatisfiable", constraint.Name, constraint.Lower, constraint.Upper)
	}

	// Vacuous rows (all coefficients zero, bounds admitting zero) translate
	// to nothing.
	if len(lits) == 0 {
		return nil, nil
	}

	if lower == upper {
		return solver.Eq(lits, weights, lower), nil
	}

	constrs := make([]solver.PBConstr, 0, 2)
	if lower > 0 {
		constrs = append(constrs, solver.GtEq(lits, weights, lower))
	}
	if upper < weightSum {
		constrs = append(constrs, solver.LtEq(lits, weights, upper))
	}
	return constrs, nil
}
