package mip

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGophersatSolve(t *testing.T) {
	t.Run("feasible equality", func(t *testing.T) {
		// Arrange: x + y == 1 with x fixed to 0.
		instance := Instance{}
		instance.AddVar("x", 0, 0)
		y := instance.AddVar("y", 0, 1)
		instance.AddConstraint(Constraint{Name: "pick-one", Lower: 1, Upper: 1, Vars: []int{0, y}, Coeffs: []int{1, 1}})

		// Act
		solution, err := NewGophersatSolver().Solve(context.Background(), instance)

		// Assert
		assert.Nil(t, err)
		assert.Equal(t, Solution{0, 1}, solution)
	})

	t.Run("infeasible instance", func(t *testing.T) {
		instance := Instance{}
		x := instance.AddVar("x", 0, 1)
		instance.AddConstraint(Constraint{Name: "on", Lower: 1, Upper: 1, Vars: []int{x}, Coeffs: []int{1}})
		instance.AddConstraint(Constraint{Name: "off", Lower: 0, Upper: 0, Vars: []int{x}, Coeffs: []int{1}})

		solution, err := NewGophersatSolver().Solve(context.Background(), instance)

		// Infeasibility is a nil solution, not an error.
		assert.Nil(t, err)
		assert.Nil(t, solution)
	})

	t.Run("negative coefficients", func(t *testing.T) {
		// -2x + a + b == 0 with x fixed to 1 forces both a and b.
		instance := Instance{}
		x := instance.AddVar("x", 1, 1)
		a := instance.AddVar("a", 0, 1)
		b := instance.AddVar("b", 0, 1)
		instance.AddConstraint(Constraint{Name: "tie", Lower: 0, Upper: 0, Vars: []int{x, a, b}, Coeffs: []int{-2, 1, 1}})

		solution, err := NewGophersatSolver().Solve(context.Background(), instance)

		assert.Nil(t, err)
		assert.Equal(t, Solution{1, 1, 1}, solution)
	})

	t.Run("vacuous row", func(t *testing.T) {
		// Rows whose coefficients are all zero constrain nothing.
		instance := Instance{}
		x := instance.AddVar("x", 0, 1)
		instance.AddConstraint(Constraint{Name: "noop", Lower: 0, Upper: 0, Vars: []int{x}, Coeffs: []int{0}})
		instance.AddConstraint(Constraint{Name: "on", Lower: 1, Upper: 1, Vars: []int{x}, Coeffs: []int{1}})

		solution, err := NewGophersatSolver().Solve(context.Background(), instance)

		assert.Nil(t, err)
		assert.Equal(t, Solution{1}, solution)
	})

	t.Run("unsatisfiable bounds", func(t *testing.T) {
		instance := Instance{}
		x := instance.AddVar("x", 0, 1)
		instance.AddConstraint(Constraint{Name: "impossible", Lower: 2, Upper: 2, Vars: []int{x}, Coeffs: []int{1}})

		_, err := NewGophersatSolver().Solve(context.Background(), instance)

		assert.ErrorContains(t, err, "impossible")
	})

	t.Run("non-binary variable", func(t *testing.T) {
		instance := Instance{}
		instance.AddVar("count", 0, 3)

		_, err := NewGophersatSolver().Solve(context.Background(), instance)

		assert.ErrorContains(t, err, "not binary")
	})

	t.Run("objective is rejected", func(t *testing.T) {
		instance := Instance{}
		x := instance.AddVar("x", 0, 1)
		instance.Objective = Objective{Direction: Minimize, Coeffs: map[int]int{x: 1}}

		_, err := NewGophersatSolver().Solve(context.Background(), instance)

		assert.ErrorIs(t, err, ErrObjectiveUnsupported)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewGophersatSolver().Solve(ctx, Instance{})

		assert.ErrorIs(t, err, context.Canceled)
	})
}
