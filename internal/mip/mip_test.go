package mip

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToOPB(t *testing.T) {
	// Arrange
	instance := Instance{}
	x := instance.AddVar("x", 0, 1)
	y := instance.AddVar("y", 0, 1)
	z := instance.AddVar("z", 0, 1)

	instance.AddConstraint(Constraint{Name: "pick-one", Lower: 1, Upper: 1, Vars: []int{x, y}, Coeffs: []int{1, 1}})
	instance.AddConstraint(Constraint{Name: "cap", Lower: 0, Upper: 2, Vars: []int{x, y, z}, Coeffs: []int{2, 1, -1}})

	// Act
	opb := instance.ToOPB()

	// Assert: an equality row serializes once, a two-sided row twice (the
	// upper bound negated into ">=" form).
	assert.Equal(t,
		"* #variable= 3 #constraint= 3\n"+
			"+1 x1 +1 x2 = 1 ;\n"+
			"+2 x1 +1 x2 -1 x3 >= 0 ;\n"+
			"-2 x1 -1 x2 +1 x3 >= -2 ;\n",
		opb)
}

func TestToOPBObjective(t *testing.T) {
	instance := Instance{}
	x := instance.AddVar("x", 0, 1)
	y := instance.AddVar("y", 0, 1)
	instance.Objective = Objective{Direction: Maximize, Coeffs: map[int]int{x: 3, y: 1}}

	opb := instance.ToOPB()

	// Maximization flips signs into the canonical "min:" line.
	assert.Contains(t, opb, "min: -3 x1 -1 x2 ;\n")
}

func TestParseOPBSolution(t *testing.T) {
	output := "c some comment\ns SATISFIABLE\nv x1 -x2\nv x3\n"

	solution, err := parseOPBSolution(output, 3)

	assert.Nil(t, err)
	assert.Equal(t, Solution{1, 0, 1}, solution)
}

func TestParseOPBSolutionRejectsGarbage(t *testing.T) {
	_, err := parseOPBSolution("v x1 y2\n", 2)
	assert.NotNil(t, err)
}
