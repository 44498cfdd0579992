package mip

import (
	"fmt"
	"strings"
)

// A Var is a bounded integer decision variable. Scheduling instances only
// ever declare binary variables (bounds {0, 1}), but the bounds travel with
// the declaration so a backend can reject what it cannot represent.
type Var struct {
	Name  string
	Lower int
	Upper int
}

// A Constraint is a bounded linear row: Lower <= sum(Coeffs[i] * Vars[i]) <= Upper.
// Vars holds variable handles returned by Instance.AddVar; Coeffs is parallel to it.
type Constraint struct {
	Name   string
	Lower  int
	Upper  int
	Vars   []int
	Coeffs []int
}

type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// An Objective is a linear cost over variable handles. An objective with no
// coefficients denotes a pure feasibility search.
type Objective struct {
	Direction Direction
	Coeffs    map[int]int
}

// An Instance is a complete integer program: declared variables, bounded
// linear constraints and an optional objective. It is built once, handed to
// a Solver and discarded.
type Instance struct {
	Vars        []Var
	Constraints []Constraint
	Objective   Objective
}

// AddVar declares a variable and returns its handle.
func (instance *Instance) AddVar(name string, lower, upper int) int {
	instance.Vars = append(instance.Vars, Var{Name: name, Lower: lower, Upper: upper})
	return len(instance.Vars) - 1
}

func (instance *Instance) AddConstraint(constraint Constraint) {
	instance.Constraints = append(instance.Constraints, constraint)
}

// A Solution assigns a value to every variable handle of the solved instance.
type Solution []int

// ToOPB serializes the instance into the pseudo-boolean competition format:
// a size-comment header, an optional "min:" line and one ">="/"=" row per
// constraint side. Variable handle i is written as x(i+1).
func (instance Instance) ToOPB() string {
	var builder strings.Builder

	rows := 0
	for _, constraint := range instance.Constraints {
		if constraint.Lower == constraint.Upper {
			rows++
		} else {
			rows += 2
		}
	}
	fmt.Fprintf(&builder, "* #variable= %d #constraint= %d\n", len(instance.Vars), rows)

	if len(instance.Objective.Coeffs) > 0 {
		builder.WriteString("min:")
		sign := 1
		if instance.Objective.Direction == Maximize {
			sign = -1
		}
		for handle := range len(instance.Vars) {
			if weight, ok := instance.Objective.Coeffs[handle]; ok {
				fmt.Fprintf(&builder, " %+d x%d", sign*weight, handle+1)
			}
		}
		builder.WriteString(" ;\n")
	}

	for _, constraint := range instance.Constraints {
		if constraint.Lower == constraint.Upper {
			writeOPBRow(&builder, constraint, 1, "=", constraint.Lower)
			continue
		}
		// Lower <= row becomes row >= Lower; row <= Upper becomes -row >= -Upper.
		writeOPBRow(&builder, constraint, 1, ">=", constraint.Lower)
		writeOPBRow(&builder, constraint, -1, ">=", -constraint.Upper)
	}

	return builder.String()
}

func writeOPBRow(builder *strings.Builder, constraint Constraint, sign int, relation string, degree int) {
	for i, handle := range constraint.Vars {
		fmt.Fprintf(builder, "%+d x%d ", sign*constraint.Coeffs[i], handle+1)
	}
	fmt.Fprintf(builder, "%s %d ;\n", relation, degree)
}
