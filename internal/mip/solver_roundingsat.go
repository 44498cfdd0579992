package mip

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

const roundingsatPath = "roundingsat"

type roundingsatSolver struct{}

// NewRoundingsatSolver returns a backend that shells out to the RoundingSat
// pseudo-boolean solver, feeding it the OPB serialization of the instance.
// Unlike the in-process backend it also handles "min:" objectives.
func NewRoundingsatSolver() Solver {
	return &roundingsatSolver{}
}

func (rs *roundingsatSolver) Solve(ctx context.Context, instance Instance) (Solution, error) {
	file, err := os.CreateTemp("", "instance-*.opb")
	if err != nil {
		return nil, fmt.Errorf("cannot create instance file: %w", err)
	}
	defer os.Remove(file.Name())

	if _, err := file.WriteString(instance.ToOPB()); err != nil {
		file.Close()
		return nil, fmt.Errorf("cannot write instance file: %w", err)
	}
	file.Close()

	cmd := exec.CommandContext(ctx, roundingsatPath, file.Name())

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	status, found := lo.Find(strings.Split(stdout.String(), "\n"), func(line string) bool {
		return strings.HasPrefix(line, "s ")
	})
	if !found {
		if runErr != nil {
			return nil, fmt.Errorf("roundingsat execution failed: %v : %v", runErr, stderr.String())
		}
		return nil, fmt.Errorf("no status line in roundingsat output")
	}

	switch strings.TrimSpace(status[2:]) {
	case "UNSATISFIABLE":
		return nil, nil
	case "SATISFIABLE", "OPTIMUM FOUND":
		return parseOPBSolution(stdout.String(), len(instance.Vars))
	default:
		return nil, fmt.Errorf("unexpected solver status %q", strings.TrimSpace(status[2:]))
	}
}

// parseOPBSolution reads the "v" lines of a PB-competition output, e.g.
// "v x1 -x2 x3", into a per-handle value vector.
func parseOPBSolution(output string, totalVars int) (Solution, error) {
	literals := lo.FlatMap(strings.Split(output, "\n"), func(line string, _ int) []string {
		if !strings.HasPrefix(line, "v ") {
			return nil
		}
		return strings.Fields(line[2:])
	})

	solution := make(Solution, totalVars)
	for _, literal := range literals {
		value := 1
		if strings.HasPrefix(literal, "-") {
			value = 0
			literal = literal[1:]
		}
		if !strings.HasPrefix(literal, "x") {
			return nil, fmt.Errorf("invalid literal %q in roundingsat output", literal)
		}
		index, err := strconv.Atoi(literal[1:])
		if err != nil {
			return nil, fmt.Errorf("invalid literal %q in roundingsat output: %v", literal, err)
		}
		if index >= 1 && index <= totalVars {
			solution[index-1] = value
		}
	}
	return solution, nil
}
