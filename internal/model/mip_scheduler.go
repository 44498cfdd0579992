package model

import (
	"context"
	"fmt"
	"slices"

	"classscheduler/internal/mip"

	"github.com/samber/lo"
)

type mipScheduler struct {
	solver mip.Solver
	logger Logger
}

func (scheduler *mipScheduler) Build(ctx context.Context, input ModelInput) ([]ClassStartVariable, error) {
	blocksById, coursesById, _, err := validateModelInput(input)
	if err != nil {
		return nil, err
	}

	finish := timed(scheduler.logger, "variable enumeration")
	space, err := BuildVariableSpace(input, blocksById, scheduler.logger)
	finish()
	if err != nil {
		return nil, err
	}

	finish = timed(scheduler.logger, "constraint generation")
	constraints := BuildConstraints(input, coursesById, space, scheduler.logger)
	finish()

	instance := mip.Instance{}

	handles := make(map[ClassStartVariable]int, space.Len())
	for _, variable := range space.Variables() {
		handles[variable] = instance.AddVar(variable.String(), 0, 1)
	}

	for _, constraint := range constraints {
		instance.AddConstraint(declareConstraint(constraint, handles))
	}
	// Empty objective: the model is a pure feasibility search.

	finish = timed(scheduler.logger, "solve")
	solution, err := scheduler.solver.Solve(ctx, instance)
	finish()
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	if solution == nil {
		return nil, ErrNoFeasibleTimetable
	}

	timetable := lo.Filter(space.Variables(), func(variable ClassStartVariable, _ int) bool {
		return solution[handles[variable]] > 0
	})
	scheduler.logger.Printf("timetable holds %d assignments", len(timetable))
	return timetable, nil
}

// declareConstraint translates a model constraint into a solver row with its
// terms in handle order, so the declared instance is reproducible across
// builds.
func declareConstraint(constraint Constraint, handles map[ClassStartVariable]int) mip.Constraint {
	type term struct {
		handle      int
		coefficient int
	}
	terms := make([]term, 0, len(constraint.Coefficients))
	for variable, coefficient := range constraint.Coefficients {
		terms = append(terms, term{handle: handles[variable], coefficient: coefficient})
	}
	slices.SortFunc(terms, func(a, b term) int { return a.handle - b.handle })

	return mip.Constraint{
		Name:   constraint.Name,
		Lower:  constraint.Lower,
		Upper:  constraint.Upper,
		Vars:   lo.Map(terms, func(t term, _ int) int { return t.handle }),
		Coeffs: lo.Map(terms, func(t term, _ int) int { return t.coefficient }),
	}
}

func (scheduler *mipScheduler) Verify(timetable []ClassStartVariable, input ModelInput) bool {
	blocksById, coursesById, roomsByName, err := validateModelInput(input)
	if err != nil {
		return false
	}

	occupancy := make(map[dayRoomTime]bool)
	scheduled := make(map[courseDay]int)
	type roomTime struct {
		room string
		time Tick
	}
	chosen := make(map[string]map[roomTime]bool)

	for _, assignment := range timetable {
		course, knownCourse := coursesById[assignment.Course]
		room, knownRoom := roomsByName[assignment.Room]
		if !knownCourse || !knownRoom {
			return false
		}

		// Check that:
		// - the room fits the course
		// - the start time lies inside the course's desired block
		// - the day belongs to the course's pattern
		if !room.CanFit(course) ||
			!blocksById[course.DesiredBlock].Contains(assignment.Time) ||
			!course.DayPattern.Contains(assignment.Day) {
			return false
		}

		scheduled[courseDay{course: assignment.Course, day: assignment.Day}]++

		// No tick of the occupied window may be claimed twice per day/room.
		window := input.Grid.SubGrid(assignment.Time, assignment.Time.addMinutes(course.LectureMinutesPerDay))
		for _, tick := range window.Ticks() {
			key := dayRoomTime{day: assignment.Day, room: assignment.Room, time: tick}
			if occupancy[key] {
				return false
			}
			occupancy[key] = true
		}

		// Hard blockers.
		end := assignment.Time.addMinutes(course.LectureMinutesPerDay)
		for _, occupied := range input.OccupiedTimes {
			if occupied.Room == assignment.Room && occupied.Day == assignment.Day &&
				assignment.Time.Before(occupied.End) && occupied.Start.Before(end) {
				return false
			}
		}

		if chosen[assignment.Course] == nil {
			chosen[assignment.Course] = make(map[roomTime]bool)
		}
		chosen[assignment.Course][roomTime{room: assignment.Room, time: assignment.Time}] = true
	}

	// Every course-day is scheduled exactly once.
	for _, course := range input.Courses {
		for _, day := range course.DayPattern.Days() {
			if scheduled[courseDay{course: course.Id, day: day}] != 1 {
				return false
			}
		}
	}

	// A course keeps one room/time across its whole pattern.
	return !lo.SomeBy(lo.Values(chosen), func(roomTimes map[roomTime]bool) bool {
		return len(roomTimes) != 1
	})
}
