package model

import (
	"fmt"

	"github.com/samber/lo"
)

// A Constraint is a bounded linear row over class-start variables:
// Lower <= sum(Coefficients[v] * v) <= Upper.
type Constraint struct {
	Name         string
	Lower        int
	Upper        int
	Coefficients map[ClassStartVariable]int
}

// BuildUniquenessConstraints emits one constraint per (course, day in
// pattern) requiring the course to meet exactly once on that day:
// sum(byCourseDay) == 1.
func BuildUniquenessConstraints(courses []Course, space *VariableSpace) []Constraint {
	constraints := []Constraint{}

	for _, course := range courses {
		for _, day := range course.DayPattern.Days() {
			variables := space.ByCourseDay(course.Id, day)
			coefficients := make(map[ClassStartVariable]int, len(variables))
			for _, variable := range variables {
				coefficients[variable] = 1
			}
			constraints = append(constraints, Constraint{
				Name:         fmt.Sprintf("Uniqueness_%v_%v", course.Id, day),
				Lower:        1,
				Upper:        1,
				Coefficients: coefficients,
			})
		}
	}

	return constraints
}

// BuildConflictConstraints emits one constraint per branching variable v
// forbidding any other class from starting inside v's occupied window
// [v.time, v.time + duration) in the same room and day:
// C*v + sum(blocked) <= C where C = |blocked|. With v = 0 the row is
// trivially satisfied; with v = 1 every blocked variable is forced to 0.
func BuildConflictConstraints(coursesById map[string]Course, grid TimeGrid, space *VariableSpace) []Constraint {
	constraints := []Constraint{}

	for _, branching := range space.Variables() {
		duration := coursesById[branching.Course].LectureMinutesPerDay
		window := grid.SubGrid(branching.Time, branching.Time.addMinutes(duration))

		coefficients := make(map[ClassStartVariable]int)
		for _, tick := range window.Ticks() {
			for _, blocked := range space.ByDayRoomTime(branching.Day, branching.Room, tick) {
				// The branching variable starts on the first tick of its own
				// window; counting it as blocked would force v=0 whenever v=1.
				if blocked == branching {
					continue
				}
				coefficients[blocked] = 1
			}
		}

		// An empty blocked set still yields the row (with C = 0 it is
		// vacuous); the count of conflict rows stays one per variable.
		c := len(coefficients)
		coefficients[branching] = c
		constraints = append(constraints, Constraint{
			Name:         fmt.Sprintf("Conflict_%v_%v_%v_%v", branching.Course, branching.Day, branching.Room, branching.Time),
			Lower:        0,
			Upper:        c,
			Coefficients: coefficients,
		})
	}

	return constraints
}

// BuildMeetingConsistencyConstraints emits one constraint per branching
// variable v tying it to the same room/time on every other day of the
// course's pattern: -C*v + sum(forced) == 0 where C = |forced|. The forced
// variables are rebuilt from their tuples rather than looked up, which is
// why variable equality must be structural.
func BuildMeetingConsistencyConstraints(coursesById map[string]Course, space *VariableSpace) []Constraint {
	constraints := []Constraint{}

	for _, branching := range space.Variables() {
		otherDays := coursesById[branching.Course].DayPattern.Without(branching.Day)

		coefficients := make(map[ClassStartVariable]int, otherDays.Len()+1)
		for _, day := range otherDays.Days() {
			forced := ClassStartVariable{Course: branching.Course, Day: day, Time: branching.Time, Room: branching.Room}
			coefficients[forced] = 1
		}
		coefficients[branching] = -otherDays.Len()

		constraints = append(constraints, Constraint{
			Name:         fmt.Sprintf("MeetingConsistency_%v_%v_%v_%v", branching.Course, branching.Day, branching.Room, branching.Time),
			Lower:        0,
			Upper:        0,
			Coefficients: coefficients,
		})
	}

	return constraints
}

// BuildOccupiedRoomConstraints emits one constraint per occupied time
// forcing to zero every variable whose occupancy window overlaps it in the
// same room and day: sum(overlapping) == 0.
func BuildOccupiedRoomConstraints(coursesById map[string]Course, occupiedTimes []OccupiedTime, space *VariableSpace) []Constraint {
	constraints := []Constraint{}

	for _, occupied := range occupiedTimes {
		overlapping := lo.Filter(space.Variables(), func(variable ClassStartVariable, _ int) bool {
			if variable.Room != occupied.Room || variable.Day != occupied.Day {
				return false
			}
			end := variable.Time.addMinutes(coursesById[variable.Course].LectureMinutesPerDay)
			return variable.Time.Before(occupied.End) && occupied.Start.Before(end)
		})
		if len(overlapping) == 0 {
			continue
		}

		coefficients := make(map[ClassStartVariable]int, len(overlapping))
		for _, variable := range overlapping {
			coefficients[variable] = 1
		}
		constraints = append(constraints, Constraint{
			Name:         fmt.Sprintf("Occupied_%v_%v_%v", occupied.Room, occupied.Day, occupied.Start),
			Lower:        0,
			Upper:        0,
			Coefficients: coefficients,
		})
	}

	return constraints
}

// BuildConstraints generates the four constraint families. They are
// independent of each other, so each family runs on its own goroutine
// reading the (read-only) variable space, and results are collected into a
// fixed order.
func BuildConstraints(input ModelInput, coursesById map[string]Course, space *VariableSpace, logger Logger) []Constraint {
	if logger == nil {
		logger = noopLogger{}
	}

	builders := []func() []Constraint{
		func() []Constraint { return BuildUniquenessConstraints(input.Courses, space) },
		func() []Constraint { return BuildConflictConstraints(coursesById, input.Grid, space) },
		func() []Constraint { return BuildMeetingConsistencyConstraints(coursesById, space) },
		func() []Constraint { return BuildOccupiedRoomConstraints(coursesById, input.OccupiedTimes, space) },
	}

	type familyResult struct {
		family      int
		constraints []Constraint
	}
	resultsChannel := make(chan familyResult)

	for i, builder := range builders {
		go func() {
			resultsChannel <- familyResult{family: i, constraints: builder()}
		}()
	}

	results := make([][]Constraint, len(builders))
	for range builders {
		result := <-resultsChannel
		results[result.family] = result.constraints
	}

	logger.Printf("built %d uniqueness, %d conflict, %d meeting-consistency, %d occupied-room constraints",
		len(results[0]), len(results[1]), len(results[2]), len(results[3]))

	return lo.Flatten(results)
}
