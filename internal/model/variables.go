package model

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
)

// A ClassStartVariable is the binary decision variable of the model, keyed
// by (course, day, time, room): 1 if and only if the course meets on the day
// starting at the time in the room. It is a comparable value type on
// purpose: the meeting-consistency builder reconstructs variables instead of
// querying an index, so a fresh tuple must be interchangeable with a stored
// one as a map key.
type ClassStartVariable struct {
	Course string
	Day    Day
	Time   Tick
	Room   string
}

func (v ClassStartVariable) String() string {
	return fmt.Sprintf("ClassStart_%v_%v_%v_%v", v.Course, v.Day, v.Time, v.Room)
}

type courseDay struct {
	course string
	day    Day
}

type dayRoomTime struct {
	day  Day
	room string
	time Tick
}

// A VariableSpace is the full set of legal class-start variables plus the
// two derived indexes the constraint builders iterate, so constraint
// generation never scans the whole space per key. Read-only once built.
type VariableSpace struct {
	variables     []ClassStartVariable
	byCourseDay   map[courseDay][]ClassStartVariable
	byDayRoomTime map[dayRoomTime][]ClassStartVariable
}

func newVariableSpace() *VariableSpace {
	return &VariableSpace{
		byCourseDay:   make(map[courseDay][]ClassStartVariable),
		byDayRoomTime: make(map[dayRoomTime][]ClassStartVariable),
	}
}

func (space *VariableSpace) add(variable ClassStartVariable) {
	space.variables = append(space.variables, variable)

	course := courseDay{course: variable.Course, day: variable.Day}
	space.byCourseDay[course] = append(space.byCourseDay[course], variable)

	start := dayRoomTime{day: variable.Day, room: variable.Room, time: variable.Time}
	space.byDayRoomTime[start] = append(space.byDayRoomTime[start], variable)
}

func (space *VariableSpace) Len() int {
	return len(space.variables)
}

// Variables returns every variable in deterministic enumeration order.
func (space *VariableSpace) Variables() []ClassStartVariable {
	return space.variables
}

// ByCourseDay returns every room/time choice for one course-day.
func (space *VariableSpace) ByCourseDay(course string, day Day) []ClassStartVariable {
	return space.byCourseDay[courseDay{course: course, day: day}]
}

// ByDayRoomTime returns every variable whose start tuple matches exactly.
func (space *VariableSpace) ByDayRoomTime(day Day, room string, time Tick) []ClassStartVariable {
	return space.byDayRoomTime[dayRoomTime{day: day, room: room, time: time}]
}

// An InfeasibleCourseError names a course for which the capacity and
// block-window filters eliminated every room/time candidate.
type InfeasibleCourseError struct {
	CourseId   string
	LegalRooms int
	LegalTimes int
}

func (err InfeasibleCourseError) Error() string {
	return fmt.Sprintf("no legal room/time for course %v (%d legal rooms, %d legal times)", err.CourseId, err.LegalRooms, err.LegalTimes)
}

// BuildVariableSpace enumerates every legal (course, day, time, room)
// combination: rooms that fit the course, grid ticks inside the course's
// desired block, days of its pattern. The produced set holds exactly the
// quadruples passing all three filters. Courses with an empty room/time
// cross product are collected and reported together rather than aborting on
// the first.
func BuildVariableSpace(input ModelInput, blocksById map[int]Block, logger Logger) (*VariableSpace, error) {
	if logger == nil {
		logger = noopLogger{}
	}
	space := newVariableSpace()
	infeasible := []error{}

	for _, course := range input.Courses {
		block := blocksById[course.DesiredBlock]
		legalRooms := lo.Filter(input.Rooms, func(room Room, _ int) bool {
			return room.CanFit(course)
		})
		legalTimes := lo.Filter(input.Grid.Ticks(), func(tick Tick, _ int) bool {
			return block.Contains(tick)
		})

		logger.Printf("generating %d variables for course=%v days=%v block=%v",
			len(legalRooms)*len(legalTimes)*course.DayPattern.Len(), course.Id, course.DayPattern, course.DesiredBlock)

		if len(legalRooms) == 0 || len(legalTimes) == 0 {
			infeasible = append(infeasible, InfeasibleCourseError{
				CourseId:   course.Id,
				LegalRooms: len(legalRooms),
				LegalTimes: len(legalTimes),
			})
			continue
		}

		for _, room := range legalRooms {
			for _, time := range legalTimes {
				for _, day := range course.DayPattern.Days() {
					space.add(ClassStartVariable{Course: course.Id, Day: day, Time: time, Room: room.Name})
				}
			}
		}
	}

	if len(infeasible) > 0 {
		return nil, errors.Join(infeasible...)
	}

	logger.Printf("created %d class start variables", space.Len())
	return space, nil
}
