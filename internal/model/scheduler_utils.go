package model

import (
	"errors"
	"fmt"
	"time"
)

// An UnknownBlockError names a course whose desired block id does not
// resolve among the known blocks.
type UnknownBlockError struct {
	CourseId string
	BlockId  int
}

func (err UnknownBlockError) Error() string {
	return fmt.Sprintf("course %v references unknown block %d", err.CourseId, err.BlockId)
}

// validateModelInput checks every cross-record reference before enumeration
// begins and builds the lookup maps the builders use. All findings are
// collected and reported together.
func validateModelInput(input ModelInput) (blocksById map[int]Block, coursesById map[string]Course, roomsByName map[string]Room, err error) {
	problems := []error{}

	blocksById = make(map[int]Block, len(input.Blocks))
	for _, block := range input.Blocks {
		if _, seen := blocksById[block.Id]; seen {
			problems = append(problems, fmt.Errorf("duplicate block id %d", block.Id))
			continue
		}
		blocksById[block.Id] = block
	}

	roomsByName = make(map[string]Room, len(input.Rooms))
	for _, room := range input.Rooms {
		if _, seen := roomsByName[room.Name]; seen {
			problems = append(problems, fmt.Errorf("duplicate room name %q", room.Name))
			continue
		}
		roomsByName[room.Name] = room
	}

	coursesById = make(map[string]Course, len(input.Courses))
	for _, course := range input.Courses {
		if _, seen := coursesById[course.Id]; seen {
			problems = append(problems, fmt.Errorf("duplicate course id %v", course.Id))
			continue
		}
		coursesById[course.Id] = course

		if course.DayPattern == 0 {
			problems = append(problems, fmt.Errorf("course %v has an empty day pattern", course.Id))
		}
		if _, known := blocksById[course.DesiredBlock]; !known {
			problems = append(problems, UnknownBlockError{CourseId: course.Id, BlockId: course.DesiredBlock})
		}
	}

	if len(problems) > 0 {
		return nil, nil, nil, errors.Join(problems...)
	}
	return blocksById, coursesById, roomsByName, nil
}

// timed reports the duration of a build phase through the logger.
func timed(logger Logger, message string) func() {
	start := time.Now()
	return func() {
		logger.Printf("%s took %.3gs", message, time.Since(start).Seconds())
	}
}
