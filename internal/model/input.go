package model

import (
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/mitchellh/mapstructure"
)

// A Block is a named time window a course may be scheduled into. It makes
// precise a requirement like "this course meets in the afternoon".
type Block struct {
	Id    int
	Start Tick
	End   Tick
}

// Contains reports whether t lies in the half-open window [Start, End), so a
// class may start exactly on the block boundary.
func (block Block) Contains(t Tick) bool {
	return !t.Before(block.Start) && t.Before(block.End)
}

type Room struct {
	Name  string // unique
	Seats int
}

// CanFit is strict: a room fits a course only with seats to spare.
func (room Room) CanFit(course Course) bool {
	return room.Seats > course.Enrollment
}

// A Course is immutable once loaded.
type Course struct {
	Id                   string
	Name                 string
	DayPattern           DayPattern
	DesiredBlock         int
	Enrollment           int
	LectureMinutesPerDay int
	LabMinutesPerWeek    int
}

// An OccupiedTime is a hard blocker: no class window may overlap
// [Start, End) in the room on the day.
type OccupiedTime struct {
	Room  string
	Day   Day
	Start Tick
	End   Tick
}

// ModelInput bundles the validated domain records and the pre-built time
// grid a model is encoded over.
type ModelInput struct {
	Courses       []Course
	Rooms         []Room
	Blocks        []Block
	OccupiedTimes []OccupiedTime
	Grid          TimeGrid
}

type gridConfig struct {
	Start            Tick
	End              Tick
	IncrementMinutes int
}

type inputFile struct {
	Grid          gridConfig
	Courses       []Course
	Rooms         []Room
	Blocks        []Block
	OccupiedTimes []OccupiedTime
}

// The reference day window when the input does not configure one.
var defaultGrid = gridConfig{
	Start:            Tick{Hour: 7},
	End:              Tick{Hour: 20, Minute: 30},
	IncrementMinutes: TickIncrementMinutes,
}

// InputFromJson loads a ModelInput from a JSON file. Times are "HH:MM"
// strings, day patterns are substrings of MTWRF; both go through the usual
// constructors so malformed values fail here, before any enumeration.
func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	var parsed inputFile
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: decodeTimeStrings,
		Result:     &parsed,
	})
	if err != nil {
		return ModelInput{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return ModelInput{}, fmt.Errorf("cannot decode input: %w", err)
	}

	if parsed.Grid.IncrementMinutes == 0 {
		parsed.Grid = defaultGrid
	}
	grid, err := NewTimeGrid(parsed.Grid.Start, parsed.Grid.End, parsed.Grid.IncrementMinutes)
	if err != nil {
		return ModelInput{}, err
	}

	return ModelInput{
		Courses:       parsed.Courses,
		Rooms:         parsed.Rooms,
		Blocks:        parsed.Blocks,
		OccupiedTimes: parsed.OccupiedTimes,
		Grid:          grid,
	}, nil
}

func decodeTimeStrings(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to {
	case reflect.TypeOf(Tick{}):
		return ParseTick(data.(string))
	case reflect.TypeOf(DayPattern(0)):
		return ParseDayPattern(data.(string))
	case reflect.TypeOf(Day(0)):
		return ParseDay(data.(string))
	}
	return data, nil
}
