package model

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockContains(t *testing.T) {
	block := Block{Id: 1, Start: mustTick(t, 13, 0), End: mustTick(t, 15, 0)}

	// Half-open window: the start boundary is schedulable, the end is not.
	assert.True(t, block.Contains(mustTick(t, 13, 0)))
	assert.True(t, block.Contains(mustTick(t, 14, 55)))
	assert.False(t, block.Contains(mustTick(t, 15, 0)))
	assert.False(t, block.Contains(mustTick(t, 12, 55)))
}

func TestRoomCanFit(t *testing.T) {
	course := Course{Id: "c1", Enrollment: 10}

	assert.True(t, Room{Name: "a", Seats: 12}.CanFit(course))
	assert.False(t, Room{Name: "b", Seats: 10}.CanFit(course)) // strict
	assert.False(t, Room{Name: "c", Seats: 8}.CanFit(course))
}

func TestInputFromJson(t *testing.T) {
	file := filepath.Join(t.TempDir(), "input.json")
	contents := `{
		"grid": {"start": "08:00", "end": "18:00", "incrementMinutes": 5},
		"blocks": [{"id": 1, "start": "13:00", "end": "15:00"}],
		"rooms": [{"name": "101", "seats": 30}],
		"courses": [{
			"id": "CS101",
			"name": "Intro to Computer Science",
			"dayPattern": "MWF",
			"desiredBlock": 1,
			"enrollment": 25,
			"lectureMinutesPerDay": 50,
			"labMinutesPerWeek": 0
		}],
		"occupiedTimes": [{"room": "101", "day": "W", "start": "13:00", "end": "14:00"}]
	}`
	assert.Nil(t, os.WriteFile(file, []byte(contents), 0o644))

	// Act
	input, err := InputFromJson(file)

	// Assert
	assert.Nil(t, err)
	assert.Equal(t, 121, input.Grid.Len())
	assert.Equal(t, []Block{{Id: 1, Start: mustTick(t, 13, 0), End: mustTick(t, 15, 0)}}, input.Blocks)
	assert.Equal(t, []Room{{Name: "101", Seats: 30}}, input.Rooms)
	assert.Equal(t, []Course{{
		Id:                   "CS101",
		Name:                 "Intro to Computer Science",
		DayPattern:           mustPattern(t, "MWF"),
		DesiredBlock:         1,
		Enrollment:           25,
		LectureMinutesPerDay: 50,
	}}, input.Courses)
	assert.Equal(t, []OccupiedTime{{
		Room:  "101",
		Day:   Wednesday,
		Start: mustTick(t, 13, 0),
		End:   mustTick(t, 14, 0),
	}}, input.OccupiedTimes)
}

func TestInputFromJsonDefaultsGrid(t *testing.T) {
	file := filepath.Join(t.TempDir(), "input.json")
	assert.Nil(t, os.WriteFile(file, []byte(`{"courses": [], "rooms": [], "blocks": []}`), 0o644))

	input, err := InputFromJson(file)

	assert.Nil(t, err)
	// 07:00 through 20:30 at 5 minutes.
	assert.Equal(t, 163, input.Grid.Len())
	assert.Equal(t, mustTick(t, 7, 0), input.Grid.Tick(0))
	assert.Equal(t, mustTick(t, 20, 30), input.Grid.Tick(162))
}

func TestInputFromJsonRejectsMalformedTimes(t *testing.T) {
	file := filepath.Join(t.TempDir(), "input.json")
	contents := `{"blocks": [{"id": 1, "start": "13:02", "end": "15:00"}]}`
	assert.Nil(t, os.WriteFile(file, []byte(contents), 0o644))

	_, err := InputFromJson(file)
	assert.NotNil(t, err)
}
