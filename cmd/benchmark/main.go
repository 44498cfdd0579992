package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"classscheduler/internal/mip"
	"classscheduler/internal/model"
)

const (
	TotalCourses = 30
	TotalRooms   = 10
	Seed         = 42
)

var dayPatterns = []string{"MWF", "TR", "MW", "WF", "F"}

func main() {
	input := randomInput(rand.New(rand.NewSource(Seed)))
	scheduler := model.NewScheduler(mip.NewGophersatSolver(), model.WithLogger(log.Default()))

	start := time.Now()
	timetable, err := scheduler.Build(context.Background(), input)
	elapsed := time.Since(start).Seconds()

	if errors.Is(err, model.ErrNoFeasibleTimetable) {
		fmt.Printf("infeasible instance, proven in %.3gs\n", elapsed)
		return
	} else if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("scheduled %d courses (%d assignments) in %.3gs\n", TotalCourses, len(timetable), elapsed)

	if !scheduler.Verify(timetable, input) {
		log.Fatal("verification failed")
	}
}

func randomInput(random *rand.Rand) model.ModelInput {
	grid, err := model.NewTimeGrid(tick(8, 0), tick(18, 0), 5)
	if err != nil {
		log.Fatal(err)
	}

	blocks := []model.Block{
		{Id: 1, Start: tick(8, 0), End: tick(12, 0)},
		{Id: 2, Start: tick(12, 0), End: tick(15, 0)},
		{Id: 3, Start: tick(14, 0), End: tick(18, 0)},
	}

	rooms := make([]model.Room, 0, TotalRooms)
	for i := range TotalRooms {
		rooms = append(rooms, model.Room{
			Name:  fmt.Sprintf("room-%d", i),
			Seats: 20 + random.Intn(80),
		})
	}

	courses := make([]model.Course, 0, TotalCourses)
	for i := range TotalCourses {
		pattern, err := model.ParseDayPattern(dayPatterns[random.Intn(len(dayPatterns))])
		if err != nil {
			log.Fatal(err)
		}
		courses = append(courses, model.Course{
			Id:                   fmt.Sprintf("course-%d", i),
			Name:                 fmt.Sprintf("Course %d", i),
			DayPattern:           pattern,
			DesiredBlock:         blocks[random.Intn(len(blocks))].Id,
			Enrollment:           5 + random.Intn(60),
			LectureMinutesPerDay: []int{50, 75, 100}[random.Intn(3)],
		})
	}

	return model.ModelInput{Courses: courses, Rooms: rooms, Blocks: blocks, Grid: grid}
}

func tick(hour, minute int) model.Tick {
	t, err := model.NewTick(hour, minute)
	if err != nil {
		log.Fatal(err)
	}
	return t
}
