package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"slices"
	"strings"
	"time"

	"classscheduler/internal/mip"
	"classscheduler/internal/model"
)

var dayNames = map[model.Day]string{
	model.Monday:    "Monday",
	model.Tuesday:   "Tuesday",
	model.Wednesday: "Wednesday",
	model.Thursday:  "Thursday",
	model.Friday:    "Friday",
}

const solveTimeout = 10 * time.Minute

func main() {
	file := "input.json"
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	input, err := model.InputFromJson(file)
	if err != nil {
		log.Fatalf("cannot parse input file: %v", err)
	}
	log.Printf("grid: %d ticks from %v to %v at %d-minute increments",
		input.Grid.Len(), input.Grid.Tick(0), input.Grid.Tick(input.Grid.Len()-1), input.Grid.IncrementMinutes())

	solver := mip.NewGophersatSolver()
	// solver := mip.NewRoundingsatSolver()
	scheduler := model.NewScheduler(solver, model.WithLogger(log.Default()))

	ctx, cancel := context.WithTimeout(context.Background(), solveTimeout)
	defer cancel()

	timetable, err := scheduler.Build(ctx, input)
	if err != nil {
		log.Fatal(err)
	}

	slices.SortFunc(timetable, func(a, b model.ClassStartVariable) int {
		if a.Day != b.Day {
			return int(a.Day) - int(b.Day)
		}
		if a.Time != b.Time {
			if a.Time.Before(b.Time) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Course, b.Course)
	})

	for _, assignment := range timetable {
		fmt.Printf("Day: %v, Time: %v, Course: %v, Room: %v\n",
			dayNames[assignment.Day], assignment.Time, assignment.Course, assignment.Room)
	}

	if !scheduler.Verify(timetable, input) {
		log.Fatal("verification failed")
	}

	fmt.Println("Timetable verified")
}
