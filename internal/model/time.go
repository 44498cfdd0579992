package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// TickIncrementMinutes is the lattice every time-of-day value is quantized to.
const TickIncrementMinutes = 5

// A Tick is a time-of-day value on the 5-minute lattice. Equality is
// structural: two ticks are equal iff hour and minute match.
type Tick struct {
	Hour   int
	Minute int
}

type InvalidTickError struct {
	Hour   int
	Minute int
}

func (err InvalidTickError) Error() string {
	return fmt.Sprintf("time %d:%02d must be within the day in %d-minute increments", err.Hour, err.Minute, TickIncrementMinutes)
}

func NewTick(hour, minute int) (Tick, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || minute%TickIncrementMinutes != 0 {
		return Tick{}, InvalidTickError{Hour: hour, Minute: minute}
	}
	return Tick{Hour: hour, Minute: minute}, nil
}

// ParseTick parses a "HH:MM" time-of-day string.
func ParseTick(s string) (Tick, error) {
	hourStr, minuteStr, found := strings.Cut(s, ":")
	if !found {
		return Tick{}, fmt.Errorf("time %q is not in HH:MM format", s)
	}
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return Tick{}, fmt.Errorf("time %q is not in HH:MM format", s)
	}
	minute, err := strconv.Atoi(minuteStr)
	if err != nil {
		return Tick{}, fmt.Errorf("time %q is not in HH:MM format", s)
	}
	return NewTick(hour, minute)
}

func (t Tick) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t Tick) Before(other Tick) bool {
	return t.totalMinutes() < other.totalMinutes()
}

func (t Tick) totalMinutes() int {
	return t.Hour*60 + t.Minute
}

// addMinutes is unchecked: the result may lie past the end of the day and is
// only ever used as a comparison bound, never as a grid tick.
func (t Tick) addMinutes(minutes int) Tick {
	total := t.totalMinutes() + minutes
	return Tick{Hour: total / 60, Minute: total % 60}
}

type TickNotOnGridError struct {
	Tick Tick
}

func (err TickNotOnGridError) Error() string {
	return fmt.Sprintf("time %v is not on the grid", err.Tick)
}

// A TimeGrid is an ordered, gapless sequence of ticks spanning a day window,
// each assigned a dense index so solver-facing code can convert between
// human-readable times and positions.
type TimeGrid struct {
	incrementMinutes int
	ticks            []Tick
	indexes          map[Tick]int
}

// NewTimeGrid generates ticks from start, advancing by incrementMinutes
// while the last generated tick is strictly below end, so the boundary tick
// at or past end is included as the final element.
func NewTimeGrid(start, end Tick, incrementMinutes int) (TimeGrid, error) {
	if incrementMinutes <= 0 || incrementMinutes%TickIncrementMinutes != 0 {
		return TimeGrid{}, fmt.Errorf("grid increment must be a positive multiple of %d minutes, was %d", TickIncrementMinutes, incrementMinutes)
	}
	if end.Before(start) {
		return TimeGrid{}, fmt.Errorf("grid start %v is after end %v", start, end)
	}

	ticks := []Tick{start}
	for ticks[len(ticks)-1].Before(end) {
		raw := ticks[len(ticks)-1].addMinutes(incrementMinutes)
		next, err := NewTick(raw.Hour, raw.Minute)
		if err != nil {
			return TimeGrid{}, fmt.Errorf("grid from %v exceeds the day: %w", start, err)
		}
		ticks = append(ticks, next)
	}

	return newTimeGridFromTicks(ticks, incrementMinutes), nil
}

func newTimeGridFromTicks(ticks []Tick, incrementMinutes int) TimeGrid {
	indexes := make(map[Tick]int, len(ticks))
	for i, tick := range ticks {
		indexes[tick] = i
	}
	return TimeGrid{incrementMinutes: incrementMinutes, ticks: ticks, indexes: indexes}
}

func (grid TimeGrid) Len() int {
	return len(grid.ticks)
}

func (grid TimeGrid) IncrementMinutes() int {
	return grid.incrementMinutes
}

// Ticks returns the grid's ticks in index order.
func (grid TimeGrid) Ticks() []Tick {
	return grid.ticks
}

// Tick returns the tick at index i.
func (grid TimeGrid) Tick(i int) Tick {
	return grid.ticks[i]
}

// Index returns the dense index of t, or a lookup error if t is not exactly
// one of the grid's ticks.
func (grid TimeGrid) Index(t Tick) (int, error) {
	index, ok := grid.indexes[t]
	if !ok {
		return 0, TickNotOnGridError{Tick: t}
	}
	return index, nil
}

// SubGrid returns a new grid at the same granularity holding the parent
// ticks in [start, end). The half-open end keeps a class occupying
// [t, t+duration) from blocking another class that starts exactly at
// t+duration.
func (grid TimeGrid) SubGrid(start, end Tick) TimeGrid {
	ticks := lo.Filter(grid.ticks, func(tick Tick, _ int) bool {
		return !tick.Before(start) && tick.Before(end)
	})
	return newTimeGridFromTicks(ticks, grid.incrementMinutes)
}
