package model

import (
	"fmt"
	"math/bits"
	"strings"
)

// A Day is a weekday, coded 0 (Monday) through 4 (Friday).
type Day uint8

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

const dayChars = "MTWRF"

func (d Day) String() string {
	if int(d) >= len(dayChars) {
		return fmt.Sprintf("Day(%d)", uint8(d))
	}
	return string(dayChars[d])
}

func ParseDay(s string) (Day, error) {
	if len(s) != 1 {
		return 0, InvalidDayPatternError{Pattern: s}
	}
	index := strings.IndexByte(dayChars, s[0])
	if index < 0 {
		return 0, InvalidDayPatternError{Pattern: s}
	}
	return Day(index), nil
}

type InvalidDayPatternError struct {
	Pattern string
}

func (err InvalidDayPatternError) Error() string {
	return fmt.Sprintf("day pattern %q includes invalid characters, must be a substring of %s", err.Pattern, dayChars)
}

// A DayPattern is a set of weekdays, held as a bitmask so that it is
// comparable and order-insensitive. The canonical ordering is MTWRF.
type DayPattern uint8

// ParseDayPattern builds a day pattern from a string such as "MWR"
// (Monday, Wednesday, Thursday).
func ParseDayPattern(s string) (DayPattern, error) {
	var pattern DayPattern
	for i := range s {
		day, err := ParseDay(s[i : i+1])
		if err != nil {
			return 0, InvalidDayPatternError{Pattern: s}
		}
		pattern |= 1 << day
	}
	return pattern, nil
}

func (pattern DayPattern) Contains(day Day) bool {
	return pattern&(1<<day) != 0
}

// Without returns the pattern with day removed.
func (pattern DayPattern) Without(day Day) DayPattern {
	return pattern &^ (1 << day)
}

func (pattern DayPattern) Len() int {
	return bits.OnesCount8(uint8(pattern))
}

// Days returns the pattern's days in canonical order.
func (pattern DayPattern) Days() []Day {
	days := make([]Day, 0, pattern.Len())
	for day := Monday; day <= Friday; day++ {
		if pattern.Contains(day) {
			days = append(days, day)
		}
	}
	return days
}

func (pattern DayPattern) String() string {
	var builder strings.Builder
	for _, day := range pattern.Days() {
		builder.WriteString(day.String())
	}
	return builder.String()
}
