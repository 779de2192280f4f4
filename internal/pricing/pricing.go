// Package pricing computes booking durations and amounts from "HH:MM" times.
package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidTime = errors.New("invalid HH:MM time")

// Mode selects how a time window is converted to billable hours.
type Mode string

const (
	// ModeMinute bills the exact window, 08:30-10:00 is 1.5 hours.
	ModeMinute Mode = "minute"
	// ModeHour bills the difference of the hour components only, 08:30-10:00 is 2 hours.
	ModeHour Mode = "hour"
)

// ParseMode maps a config value to a Mode, falling back to ModeMinute.
func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeHour {
		return ModeHour
	}
	return ModeMinute
}

// Calculator prices time windows in one Mode.
type Calculator struct {
	mode Mode
}

func NewCalculator(mode Mode) *Calculator {
	if mode != ModeHour {
		mode = ModeMinute
	}
	return &Calculator{mode: mode}
}

func (c *Calculator) Mode() Mode {
	return c.mode
}

// Hours returns the billable duration between start and end.
// A window whose end is not after its start yields zero or a negative value.
func (c *Calculator) Hours(start, end string) (float64, error) {
	startMin, err := ParseHHMM(start)
	if err != nil {
		return 0, err
	}
	endMin, err := ParseHHMM(end)
	if err != nil {
		return 0, err
	}

	if c.mode == ModeHour {
		return float64(endMin/60 - startMin/60), nil
	}
	return float64(endMin-startMin) / 60, nil
}

// Price returns pricePerHour multiplied by the billable hours, rounded to cents.
func (c *Calculator) Price(pricePerHour float64, start, end string) (float64, error) {
	hours, err := c.Hours(start, end)
	if err != nil {
		return 0, err
	}
	return math.Round(pricePerHour*hours*100) / 100, nil
}

// ParseHHMM converts a 24h "HH:MM" string to minutes since midnight.
func ParseHHMM(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) != 2 || len(mm) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return h*60 + m, nil
}

// Before reports whether start is strictly earlier than end. Both must be valid.
func Before(start, end string) bool {
	s, err := ParseHHMM(start)
	if err != nil {
		return false
	}
	e, err := ParseHHMM(end)
	if err != nil {
		return false
	}
	return s < e
}
