package timetable

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/daygrid/pkg/errors"
)

// MinutesPerDay is the exclusive upper bound of a day-local clock.
const MinutesPerDay = 24 * 60

// Clock is a day-local time in minutes since midnight.
type Clock int

// FromHHMM converts an HHMM integer (805 = 08:05) to a Clock.
// The value is not validated; use [ParseHHMM] for untrusted input.
func FromHHMM(v int) Clock {
	return Clock(v/100*60 + v%100)
}

// ParseHHMM converts an HHMM integer, rejecting values whose minute part is
// 60 or more and values past 24:00.
func ParseHHMM(v int) (Clock, error) {
	if v < 0 || v%100 >= 60 || v > 2400 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid HHMM time: %d", v)
	}
	return FromHHMM(v), nil
}

// ParseClock parses "HH:MM", "H:MM" or an HHMM digit string ("805", "0805").
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	if h, m, ok := strings.Cut(s, ":"); ok {
		hh, err1 := strconv.Atoi(h)
		mm, err2 := strconv.Atoi(m)
		if err1 != nil || err2 != nil || len(m) != 2 {
			return 0, errors.New(errors.ErrCodeInvalidInput, "invalid time: %q", s)
		}
		return ParseHHMM(hh*100 + mm)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid time: %q", s)
	}
	return ParseHHMM(v)
}

// HHMM returns the clock as an HHMM integer.
func (c Clock) HHMM() int { return int(c)/60*100 + int(c)%60 }

// String renders the clock as "HH:MM".
func (c Clock) String() string { return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60) }

// Clamp limits c to [lo, hi].
func (c Clock) Clamp(lo, hi Clock) Clock { return min(max(c, lo), hi) }

// MarshalJSON encodes the clock as an HHMM integer, matching timetable feeds.
func (c Clock) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(c.HHMM())), nil
}

// UnmarshalJSON accepts an HHMM integer or a time string.
func (c *Clock) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		v, err := ParseHHMM(n)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.New(errors.ErrCodeInvalidInput, "time must be an HHMM number or string, got %s", data)
	}
	v, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UnmarshalText parses a time string. TOML configuration files use it.
func (c *Clock) UnmarshalText(text []byte) error {
	v, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UnmarshalYAML accepts an HHMM integer or a time string.
// Unquoted 08:00 is a string in YAML 1.2, which ParseClock handles.
func (c *Clock) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return errors.New(errors.ErrCodeInvalidInput, "line %d: time must be a scalar", value.Line)
	}
	if value.Tag == "!!int" {
		n, err := strconv.Atoi(value.Value)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "line %d: invalid time %q", value.Line, value.Value)
		}
		v, err := ParseHHMM(n)
		if err != nil {
			return err
		}
		*c = v
		return nil
	}
	v, err := ParseClock(value.Value)
	if err != nil {
		return err
	}
	*c = v
	return nil
}
