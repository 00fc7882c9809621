// Package toml holds value types shared by the configuration sections.
package toml

import (
	"strconv"
	"time"
)

// Duration is a time.Duration read from a string such as "10s".
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalText parses a TOML, YAML or JSON value into a duration value.
func (d *Duration) UnmarshalText(text []byte) error {
	// Ignore if there is no value set.
	if len(text) == 0 {
		return nil
	}

	// Otherwise parse as a duration formatted string.
	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	// Set duration and return.
	*d = Duration(duration)
	return nil
}

// UnmarshalJSON accepts quoted durations and bare nanosecond counts.
func (d *Duration) UnmarshalJSON(data []byte) error {
	if s, err := strconv.Unquote(string(data)); err == nil {
		return d.UnmarshalText([]byte(s))
	}
	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

// MarshalText converts a duration to a string for encoding config files.
func (d Duration) MarshalText() (text []byte, err error) {
	return []byte(d.String()), nil
}
