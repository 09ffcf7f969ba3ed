// Package swimtime converts human-readable swim times into seconds.
//
// The result pages render times three ways: plain seconds ("58.21"),
// minutes and seconds ("1:03.55"), and disqualification markers ("DQ").
// Empty cells appear for unswum lanes and are treated as absent times
// rather than errors.
package swimtime

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Seconds is a swim time in seconds, or an absent marker for DQ and
// empty inputs. JSON output is a number, or null when absent.
type Seconds struct {
	Value float64
	Valid bool
}

// MarshalJSON renders the value, or null when the time is absent.
func (s Seconds) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON accepts a number or null.
func (s *Seconds) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = Seconds{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Seconds{Value: v, Valid: true}
	return nil
}

// String renders the value with centisecond precision, or "-" when absent.
func (s Seconds) String() string {
	if !s.Valid {
		return "-"
	}
	return strconv.FormatFloat(s.Value, 'f', 2, 64)
}

// FormatError reports a time string that matches none of the accepted forms.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized time format: %q", e.Input)
}

// Parse converts a time string to Seconds.
//
// Accepted forms:
//   - plain seconds: "58.21"
//   - minutes:seconds: "1:03.55" -> 63.55
//   - disqualification: any string containing "dq" (case-insensitive),
//     which yields an absent Seconds
//   - empty or whitespace-only input, which also yields an absent Seconds
//
// Anything else returns a *FormatError.
func Parse(raw string) (Seconds, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Seconds{}, nil
	}

	if v, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return Seconds{Value: v, Valid: true}, nil
	}

	if strings.Contains(strings.ToLower(trimmed), "dq") {
		return Seconds{}, nil
	}

	// "m:ss.hh" form, split on the first colon. A stray second colon
	// lands in the seconds part and fails the float parse below.
	mins, secs, ok := strings.Cut(trimmed, ":")
	if !ok {
		return Seconds{}, &FormatError{Input: raw}
	}

	m, err := strconv.Atoi(mins)
	if err != nil {
		return Seconds{}, &FormatError{Input: raw}
	}
	s, err := strconv.ParseFloat(secs, 64)
	if err != nil {
		return Seconds{}, &FormatError{Input: raw}
	}

	return Seconds{Value: float64(m)*60 + s, Valid: true}, nil
}
