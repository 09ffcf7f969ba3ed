package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Ilikepi739/swim/internal/listing"
	"github.com/Ilikepi739/swim/internal/meet"
	"github.com/Ilikepi739/swim/internal/swimmer"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// writeJSON outputs any result as indented JSON
func writeJSON(w io.Writer, result interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// TeamsResult is the output of the teams command
type TeamsResult struct {
	CheckedAt time.Time         `json:"checked_at"`
	Teams     []listing.TeamRef `json:"teams"`
}

func writeTeams(w io.Writer, result *TeamsResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if len(result.Teams) == 0 {
		fmt.Fprintln(w, "No teams found.")
		return nil
	}
	for _, team := range result.Teams {
		fmt.Fprintf(w, "%s\n  %s\n", team.Name, team.URL)
	}
	fmt.Fprintf(w, "\nTotal: %d teams\n", len(result.Teams))
	return nil
}

// RosterResult is the output of the roster command
type RosterResult struct {
	CheckedAt time.Time            `json:"checked_at"`
	TeamURL   string               `json:"team_url"`
	Swimmers  []listing.SwimmerRef `json:"swimmers"`
}

func writeRoster(w io.Writer, result *RosterResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if len(result.Swimmers) == 0 {
		fmt.Fprintln(w, "No swimmers found.")
		return nil
	}
	for _, s := range result.Swimmers {
		fmt.Fprintf(w, "%s\n  %s\n", s.Name, s.URL)
	}
	fmt.Fprintf(w, "\nTotal: %d swimmers\n", len(result.Swimmers))
	return nil
}

// MeetsResult is the output of the meets command. NewMeets is set only
// in check mode.
type MeetsResult struct {
	CheckedAt time.Time         `json:"checked_at"`
	TeamURL   string            `json:"team_url"`
	Meets     []listing.MeetRef `json:"meets,omitempty"`
	NewMeets  []listing.MeetRef `json:"new_meets,omitempty"`
	CheckMode bool              `json:"check_mode,omitempty"`
}

func writeMeets(w io.Writer, result *MeetsResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if result.CheckMode {
		if len(result.NewMeets) == 0 {
			fmt.Fprintln(w, "No new meets found.")
			return nil
		}
		for _, m := range result.NewMeets {
			fmt.Fprintf(w, "NEW: %s  %s\n  %s\n", m.Date, m.Name, m.URL)
		}
		fmt.Fprintf(w, "\nTotal: %d new meets\n", len(result.NewMeets))
		return nil
	}

	if len(result.Meets) == 0 {
		fmt.Fprintln(w, "No meets found.")
		return nil
	}
	for _, m := range result.Meets {
		fmt.Fprintf(w, "%s  %s\n  %s\n", m.Date, m.Name, m.URL)
	}
	fmt.Fprintf(w, "\nTotal: %d meets\n", len(result.Meets))
	return nil
}

// MeetResult is the output of the meet command
type MeetResult struct {
	CheckedAt time.Time          `json:"checked_at"`
	MeetURL   string             `json:"meet_url"`
	Events    []meet.EventResult `json:"events"`
}

func writeMeet(w io.Writer, result *MeetResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}
	for _, evt := range result.Events {
		fmt.Fprintf(w, "\n%s\n", evt.Name)
		fmt.Fprintln(w, "  Home:")
		writeEntries(w, evt.Home)
		fmt.Fprintln(w, "  Away:")
		writeEntries(w, evt.Away)
	}
	fmt.Fprintf(w, "\nTotal: %d events\n", len(result.Events))
	return nil
}

func writeEntries(w io.Writer, entries []meet.TimeEntry) {
	for _, e := range entries {
		marker := ""
		if e.Exhibition {
			marker = " (exhibition)"
		}
		fmt.Fprintf(w, "    %-10s %s%s\n", e.Time, e.Swimmer, marker)
	}
}

// SwimmerResult is the output of the swimmer command
type SwimmerResult struct {
	CheckedAt  time.Time        `json:"checked_at"`
	SwimmerURL string           `json:"swimmer_url"`
	Swimmer    *swimmer.Swimmer `json:"swimmer"`
}

func writeSwimmer(w io.Writer, result *SwimmerResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	s := result.Swimmer
	fmt.Fprintf(w, "%s (%s)\n", s.Name, s.ClassYear)

	if !s.HistoryFound {
		fmt.Fprintln(w, "No performance history posted.")
		return nil
	}
	if len(s.Performances) == 0 {
		fmt.Fprintln(w, "No performances recorded.")
		return nil
	}

	for _, p := range s.Performances {
		fmt.Fprintf(w, "  %s  %-28s %s\n", p.Date.Format("01/02/2006"), p.Event, p.Seconds)
	}
	fmt.Fprintf(w, "\nTotal: %d performances\n", len(s.Performances))
	return nil
}

// AllMeetsResult is the output of the all-meets command
type AllMeetsResult struct {
	CheckedAt time.Time `json:"checked_at"`
	MeetURLs  []string  `json:"meet_urls"`
}

func writeAllMeets(w io.Writer, result *AllMeetsResult, format OutputFormat) error {
	if format == FormatJSON {
		return writeJSON(w, result)
	}

	if len(result.MeetURLs) == 0 {
		fmt.Fprintln(w, "No meets found.")
		return nil
	}
	for _, url := range result.MeetURLs {
		fmt.Fprintln(w, url)
	}
	fmt.Fprintf(w, "\nTotal: %d meets\n", len(result.MeetURLs))
	return nil
}
