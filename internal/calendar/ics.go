// Package calendar exports meet schedules as iCalendar (.ics) files.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ilikepi739/swim/internal/listing"
)

const dateLayout = "01/02/2006"

// GenerateICS generates an iCalendar file with one all-day event per
// meet. Meets whose date cannot be parsed are skipped.
func GenerateICS(team string, meets []listing.MeetRef) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//swim//swim-cli//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	now := time.Now().UTC()
	for i := range meets {
		meet := &meets[i]
		date, err := time.Parse(dateLayout, strings.TrimSpace(meet.Date))
		if err != nil {
			continue
		}
		writeEvent(&ics, team, meet, date, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, team string, meet *listing.MeetRef, date, stamp time.Time) {
	ics.WriteString("BEGIN:VEVENT\r\n")

	// UID - deterministic so re-imports update rather than duplicate
	fmt.Fprintf(ics, "UID:%s@section3swim.com\r\n", meet.ID())

	// DTSTAMP - when this calendar entry was generated
	fmt.Fprintf(ics, "DTSTAMP:%s\r\n", stamp.Format("20060102T150405Z"))

	// All-day event on the meet date
	fmt.Fprintf(ics, "DTSTART;VALUE=DATE:%s\r\n", date.Format("20060102"))
	fmt.Fprintf(ics, "DTEND;VALUE=DATE:%s\r\n", date.AddDate(0, 0, 1).Format("20060102"))

	summary := meet.Name
	if team != "" {
		summary = fmt.Sprintf("%s - %s", team, meet.Name)
	}
	fmt.Fprintf(ics, "SUMMARY:%s\r\n", escapeICS(summary))

	description := fmt.Sprintf("Swim meet: %s\nDate: %s", meet.Name, meet.Date)
	fmt.Fprintf(ics, "DESCRIPTION:%s\r\n", escapeICS(description))

	if meet.URL != "" {
		fmt.Fprintf(ics, "URL:%s\r\n", meet.URL)
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// escapeICS escapes special characters according to RFC 5545
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
