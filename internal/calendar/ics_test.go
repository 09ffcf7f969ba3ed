package calendar

import (
	"strings"
	"testing"

	"github.com/Ilikepi739/swim/internal/listing"
)

func TestGenerateICS(t *testing.T) {
	meets := []listing.MeetRef{
		{Name: "Central vs West", Date: "12/14/2019", URL: "http://www.section3swim.com/meets/1"},
		{Name: "Holiday Invitational", Date: "12/21/2019", URL: "http://www.section3swim.com/meets/2"},
	}

	ics := GenerateICS("Central", meets)

	if !strings.HasPrefix(ics, "BEGIN:VCALENDAR\r\n") {
		t.Error("expected calendar header")
	}
	if !strings.HasSuffix(ics, "END:VCALENDAR\r\n") {
		t.Error("expected calendar footer")
	}
	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected 2 events, got %d", got)
	}
	if !strings.Contains(ics, "DTSTART;VALUE=DATE:20191214\r\n") {
		t.Error("expected all-day start on meet date")
	}
	if !strings.Contains(ics, "DTEND;VALUE=DATE:20191215\r\n") {
		t.Error("expected all-day end on following date")
	}
	if !strings.Contains(ics, "SUMMARY:Central - Central vs West\r\n") {
		t.Error("expected team-prefixed summary")
	}
	if !strings.Contains(ics, "UID:"+meets[0].ID()+"@section3swim.com\r\n") {
		t.Error("expected deterministic UID from meet ID")
	}
}

func TestGenerateICSSkipsUnparseableDates(t *testing.T) {
	meets := []listing.MeetRef{
		{Name: "Good", Date: "12/14/2019", URL: "/meets/1"},
		{Name: "Bad", Date: "TBD", URL: "/meets/2"},
	}

	ics := GenerateICS("", meets)

	if got := strings.Count(ics, "BEGIN:VEVENT"); got != 1 {
		t.Errorf("expected 1 event with bad date skipped, got %d", got)
	}
	if strings.Contains(ics, "Bad") {
		t.Error("expected meet with unparseable date to be absent")
	}
}

func TestEscapeICS(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"a,b", "a\\,b"},
		{"a;b", "a\\;b"},
		{"a\nb", "a\\nb"},
		{`a\b`, `a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := escapeICS(tt.input); got != tt.expected {
				t.Errorf("escapeICS(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
