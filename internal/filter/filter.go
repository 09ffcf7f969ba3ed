// Package filter narrows meet lists by date range, meet name, and
// weekend-only criteria.
//
// Example usage:
//
//	f := filter.New()
//	f.WeekendsOnly = true
//	f.Names = []string{"Invitational"}
//	filtered := f.Apply(meets)
package filter

import (
	"strings"
	"time"

	"github.com/Ilikepi739/swim/internal/listing"
)

// Filter represents meet filtering criteria
type Filter struct {
	// Date range filtering
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Meet name filtering (case-insensitive substring match)
	Names []string `json:"names,omitempty"`

	// Weekend-only filtering (Saturday/Sunday)
	WeekendsOnly bool `json:"weekends_only,omitempty"`
}

// New creates an empty filter that matches all meets until criteria
// are added.
func New() *Filter {
	return &Filter{
		Names: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Names) == 0 &&
		!f.WeekendsOnly
}

// Matches checks if a meet passes all active criteria. An empty filter
// matches every meet. Date criteria require a parseable meet date;
// meets whose date cannot be parsed fail date-based criteria.
func (f *Filter) Matches(meet *listing.MeetRef) bool {
	if f.IsEmpty() {
		return true
	}

	meetDate := parseMeetDate(meet.Date)

	if f.DateFrom != nil {
		if meetDate.IsZero() || meetDate.Before(*f.DateFrom) {
			return false
		}
	}
	if f.DateTo != nil {
		if meetDate.IsZero() || meetDate.After(*f.DateTo) {
			return false
		}
	}

	if f.WeekendsOnly {
		if meetDate.IsZero() {
			return false
		}
		day := meetDate.Weekday()
		if day != time.Saturday && day != time.Sunday {
			return false
		}
	}

	if len(f.Names) > 0 {
		matched := false
		for _, name := range f.Names {
			if strings.Contains(strings.ToLower(meet.Name), strings.ToLower(name)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply returns the meets matching the filter, preserving order.
func (f *Filter) Apply(meets []listing.MeetRef) []listing.MeetRef {
	if f.IsEmpty() {
		return meets
	}

	filtered := make([]listing.MeetRef, 0, len(meets))
	for i := range meets {
		if f.Matches(&meets[i]) {
			filtered = append(filtered, meets[i])
		}
	}
	return filtered
}

// parseMeetDate parses the MM/DD/YYYY date text the sites render,
// accepting single-digit months and days. Returns the zero time when
// parsing fails.
func parseMeetDate(text string) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}
	}

	for _, layout := range []string{"01/02/2006", "1/2/2006", "01/02/06", "1/2/06"} {
		if t, err := time.Parse(layout, text); err == nil {
			return t
		}
	}
	return time.Time{}
}
