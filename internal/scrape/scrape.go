// Package scrape holds the shared primitives for page scraping: the
// Fetcher interface the parsers consume, and the structured error
// returned when a page is missing an expected table, row, or attribute.
package scrape

import (
	"context"
	"fmt"
)

// Fetcher retrieves the raw bytes of a page. The production
// implementation is fetch.Client; tests supply in-memory fakes.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// StructureError reports a page whose markup is missing something the
// parser requires. Want describes the expected structure; URL is filled
// by the fetch wrappers via Locate.
type StructureError struct {
	URL  string
	Want string
}

func (e *StructureError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("unexpected page structure: wanted %s", e.Want)
	}
	return fmt.Sprintf("unexpected page structure at %s: wanted %s", e.URL, e.Want)
}

// Structuref builds a StructureError from a format string.
func Structuref(format string, args ...interface{}) *StructureError {
	return &StructureError{Want: fmt.Sprintf(format, args...)}
}

// Locate tags a StructureError with the page URL it came from. Other
// errors pass through unchanged.
func Locate(err error, url string) error {
	if serr, ok := err.(*StructureError); ok && serr.URL == "" {
		serr.URL = url
	}
	return err
}
