// Package swimmer parses swimmer profile pages: a metadata table with
// the swimmer's name and graduation year, and a chronological
// performance history table.
package swimmer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ilikepi739/swim/internal/scrape"
	"github.com/Ilikepi739/swim/internal/swimtime"
)

// Cell positions within the profile metadata table and character
// offsets within a history row. Fixed by the site's table rendering.
const (
	cellLastName  = 1
	cellFirstName = 2
	cellGradYear  = 9

	historyTableIndex = 2

	dateWidth  = 10
	timeOffset = 13
)

const dateLayout = "01/02/2006"

// Performance is one swim in a swimmer's history.
type Performance struct {
	Event   string           `json:"event"`
	Date    time.Time        `json:"date"`
	Seconds swimtime.Seconds `json:"seconds"`
}

// Swimmer is a parsed profile. HistoryFound distinguishes a profile
// whose history table is absent from one with a present but empty
// table; the absent case is tolerated and yields zero performances.
type Swimmer struct {
	Name         string        `json:"name"`
	ClassYear    string        `json:"class_year"`
	Performances []Performance `json:"performances"`
	HistoryFound bool          `json:"history_found"`
}

// ParseProfile extracts a swimmer from a profile page. classYears maps
// graduation-year codes to class labels (see ClassYearsFor).
func ParseProfile(r io.Reader, classYears map[int]string) (*Swimmer, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, scrape.Structuref("profile metadata table")
	}

	info := tables.First()
	last, err := boldCellText(info, cellLastName)
	if err != nil {
		return nil, err
	}
	first, err := boldCellText(info, cellFirstName)
	if err != nil {
		return nil, err
	}
	yearText, err := boldCellText(info, cellGradYear)
	if err != nil {
		return nil, err
	}

	code, err := strconv.Atoi(strings.TrimSpace(yearText))
	if err != nil {
		return nil, scrape.Structuref("numeric graduation year in metadata cell %d, got %q", cellGradYear, yearText)
	}
	class, ok := classYears[code]
	if !ok {
		return nil, &UnknownClassYearError{Code: code}
	}

	swim := &Swimmer{
		Name:         first + " " + last,
		ClassYear:    class,
		Performances: make([]Performance, 0),
	}

	// A missing history table is tolerated: the swimmer simply has no
	// recorded performances yet.
	if tables.Length() <= historyTableIndex {
		return swim, nil
	}
	swim.HistoryFound = true

	var parseErr error
	history := tables.Eq(historyTableIndex)
	rows := history.Find("tr")
	currentEvent := strings.TrimSpace(rows.First().Text())

	rows.EachWithBreak(func(i int, tr *goquery.Selection) bool {
		// Bold rows re-set the current event name and carry no time.
		if tr.Find("b").Length() > 0 {
			currentEvent = strings.TrimSpace(tr.Text())
			return true
		}

		text := tr.Text()
		if len(text) < dateWidth {
			parseErr = scrape.Structuref("history row %d with a leading MM/DD/YYYY date, got %q", i, text)
			return false
		}

		date, err := time.Parse(dateLayout, text[:dateWidth])
		if err != nil {
			parseErr = scrape.Structuref("parseable date in history row %d, got %q", i, text[:dateWidth])
			return false
		}

		var raw string
		if len(text) > timeOffset {
			raw = text[timeOffset:]
		}
		seconds, err := swimtime.Parse(raw)
		if err != nil {
			parseErr = err
			return false
		}

		swim.Performances = append(swim.Performances, Performance{
			Event:   currentEvent,
			Date:    date,
			Seconds: seconds,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return swim, nil
}

// Fetch retrieves and parses a swimmer profile page.
func Fetch(ctx context.Context, fetcher scrape.Fetcher, url string, classYears map[int]string) (*Swimmer, error) {
	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	swim, err := ParseProfile(bytes.NewReader(body), classYears)
	if err != nil {
		return nil, scrape.Locate(err, url)
	}
	return swim, nil
}

// boldCellText reads the bolded text of the table cell at the given
// position.
func boldCellText(table *goquery.Selection, index int) (string, error) {
	cell := table.Find("td").Eq(index)
	if cell.Length() == 0 {
		return "", scrape.Structuref("metadata table cell %d", index)
	}
	bold := cell.Find("b").First()
	if bold.Length() == 0 {
		return "", scrape.Structuref("bold text in metadata cell %d", index)
	}
	return strings.TrimSpace(bold.Text()), nil
}
