// Package listing extracts the flat link lists the section sites
// publish: the team dropdown, a team's roster table, a team's meet
// history, and the two-stage all-meets index. It also provides meet
// snapshots and diffing so the CLI can report newly-posted meets.
package listing

import (
	"crypto/sha1"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"

	"github.com/Ilikepi739/swim/internal/scrape"
)

// TeamRef is a team name and its page URL.
type TeamRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// SwimmerRef is a roster entry: swimmer display name and profile URL.
type SwimmerRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MeetRef is one meet in a team's history. Date is the raw MM/DD/YYYY
// text as rendered on the page.
type MeetRef struct {
	Name string `json:"name"`
	Date string `json:"date"`
	URL  string `json:"url"`
}

// ID returns a deterministic identifier for the meet, used for
// snapshot diffing and calendar UIDs.
func (m *MeetRef) ID() string {
	h := sha1.New()
	h.Write([]byte(m.Name + "|" + m.Date + "|" + m.URL))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// DateRef is one link on the all-meets index page: a date label and
// the per-date page URL behind it.
type DateRef struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// meetHistoryTableFromEnd positions the meet table relative to the end
// of the page's table list.
const meetHistoryTableFromEnd = 3

// meetListMarker identifies per-date links that lead to a meet page.
const meetListMarker = "Meet%20List"

// ParseTeams extracts the team list from the selection dropdown. The
// first option is the menu placeholder and is skipped.
func ParseTeams(r io.Reader) ([]TeamRef, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	teams := make([]TeamRef, 0)
	var parseErr error
	doc.Find("option").EachWithBreak(func(i int, opt *goquery.Selection) bool {
		if i == 0 {
			return true
		}
		url, ok := opt.Attr("value")
		if !ok {
			parseErr = scrape.Structuref("value attribute on team option %d", i)
			return false
		}
		teams = append(teams, TeamRef{Name: opt.Text(), URL: url})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return teams, nil
}

// ParseRoster extracts swimmer links from the last table on a team
// page. Relative profile links are resolved against baseURL.
func ParseRoster(r io.Reader, baseURL string) ([]SwimmerRef, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		return nil, scrape.Structuref("roster table on team page")
	}

	swimmers := make([]SwimmerRef, 0)
	var parseErr error
	tables.Last().Find("a").EachWithBreak(func(i int, link *goquery.Selection) bool {
		href, ok := link.Attr("href")
		if !ok {
			parseErr = scrape.Structuref("href on roster link %d", i)
			return false
		}
		swimmers = append(swimmers, SwimmerRef{Name: link.Text(), URL: baseURL + href})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return swimmers, nil
}

// ParseMeetHistory extracts a team's meet history from the
// third-from-last table on its meet-history page. Only rows carrying a
// link are meets; the rest are headers and spacers.
func ParseMeetHistory(r io.Reader) ([]MeetRef, error) {
	doc, err := htmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	tables := htmlquery.Find(doc, "//table")
	if len(tables) < meetHistoryTableFromEnd {
		return nil, scrape.Structuref("at least %d tables on meet-history page, got %d", meetHistoryTableFromEnd, len(tables))
	}
	table := tables[len(tables)-meetHistoryTableFromEnd]

	meets := make([]MeetRef, 0)
	for i, row := range htmlquery.Find(table, ".//tr") {
		links := htmlquery.Find(row, ".//a")
		if len(links) == 0 {
			continue
		}

		cells := htmlquery.Find(row, ".//td")
		if len(cells) < 2 {
			return nil, scrape.Structuref("date and name cells in meet row %d, got %d cells", i, len(cells))
		}
		href := htmlquery.SelectAttr(links[0], "href")
		if href == "" {
			return nil, scrape.Structuref("href on meet link in row %d", i)
		}

		meets = append(meets, MeetRef{
			Name: htmlquery.InnerText(cells[1]),
			Date: htmlquery.InnerText(cells[0]),
			URL:  href,
		})
	}

	return meets, nil
}

// ParseMeetIndex extracts the per-date page links from the all-meets
// index. Blank links are navigation filler and are skipped.
func ParseMeetIndex(r io.Reader, baseURL string) ([]DateRef, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	dates := make([]DateRef, 0)
	var parseErr error
	doc.Find("a").EachWithBreak(func(i int, link *goquery.Selection) bool {
		label := strings.TrimSpace(link.Text())
		if label == "" {
			return true
		}
		href, ok := link.Attr("href")
		if !ok {
			parseErr = scrape.Structuref("href on date link %q", label)
			return false
		}
		dates = append(dates, DateRef{Label: label, URL: baseURL + href})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return dates, nil
}

// ParseDatePage extracts meet page URLs from a per-date page. Meet
// links are identified by a marker substring in the href; links
// without an href are skipped.
func ParseDatePage(r io.Reader, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	urls := make([]string, 0)
	doc.Find("a").Each(func(_ int, link *goquery.Selection) {
		href, ok := link.Attr("href")
		if !ok {
			return
		}
		if strings.Contains(href, meetListMarker) {
			urls = append(urls, baseURL+href)
		}
	})

	return urls, nil
}
