package meet

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/Ilikepi739/swim/internal/scrape"
)

// resultsTableSelector addresses the results table by position within
// the page. The site renders a fixed layout, so the selector is part of
// the scraping contract.
const resultsTableSelector = "body > form:nth-child(1) > table:nth-child(15)"

// ParseResults extracts event results from a meet results page. The
// table's first and last rows are a header and footer and are skipped.
func ParseResults(r io.Reader) ([]EventResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find(resultsTableSelector)
	if table.Length() == 0 {
		return nil, scrape.Structuref("results table at %q", resultsTableSelector)
	}

	rows := make([][]string, 0)
	table.First().Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := make([]string, 0, tr.Find("td").Length())
		tr.Find("td").Each(func(_ int, td *goquery.Selection) {
			cells = append(cells, td.Text())
		})
		rows = append(rows, cells)
	})

	if len(rows) < 2 {
		return nil, scrape.Structuref("results table with header and footer rows, got %d rows", len(rows))
	}

	return ParseRows(rows[1 : len(rows)-1])
}

// Results fetches a meet results page and parses it. Structure errors
// are tagged with the page URL.
func Results(ctx context.Context, fetcher scrape.Fetcher, url string) ([]EventResult, error) {
	body, err := fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	events, err := ParseResults(bytes.NewReader(body))
	if err != nil {
		return nil, scrape.Locate(err, url)
	}
	return events, nil
}
