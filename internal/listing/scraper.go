package listing

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Ilikepi739/swim/internal/scrape"
)

// Default endpoints for the Section III boys swimming sites. All are
// overridable through configuration.
const (
	DefaultTeamsURL       = "http://www.swimdata.info/NYState/Sec3/BSwimMeet.nsf/WebTeams?OpenView"
	DefaultMeetsURL       = "http://www.swimdata.info/NYState/Sec3/BSwimMeet.nsf/Meets?OpenView"
	DefaultSwimmerBaseURL = "http://www.swimdata.info"
	DefaultMeetBaseURL    = "http://www.section3swim.com"

	DefaultCrawlWorkers = 4
)

// Scraper fetches and parses the section's list pages.
type Scraper struct {
	fetcher        scrape.Fetcher
	teamsURL       string
	meetsURL       string
	swimmerBaseURL string
	meetBaseURL    string
	crawlWorkers   int
	logger         *zap.Logger
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithTeamsURL overrides the team dropdown endpoint.
func WithTeamsURL(url string) ScraperOption {
	return func(s *Scraper) {
		s.teamsURL = url
	}
}

// WithMeetsURL overrides the all-meets index endpoint.
func WithMeetsURL(url string) ScraperOption {
	return func(s *Scraper) {
		s.meetsURL = url
	}
}

// WithSwimmerBaseURL overrides the base URL for relative roster links.
func WithSwimmerBaseURL(url string) ScraperOption {
	return func(s *Scraper) {
		s.swimmerBaseURL = url
	}
}

// WithMeetBaseURL overrides the base URL for relative meet links.
func WithMeetBaseURL(url string) ScraperOption {
	return func(s *Scraper) {
		s.meetBaseURL = url
	}
}

// WithCrawlWorkers sets the number of concurrent per-date fetches in
// the all-meets crawl. Width 1 crawls sequentially.
func WithCrawlWorkers(n int) ScraperOption {
	return func(s *Scraper) {
		if n > 0 {
			s.crawlWorkers = n
		}
	}
}

// WithLogger sets the logger used for crawl diagnostics.
func WithLogger(logger *zap.Logger) ScraperOption {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// NewScraper creates a Scraper over the given fetcher with the default
// section endpoints.
func NewScraper(fetcher scrape.Fetcher, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		fetcher:        fetcher,
		teamsURL:       DefaultTeamsURL,
		meetsURL:       DefaultMeetsURL,
		swimmerBaseURL: DefaultSwimmerBaseURL,
		meetBaseURL:    DefaultMeetBaseURL,
		crawlWorkers:   DefaultCrawlWorkers,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Teams fetches the section's team list.
func (s *Scraper) Teams(ctx context.Context) ([]TeamRef, error) {
	body, err := s.fetcher.Fetch(ctx, s.teamsURL)
	if err != nil {
		return nil, err
	}
	teams, err := ParseTeams(bytes.NewReader(body))
	if err != nil {
		return nil, scrape.Locate(err, s.teamsURL)
	}
	return teams, nil
}

// Roster fetches a team's swimmer list.
func (s *Scraper) Roster(ctx context.Context, teamURL string) ([]SwimmerRef, error) {
	body, err := s.fetcher.Fetch(ctx, teamURL)
	if err != nil {
		return nil, err
	}
	swimmers, err := ParseRoster(bytes.NewReader(body), s.swimmerBaseURL)
	if err != nil {
		return nil, scrape.Locate(err, teamURL)
	}
	return swimmers, nil
}

// MeetHistory fetches a team's meet history.
func (s *Scraper) MeetHistory(ctx context.Context, teamURL string) ([]MeetRef, error) {
	body, err := s.fetcher.Fetch(ctx, teamURL)
	if err != nil {
		return nil, err
	}
	meets, err := ParseMeetHistory(bytes.NewReader(body))
	if err != nil {
		return nil, scrape.Locate(err, teamURL)
	}
	return meets, nil
}

// AllMeetURLs crawls the two-stage all-meets listing: the index page
// links to one page per meet date, and each date page links to the
// meets swum that day. Date pages are fetched by a bounded worker
// pool; the returned URLs keep the index page's date order, and the
// first failure cancels the remaining fetches.
func (s *Scraper) AllMeetURLs(ctx context.Context) ([]string, error) {
	body, err := s.fetcher.Fetch(ctx, s.meetsURL)
	if err != nil {
		return nil, err
	}
	dates, err := ParseMeetIndex(bytes.NewReader(body), s.meetBaseURL)
	if err != nil {
		return nil, scrape.Locate(err, s.meetsURL)
	}

	s.logger.Debug("crawling date pages",
		zap.Int("dates", len(dates)),
		zap.Int("workers", s.crawlWorkers))

	perDate := make([][]string, len(dates))
	errs := make([]error, len(dates))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < s.crawlWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				urls, err := s.datePageURLs(ctx, dates[i].URL)
				if err != nil {
					errs[i] = err
					cancel()
					return
				}
				perDate[i] = urls
			}
		}()
	}

	for i := range dates {
		select {
		case jobs <- i:
		case <-ctx.Done():
		}
	}
	close(jobs)
	wg.Wait()

	// Surface the root failure, not a cancellation that followed it.
	var firstErr error
	for _, err := range errs {
		if err == nil {
			continue
		}
		if firstErr == nil {
			firstErr = err
		}
		if !errors.Is(err, context.Canceled) {
			firstErr = err
			break
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	meetURLs := make([]string, 0)
	for _, urls := range perDate {
		meetURLs = append(meetURLs, urls...)
	}
	return meetURLs, nil
}

func (s *Scraper) datePageURLs(ctx context.Context, url string) ([]string, error) {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	urls, err := ParseDatePage(bytes.NewReader(body), s.meetBaseURL)
	if err != nil {
		return nil, scrape.Locate(err, url)
	}
	return urls, nil
}
