package listing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
)

// mapFetcher serves pages from an in-memory map and records the URLs
// it was asked for.
type mapFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	urls  []string
}

func (f *mapFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.mu.Unlock()

	page, ok := f.pages[url]
	if !ok {
		return nil, fmt.Errorf("fetching %s: not found", url)
	}
	return []byte(page), nil
}

func datePageFor(meets ...string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, m := range meets {
		fmt.Fprintf(&b, `<a href="/Meet%%20List/%s?OpenDocument">%s</a>`, m, m)
	}
	b.WriteString("</body></html>")
	return b.String()
}

func TestScraperTeams(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{
		"http://index/teams": teamsPage,
	}}
	s := NewScraper(fetcher, WithTeamsURL("http://index/teams"))

	teams, err := s.Teams(context.Background())
	if err != nil {
		t.Fatalf("Teams failed: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
}

func TestScraperAllMeetURLsKeepsDateOrder(t *testing.T) {
	index := `<html><body>
<a href="/d1">12/14/2019</a>
<a href="/d2">12/21/2019</a>
<a href="/d3">01/04/2020</a>
</body></html>`

	fetcher := &mapFetcher{pages: map[string]string{
		"http://index/meets": index,
		"http://base/d1":     datePageFor("m1", "m2"),
		"http://base/d2":     datePageFor("m3"),
		"http://base/d3":     datePageFor("m4", "m5"),
	}}
	s := NewScraper(fetcher,
		WithMeetsURL("http://index/meets"),
		WithMeetBaseURL("http://base"),
		WithCrawlWorkers(3))

	urls, err := s.AllMeetURLs(context.Background())
	if err != nil {
		t.Fatalf("AllMeetURLs failed: %v", err)
	}

	want := []string{
		"http://base/Meet%20List/m1?OpenDocument",
		"http://base/Meet%20List/m2?OpenDocument",
		"http://base/Meet%20List/m3?OpenDocument",
		"http://base/Meet%20List/m4?OpenDocument",
		"http://base/Meet%20List/m5?OpenDocument",
	}
	if len(urls) != len(want) {
		t.Fatalf("expected %d meet URLs, got %d: %v", len(want), len(urls), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, expected %q (order must follow the index page)", i, urls[i], want[i])
		}
	}
}

func TestScraperAllMeetURLsSequentialWidth(t *testing.T) {
	index := `<html><body><a href="/d1">12/14/2019</a></body></html>`
	fetcher := &mapFetcher{pages: map[string]string{
		"http://index/meets": index,
		"http://base/d1":     datePageFor("m1"),
	}}
	s := NewScraper(fetcher,
		WithMeetsURL("http://index/meets"),
		WithMeetBaseURL("http://base"),
		WithCrawlWorkers(1))

	urls, err := s.AllMeetURLs(context.Background())
	if err != nil {
		t.Fatalf("AllMeetURLs failed: %v", err)
	}
	if len(urls) != 1 {
		t.Fatalf("expected 1 meet URL, got %d", len(urls))
	}
}

func TestScraperAllMeetURLsSurfacesFetchError(t *testing.T) {
	index := `<html><body>
<a href="/d1">12/14/2019</a>
<a href="/missing">12/21/2019</a>
</body></html>`

	fetcher := &mapFetcher{pages: map[string]string{
		"http://index/meets": index,
		"http://base/d1":     datePageFor("m1"),
	}}
	s := NewScraper(fetcher,
		WithMeetsURL("http://index/meets"),
		WithMeetBaseURL("http://base"),
		WithCrawlWorkers(2))

	_, err := s.AllMeetURLs(context.Background())
	if err == nil {
		t.Fatal("expected error from failing date page")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected the root fetch error, got %v", err)
	}
}

func TestSnapshotDiff(t *testing.T) {
	older := []MeetRef{
		{Name: "Central vs West", Date: "12/14/2019", URL: "/meets/1"},
	}
	current := []MeetRef{
		{Name: "Central vs West", Date: "12/14/2019", URL: "/meets/1"},
		{Name: "Invitational", Date: "01/04/2020", URL: "/meets/3"},
		{Name: "Central vs East", Date: "12/21/2019", URL: "/meets/2"},
	}

	previous := CreateSnapshot(older, "2019-12-15T00:00:00Z")
	diff := Diff(previous, current)

	if len(diff.NewMeets) != 2 {
		t.Fatalf("expected 2 new meets, got %d", len(diff.NewMeets))
	}
	// Sorted by date then name.
	if diff.NewMeets[0].Name != "Invitational" {
		t.Errorf("unexpected sort order: %+v", diff.NewMeets)
	}
	if diff.NewMeets[1].Name != "Central vs East" {
		t.Errorf("unexpected sort order: %+v", diff.NewMeets)
	}
}

func TestSnapshotDiffNilPrevious(t *testing.T) {
	current := []MeetRef{
		{Name: "Central vs West", Date: "12/14/2019", URL: "/meets/1"},
	}

	diff := Diff(nil, current)
	if len(diff.NewMeets) != 1 {
		t.Fatalf("expected all meets new against nil snapshot, got %d", len(diff.NewMeets))
	}
}

func TestMeetRefID(t *testing.T) {
	a := MeetRef{Name: "Central vs West", Date: "12/14/2019", URL: "/meets/1"}
	b := a

	if a.ID() != b.ID() {
		t.Error("expected deterministic IDs for identical meets")
	}
	if len(a.ID()) != 40 {
		t.Errorf("expected 40-character SHA1 hex, got %d", len(a.ID()))
	}

	c := MeetRef{Name: "Central vs West", Date: "12/14/2019", URL: "/meets/2"}
	if a.ID() == c.ID() {
		t.Error("expected different IDs for different URLs")
	}
}

func TestTeamKey(t *testing.T) {
	key := TeamKey("http://www.swimdata.info/teams/central")
	if len(key) != 12 {
		t.Errorf("expected 12-character key, got %q", key)
	}
	if key != TeamKey("http://www.swimdata.info/teams/central") {
		t.Error("expected deterministic keys")
	}
}
