package listing

import (
	"errors"
	"strings"
	"testing"

	"github.com/Ilikepi739/swim/internal/scrape"
)

const teamsPage = `<html><body>
<select name="team">
<option>Select a team...</option>
<option value="http://www.swimdata.info/teams/central">Central</option>
<option value="http://www.swimdata.info/teams/west">West Genesee</option>
</select>
</body></html>`

func TestParseTeams(t *testing.T) {
	teams, err := ParseTeams(strings.NewReader(teamsPage))
	if err != nil {
		t.Fatalf("ParseTeams failed: %v", err)
	}

	if len(teams) != 2 {
		t.Fatalf("expected 2 teams (placeholder skipped), got %d", len(teams))
	}
	if teams[0] != (TeamRef{Name: "Central", URL: "http://www.swimdata.info/teams/central"}) {
		t.Errorf("unexpected first team: %+v", teams[0])
	}
	if teams[1].Name != "West Genesee" {
		t.Errorf("unexpected second team: %+v", teams[1])
	}
}

func TestParseTeamsMissingValue(t *testing.T) {
	page := `<html><body><select>
<option>placeholder</option>
<option>No Value Team</option>
</select></body></html>`

	_, err := ParseTeams(strings.NewReader(page))
	var serr *scrape.StructureError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *scrape.StructureError, got %v", err)
	}
}

const rosterPage = `<html><body>
<table><tr><td>Some earlier table</td></tr></table>
<table>
<tr><td><a href="/swimmers/1">John Smith (SR)</a></td></tr>
<tr><td><a href="/swimmers/2">Bob Jones (FR)</a></td></tr>
</table>
</body></html>`

func TestParseRoster(t *testing.T) {
	swimmers, err := ParseRoster(strings.NewReader(rosterPage), "http://www.swimdata.info")
	if err != nil {
		t.Fatalf("ParseRoster failed: %v", err)
	}

	if len(swimmers) != 2 {
		t.Fatalf("expected 2 swimmers, got %d", len(swimmers))
	}
	if swimmers[0].URL != "http://www.swimdata.info/swimmers/1" {
		t.Errorf("expected base URL prefix on link, got %q", swimmers[0].URL)
	}
	if swimmers[1].Name != "Bob Jones (FR)" {
		t.Errorf("unexpected swimmer name: %q", swimmers[1].Name)
	}
}

func TestParseRosterNoTables(t *testing.T) {
	_, err := ParseRoster(strings.NewReader("<html><body></body></html>"), "http://base")
	var serr *scrape.StructureError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *scrape.StructureError, got %v", err)
	}
}

const meetHistoryPage = `<html><body>
<table><tr><td>Header</td></tr></table>
<table>
<tr><td>Date</td><td>Meet</td></tr>
<tr><td>12/14/2019</td><td>Central vs West</td><td><a href="/meets/1?OpenDocument">Results</a></td></tr>
<tr><td>12/21/2019</td><td>Invitational</td><td><a href="/meets/2?OpenDocument">Results</a></td></tr>
</table>
<table><tr><td>Footer</td></tr></table>
<table><tr><td>Nav</td></tr></table>
</body></html>`

func TestParseMeetHistory(t *testing.T) {
	meets, err := ParseMeetHistory(strings.NewReader(meetHistoryPage))
	if err != nil {
		t.Fatalf("ParseMeetHistory failed: %v", err)
	}

	if len(meets) != 2 {
		t.Fatalf("expected 2 meets (linkless rows skipped), got %d", len(meets))
	}
	want := MeetRef{Name: "Central vs West", Date: "12/14/2019", URL: "/meets/1?OpenDocument"}
	if meets[0] != want {
		t.Errorf("unexpected first meet: %+v", meets[0])
	}
}

func TestParseMeetHistoryTooFewTables(t *testing.T) {
	page := `<html><body><table><tr><td>only one</td></tr></table></body></html>`

	_, err := ParseMeetHistory(strings.NewReader(page))
	var serr *scrape.StructureError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *scrape.StructureError, got %v", err)
	}
}

const meetIndexPage = `<html><body>
<a href="/dates/2019-12-14">12/14/2019</a>
<a href="/dates/2019-12-21">12/21/2019</a>
<a href="/spacer.gif">   </a>
</body></html>`

func TestParseMeetIndex(t *testing.T) {
	dates, err := ParseMeetIndex(strings.NewReader(meetIndexPage), "http://www.section3swim.com")
	if err != nil {
		t.Fatalf("ParseMeetIndex failed: %v", err)
	}

	if len(dates) != 2 {
		t.Fatalf("expected 2 date links (blank skipped), got %d", len(dates))
	}
	if dates[0] != (DateRef{Label: "12/14/2019", URL: "http://www.section3swim.com/dates/2019-12-14"}) {
		t.Errorf("unexpected first date: %+v", dates[0])
	}
}

const datePage = `<html><body>
<a href="/Meet%20List/meet1?OpenDocument">Central vs West</a>
<a href="/other/page">Not a meet</a>
<a href="/Meet%20List/meet2?OpenDocument">Invitational</a>
<a>No href at all</a>
</body></html>`

func TestParseDatePage(t *testing.T) {
	urls, err := ParseDatePage(strings.NewReader(datePage), "http://www.section3swim.com")
	if err != nil {
		t.Fatalf("ParseDatePage failed: %v", err)
	}

	want := []string{
		"http://www.section3swim.com/Meet%20List/meet1?OpenDocument",
		"http://www.section3swim.com/Meet%20List/meet2?OpenDocument",
	}
	if len(urls) != len(want) {
		t.Fatalf("expected %d meet URLs, got %d", len(want), len(urls))
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, expected %q", i, urls[i], want[i])
		}
	}
}
