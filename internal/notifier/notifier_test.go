package notifier

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Ilikepi739/swim/internal/listing"
)

func TestFormatPost(t *testing.T) {
	meet := listing.MeetRef{
		Name: "Central vs West",
		Date: "12/14/2019",
		URL:  "http://www.section3swim.com/meets/1",
	}

	post := formatPost("Central", &meet)

	if !strings.Contains(post, "Central: Central vs West") {
		t.Errorf("expected team and meet name in post, got %q", post)
	}
	if !strings.Contains(post, "12/14/2019") {
		t.Errorf("expected date in post, got %q", post)
	}
	if !strings.Contains(post, meet.URL) {
		t.Errorf("expected URL in post, got %q", post)
	}
	if len(post) > 280 {
		t.Errorf("post exceeds 280 characters: %d", len(post))
	}
}

func TestFormatPostTruncation(t *testing.T) {
	meet := listing.MeetRef{
		Name: strings.Repeat("Very Long Meet Name ", 20),
		Date: "12/14/2019",
		URL:  "http://www.section3swim.com/meets/1",
	}

	post := formatPost("", &meet)

	if len(post) > 280 {
		t.Errorf("expected truncation to 280 characters, got %d", len(post))
	}
	if !strings.HasSuffix(post, "...") {
		t.Errorf("expected truncated post to end with ellipsis, got %q", post)
	}
}

func TestDryRunNotifier(t *testing.T) {
	meets := []listing.MeetRef{
		{Name: "Central vs West", Date: "12/14/2019", URL: "/meets/1"},
		{Name: "Invitational", Date: "12/21/2019", URL: "/meets/2"},
	}

	var buf bytes.Buffer
	n := NewDryRunNotifier("Central", &buf)

	if err := n.Notify(meets); err != nil {
		t.Fatalf("Notify failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Post 1/2") || !strings.Contains(out, "Post 2/2") {
		t.Errorf("expected both posts in output, got %q", out)
	}
	if !strings.Contains(out, "Central vs West") {
		t.Errorf("expected meet name in output, got %q", out)
	}
}

func TestNewTwitterNotifierMissingCredentials(t *testing.T) {
	t.Setenv("TWITTER_API_KEY", "")
	t.Setenv("TWITTER_API_SECRET", "")
	t.Setenv("TWITTER_ACCESS_TOKEN", "")
	t.Setenv("TWITTER_ACCESS_SECRET", "")

	if _, err := NewTwitterNotifier("Central"); err == nil {
		t.Error("expected error with missing credentials")
	}
}
