package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"

	"github.com/Ilikepi739/swim/internal/listing"
)

// TwitterNotifier posts meet announcements to Twitter
type TwitterNotifier struct {
	client *twitter.Client
	team   string
}

// NewTwitterNotifier creates a new Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier(team string) (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)
	client := twitter.NewClient(httpClient)

	return &TwitterNotifier{client: client, team: team}, nil
}

// Notify posts one tweet per meet
func (n *TwitterNotifier) Notify(meets []listing.MeetRef) error {
	for i := range meets {
		post := formatPost(n.team, &meets[i])

		_, _, err := n.client.Statuses.Update(post, nil)
		if err != nil {
			return fmt.Errorf("failed to post tweet for meet %s: %w", meets[i].ID(), err)
		}

		// Rate limiting: wait between tweets
		if i < len(meets)-1 {
			time.Sleep(2 * time.Second)
		}
	}

	return nil
}

// formatPost formats a meet announcement as a tweet
func formatPost(team string, meet *listing.MeetRef) string {
	post := "New meet results posted!\n\n"
	if team != "" {
		post += fmt.Sprintf("%s: %s\n", team, meet.Name)
	} else {
		post += meet.Name + "\n"
	}

	if meet.Date != "" {
		post += fmt.Sprintf("Date: %s\n", meet.Date)
	}
	if meet.URL != "" {
		post += fmt.Sprintf("\nResults: %s\n", meet.URL)
	}
	post += "\n#Section3Swim #Swimming"

	// Twitter limit is 280 characters
	if len(post) > 280 {
		post = post[:277] + "..."
	}

	return post
}
