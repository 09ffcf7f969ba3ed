// swim-announce posts newly-found meets to Twitter. It reads the JSON
// emitted by `swim meets <team-url> --check --format json` from a file
// or stdin, so the two can be chained from cron.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/Ilikepi739/swim/internal/listing"
	"github.com/Ilikepi739/swim/internal/notifier"
)

var (
	meetsFile = flag.String("meets-file", "", "Path to meets JSON file (or read from stdin)")
	dryRun    = flag.Bool("dry-run", false, "Print posts without posting")
	maxPosts  = flag.Int("max-posts", 10, "Maximum number of posts")
	team      = flag.String("team", "", "Team name to prefix announcements with")
)

func main() {
	flag.Parse()

	// Read meets from file or stdin
	var reader io.Reader
	if *meetsFile != "" {
		f, err := os.Open(*meetsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening meets file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		reader = f
	} else {
		reader = os.Stdin
	}

	// Parse JSON
	var result struct {
		NewMeets []listing.MeetRef `json:"new_meets"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&result); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	if len(result.NewMeets) == 0 {
		fmt.Println("No new meets to announce")
		os.Exit(0)
	}

	// Limit number of posts
	meets := result.NewMeets
	if len(meets) > *maxPosts {
		meets = meets[:*maxPosts]
	}

	// Initialize the notifier
	var n notifier.Notifier
	if *dryRun {
		n = notifier.NewDryRunNotifier(*team, os.Stdout)
		fmt.Printf("DRY RUN MODE - Would post %d meets:\n\n", len(meets))
	} else {
		client, err := notifier.NewTwitterNotifier(*team)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		n = client
	}

	// Post announcements
	if err := n.Notify(meets); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting announcements: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		fmt.Printf("Successfully posted %d announcements\n", len(meets))
	}
}
