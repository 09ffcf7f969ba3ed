package notifier

import (
	"fmt"
	"io"

	"github.com/Ilikepi739/swim/internal/listing"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	team string
	out  io.Writer
}

// NewDryRunNotifier creates a new dry-run notifier writing to out
func NewDryRunNotifier(team string, out io.Writer) *DryRunNotifier {
	return &DryRunNotifier{team: team, out: out}
}

// Notify prints the posts that would be made
func (n *DryRunNotifier) Notify(meets []listing.MeetRef) error {
	for i := range meets {
		post := formatPost(n.team, &meets[i])
		fmt.Fprintf(n.out, "--- Post %d/%d ---\n", i+1, len(meets))
		fmt.Fprintln(n.out, post)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", len(post))
	}
	return nil
}
