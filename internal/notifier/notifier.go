package notifier

import (
	"github.com/Ilikepi739/swim/internal/listing"
)

// Notifier defines the interface for announcing newly-posted meets
type Notifier interface {
	// Notify posts announcements for the given meets
	Notify(meets []listing.MeetRef) error
}
