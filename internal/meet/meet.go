// Package meet parses dual-meet result pages into structured event
// records. The results table interleaves event header rows, time rows,
// sentinel rows, and exhibition blocks; ParseRows walks that row stream
// with a small state machine and reconstructs one EventResult per event.
package meet

// TimeEntry is one swimmer's time within an event. Time is the raw
// string as rendered on the page; numeric conversion is swimtime.Parse,
// applied by the caller when needed.
type TimeEntry struct {
	Time       string `json:"time"`
	Swimmer    string `json:"swimmer"`
	Exhibition bool   `json:"exhibition"`
}

// EventResult holds one event's times for both sides of a dual meet.
// Home and Away are built row by row and are positionally independent.
type EventResult struct {
	Name string      `json:"name"`
	Home []TimeEntry `json:"home"`
	Away []TimeEntry `json:"away"`
}
