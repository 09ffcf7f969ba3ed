package listing

import (
	"crypto/sha1"
	"fmt"
	"sort"
)

// Snapshot is the set of meets known for a team at a point in time,
// keyed by MeetRef.ID.
type Snapshot struct {
	Meets     map[string]*MeetRef `json:"meets"`
	UpdatedAt string              `json:"updated_at"`
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Meets: make(map[string]*MeetRef),
	}
}

// CreateSnapshot builds a snapshot from a meet list.
func CreateSnapshot(meets []MeetRef, updatedAt string) *Snapshot {
	snap := NewSnapshot()
	snap.UpdatedAt = updatedAt
	for i := range meets {
		m := meets[i]
		snap.Meets[m.ID()] = &m
	}
	return snap
}

// DiffResult holds the meets present now that were absent from a
// previous snapshot.
type DiffResult struct {
	NewMeets []MeetRef `json:"new_meets"`
}

// Diff compares the current meet list against a previous snapshot and
// returns the meets not seen before, sorted by date then name for
// deterministic output.
func Diff(previous *Snapshot, current []MeetRef) *DiffResult {
	if previous == nil {
		previous = NewSnapshot()
	}

	result := &DiffResult{
		NewMeets: make([]MeetRef, 0),
	}
	for _, m := range current {
		if _, exists := previous.Meets[m.ID()]; !exists {
			result.NewMeets = append(result.NewMeets, m)
		}
	}

	sort.Slice(result.NewMeets, func(i, j int) bool {
		if result.NewMeets[i].Date != result.NewMeets[j].Date {
			return result.NewMeets[i].Date < result.NewMeets[j].Date
		}
		return result.NewMeets[i].Name < result.NewMeets[j].Name
	})

	return result
}

// TeamKey derives a short stable key for a team URL, used to name the
// team's snapshot file.
func TeamKey(teamURL string) string {
	h := sha1.Sum([]byte(teamURL))
	return fmt.Sprintf("%x", h[:6])
}
