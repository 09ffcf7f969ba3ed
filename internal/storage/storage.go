package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Ilikepi739/swim/internal/listing"
)

// Storage handles persistence of meet snapshots
type Storage struct {
	dataDir string
}

// New creates a new Storage instance
func New(dataDir string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dataDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, dataDir[2:])
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return &Storage{
		dataDir: dataDir,
	}, nil
}

// meetsPath returns the snapshot file path for a team key
func (s *Storage) meetsPath(key string) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("meets_%s.json", key))
}

// LoadMeets loads a team's meet snapshot from disk. A missing file
// yields an empty snapshot.
func (s *Storage) LoadMeets(key string) (*listing.Snapshot, error) {
	path := s.meetsPath(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return listing.NewSnapshot(), nil
		}
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snapshot listing.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing snapshot: %w", err)
	}

	// Ensure the meets map is initialized
	if snapshot.Meets == nil {
		snapshot.Meets = make(map[string]*listing.MeetRef)
	}

	return &snapshot, nil
}

// SaveMeets saves a team's meet snapshot to disk
func (s *Storage) SaveMeets(key string, snapshot *listing.Snapshot) error {
	path := s.meetsPath(key)

	snapshot.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// SaveMeetList creates and saves a snapshot from a meet list
func (s *Storage) SaveMeetList(key string, meets []listing.MeetRef) error {
	snapshot := listing.CreateSnapshot(meets, time.Now().UTC().Format(time.RFC3339))
	return s.SaveMeets(key, snapshot)
}
