// Package storage provides file-based export and import of the
// application's data as a single JSON snapshot.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"pantry-planner/internal/pantry"
	"pantry-planner/internal/planner"
	"pantry-planner/internal/profile"
	"pantry-planner/internal/shopping"
)

// Snapshot bundles everything the database holds into one portable
// document.
type Snapshot struct {
	ExportedAt time.Time           `json:"exportedAt"`
	Profile    *profile.Profile    `json:"profile,omitempty"`
	Pantry     []*pantry.Item      `json:"pantry"`
	Plans      []*planner.MealPlan `json:"mealPlans"`
	Lists      []*shopping.List    `json:"shoppingLists"`
}

// SnapshotStore writes and reads snapshot files under a base directory.
type SnapshotStore struct {
	basePath string
}

// NewSnapshotStore creates a SnapshotStore and ensures the base directory
// exists.
func NewSnapshotStore(basePath string) (*SnapshotStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", basePath, err)
	}
	return &SnapshotStore{basePath: basePath}, nil
}

// sanitizeTimestamp makes the timestamp safe for filenames.
func sanitizeTimestamp(ts string) string {
	return strings.ReplaceAll(ts, ":", "-")
}

func (s *SnapshotStore) pathFor(exportedAt time.Time) string {
	filename := fmt.Sprintf("snapshot_%s.json", sanitizeTimestamp(exportedAt.UTC().Format(time.RFC3339)))
	return filepath.Join(s.basePath, filename)
}

// Write stores the snapshot, stamping ExportedAt if unset, and returns the
// path of the file written.
func (s *SnapshotStore) Write(snap *Snapshot) (string, error) {
	if snap.ExportedAt.IsZero() {
		snap.ExportedAt = time.Now()
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	filePath := s.pathFor(snap.ExportedAt)
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write snapshot file: %w", err)
	}
	return filePath, nil
}

// Read loads a snapshot from an explicit path, which may live outside the
// base directory.
func (s *SnapshotStore) Read(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	return &snap, nil
}

// Latest returns the newest snapshot in the base directory along with its
// path. Filenames sort chronologically because of the RFC 3339 timestamp.
func (s *SnapshotStore) Latest() (*Snapshot, string, error) {
	pattern := filepath.Join(s.basePath, "snapshot_*.json")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, "", fmt.Errorf("failed to glob snapshot files: %w", err)
	}
	if len(matches) == 0 {
		return nil, "", fmt.Errorf("no snapshots found in %s", s.basePath)
	}

	sort.Strings(matches)
	path := matches[len(matches)-1]
	snap, err := s.Read(path)
	if err != nil {
		return nil, "", err
	}
	return snap, path, nil
}
