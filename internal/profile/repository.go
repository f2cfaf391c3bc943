package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

// The profile persists as a single JSON document row.
const profileRow = 1

// Repository persists the user profile in SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a profile repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Load reads the stored profile, or the defaults when none was saved yet.
func (r *Repository) Load(ctx context.Context) (*Profile, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM profiles WHERE id = ?`, profileRow).Scan(&data)
	if err == sql.ErrNoRows {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var p Profile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &p, nil
}

// Save writes the profile document.
func (r *Repository) Save(ctx context.Context, p *Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (id, data) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		profileRow, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}
