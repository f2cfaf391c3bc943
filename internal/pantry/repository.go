package pantry

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// The inventory persists as one JSON document: it is a single shared
// object, read and written wholesale like the browser storage it replaces.
const inventoryRow = 1

// Repository persists the pantry inventory in SQLite.
type Repository struct {
	db  *sql.DB
	log *zap.Logger
}

// NewRepository creates a pantry repository.
func NewRepository(db *sql.DB, log *zap.Logger) *Repository {
	return &Repository{db: db, log: log}
}

// Load reads the stored inventory. An empty database yields an empty
// inventory; entries that fail to decode are dropped, not fatal.
func (r *Repository) Load(ctx context.Context) ([]*Item, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM pantry WHERE id = ?`, inventoryRow).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pantry: %w", err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		r.log.Warn("pantry document is not a list, starting empty", zap.Error(err))
		return nil, nil
	}

	var items []*Item
	for i, entry := range raw {
		var item Item
		if err := json.Unmarshal(entry, &item); err != nil {
			r.log.Warn("skipping malformed pantry entry", zap.Int("index", i), zap.Error(err))
			continue
		}
		items = append(items, &item)
	}
	return items, nil
}

// Save writes the whole inventory document.
func (r *Repository) Save(ctx context.Context, items []*Item) error {
	if items == nil {
		items = []*Item{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal pantry: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO pantry (id, data) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data`,
		inventoryRow, string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to save pantry: %w", err)
	}
	return nil
}
