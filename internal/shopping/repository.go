package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository persists shopping lists as JSON documents in SQLite.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a shopping list repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores the list, assigning an id when it has none. Saving an
// existing id overwrites the stored items, which is how check/uncheck
// state is persisted.
func (r *Repository) Save(ctx context.Context, list *List) error {
	if list.ID == "" {
		list.ID = uuid.NewString()
	}
	if list.CreatedAt.IsZero() {
		list.CreatedAt = time.Now().UTC()
	}

	items, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal shopping list items: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO shopping_lists (id, plan_id, items, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET plan_id = excluded.plan_id, items = excluded.items`,
		list.ID, list.PlanID, string(items), list.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	return nil
}

// Get loads a list by id. A missing list returns (nil, nil).
func (r *Repository) Get(ctx context.Context, id string) (*List, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, plan_id, items, created_at FROM shopping_lists WHERE id = ?`, id)
	return scanList(row)
}

// GetByPlanID loads the most recent list built for a plan, or (nil, nil).
func (r *Repository) GetByPlanID(ctx context.Context, planID string) (*List, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, plan_id, items, created_at FROM shopping_lists
		 WHERE plan_id = ? ORDER BY created_at DESC LIMIT 1`, planID)
	return scanList(row)
}

func scanList(row *sql.Row) (*List, error) {
	var list List
	var items string
	err := row.Scan(&list.ID, &list.PlanID, &items, &list.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load shopping list: %w", err)
	}
	if err := json.Unmarshal([]byte(items), &list.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}
	return &list, nil
}

// Delete removes a stored list.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM shopping_lists WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete shopping list %s: %w", id, err)
	}
	return nil
}
