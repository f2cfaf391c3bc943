package planner

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository persists meal plans as JSON documents in SQLite, so stored
// plans round-trip exactly as generated.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a meal plan repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores the plan and assigns it an id if it has none. The plan's ID
// and CreatedAt fields are filled in place before marshaling.
func (r *Repository) Save(ctx context.Context, plan *MealPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal meal plan: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO meal_plans (id, name, data, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name, data = excluded.data`,
		plan.ID, plan.Name, string(data), plan.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save meal plan: %w", err)
	}
	return nil
}

// Get loads a plan by id. A missing plan returns (nil, nil).
func (r *Repository) Get(ctx context.Context, id string) (*MealPlan, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM meal_plans WHERE id = ?`, id).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load meal plan %s: %w", id, err)
	}

	var plan MealPlan
	if err := json.Unmarshal([]byte(data), &plan); err != nil {
		return nil, fmt.Errorf("failed to unmarshal meal plan %s: %w", id, err)
	}
	return &plan, nil
}

// ListRecent returns up to limit plans, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]*MealPlan, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT data FROM meal_plans ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal plans: %w", err)
	}
	defer rows.Close()

	var plans []*MealPlan
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan meal plan row: %w", err)
		}
		var plan MealPlan
		if err := json.Unmarshal([]byte(data), &plan); err != nil {
			// A corrupted row should not take the whole listing down.
			continue
		}
		plans = append(plans, &plan)
	}
	return plans, rows.Err()
}

// Delete removes a stored plan. Deleting an unknown id is not an error.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM meal_plans WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete meal plan %s: %w", id, err)
	}
	return nil
}
