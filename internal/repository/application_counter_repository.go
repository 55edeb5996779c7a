package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ApplicationCounterRepository issues sequence values for application
// numbers. One counter row exists per admission cycle.
type ApplicationCounterRepository struct {
	db *sqlx.DB
}

// NewApplicationCounterRepository constructs the repository.
func NewApplicationCounterRepository(db *sqlx.DB) *ApplicationCounterRepository {
	return &ApplicationCounterRepository{db: db}
}

// Next atomically increments and returns the counter for a cycle. The
// upsert creates the row on first use, so two concurrent callers can
// never observe the same value.
func (r *ApplicationCounterRepository) Next(ctx context.Context, cycle string) (int64, error) {
	const query = `INSERT INTO cu_application_counters (cycle, last_value)
	VALUES ($1, 1)
	ON CONFLICT (cycle) DO UPDATE SET last_value = cu_application_counters.last_value + 1
	RETURNING last_value`
	var value int64
	if err := r.db.GetContext(ctx, &value, query, cycle); err != nil {
		return 0, fmt.Errorf("next application number: %w", err)
	}
	return value, nil
}

// Current returns the last issued value for a cycle, zero when the
// counter has never been used.
func (r *ApplicationCounterRepository) Current(ctx context.Context, cycle string) (int64, error) {
	const query = `SELECT last_value FROM cu_application_counters WHERE cycle = $1`
	var value int64
	if err := r.db.GetContext(ctx, &value, query, cycle); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("read application counter: %w", err)
	}
	return value, nil
}
